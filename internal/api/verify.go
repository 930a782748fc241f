package api

import (
	"context"
	"io"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"

	apierrors "github.com/AryaMundra/VeriWise/internal/errors"
)

// Verify runs the narrower claim-verification flow: a text claim with an
// optional supporting video. Unlike Analyze, this flow applies a fixed
// client-side deadline (VerifyTimeout).
func (c *Client) Verify(claim, videoPath string) ([]byte, error) {
	if strings.TrimSpace(claim) == "" && videoPath == "" {
		return nil, apierrors.ErrEmptySubmission
	}

	fields := map[string]string{}
	if strings.TrimSpace(claim) != "" {
		fields["text_input"] = claim
	}

	var files []filePart
	if videoPath != "" {
		files = append(files, filePart{field: "video", path: videoPath})
	}

	body, contentType, err := buildMultipart(fields, files)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), VerifyTimeout)
	defer cancel()

	httpReq, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodPost, c.baseURL+PathVerify, body)
	if err != nil {
		return nil, apierrors.NewTransportError("verify", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewTransportError("verify", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readRequestError(resp.StatusCode, PathVerify, resp.Body)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewTransportError("verify", err)
	}

	return respBody, nil
}
