package api

import (
	"io"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/AryaMundra/VeriWise/internal/errors"
)

// errorBodyLimit caps how much of an error response body is retained
// for diagnostics.
const errorBodyLimit = 4096

// AnalyzeRequest describes one submission to the analysis service.
// Every field is optional, but at least one must be present.
type AnalyzeRequest struct {
	Text      string
	ImagePath string
	ImageName string
	VideoPath string
	VideoName string
}

// Empty reports whether the request carries nothing to analyze.
func (r AnalyzeRequest) Empty() bool {
	return strings.TrimSpace(r.Text) == "" && r.ImagePath == "" && r.VideoPath == ""
}

// Analyze submits text and/or media to the analysis service and returns the
// raw JSON response body. The caller normalizes the body for display; it is
// kept verbatim so normalization stays recomputable.
func (c *Client) Analyze(req AnalyzeRequest) ([]byte, error) {
	if req.Empty() {
		return nil, apierrors.ErrEmptySubmission
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Text) != "" {
		fields["text"] = req.Text
	}

	var files []filePart
	if req.ImagePath != "" {
		files = append(files, filePart{field: "image", path: req.ImagePath, name: req.ImageName})
	}
	if req.VideoPath != "" {
		files = append(files, filePart{field: "video", path: req.VideoPath, name: req.VideoName})
	}

	body, contentType, err := buildMultipart(fields, files)
	if err != nil {
		return nil, err
	}

	httpReq, err := fhttp.NewRequest(fhttp.MethodPost, c.baseURL+PathAnalyze, body)
	if err != nil {
		return nil, apierrors.NewTransportError("analyze", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewTransportError("analyze", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readRequestError(resp.StatusCode, PathAnalyze, resp.Body)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewTransportError("analyze", err)
	}

	return respBody, nil
}

// readRequestError drains up to errorBodyLimit bytes of a failed response
// and extracts a human-readable message from it when the body is JSON.
func readRequestError(status int, endpoint string, r io.Reader) error {
	raw, _ := io.ReadAll(io.LimitReader(r, errorBodyLimit))
	return apierrors.NewRequestError(status, endpoint, extractErrorMessage(raw))
}

// extractErrorMessage pulls an error string out of a JSON error body.
// Degrades to the trimmed raw body, and to empty when nothing is there.
func extractErrorMessage(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return ""
	}

	if gjson.Valid(body) {
		parsed := gjson.Parse(body)
		for _, key := range []string{"error", "detail", "message"} {
			if v := parsed.Get(key); v.Exists() && v.String() != "" {
				return v.String()
			}
		}
	}

	if len(body) > 200 {
		body = body[:200]
	}
	return body
}
