package api

import (
	"encoding/json"
	"io"
	"path/filepath"

	fhttp "github.com/bogdanfinn/fhttp"

	apierrors "github.com/AryaMundra/VeriWise/internal/errors"
)

// Media types accepted by the deepfake endpoint.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// DeepfakeResult is the response of the standalone deepfake check.
type DeepfakeResult struct {
	Type       string          `json:"type"`
	Prediction string          `json:"prediction"`
	Confidence float64         `json:"confidence"`
	Details    json.RawMessage `json:"details,omitempty"`
}

// Deepfake submits a single media file to the dedicated deepfake endpoint.
// mediaType must be MediaTypeImage or MediaTypeVideo.
func (c *Client) Deepfake(filePath, mediaType string) (*DeepfakeResult, error) {
	if filePath == "" {
		return nil, apierrors.ErrEmptySubmission
	}

	fields := map[string]string{"media_type": mediaType}
	files := []filePart{{field: "file", path: filePath, name: filepath.Base(filePath)}}

	body, contentType, err := buildMultipart(fields, files)
	if err != nil {
		return nil, err
	}

	httpReq, err := fhttp.NewRequest(fhttp.MethodPost, c.baseURL+PathDeepfake, body)
	if err != nil {
		return nil, apierrors.NewTransportError("deepfake", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewTransportError("deepfake", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readRequestError(resp.StatusCode, PathDeepfake, resp.Body)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewTransportError("deepfake", err)
	}

	var result DeepfakeResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, apierrors.NewParseError(err.Error(), PathDeepfake)
	}

	return &result, nil
}
