package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "github.com/AryaMundra/VeriWise/internal/errors"
)

func TestVerify_RequestShape(t *testing.T) {
	var claim string
	var hadVideo bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathVerify {
			t.Errorf("path = %s, want %s", r.URL.Path, PathVerify)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		claim = r.FormValue("text_input")
		_, _, errVid := r.FormFile("video")
		hadVideo = errVid == nil

		_, _ = w.Write([]byte(`{"verdict":"REFUTED","score":0.12,"justification":"contradicted","evidence":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	body, err := client.Verify("the moon is made of cheese", "")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if claim != "the moon is made of cheese" {
		t.Errorf("text_input = %q", claim)
	}
	if hadVideo {
		t.Error("video field should be absent")
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("response body not JSON: %v", err)
	}
	if parsed["verdict"] != "REFUTED" {
		t.Errorf("verdict = %v", parsed["verdict"])
	}
}

func TestVerify_Empty(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")

	_, err := client.Verify("", "")
	if !errors.Is(err, apierrors.ErrEmptySubmission) {
		t.Errorf("expected ErrEmptySubmission, got %v", err)
	}
}

func TestVerify_WithVideo(t *testing.T) {
	var videoName string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		if _, hdr, err := r.FormFile("video"); err == nil {
			videoName = hdr.Filename
		}
		_, _ = w.Write([]byte(`{"verdict":"NOT_ENOUGH_INFO","score":0.5}`))
	}))
	defer server.Close()

	videoPath := writeTempFile(t, "claim.mp4", "mp4data")

	client := newTestClient(t, server.URL)
	if _, err := client.Verify("", videoPath); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	// Only the base name goes on the wire, never the local path
	if videoName != "claim.mp4" {
		t.Errorf("video filename = %q, want claim.mp4", videoName)
	}
	if strings.ContainsAny(videoName, `/\`) {
		t.Errorf("video filename leaks local path: %q", videoName)
	}
}

func TestDeepfake_ParsesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathDeepfake {
			t.Errorf("path = %s, want %s", r.URL.Path, PathDeepfake)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		if r.FormValue("media_type") != MediaTypeImage {
			t.Errorf("media_type = %s", r.FormValue("media_type"))
		}
		_, _ = w.Write([]byte(`{"type":"image","prediction":"FAKE","confidence":0.91,"details":{"AI_image_model":{"predicted_class":"Fake"}}}`))
	}))
	defer server.Close()

	imagePath := writeTempFile(t, "suspect.png", "pngdata")

	client := newTestClient(t, server.URL)

	result, err := client.Deepfake(imagePath, MediaTypeImage)
	if err != nil {
		t.Fatalf("Deepfake failed: %v", err)
	}

	if result.Prediction != "FAKE" {
		t.Errorf("Prediction = %s, want FAKE", result.Prediction)
	}
	if result.Confidence != 0.91 {
		t.Errorf("Confidence = %f, want 0.91", result.Confidence)
	}
	if len(result.Details) == 0 {
		t.Error("Details should carry the raw model output")
	}
}

func TestDeepfake_EmptyPath(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")

	_, err := client.Deepfake("", MediaTypeVideo)
	if !errors.Is(err, apierrors.ErrEmptySubmission) {
		t.Errorf("expected ErrEmptySubmission, got %v", err)
	}
}
