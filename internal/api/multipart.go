package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// filePart names a file field in an outbound multipart body.
type filePart struct {
	field string // form field name
	path  string // file on disk
	name  string // filename reported to the service
}

// buildMultipart assembles a multipart body from plain fields and files.
// Field order is not significant to the service; files are streamed in
// the order given.
func buildMultipart(fields map[string]string, files []filePart) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", field, err)
		}
	}

	for _, fp := range files {
		if err := appendFile(writer, fp); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &body, writer.FormDataContentType(), nil
}

func appendFile(writer *multipart.Writer, fp filePart) error {
	file, err := os.Open(fp.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", fp.path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	// The service only needs a filename; never send the local path.
	name := fp.name
	if name == "" {
		name = filepath.Base(fp.path)
	}

	part, err := writer.CreateFormFile(fp.field, name)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to write file data: %w", err)
	}

	return nil
}
