// Package attach manages the image and video staged for the next submission.
//
// Selecting a file copies it into a private spool directory; that copy is the
// previewable resource the UI describes and the submission eventually reads.
// Every spool copy is removed exactly once: on replacement, removal, clearing,
// after a submission consumed it, or on manager shutdown.
package attach

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Kind identifies a staged attachment slot.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

const (
	MaxImageSize = 20 * 1024 * 1024  // 20MB
	MaxVideoSize = 200 * 1024 * 1024 // 200MB
)

// SupportedImageTypes returns the list of accepted image MIME types.
func SupportedImageTypes() []string {
	return []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	}
}

// SupportedVideoTypes returns the list of accepted video MIME types.
func SupportedVideoTypes() []string {
	return []string{
		"video/mp4",
		"video/quicktime",
		"video/webm",
		"video/x-matroska",
	}
}

// Attachment is a staged file: the original's name plus a private spool copy.
type Attachment struct {
	Kind     Kind
	FileName string
	MIMEType string
	Size     int64

	spoolPath string

	releaseOnce sync.Once
}

// Path returns the location of the spool copy.
func (a *Attachment) Path() string {
	return a.spoolPath
}

// Release removes the spool copy. Safe to call more than once; only the
// first call removes the file.
func (a *Attachment) Release() {
	a.releaseOnce.Do(func() {
		_ = os.Remove(a.spoolPath)
	})
}

// Manager holds at most one staged attachment per kind.
type Manager struct {
	mu       sync.Mutex
	spoolDir string
	image    *Attachment
	video    *Attachment
}

// NewManager creates a manager with a fresh spool directory.
func NewManager() (*Manager, error) {
	dir, err := os.MkdirTemp("", "veriwise-attach-")
	if err != nil {
		return nil, fmt.Errorf("failed to create spool directory: %w", err)
	}
	return &Manager{spoolDir: dir}, nil
}

// SelectImage stages an image file, replacing and releasing any image staged
// before it.
func (m *Manager) SelectImage(filePath string) (*Attachment, error) {
	att, err := m.stage(filePath, KindImage, MaxImageSize, SupportedImageTypes())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	prev := m.image
	m.image = att
	m.mu.Unlock()

	if prev != nil {
		prev.Release()
	}
	return att, nil
}

// SelectVideo stages a video file, replacing and releasing any video staged
// before it.
func (m *Manager) SelectVideo(filePath string) (*Attachment, error) {
	att, err := m.stage(filePath, KindVideo, MaxVideoSize, SupportedVideoTypes())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	prev := m.video
	m.video = att
	m.mu.Unlock()

	if prev != nil {
		prev.Release()
	}
	return att, nil
}

// Remove clears the staged attachment of the given kind and releases its
// spool copy. Removing an empty slot is a no-op.
func (m *Manager) Remove(kind Kind) {
	m.mu.Lock()
	var prev *Attachment
	switch kind {
	case KindImage:
		prev, m.image = m.image, nil
	case KindVideo:
		prev, m.video = m.video, nil
	}
	m.mu.Unlock()

	if prev != nil {
		prev.Release()
	}
}

// Clear removes both staged attachments, releasing their spool copies.
func (m *Manager) Clear() {
	m.mu.Lock()
	image, video := m.image, m.video
	m.image, m.video = nil, nil
	m.mu.Unlock()

	if image != nil {
		image.Release()
	}
	if video != nil {
		video.Release()
	}
}

// Take hands ownership of both staged attachments to the caller and resets
// the slots. The caller is responsible for releasing what it receives.
func (m *Manager) Take() (image, video *Attachment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	image, video = m.image, m.video
	m.image, m.video = nil, nil
	return image, video
}

// Image returns the staged image, or nil.
func (m *Manager) Image() *Attachment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.image
}

// Video returns the staged video, or nil.
func (m *Manager) Video() *Attachment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.video
}

// HasStaged reports whether at least one attachment is staged.
func (m *Manager) HasStaged() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.image != nil || m.video != nil
}

// Close releases any staged attachments and removes the spool directory.
func (m *Manager) Close() error {
	m.Clear()
	return os.RemoveAll(m.spoolDir)
}

// stage validates the file and copies it into the spool directory.
func (m *Manager) stage(filePath string, kind Kind, maxSize int64, supported []string) (*Attachment, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory", filePath)
	}
	if fileInfo.Size() > maxSize {
		return nil, fmt.Errorf("file size exceeds maximum %d bytes", maxSize)
	}

	ext := filepath.Ext(filePath)
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	if !isSupportedType(mimeType, supported) {
		return nil, fmt.Errorf("unsupported %s type: %s", kind, mimeType)
	}

	src, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	spoolPath := filepath.Join(m.spoolDir, uuid.NewString()+ext)
	dst, err := os.OpenFile(spoolPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create spool file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(spoolPath)
		return nil, fmt.Errorf("failed to copy file to spool: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(spoolPath)
		return nil, fmt.Errorf("failed to finish spool file: %w", err)
	}

	return &Attachment{
		Kind:      kind,
		FileName:  filepath.Base(filePath),
		MIMEType:  mimeType,
		Size:      fileInfo.Size(),
		spoolPath: spoolPath,
	}, nil
}

func isSupportedType(mimeType string, supported []string) bool {
	for _, s := range supported {
		if strings.HasPrefix(mimeType, s) {
			return true
		}
	}
	return false
}
