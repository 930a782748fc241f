// Package pipeline drives one submission from staged input to an appended
// timeline message.
//
// A submission is atomic: validate, append the user message, issue the
// request, and append exactly one assistant or error message. There are no
// retries and no partial successes, and only one submission may be in flight
// at a time anywhere in the program.
package pipeline

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/AryaMundra/VeriWise/internal/api"
	"github.com/AryaMundra/VeriWise/internal/attach"
	apierrors "github.com/AryaMundra/VeriWise/internal/errors"
	"github.com/AryaMundra/VeriWise/internal/logging"
	"github.com/AryaMundra/VeriWise/internal/models"
	"github.com/AryaMundra/VeriWise/internal/store"
)

// Analyzer issues one analysis request. Satisfied by api.Client.
type Analyzer interface {
	Analyze(req api.AnalyzeRequest) ([]byte, error)
}

// Result describes a completed submission. Message is the assistant or error
// entry appended to the session; Err is set when the submission failed and
// Message carries its diagnostic.
type Result struct {
	SessionID string
	Message   models.Message
	Err       error
}

// Pipeline owns the in-flight guard and the staged attachments.
type Pipeline struct {
	mu      sync.Mutex
	pending bool

	store       *store.Store
	attachments *attach.Manager
	analyzer    Analyzer
}

// New builds a pipeline over the given store, attachment manager and analyzer.
func New(st *store.Store, attachments *attach.Manager, analyzer Analyzer) *Pipeline {
	return &Pipeline{
		store:       st,
		attachments: attachments,
		analyzer:    analyzer,
	}
}

// Pending reports whether a submission is currently in flight.
func (p *Pipeline) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// Submit runs one submission to completion and returns the appended message.
//
// Returns apierrors.ErrEmptySubmission when there is nothing to send (the
// caller stays silent) and apierrors.ErrSubmissionPending when another
// submission is in flight. In every other case the outcome — success or
// failure — has been appended to the session and the pipeline is Idle again.
func (p *Pipeline) Submit(text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" && !p.attachments.HasStaged() {
		return nil, apierrors.ErrEmptySubmission
	}

	p.mu.Lock()
	if p.pending {
		p.mu.Unlock()
		return nil, apierrors.ErrSubmissionPending
	}
	p.pending = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.pending = false
		p.mu.Unlock()
	}()

	// Staged attachments belong to this submission from here on; they are
	// released once the request has completed, whatever the outcome.
	image, video := p.attachments.Take()
	defer func() {
		if image != nil {
			image.Release()
		}
		if video != nil {
			video.Release()
		}
	}()

	sess, err := p.ensureSession(text)
	if err != nil {
		return nil, err
	}

	userMsg := models.NewUserMessage(text, attachmentName(image), attachmentName(video))
	if err := p.store.AppendMessage(sess.ID, userMsg); err != nil {
		return nil, err
	}

	req := api.AnalyzeRequest{Text: text}
	if image != nil {
		req.ImagePath = image.Path()
		req.ImageName = image.FileName
	}
	if video != nil {
		req.VideoPath = video.Path()
		req.VideoName = video.FileName
	}

	logging.L().Debug("submitting analysis request",
		zap.String("session", sess.ID),
		zap.Bool("has_text", text != ""),
		zap.Bool("has_image", image != nil),
		zap.Bool("has_video", video != nil),
	)

	raw, analyzeErr := p.analyzer.Analyze(req)

	var msg models.Message
	if analyzeErr != nil {
		logging.L().Warn("analysis request failed", zap.Error(analyzeErr))
		msg = models.NewErrorMessage(analyzeErr.Error())
	} else {
		msg = models.NewAssistantMessage(raw)
	}

	if err := p.store.AppendMessage(sess.ID, msg); err != nil {
		return nil, err
	}

	p.settleTitle(sess.ID, text)

	return &Result{SessionID: sess.ID, Message: msg, Err: analyzeErr}, nil
}

// ensureSession returns the active session, creating and titling one when
// none exists.
func (p *Pipeline) ensureSession(text string) (*models.Session, error) {
	if sess := p.store.Active(); sess != nil {
		return sess, nil
	}

	sess, err := p.store.CreateSession()
	if err != nil {
		return nil, err
	}
	if text != "" {
		if err := p.store.RenameSession(sess.ID, models.TitleFromText(text)); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// settleTitle replaces a still-default title once the session has seen text.
func (p *Pipeline) settleTitle(id, text string) {
	sess := p.store.Get(id)
	if sess == nil || !sess.HasDefaultTitle() || text == "" {
		return
	}
	if err := p.store.RenameSession(id, models.TitleFromText(text)); err != nil {
		logging.L().Warn("failed to settle session title", zap.Error(err))
	}
}

func attachmentName(a *attach.Attachment) string {
	if a == nil {
		return ""
	}
	return a.FileName
}
