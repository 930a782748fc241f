package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/AryaMundra/VeriWise/internal/api"
	"github.com/AryaMundra/VeriWise/internal/attach"
	apierrors "github.com/AryaMundra/VeriWise/internal/errors"
	"github.com/AryaMundra/VeriWise/internal/models"
	"github.com/AryaMundra/VeriWise/internal/store"
)

type stubAnalyzer struct {
	mu      sync.Mutex
	resp    []byte
	err     error
	reqs    []api.AnalyzeRequest
	entered chan struct{}
	block   chan struct{}
}

func (s *stubAnalyzer) Analyze(req api.AnalyzeRequest) ([]byte, error) {
	s.mu.Lock()
	s.reqs = append(s.reqs, req)
	s.mu.Unlock()

	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	return s.resp, s.err
}

func (s *stubAnalyzer) requests() []api.AnalyzeRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.AnalyzeRequest(nil), s.reqs...)
}

func newTestPipeline(t *testing.T, analyzer Analyzer) (*Pipeline, *store.Store, *attach.Manager) {
	t.Helper()

	kv, err := store.NewFileKV(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileKV failed: %v", err)
	}
	st, err := store.NewStore(kv)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	am, err := attach.NewManager()
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = am.Close() })

	return New(st, am, analyzer), st, am
}

func stageImage(t *testing.T, am *attach.Manager) *attach.Attachment {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(path, []byte("png"), 0o600); err != nil {
		t.Fatalf("write test image: %v", err)
	}
	att, err := am.SelectImage(path)
	if err != nil {
		t.Fatalf("SelectImage failed: %v", err)
	}
	return att
}

func TestSubmit_Success(t *testing.T) {
	analyzer := &stubAnalyzer{resp: []byte(`{"summary":"looks genuine"}`)}
	p, st, _ := newTestPipeline(t, analyzer)

	res, err := p.Submit("is this headline true?")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if res.Err != nil {
		t.Fatalf("unexpected submission error: %v", res.Err)
	}

	sess := st.Get(res.SessionID)
	if sess == nil {
		t.Fatal("session not created")
	}
	if len(sess.Messages) != 2 {
		t.Fatalf("expected user + assistant messages, got %d", len(sess.Messages))
	}
	if sess.Messages[0].Role != models.RoleUser || sess.Messages[0].Text != "is this headline true?" {
		t.Error("user message not appended first")
	}
	if sess.Messages[1].Role != models.RoleAssistant {
		t.Error("assistant message not appended")
	}
	if string(sess.Messages[1].Payload) != `{"summary":"looks genuine"}` {
		t.Error("assistant payload should be the raw response body")
	}
	if sess.Title != "is this headline true?" {
		t.Errorf("title = %q", sess.Title)
	}
	if p.Pending() {
		t.Error("pipeline should be idle after completion")
	}
}

func TestSubmit_EmptyIsSilent(t *testing.T) {
	analyzer := &stubAnalyzer{}
	p, st, _ := newTestPipeline(t, analyzer)

	_, err := p.Submit("   ")
	if !errors.Is(err, apierrors.ErrEmptySubmission) {
		t.Fatalf("err = %v, want ErrEmptySubmission", err)
	}

	if st.Len() != 0 {
		t.Error("no session should be created for an empty submission")
	}
	if len(analyzer.requests()) != 0 {
		t.Error("no request should be issued for an empty submission")
	}
}

func TestSubmit_AttachmentOnly(t *testing.T) {
	analyzer := &stubAnalyzer{resp: []byte(`{}`)}
	p, st, am := newTestPipeline(t, analyzer)

	stageImage(t, am)

	res, err := p.Submit("")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	reqs := analyzer.requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].ImagePath == "" || reqs[0].ImageName != "photo.png" {
		t.Error("staged image not forwarded to the analyzer")
	}

	sess := st.Get(res.SessionID)
	if sess.Messages[0].ImageName != "photo.png" {
		t.Error("user message should record the attachment name")
	}
	if sess.Title != models.DefaultSessionTitle {
		t.Errorf("textless submission should keep the default title, got %q", sess.Title)
	}
}

func TestSubmit_RequestErrorCaptured(t *testing.T) {
	reqErr := apierrors.NewRequestError(500, "/api/analyze", "model unavailable")
	analyzer := &stubAnalyzer{err: reqErr}
	p, st, am := newTestPipeline(t, analyzer)

	stageImage(t, am)

	res, err := p.Submit("check this")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !errors.Is(res.Err, reqErr) && res.Err.Error() != reqErr.Error() {
		t.Errorf("Result.Err = %v", res.Err)
	}

	sess := st.Get(res.SessionID)
	if len(sess.Messages) != 2 {
		t.Fatalf("expected user + error messages, got %d", len(sess.Messages))
	}
	if sess.Messages[1].Role != models.RoleError {
		t.Error("failure should append an error message")
	}
	if sess.Messages[1].Diagnostic == "" {
		t.Error("error message should carry the diagnostic")
	}

	// Failure still consumes the staged input and returns to idle.
	if am.HasStaged() {
		t.Error("staged attachments should be consumed on failure")
	}
	if p.Pending() {
		t.Error("pipeline should be idle after a failed submission")
	}
}

func TestSubmit_ReleasesSpoolCopies(t *testing.T) {
	analyzer := &stubAnalyzer{resp: []byte(`{}`)}
	p, _, am := newTestPipeline(t, analyzer)

	att := stageImage(t, am)

	if _, err := p.Submit("x"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if _, err := os.Stat(att.Path()); !os.IsNotExist(err) {
		t.Error("spool copy should be released after the submission completes")
	}
}

func TestSubmit_SingleFlight(t *testing.T) {
	analyzer := &stubAnalyzer{
		resp:    []byte(`{}`),
		entered: make(chan struct{}, 2),
		block:   make(chan struct{}),
	}
	p, _, _ := newTestPipeline(t, analyzer)

	done := make(chan error, 1)
	go func() {
		_, err := p.Submit("first")
		done <- err
	}()

	// Wait until the first submission is inside the analyzer call
	<-analyzer.entered

	_, err := p.Submit("second")
	if !errors.Is(err, apierrors.ErrSubmissionPending) {
		t.Errorf("concurrent submit err = %v, want ErrSubmissionPending", err)
	}

	close(analyzer.block)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	// Idle again: a new submission goes through
	if _, err := p.Submit("third"); err != nil {
		t.Errorf("submit after settle failed: %v", err)
	}
}

func TestSubmit_ReusesActiveSession(t *testing.T) {
	analyzer := &stubAnalyzer{resp: []byte(`{}`)}
	p, st, _ := newTestPipeline(t, analyzer)

	first, _ := p.Submit("one")
	second, _ := p.Submit("two")

	if first.SessionID != second.SessionID {
		t.Error("submissions should land in the same active session")
	}
	if got := len(st.Get(first.SessionID).Messages); got != 4 {
		t.Errorf("expected 4 messages in timeline, got %d", got)
	}
}

func TestSubmit_SettlesDefaultTitle(t *testing.T) {
	analyzer := &stubAnalyzer{resp: []byte(`{}`)}
	p, st, am := newTestPipeline(t, analyzer)

	// First submission has no text: default title
	stageImage(t, am)
	res, err := p.Submit("")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if st.Get(res.SessionID).Title != models.DefaultSessionTitle {
		t.Fatal("expected default title after textless submission")
	}

	// Second submission brings text: title settles
	if _, err := p.Submit("breaking news about the eclipse"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if got := st.Get(res.SessionID).Title; got != "breaking news about the eclipse" {
		t.Errorf("title = %q", got)
	}
}
