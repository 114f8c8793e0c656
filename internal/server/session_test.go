package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cfErrors "careerforge/internal/errors"
	"careerforge/internal/types"
	"careerforge/internal/wizard"
)

// stubGenerator counts invocations so tests can tell a cached stage entry
// from a regeneration.
type stubGenerator struct {
	analyzeCalls  int
	optimizeCalls int
	letterCalls   int
}

func (g *stubGenerator) AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (types.ResumeAnalysis, error) {
	g.analyzeCalls++
	return types.ResumeAnalysis{
		Score:           80,
		KeywordMatch:    70,
		MissingKeywords: []string{"Kubernetes"},
		Suggestions:     []string{"Add cloud keywords"},
		Strengths:       []string{"Clear formatting"},
	}, nil
}

func (g *stubGenerator) OptimizeResume(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizedResume, error) {
	g.optimizeCalls++
	return types.OptimizedResume{Text: fmt.Sprintf("optimized v%d", g.optimizeCalls)}, nil
}

func (g *stubGenerator) GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (string, error) {
	g.letterCalls++
	return "Dear Hiring Manager,", nil
}

func newSessionTestServer(t *testing.T) (*Server, *stubGenerator) {
	t.Helper()

	logger, err := cfErrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	srv := newTestServer(t, ServerConfig{})
	gen := &stubGenerator{}
	srv.Wizard = wizard.NewController(gen, logger)
	return srv, gen
}

func sessionRequest(method, target, sessionID, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if sessionID != "" {
		req.SetPathValue("id", sessionID)
	}
	return req
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) SessionResponse {
	t.Helper()
	var resp SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode session response: %v\n%s", err, rec.Body.String())
	}
	return resp
}

func TestSessionLifecycle(t *testing.T) {
	srv, gen := newSessionTestServer(t)

	// Open
	rec := httptest.NewRecorder()
	srv.openSessionHandler(rec, sessionRequest(http.MethodPost, "/sessions", "", ""))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on open, got %d", rec.Code)
	}
	opened := decodeSession(t, rec)
	if opened.Stage != "jobDetails" {
		t.Errorf("expected new session at jobDetails, got %q", opened.Stage)
	}
	id := opened.SessionID

	// Merge job details
	rec = httptest.NewRecorder()
	srv.updateSessionHandler(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/details", id,
		`{"jobDescription":"Go engineer role","companyName":"Initech","resumeText":"JANE DOE\nEngineer"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on details merge, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeSession(t, rec)
	if updated.Application.CompanyName != "Initech" {
		t.Errorf("expected merged company name, got %q", updated.Application.CompanyName)
	}

	// Advance through generation stages
	for _, stage := range []string{"analysis", "optimization", "coverLetter", "download"} {
		rec = httptest.NewRecorder()
		srv.advanceSessionHandler(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/advance", id,
			fmt.Sprintf(`{"stage":%q}`, stage)))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 advancing to %s, got %d: %s", stage, rec.Code, rec.Body.String())
		}
	}

	final := decodeSession(t, rec)
	if final.Stage != "download" {
		t.Errorf("expected final stage download, got %q", final.Stage)
	}
	if final.Application.Analysis == nil || final.Application.Analysis.Score != 80 {
		t.Errorf("expected analysis in final state, got %+v", final.Application.Analysis)
	}
	if final.Application.OptimizedResume != "optimized v1" {
		t.Errorf("unexpected optimized resume: %q", final.Application.OptimizedResume)
	}
	if final.Application.CoverLetter != "Dear Hiring Manager," {
		t.Errorf("unexpected cover letter: %q", final.Application.CoverLetter)
	}
	if gen.analyzeCalls != 1 || gen.optimizeCalls != 1 || gen.letterCalls != 1 {
		t.Errorf("expected one call per stage, got analyze=%d optimize=%d letter=%d",
			gen.analyzeCalls, gen.optimizeCalls, gen.letterCalls)
	}

	// Close; further lookups are 404
	rec = httptest.NewRecorder()
	srv.closeSessionHandler(rec, sessionRequest(http.MethodDelete, "/sessions/"+id, id, ""))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on close, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.getSessionHandler(rec, sessionRequest(http.MethodGet, "/sessions/"+id, id, ""))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after close, got %d", rec.Code)
	}
}

func TestSessionRegenerate(t *testing.T) {
	srv, gen := newSessionTestServer(t)

	rec := httptest.NewRecorder()
	srv.openSessionHandler(rec, sessionRequest(http.MethodPost, "/sessions", "", ""))
	id := decodeSession(t, rec).SessionID

	rec = httptest.NewRecorder()
	srv.updateSessionHandler(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/details", id,
		`{"jobDescription":"Go engineer role","resumeText":"JANE DOE\nEngineer"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("details merge failed: %d", rec.Code)
	}

	for _, stage := range []string{"analysis", "optimization"} {
		rec = httptest.NewRecorder()
		srv.advanceSessionHandler(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/advance", id,
			fmt.Sprintf(`{"stage":%q}`, stage)))
		if rec.Code != http.StatusOK {
			t.Fatalf("advance to %s failed: %d", stage, rec.Code)
		}
	}

	// Re-entering the stage makes no new call
	rec = httptest.NewRecorder()
	srv.advanceSessionHandler(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/advance", id,
		`{"stage":"optimization"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("re-entry failed: %d", rec.Code)
	}
	if gen.optimizeCalls != 1 {
		t.Errorf("expected cached re-entry, got %d optimize calls", gen.optimizeCalls)
	}

	// Regenerate overwrites the output with a fresh call
	rec = httptest.NewRecorder()
	srv.regenerateSessionHandler(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/regenerate", id,
		`{"stage":"optimization"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("regenerate failed: %d: %s", rec.Code, rec.Body.String())
	}
	regenerated := decodeSession(t, rec)
	if regenerated.Application.OptimizedResume != "optimized v2" {
		t.Errorf("expected regenerated output, got %q", regenerated.Application.OptimizedResume)
	}
	if gen.optimizeCalls != 2 {
		t.Errorf("expected second optimize call, got %d", gen.optimizeCalls)
	}

	// Analysis does not support regeneration
	rec = httptest.NewRecorder()
	srv.regenerateSessionHandler(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/regenerate", id,
		`{"stage":"analysis"}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 regenerating analysis, got %d", rec.Code)
	}
}

func TestSessionStageOrdering(t *testing.T) {
	srv, _ := newSessionTestServer(t)

	rec := httptest.NewRecorder()
	srv.openSessionHandler(rec, sessionRequest(http.MethodPost, "/sessions", "", ""))
	id := decodeSession(t, rec).SessionID

	// Analysis before any resume text is a state conflict
	rec = httptest.NewRecorder()
	srv.advanceSessionHandler(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/advance", id,
		`{"stage":"analysis"}`))
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for premature stage entry, got %d", rec.Code)
	}

	// Unknown stage names are rejected
	rec = httptest.NewRecorder()
	srv.advanceSessionHandler(rec, sessionRequest(http.MethodPost, "/sessions/"+id+"/advance", id,
		`{"stage":"summary"}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown stage, got %d", rec.Code)
	}
}

func TestSessionLookupErrors(t *testing.T) {
	srv, _ := newSessionTestServer(t)

	rec := httptest.NewRecorder()
	srv.getSessionHandler(rec, sessionRequest(http.MethodGet, "/sessions/not-a-uuid", "not-a-uuid", ""))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed session ID, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	missing := "2f5a0c1e-8d4b-4f6a-9c3d-1b2e3f4a5d6c"
	srv.getSessionHandler(rec, sessionRequest(http.MethodGet, "/sessions/"+missing, missing, ""))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown session, got %d", rec.Code)
	}
}
