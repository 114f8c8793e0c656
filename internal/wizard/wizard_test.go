package wizard

import (
	"context"
	"testing"

	"careerforge/internal/errors"
	"careerforge/internal/types"
)

// fakeGenerator counts gateway invocations per operation
type fakeGenerator struct {
	analyzeCalls     int
	optimizeCalls    int
	coverLetterCalls int

	analyzeErr error
}

func (f *fakeGenerator) AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (types.ResumeAnalysis, error) {
	f.analyzeCalls++
	if f.analyzeErr != nil {
		return types.ResumeAnalysis{}, f.analyzeErr
	}
	return types.ResumeAnalysis{Score: 70, KeywordMatch: 65}, nil
}

func (f *fakeGenerator) OptimizeResume(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizedResume, error) {
	f.optimizeCalls++
	return types.OptimizedResume{Text: "optimized " + input.ResumeText}, nil
}

func (f *fakeGenerator) GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (string, error) {
	f.coverLetterCalls++
	return "Dear Hiring Manager at " + input.CompanyName, nil
}

func newTestController(t *testing.T) (*Controller, *fakeGenerator) {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	gen := &fakeGenerator{}
	return NewController(gen, logger), gen
}

func readySession() *Session {
	s := NewSession()
	job := "DevOps role"
	company := "Initech"
	text := "Jane Smith resume text"
	s.Merge(Update{
		JobDescription: &job,
		CompanyName:    &company,
		ResumeText:     &text,
	})
	return s
}

func TestStageString(t *testing.T) {
	tests := []struct {
		stage    Stage
		expected string
	}{
		{StageJobDetails, "jobDetails"},
		{StageAnalysis, "analysis"},
		{StageOptimization, "optimization"},
		{StageCoverLetter, "coverLetter"},
		{StageDownload, "download"},
	}

	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.expected {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.stage, got, tt.expected)
		}

		parsed, err := ParseStage(tt.expected)
		if err != nil {
			t.Errorf("ParseStage(%q) failed: %v", tt.expected, err)
		}
		if parsed != tt.stage {
			t.Errorf("ParseStage(%q) = %v, want %v", tt.expected, parsed, tt.stage)
		}
	}

	if _, err := ParseStage("summary"); err == nil {
		t.Error("ParseStage should reject unknown stage names")
	}
}

func TestMergeReplacesWholeFields(t *testing.T) {
	s := NewSession()
	job := "first job"
	s.Merge(Update{JobDescription: &job})

	if s.Application().JobDescription != "first job" {
		t.Error("Merge should set job description")
	}

	company := "Initech"
	s.Merge(Update{CompanyName: &company})

	app := s.Application()
	if app.JobDescription != "first job" {
		t.Error("Nil update fields must leave existing values untouched")
	}
	if app.CompanyName != "Initech" {
		t.Error("Merge should set company name")
	}

	replacement := "second job"
	s.Merge(Update{JobDescription: &replacement})
	if s.Application().JobDescription != "second job" {
		t.Error("Non-nil update fields must replace the whole stored field")
	}
}

func TestCanEnterGating(t *testing.T) {
	c, _ := newTestController(t)
	s := NewSession()

	// Empty session: only job details is reachable
	if !c.CanEnter(s, StageJobDetails) {
		t.Error("Job details stage must always be reachable")
	}
	for _, stage := range []Stage{StageAnalysis, StageOptimization, StageCoverLetter, StageDownload} {
		if c.CanEnter(s, stage) {
			t.Errorf("Stage %s should be gated on an empty session", stage)
		}
	}

	text := "resume text"
	s.Merge(Update{ResumeText: &text})
	if !c.CanEnter(s, StageAnalysis) {
		t.Error("Analysis should be reachable once resume text is set")
	}
	if c.CanEnter(s, StageOptimization) {
		t.Error("Optimization must be gated until analysis is set")
	}

	s.Merge(Update{Analysis: &types.ResumeAnalysis{Score: 70}})
	if !c.CanEnter(s, StageOptimization) {
		t.Error("Optimization should be reachable once analysis is set")
	}

	optimized := "optimized text"
	s.Merge(Update{OptimizedResume: &optimized})
	if !c.CanEnter(s, StageCoverLetter) {
		t.Error("Cover letter should be reachable once optimized resume is set")
	}

	letter := "letter"
	s.Merge(Update{CoverLetter: &letter})
	if !c.CanEnter(s, StageDownload) {
		t.Error("Download should be reachable once cover letter is set")
	}
}

func TestEnterGatedStageFails(t *testing.T) {
	c, gen := newTestController(t)
	s := NewSession()

	err := c.Enter(context.Background(), s, StageOptimization)
	if err == nil {
		t.Fatal("Entering a gated stage must fail")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeStageNotReady {
		t.Errorf("Expected code %s, got %s", errors.ErrCodeStageNotReady, appErr.Code)
	}
	if gen.optimizeCalls != 0 {
		t.Errorf("Gated stage entry must not call the gateway, got %d calls", gen.optimizeCalls)
	}
}

func TestEnterRunsOperationExactlyOnce(t *testing.T) {
	c, gen := newTestController(t)
	s := readySession()

	if err := c.Enter(context.Background(), s, StageAnalysis); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gen.analyzeCalls != 1 {
		t.Errorf("Expected exactly one analyze call, got %d", gen.analyzeCalls)
	}
	if s.Application().Analysis == nil {
		t.Fatal("Analysis output should be merged into the session")
	}
	if s.Stage() != StageAnalysis {
		t.Errorf("Stage cursor should advance, got %s", s.Stage())
	}

	// Re-entering with output present makes no further call
	if err := c.Enter(context.Background(), s, StageAnalysis); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gen.analyzeCalls != 1 {
		t.Errorf("Re-entry with output present must not call the gateway, got %d calls", gen.analyzeCalls)
	}
}

func TestEnterFullFlow(t *testing.T) {
	c, gen := newTestController(t)
	s := readySession()

	for _, stage := range []Stage{StageAnalysis, StageOptimization, StageCoverLetter, StageDownload} {
		if err := c.Enter(context.Background(), s, stage); err != nil {
			t.Fatalf("Enter(%s) failed: %v", stage, err)
		}
	}

	app := s.Application()
	if app.Analysis == nil || app.OptimizedResume == "" || app.CoverLetter == "" {
		t.Errorf("Full flow should populate all outputs: %+v", app)
	}
	if gen.analyzeCalls != 1 || gen.optimizeCalls != 1 || gen.coverLetterCalls != 1 {
		t.Errorf("Each operation should run once: analyze=%d optimize=%d coverLetter=%d",
			gen.analyzeCalls, gen.optimizeCalls, gen.coverLetterCalls)
	}
	if s.Stage() != StageDownload {
		t.Errorf("Expected final stage download, got %s", s.Stage())
	}
}

func TestEnterPropagatesOperationError(t *testing.T) {
	c, gen := newTestController(t)
	gen.analyzeErr = errors.NewAIError(errors.ErrCodeAIServiceFailed, "model unavailable", nil)
	s := readySession()

	if err := c.Enter(context.Background(), s, StageAnalysis); err == nil {
		t.Fatal("Operation error must propagate")
	}
	if s.Application().Analysis != nil {
		t.Error("Failed stage must not merge output")
	}

	// The busy flag must be released after a failure
	gen.analyzeErr = nil
	if err := c.Enter(context.Background(), s, StageAnalysis); err != nil {
		t.Fatalf("Session should accept a retry after failure: %v", err)
	}
}

func TestRegenerate(t *testing.T) {
	c, gen := newTestController(t)
	s := readySession()

	for _, stage := range []Stage{StageAnalysis, StageOptimization} {
		if err := c.Enter(context.Background(), s, stage); err != nil {
			t.Fatalf("Enter(%s) failed: %v", stage, err)
		}
	}

	if err := c.Regenerate(context.Background(), s, StageOptimization); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	if gen.optimizeCalls != 2 {
		t.Errorf("Regenerate must re-invoke unconditionally, got %d calls", gen.optimizeCalls)
	}
}

func TestRegenerateRejectsUnsupportedStages(t *testing.T) {
	c, _ := newTestController(t)
	s := readySession()

	for _, stage := range []Stage{StageJobDetails, StageAnalysis, StageDownload} {
		if err := c.Regenerate(context.Background(), s, stage); err == nil {
			t.Errorf("Regenerate(%s) should be rejected", stage)
		}
	}
}

func TestStore(t *testing.T) {
	st := NewStore()

	s := st.Open()
	if st.Len() != 1 {
		t.Fatalf("Expected one session, got %d", st.Len())
	}

	got, err := st.Get(s.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != s {
		t.Error("Get should return the registered session")
	}

	st.Close(s.ID)
	_, err = st.Get(s.ID)
	if err == nil {
		t.Fatal("Get after Close should fail")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeSessionNotFound {
		t.Errorf("Expected session not found error, got %v", err)
	}
}
