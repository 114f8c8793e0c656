package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"careerforge/internal/errors"
	"careerforge/internal/types"

	"github.com/google/uuid"
)

// Stage is one step of the application wizard. Stages advance in strict
// linear order.
type Stage int

const (
	StageJobDetails Stage = iota
	StageAnalysis
	StageOptimization
	StageCoverLetter
	StageDownload
)

func (s Stage) String() string {
	switch s {
	case StageJobDetails:
		return "jobDetails"
	case StageAnalysis:
		return "analysis"
	case StageOptimization:
		return "optimization"
	case StageCoverLetter:
		return "coverLetter"
	case StageDownload:
		return "download"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ParseStage maps a stage name to its Stage value
func ParseStage(name string) (Stage, error) {
	switch name {
	case "jobDetails":
		return StageJobDetails, nil
	case "analysis":
		return StageAnalysis, nil
	case "optimization":
		return StageOptimization, nil
	case "coverLetter":
		return StageCoverLetter, nil
	case "download":
		return StageDownload, nil
	default:
		return 0, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"Unknown stage: "+name, nil)
	}
}

// Generator is the subset of gateway operations the wizard drives
type Generator interface {
	AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (types.ResumeAnalysis, error)
	OptimizeResume(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizedResume, error)
	GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (string, error)
}

// Update carries partial session state. Nil fields are left untouched;
// non-nil fields replace the whole stored field.
type Update struct {
	JobDescription  *string
	CompanyName     *string
	ResumeFileName  *string
	ResumeText      *string
	ResumeData      *types.ResumeData
	Analysis        *types.ResumeAnalysis
	OptimizedResume *string
	CoverLetter     *string
}

// Session holds the state of one application being worked through the
// wizard. A session normally has a single mutator, but the HTTP surface can
// host sessions so access is guarded anyway.
type Session struct {
	ID uuid.UUID

	mu      sync.Mutex
	app     types.JobApplication
	stage   Stage
	busy    bool
	created time.Time
}

// NewSession creates an empty session positioned at the job details stage
func NewSession() *Session {
	return &Session{
		ID:      uuid.New(),
		stage:   StageJobDetails,
		created: time.Now(),
	}
}

// Merge applies an update, replacing whole fields where the update field is
// non-nil
func (s *Session) Merge(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.JobDescription != nil {
		s.app.JobDescription = *u.JobDescription
	}
	if u.CompanyName != nil {
		s.app.CompanyName = *u.CompanyName
	}
	if u.ResumeFileName != nil {
		s.app.ResumeFileName = *u.ResumeFileName
	}
	if u.ResumeText != nil {
		s.app.ResumeText = *u.ResumeText
	}
	if u.ResumeData != nil {
		s.app.ResumeData = u.ResumeData
	}
	if u.Analysis != nil {
		s.app.Analysis = u.Analysis
	}
	if u.OptimizedResume != nil {
		s.app.OptimizedResume = *u.OptimizedResume
	}
	if u.CoverLetter != nil {
		s.app.CoverLetter = *u.CoverLetter
	}
}

// Application returns a copy of the accumulated application state
func (s *Session) Application() types.JobApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app
}

// Stage returns the current stage cursor
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Created returns when the session was opened
func (s *Session) Created() time.Time {
	return s.created
}

// Controller advances sessions through the wizard, invoking the gateway
// exactly once per stage entry when the stage's output is missing.
type Controller struct {
	generator Generator
	logger    *errors.Logger
}

// NewController creates a wizard controller on top of a generator
func NewController(generator Generator, logger *errors.Logger) *Controller {
	return &Controller{
		generator: generator,
		logger:    logger,
	}
}

// CanEnter reports whether a session satisfies the entry requirements of a
// stage. Requirements are cumulative: each stage needs the output of the
// one before it.
func (c *Controller) CanEnter(s *Session, stage Stage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return canEnterLocked(&s.app, stage)
}

func canEnterLocked(app *types.JobApplication, stage Stage) bool {
	switch stage {
	case StageJobDetails:
		return true
	case StageAnalysis:
		return app.ResumeText != ""
	case StageOptimization:
		return app.Analysis != nil
	case StageCoverLetter:
		return app.OptimizedResume != ""
	case StageDownload:
		return app.CoverLetter != ""
	default:
		return false
	}
}

// Enter moves the session to a stage, running the stage's gateway operation
// exactly once if its output is absent. A second Enter on a stage whose
// output is already present makes no call.
func (c *Controller) Enter(ctx context.Context, s *Session, stage Stage) error {
	s.mu.Lock()
	if !canEnterLocked(&s.app, stage) {
		s.mu.Unlock()
		return errors.NewValidationError(errors.ErrCodeStageNotReady,
			fmt.Sprintf("Stage %s requires earlier stage output", stage), nil)
	}
	if s.busy {
		s.mu.Unlock()
		return errors.NewValidationError(errors.ErrCodeSessionBusy,
			"Session is already processing a stage", nil)
	}

	needsRun := c.outputMissingLocked(&s.app, stage)
	if !needsRun {
		s.stage = stage
		s.mu.Unlock()
		return nil
	}

	s.busy = true
	app := s.app
	s.mu.Unlock()

	update, err := c.runStage(ctx, &app, stage)

	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.Merge(update)
	s.mu.Lock()
	s.stage = stage
	s.mu.Unlock()
	return nil
}

// Regenerate re-runs a stage's operation unconditionally, overwriting its
// output. Only the optimization and cover letter stages support it.
func (c *Controller) Regenerate(ctx context.Context, s *Session, stage Stage) error {
	if stage != StageOptimization && stage != StageCoverLetter {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Stage %s does not support regeneration", stage), nil)
	}

	s.mu.Lock()
	if !canEnterLocked(&s.app, stage) {
		s.mu.Unlock()
		return errors.NewValidationError(errors.ErrCodeStageNotReady,
			fmt.Sprintf("Stage %s requires earlier stage output", stage), nil)
	}
	if s.busy {
		s.mu.Unlock()
		return errors.NewValidationError(errors.ErrCodeSessionBusy,
			"Session is already processing a stage", nil)
	}
	s.busy = true
	app := s.app
	s.mu.Unlock()

	update, err := c.runStage(ctx, &app, stage)

	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.Merge(update)
	return nil
}

// outputMissingLocked reports whether the stage's output still needs to be
// produced. Job details and download have no generated output.
func (c *Controller) outputMissingLocked(app *types.JobApplication, stage Stage) bool {
	switch stage {
	case StageAnalysis:
		return app.Analysis == nil
	case StageOptimization:
		return app.OptimizedResume == ""
	case StageCoverLetter:
		return app.CoverLetter == ""
	default:
		return false
	}
}

func (c *Controller) runStage(ctx context.Context, app *types.JobApplication, stage Stage) (Update, error) {
	switch stage {
	case StageAnalysis:
		analysis, err := c.generator.AnalyzeResume(ctx, app.ResumeText, app.JobDescription)
		if err != nil {
			return Update{}, err
		}
		return Update{Analysis: &analysis}, nil

	case StageOptimization:
		result, err := c.generator.OptimizeResume(ctx, types.OptimizeResumeInput{
			ResumeText:     app.ResumeText,
			JobDescription: app.JobDescription,
			Analysis:       *app.Analysis,
			ResumeData:     app.ResumeData,
		})
		if err != nil {
			return Update{}, err
		}
		if result.Degraded {
			c.logger.Warn("Optimization degraded to original resume text")
		}
		return Update{OptimizedResume: &result.Text}, nil

	case StageCoverLetter:
		letter, err := c.generator.GenerateCoverLetter(ctx, types.CoverLetterInput{
			OptimizedResume: app.OptimizedResume,
			JobDescription:  app.JobDescription,
			CompanyName:     app.CompanyName,
			Date:            time.Now().Format("January 2, 2006"),
			ResumeData:      app.ResumeData,
		})
		if err != nil {
			return Update{}, err
		}
		return Update{CoverLetter: &letter}, nil

	default:
		return Update{}, nil
	}
}
