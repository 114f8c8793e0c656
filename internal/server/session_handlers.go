package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"careerforge/internal/ai"
	cfErrors "careerforge/internal/errors"
	"careerforge/internal/types"
	"careerforge/internal/wizard"

	"github.com/google/uuid"
)

// gatewayGenerator adapts the AI gateway to the wizard's generator interface,
// dropping token usage which the wizard does not track.
type gatewayGenerator struct {
	gateway *ai.Gateway
}

func (g gatewayGenerator) AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (types.ResumeAnalysis, error) {
	analysis, _, err := g.gateway.AnalyzeResume(ctx, resumeText, jobDescription)
	return analysis, err
}

func (g gatewayGenerator) OptimizeResume(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizedResume, error) {
	result, _, err := g.gateway.OptimizeResume(ctx, input)
	return result, err
}

func (g gatewayGenerator) GenerateCoverLetter(ctx context.Context, input types.CoverLetterInput) (string, error) {
	letter, _, err := g.gateway.GenerateCoverLetter(ctx, input)
	return letter, err
}

// SessionResponse describes a hosted wizard session
type SessionResponse struct {
	SessionID   string               `json:"sessionId"`
	Stage       string               `json:"stage"`
	Application types.JobApplication `json:"application"`
}

// SessionDetailsRequest carries partial session state. Absent fields leave
// the stored state untouched.
type SessionDetailsRequest struct {
	JobDescription *string           `json:"jobDescription,omitempty"`
	CompanyName    *string           `json:"companyName,omitempty"`
	ResumeFileName *string           `json:"resumeFileName,omitempty"`
	ResumeText     *string           `json:"resumeText,omitempty"`
	ResumeData     *types.ResumeData `json:"resumeData,omitempty"`
}

// SessionStageRequest names the wizard stage to enter or regenerate
type SessionStageRequest struct {
	Stage string `json:"stage"`
}

func sessionResponse(s *wizard.Session) SessionResponse {
	return SessionResponse{
		SessionID:   s.ID.String(),
		Stage:       s.Stage().String(),
		Application: s.Application(),
	}
}

// sessionErrorStatus refines the generic error mapping for session state
// errors: a missing session is 404, a busy session or unmet stage
// requirement is a conflict with current state.
func sessionErrorStatus(err error) int {
	if appErr, ok := err.(*cfErrors.AppError); ok {
		switch appErr.Code {
		case cfErrors.ErrCodeSessionNotFound:
			return http.StatusNotFound
		case cfErrors.ErrCodeSessionBusy, cfErrors.ErrCodeStageNotReady:
			return http.StatusConflict
		}
	}
	return errorStatus(err)
}

func writeSessionJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode session response: %v", err)
	}
}

// lookupSession resolves the {id} path value to a stored session, writing
// the error response itself when resolution fails
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*wizard.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeErrorResponse(w, "Invalid session ID", "session ID must be a UUID", http.StatusBadRequest)
		return nil, false
	}

	session, err := s.Sessions.Get(id)
	if err != nil {
		writeErrorResponse(w, "Session not found", err.Error(), http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// openSessionHandler creates a hosted wizard session positioned at the job
// details stage
func (s *Server) openSessionHandler(w http.ResponseWriter, r *http.Request) {
	session := s.Sessions.Open()
	s.Logger.Info("Wizard session opened",
		"session_id", session.ID.String(),
		"active_sessions", s.Sessions.Len())

	writeSessionJSON(w, http.StatusCreated, sessionResponse(session))
}

// getSessionHandler returns the current state of a hosted session
func (s *Server) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	writeSessionJSON(w, http.StatusOK, sessionResponse(session))
}

// updateSessionHandler merges job details into a hosted session
func (s *Server) updateSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req SessionDetailsRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	session.Merge(wizard.Update{
		JobDescription: req.JobDescription,
		CompanyName:    req.CompanyName,
		ResumeFileName: req.ResumeFileName,
		ResumeText:     req.ResumeText,
		ResumeData:     req.ResumeData,
	})

	writeSessionJSON(w, http.StatusOK, sessionResponse(session))
}

// advanceSessionHandler enters the named stage, running its generation step
// when the output is still missing
func (s *Server) advanceSessionHandler(w http.ResponseWriter, r *http.Request) {
	s.runSessionStage(w, r, func(ctx context.Context, session *wizard.Session, stage wizard.Stage) error {
		return s.Wizard.Enter(ctx, session, stage)
	})
}

// regenerateSessionHandler re-runs the named stage unconditionally. Only the
// optimization and cover letter stages support it.
func (s *Server) regenerateSessionHandler(w http.ResponseWriter, r *http.Request) {
	s.runSessionStage(w, r, func(ctx context.Context, session *wizard.Session, stage wizard.Stage) error {
		return s.Wizard.Regenerate(ctx, session, stage)
	})
}

func (s *Server) runSessionStage(w http.ResponseWriter, r *http.Request, action func(context.Context, *wizard.Session, wizard.Stage) error) {
	if s.Wizard == nil {
		writeErrorResponse(w, "Server not ready", "AI gateway is not initialized", http.StatusServiceUnavailable)
		return
	}

	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req SessionStageRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	stage, err := wizard.ParseStage(req.Stage)
	if err != nil {
		writeErrorResponse(w, "Invalid stage", err.Error(), http.StatusBadRequest)
		return
	}

	if err := action(r.Context(), session, stage); err != nil {
		s.Logger.LogError(err, "Wizard stage failed",
			"session_id", session.ID.String(),
			"stage", stage.String())
		writeErrorResponse(w, "Stage failed", err.Error(), sessionErrorStatus(err))
		return
	}

	writeSessionJSON(w, http.StatusOK, sessionResponse(session))
}

// closeSessionHandler removes a hosted session
func (s *Server) closeSessionHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	s.Sessions.Close(session.ID)
	s.Logger.Info("Wizard session closed",
		"session_id", session.ID.String(),
		"active_sessions", s.Sessions.Len())

	w.WriteHeader(http.StatusNoContent)
}
