package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/onboarding"
	"github.com/engin-hq/engin/internal/profiles"
)

type onboardingState struct {
	Step       int            `json:"step"`
	TotalSteps int            `json:"total_steps"`
	Progress   float64        `json:"progress"`
	Data       map[string]any `json:"data"`
	Completed  bool           `json:"completed"`
}

func flowState(f *onboarding.Flow, completed bool) onboardingState {
	return onboardingState{
		Step:       f.Step(),
		TotalSteps: onboarding.TotalSteps,
		Progress:   f.Progress(),
		Data:       f.Data(),
		Completed:  completed,
	}
}

// handleOnboardingState reports the caller's flow position. Creates the
// flow at step 0 on first contact.
func (s *Server) handleOnboardingState(w http.ResponseWriter, r *http.Request) {
	f := s.onboarding.Get(s.sessionToken(r))
	s.respondJSON(w, http.StatusOK, flowState(f, false))
}

// handleOnboardingAdvance merges the step's fields into the flow. On
// the terminal step the merged data is submitted as the caller's
// profile; failure leaves the flow in place so the client can retry.
func (s *Server) handleOnboardingAdvance(w http.ResponseWriter, r *http.Request) {
	var partial map[string]any
	if !s.decodeJSON(w, r, &partial) {
		return
	}

	token := s.sessionToken(r)
	f := s.onboarding.Get(token)

	merged, ready := f.Advance(partial)
	if !ready {
		s.respondJSON(w, http.StatusOK, flowState(f, false))
		return
	}

	req, err := decodeSubmission(merged)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	profile, err := s.profiles.CompleteOnboarding(r.Context(), currentIdentity(r), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.onboarding.Remove(token)
	s.logger.Info("onboarding completed", zap.String("profile_id", profile.ID.String()))
	s.respondJSON(w, http.StatusCreated, map[string]any{
		"completed": true,
		"profile":   profile,
	})
}

func (s *Server) handleOnboardingRetreat(w http.ResponseWriter, r *http.Request) {
	f := s.onboarding.Get(s.sessionToken(r))
	f.Retreat()
	s.respondJSON(w, http.StatusOK, flowState(f, false))
}

func (s *Server) handleOnboardingJump(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Step int `json:"step"`
	}
	if !s.decodeJSON(w, r, &body) {
		return
	}

	f := s.onboarding.Get(s.sessionToken(r))
	if err := f.JumpToStep(body.Step); err != nil {
		s.respondError(w, r, common.InvalidArgumentError(err.Error()))
		return
	}
	s.respondJSON(w, http.StatusOK, flowState(f, false))
}

// decodeSubmission turns the accumulated step fields into the typed
// submission. A json round-trip keeps the merge semantics exactly what
// the flow accumulated.
func decodeSubmission(merged map[string]any) (profiles.CreateProfileRequest, error) {
	var req profiles.CreateProfileRequest
	raw, err := json.Marshal(merged)
	if err != nil {
		return req, common.WrapError(err, "encode onboarding data")
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, common.InvalidArgumentError("onboarding data does not match the profile contract")
	}
	return req, nil
}
