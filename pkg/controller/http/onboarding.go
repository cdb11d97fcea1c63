package http

import (
	"encoding/json"
	"net/http"

	"github.com/hatchway/onboard/pkg/domain/model"
	"github.com/hatchway/onboard/pkg/domain/types"
	"github.com/hatchway/onboard/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// SessionCookieName is the cookie carrying the form session ID
const SessionCookieName = "onboarding_session"

// OnboardingHandler serves the onboarding form JSON API
type OnboardingHandler struct {
	uc usecase.OnboardingUseCase
}

// NewOnboardingHandler creates a new onboarding API handler
func NewOnboardingHandler(uc usecase.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{uc: uc}
}

type sessionResponse struct {
	SessionID string          `json:"session_id"`
	State     model.FormState `json:"state"`
}

type submitResponse struct {
	Started bool            `json:"started"`
	State   model.FormState `json:"state"`
}

type updateFieldRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HandleCreateSession creates a new form session and sets the session cookie
func (h *OnboardingHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, state, err := h.uc.CreateSession(r.Context())
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	ctxlog.From(r.Context()).Info("Created onboarding session", "sessionID", id)
	writeJSON(w, r, http.StatusCreated, sessionResponse{
		SessionID: id.String(),
		State:     state,
	})
}

// HandleEndSession removes the form session and clears the cookie
func (h *OnboardingHandler) HandleEndSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, r, err, http.StatusNotFound)
		return
	}

	if err := h.uc.EndSession(r.Context(), id); err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

// HandleState returns the current form state
func (h *OnboardingHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, r, err, http.StatusNotFound)
		return
	}

	state, err := h.uc.State(r.Context(), id)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, state)
}

// HandleUpdateField overwrites one form field. Unknown field names are
// rejected here; the controller itself would silently ignore them.
func (h *OnboardingHandler) HandleUpdateField(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, r, err, http.StatusNotFound)
		return
	}

	var req updateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	name := types.FieldName(req.Name)
	if !name.IsValid() {
		writeError(w, r, goerr.New("unknown field name", goerr.V("name", req.Name)), http.StatusBadRequest)
		return
	}

	state, err := h.uc.UpdateField(r.Context(), id, name, req.Value)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, state)
}

// HandleSubmit starts one submission attempt. By default the handler
// waits for the outcome and returns the final state; with ?wait=false
// it returns right after the loading transition. A no-op submit (in
// flight or empty email) is a 200 with started=false, not an error.
func (h *OnboardingHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, r, err, http.StatusNotFound)
		return
	}

	var started bool
	var state model.FormState
	if r.URL.Query().Get("wait") == "false" {
		started, state, err = h.uc.Submit(r.Context(), id)
	} else {
		started, state, err = h.uc.SubmitAndWait(r.Context(), id)
	}
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, submitResponse{
		Started: started,
		State:   state,
	})
}

// sessionID extracts the form session ID from the request cookie
func sessionID(r *http.Request) (types.SessionID, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", goerr.Wrap(model.ErrSessionNotFound, "missing session cookie")
	}
	return types.SessionID(cookie.Value), nil
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}
