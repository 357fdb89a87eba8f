package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/plantops/tripchat-engine/pkg/apperrors"
	"github.com/plantops/tripchat-engine/pkg/services"
)

const (
	sessionCookieName = "tripchat_session"
	sessionIDKey      = "sid"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Query     string `json:"query"`
	PlantCode string `json:"plantCode"`
}

// ChatResponse is the body returned by POST /chat.
type ChatResponse struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions,omitempty"`
	Query       string   `json:"query,omitempty"`
}

// FeedbackRequest is the body of POST /feedback. Feedback is 1 for good,
// 0 for bad.
type FeedbackRequest struct {
	Query    string `json:"query"`
	Response string `json:"response"`
	Feedback *int   `json:"feedback"`
}

// ChatHandler exposes the conversation endpoints.
type ChatHandler struct {
	svc     services.ChatService
	cookies *sessions.CookieStore
	logger  *zap.Logger
}

func NewChatHandler(svc services.ChatService, sessionSecret string, logger *zap.Logger) *ChatHandler {
	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return &ChatHandler{svc: svc, cookies: store, logger: logger.Named("handlers")}
}

// RegisterRoutes registers the chat handler's routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/chat", h.Chat)
	mux.HandleFunc("/feedback", h.Feedback)
	mux.HandleFunc("/clear_history", h.ClearHistory)
}

// sessionID returns the caller's session identifier, minting one on
// first contact.
func (h *ChatHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	sess, _ := h.cookies.Get(r, sessionCookieName)
	if id, ok := sess.Values[sessionIDKey].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	sess.Values[sessionIDKey] = id
	if err := sess.Save(r, w); err != nil {
		h.logger.Warn("failed to save session cookie", zap.Error(err))
	}
	return id
}

// Chat handles POST /chat requests.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		_ = ErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Query == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Please enter a valid question.")
		return
	}

	sid := h.sessionID(w, r)
	result, err := h.svc.HandleTurn(r.Context(), sid, req.Query, req.PlantCode)
	if err != nil {
		h.writeTurnError(w, req.Query, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, ChatResponse{
		Response:    result.Response,
		Suggestions: result.Suggestions,
		Query:       req.Query,
	})
}

// writeTurnError is the single place a pipeline failure becomes
// user-facing text. Soft failures (gibberish, rejected SQL) stay 200 so
// the conversation keeps flowing; hard failures surface as errors.
func (h *ChatHandler) writeTurnError(w http.ResponseWriter, query string, err error) {
	message := apperrors.UserMessage(err)

	var status int
	switch {
	case errors.Is(err, apperrors.ErrGibberishInput),
		errors.Is(err, apperrors.ErrInvalidGeneratedSQL):
		status = http.StatusOK
	case errors.Is(err, apperrors.ErrMissingTenantScope):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrGenerationFailure):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	_ = WriteJSON(w, status, ChatResponse{Response: message, Query: query})
}

// Feedback handles POST /feedback requests.
func (h *ChatHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		_ = ErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Query == "" || req.Response == "" || req.Feedback == nil || (*req.Feedback != 0 && *req.Feedback != 1) {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Incomplete feedback data.")
		return
	}

	verdict := "bad"
	if *req.Feedback == 1 {
		verdict = "good"
	}

	sid := h.sessionID(w, r)
	if err := h.svc.RecordFeedback(r.Context(), sid, req.Query, req.Response, verdict); err != nil {
		_ = ErrorResponse(w, http.StatusInternalServerError, "feedback_failed", "could not record feedback")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]string{"message": "Feedback received. Thank You!"})
}

// ClearHistory handles POST /clear_history requests.
func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		_ = ErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	sid := h.sessionID(w, r)
	if err := h.svc.ClearHistory(r.Context(), sid); err != nil {
		_ = ErrorResponse(w, http.StatusInternalServerError, "clear_failed", "could not clear history")
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]string{"message": "Conversation history cleared."})
}
