// Package handlers contains HTTP handlers for the support engine API.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lookog/scoot-assist-ai/internal/engine"
	"github.com/lookog/scoot-assist-ai/internal/observability"
)

// ChatQueryRequest is the request body for POST /api/v1/chat/query.
type ChatQueryRequest struct {
	Query     string   `json:"query"`
	SessionID string   `json:"sessionId"`
	UserID    string   `json:"userId"`
	HasFiles  bool     `json:"hasFiles,omitempty"`
	FileTypes []string `json:"fileTypes,omitempty"`
}

// ChatQueryResponse is the response body for POST /api/v1/chat/query.
type ChatQueryResponse struct {
	Response           string   `json:"response"`
	Confidence         float64  `json:"confidence"`
	ResponseSource     string   `json:"responseSource"`
	MatchedIntent      string   `json:"matchedIntent"`
	SuggestedQuestions []string `json:"suggestedQuestions"`
	RelatedItems       []string `json:"relatedItems"`
	MessageID          string   `json:"messageId"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ChatHandler serves chat query requests.
type ChatHandler struct {
	logger *observability.Logger
	engine *engine.Engine
}

// NewChatHandler creates a chat handler.
func NewChatHandler(logger *observability.Logger, eng *engine.Engine) *ChatHandler {
	return &ChatHandler{logger: logger, engine: eng}
}

// Query handles POST /api/v1/chat/query.
func (h *ChatHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req ChatQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "query is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	resp, err := h.engine.Answer(r.Context(), engine.Query{
		Text:      req.Query,
		SessionID: req.SessionID,
		UserID:    req.UserID,
		HasFiles:  req.HasFiles,
		FileTypes: req.FileTypes,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("Query processing failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	related := make([]string, 0, len(resp.RelatedEntries))
	for _, id := range resp.RelatedEntries {
		related = append(related, id.String())
	}

	writeJSON(w, http.StatusOK, ChatQueryResponse{
		Response:           resp.Response,
		Confidence:         resp.Confidence,
		ResponseSource:     string(resp.ResponseSource),
		MatchedIntent:      resp.MatchedIntent,
		SuggestedQuestions: resp.SuggestedQuestions,
		RelatedItems:       related,
		MessageID:          resp.MessageID,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
