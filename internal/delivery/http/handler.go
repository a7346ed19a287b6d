package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopmate/backend/internal/domain"
	"github.com/shopmate/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	assistant *usecase.AssistantService
	sessions  *SessionStore
}

// NewHandler creates a new HTTP handler
func NewHandler(assistant *usecase.AssistantService) *Handler {
	return &Handler{
		assistant: assistant,
		sessions:  NewSessionStore(),
	}
}

// turnRequest is the wire shape of one conversational turn.
type turnRequest struct {
	SessionID   string `json:"session_id" binding:"required"`
	Utterance   string `json:"utterance" binding:"required"`
	AnswersSlot string `json:"answers_slot,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "shopmate-backend",
		"version":  "1.0.0",
		"sessions": h.sessions.Len(),
	})
}

// Turn handles one conversational turn: it resolves the utterance against the
// session's accumulated preferences and returns either a ranked shortlist or a
// clarification prompt.
func (h *Handler) Turn(c *gin.Context) {
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id and utterance are required"})
		return
	}

	state := h.sessions.Get(req.SessionID)

	result, err := h.assistant.ResolveTurn(c.Request.Context(), &domain.TurnRequest{
		Utterance:   req.Utterance,
		AnswersSlot: req.AnswersSlot,
	}, state)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.sessions.Put(req.SessionID, result.State)
	c.JSON(http.StatusOK, result)
}

// EndSession discards a session's accumulated preferences.
func (h *Handler) EndSession(c *gin.Context) {
	sessionID := c.Param("id")
	if !h.sessions.End(sessionID) {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrSessionNotFound.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
