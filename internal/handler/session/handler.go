package session

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatservice "github.com/meltyapp/backend/internal/service/chat"
	"github.com/meltyapp/backend/pkg/utils"
)

// Handler 提供会话与历史消息的只读浏览接口。
type Handler struct {
	chatStore chatservice.Store
}

// New 创建会话浏览处理器
func New(chatStore chatservice.Store) *Handler {
	return &Handler{chatStore: chatStore}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions", h.handleListSessions)
	r.Get("/sessions/{sessionID}/messages", h.handleListMessages)
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "X-User-Id header is required")
		return
	}

	sessions, err := h.chatStore.ListSessions(r.Context(), userID)
	if err != nil {
		log.Printf("[session] failed to list sessions: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	utils.RespondJSON(w, http.StatusOK, sessions)
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatStore.LoadTranscript(r.Context(), sessionID)
	if errors.Is(err, chatservice.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		log.Printf("[session] failed to load transcript: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load messages")
		return
	}
	utils.RespondJSON(w, http.StatusOK, messages)
}
