package journal

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	journalmodel "github.com/meltyapp/backend/internal/model/journal"
	journalservice "github.com/meltyapp/backend/internal/service/journal"
	"github.com/meltyapp/backend/pkg/utils"
)

// Handler 日记的HTTP处理器
type Handler struct {
	store journalservice.Store
}

// New 创建日记处理器
func New(store journalservice.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册日记相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/journal", h.handleCreate)
	r.Get("/journal", h.handleList)
	r.Delete("/journal/{entryID}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "X-User-Id header is required")
		return
	}

	var payload struct {
		Content  string `json:"content"`
		Mood     string `json:"mood"`
		ImageURL string `json:"imageUrl"`
		Summary  string `json:"summary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Content == "" {
		utils.RespondError(w, http.StatusBadRequest, "content is required")
		return
	}

	entry, err := h.store.Create(r.Context(), journalmodel.Entry{
		UserID:   userID,
		Content:  payload.Content,
		Mood:     payload.Mood,
		ImageURL: payload.ImageURL,
		Summary:  payload.Summary,
	})
	if err != nil {
		log.Printf("[journal] failed to create entry: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to create entry")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "X-User-Id header is required")
		return
	}

	entries, err := h.store.List(r.Context(), userID)
	if err != nil {
		log.Printf("[journal] failed to list entries: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to list entries")
		return
	}
	utils.RespondJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		utils.RespondError(w, http.StatusBadRequest, "X-User-Id header is required")
		return
	}

	err := h.store.Delete(r.Context(), userID, chi.URLParam(r, "entryID"))
	if errors.Is(err, journalservice.ErrEntryNotFound) {
		utils.RespondError(w, http.StatusNotFound, "entry not found")
		return
	}
	if err != nil {
		log.Printf("[journal] failed to delete entry: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
