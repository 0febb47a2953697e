package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meltyapp/backend/internal/model/persona"
	"github.com/meltyapp/backend/pkg/utils"
)

// Handler persona目录的HTTP处理器
type Handler struct {
	personas persona.Store
}

// New 创建persona处理器
func New(personas persona.Store) *Handler {
	return &Handler{personas: personas}
}

// RegisterRoutes 注册persona相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
}

func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.personas.List())
}
