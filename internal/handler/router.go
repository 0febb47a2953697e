package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/meltyapp/backend/internal/handler/chat"
	journalHandler "github.com/meltyapp/backend/internal/handler/journal"
	personaHandler "github.com/meltyapp/backend/internal/handler/persona"
	sessionHandler "github.com/meltyapp/backend/internal/handler/session"
	middlewarePkg "github.com/meltyapp/backend/internal/middleware"
	personaModel "github.com/meltyapp/backend/internal/model/persona"
	chatService "github.com/meltyapp/backend/internal/service/chat"
	journalService "github.com/meltyapp/backend/internal/service/journal"
	"github.com/meltyapp/backend/internal/service/transcribe"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(
	personas personaModel.Store,
	chatStore chatService.Store,
	journalStore journalService.Store,
	generator chatHandler.Generator,
	transcriber transcribe.Transcriber,
	streamTimeout time.Duration,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		personaHandler.New(personas).RegisterRoutes(api)
		chatHandler.New(generator, chatStore, personas, transcriber, streamTimeout).RegisterRoutes(api)
		sessionHandler.New(chatStore).RegisterRoutes(api)
		journalHandler.New(journalStore).RegisterRoutes(api)
	})

	return r
}
