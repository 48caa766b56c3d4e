package web

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"rally/internal/config"
	"rally/internal/ports/input"
	"rally/internal/ports/output"
)

// Server is the HTTP adapter.
type Server struct {
	app     *fiber.App
	config  *config.Config
	handler *Handler
}

// New wires ports into the fiber app: use cases -> handler -> routes.
func New(
	cfg *config.Config,
	logger *zap.Logger,
	eventUC input.EventUseCase,
	participantUC input.ParticipantUseCase,
	votingUC input.VotingUseCase,
	authUC input.AuthUseCase,
	sessions output.SessionManager,
	translator output.T,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "rally",
		DisableStartupMessage: true,
	})

	handler := NewHandler(eventUC, participantUC, votingUC, authUC, sessions, translator, cfg.DefaultLocale, logger)

	s := &Server{
		app:     app,
		config:  cfg,
		handler: handler,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	h := s.handler
	api := s.app.Group("/api")

	api.Post("/auth/register", h.Register)
	api.Post("/auth/login", h.Login)

	events := api.Group("/events", h.requireUser)
	events.Get("/", h.ListEvents)
	events.Post("/", h.CreateEvent)
	events.Get("/:id", h.GetEvent)
	events.Put("/:id/locations", h.SetLocations)
	events.Post("/:id/voting/start", h.StartVoting)
	events.Post("/:id/rsvp", h.RSVP)
	events.Post("/:id/ballot", h.SubmitBallot)
	events.Delete("/:id/veto", h.WithdrawVeto)
	events.Post("/:id/reconfirmation", h.Reconfirm)
	events.Post("/:id/final-location", h.ChooseFinalLocation)
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	return s.app.Listen(s.config.HTTPAddr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
