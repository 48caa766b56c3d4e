package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"rally/internal/domain/entities"
	"rally/internal/ports/input"
	"rally/internal/ports/output"
)

const userKey = "current_user"

// Handler serves the HTTP API using use cases.
type Handler struct {
	eventUseCase       input.EventUseCase
	participantUseCase input.ParticipantUseCase
	votingUseCase      input.VotingUseCase
	authUseCase        input.AuthUseCase
	sessions           output.SessionManager
	translator         output.T
	defaultLocale      string
	logger             *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(
	eventUseCase input.EventUseCase,
	participantUseCase input.ParticipantUseCase,
	votingUseCase input.VotingUseCase,
	authUseCase input.AuthUseCase,
	sessions output.SessionManager,
	translator output.T,
	defaultLocale string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		eventUseCase:       eventUseCase,
		participantUseCase: participantUseCase,
		votingUseCase:      votingUseCase,
		authUseCase:        authUseCase,
		sessions:           sessions,
		translator:         translator,
		defaultLocale:      defaultLocale,
		logger:             logger,
	}
}

// requireUser resolves the bearer token (or session cookie) to an
// account and stores it in the request locals.
func (h *Handler) requireUser(c *fiber.Ctx) error {
	token := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer"))
	if token == "" {
		token = c.Cookies("rally_session")
	}
	user, err := h.sessions.Verify(token)
	if err != nil {
		return h.fail(c, err)
	}
	c.Locals(userKey, user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) *entities.User {
	user, _ := c.Locals(userKey).(*entities.User)
	return user
}

// locale picks ?lang= first, then the first Accept-Language tag, then
// the configured default.
func (h *Handler) locale(c *fiber.Ctx) string {
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return lang
	}
	accept := c.Get(fiber.HeaderAcceptLanguage)
	if accept != "" {
		first := strings.Split(accept, ",")[0]
		if tag := strings.TrimSpace(strings.Split(first, ";")[0]); tag != "" {
			return tag
		}
	}
	return h.defaultLocale
}
