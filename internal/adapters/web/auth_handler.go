package web

import (
	"github.com/gofiber/fiber/v2"

	"rally/internal/domain"
	"rally/internal/domain/entities"
)

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req authRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, domain.ErrInvalidCredentials)
	}
	user, token, err := h.authUseCase.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse(user, token))
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req authRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, domain.ErrInvalidCredentials)
	}
	user, token, err := h.authUseCase.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(authResponse(user, token))
}

func authResponse(user *entities.User, token string) fiber.Map {
	return fiber.Map{
		"token": token,
		"user": userResponse{
			ID:       user.ID,
			Username: user.Username,
			Avatar:   user.Avatar,
		},
	}
}
