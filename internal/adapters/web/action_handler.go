package web

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"rally/internal/domain"
)

type rsvpRequest struct {
	Status string `json:"status"`
}

func (h *Handler) RSVP(c *fiber.Ctx) error {
	user := currentUser(c)
	var req rsvpRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, domain.ErrInvalidState)
	}
	event, err := h.participantUseCase.RSVP(c.UserContext(), c.Params("id"), user.AsParticipant(), req.Status)
	if err != nil {
		return h.fail(c, err)
	}
	locale := h.locale(c)
	return c.JSON(fiber.Map{
		"message": h.translator.T(locale, "rsvp.recorded", map[string]any{
			"Status": h.translator.T(locale, "rsvp."+req.Status, nil),
		}),
		"event": h.renderEvent(event, user, locale, time.Now()),
	})
}

type reconfirmRequest struct {
	Status string `json:"status"`
}

func (h *Handler) Reconfirm(c *fiber.Ctx) error {
	user := currentUser(c)
	var req reconfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, domain.ErrInvalidState)
	}
	event, err := h.participantUseCase.Reconfirm(c.UserContext(), c.Params("id"), user.AsParticipant(), req.Status)
	if err != nil {
		return h.fail(c, err)
	}
	locale := h.locale(c)
	return c.JSON(fiber.Map{
		"message": h.translator.T(locale, "reconfirm.recorded", map[string]any{
			"Status": h.translator.T(locale, "reconfirm."+req.Status, nil),
		}),
		"event": h.renderEvent(event, user, locale, time.Now()),
	})
}

type ballotRequest struct {
	Votes []string `json:"votes"`
	Veto  string   `json:"veto"`
}

func (h *Handler) SubmitBallot(c *fiber.Ctx) error {
	user := currentUser(c)
	var req ballotRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, domain.ErrInvalidState)
	}
	event, err := h.votingUseCase.SubmitBallot(c.UserContext(), c.Params("id"), user.AsParticipant(), req.Votes, req.Veto)
	if err != nil {
		return h.fail(c, err)
	}
	locale := h.locale(c)
	messageKey, data := "vote.all_vetoed", map[string]any(nil)
	if event.FinalLocation != nil && !event.AllVetoed {
		messageKey = "vote.submitted"
		data = map[string]any{"Location": event.FinalLocation.Name}
	}
	return c.JSON(fiber.Map{
		"message": h.translator.T(locale, messageKey, data),
		"event":   h.renderEvent(event, user, locale, time.Now()),
	})
}

func (h *Handler) WithdrawVeto(c *fiber.Ctx) error {
	user := currentUser(c)
	event, err := h.votingUseCase.WithdrawVeto(c.UserContext(), c.Params("id"), user.ID)
	if err != nil {
		return h.fail(c, err)
	}
	locale := h.locale(c)
	return c.JSON(fiber.Map{
		"message": h.translator.T(locale, "vote.withdrawn", nil),
		"event":   h.renderEvent(event, user, locale, time.Now()),
	})
}
