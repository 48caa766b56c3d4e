package web

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"rally/internal/domain"
	"rally/internal/domain/entities"
	"rally/internal/ports/input"
	"rally/pkg/datetime"
)

type locationPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type createEventRequest struct {
	Name                   string            `json:"name"`
	Date                   string            `json:"date"`
	Description            string            `json:"description"`
	BudgetRange            string            `json:"budget_range"`
	RSVPDeadline           string            `json:"rsvp_deadline"`
	ReconfirmationDeadline string            `json:"reconfirmation_deadline"`
	Locations              []locationPayload `json:"locations"`
}

func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	user := currentUser(c)
	var req createEventRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, domain.ErrInvalidState)
	}
	date, err := datetime.Parse(req.Date)
	if err != nil || date.IsZero() {
		return h.fail(c, domain.ErrInvalidState)
	}
	rsvpDeadline, err := datetime.Parse(req.RSVPDeadline)
	if err != nil {
		return h.fail(c, domain.ErrInvalidState)
	}
	reconfirmDeadline, err := datetime.Parse(req.ReconfirmationDeadline)
	if err != nil {
		return h.fail(c, domain.ErrInvalidState)
	}
	event, err := h.eventUseCase.CreateEvent(c.UserContext(), input.CreateEventInput{
		Name:                   req.Name,
		Date:                   date,
		Description:            req.Description,
		BudgetRange:            req.BudgetRange,
		RSVPDeadline:           rsvpDeadline,
		ReconfirmationDeadline: reconfirmDeadline,
		Locations:              toLocations(req.Locations),
		Initiator:              user.AsParticipant(),
	})
	if err != nil {
		return h.fail(c, err)
	}
	locale := h.locale(c)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": h.translator.T(locale, "event.created", nil),
		"event":   h.renderEvent(event, user, locale, time.Now()),
	})
}

func (h *Handler) GetEvent(c *fiber.Ctx) error {
	event, err := h.eventUseCase.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"event": h.renderEvent(event, currentUser(c), h.locale(c), time.Now()),
	})
}

func (h *Handler) ListEvents(c *fiber.Ctx) error {
	user := currentUser(c)
	tab := c.Query("tab", input.TabAll)
	events, err := h.eventUseCase.ListEvents(c.UserContext(), tab, user.ID)
	if err != nil {
		return h.fail(c, err)
	}
	locale := h.locale(c)
	now := time.Now()
	out := make([]eventResponse, 0, len(events))
	for i := range events {
		out = append(out, h.renderEvent(&events[i], user, locale, now))
	}
	return c.JSON(fiber.Map{"events": out})
}

type setLocationsRequest struct {
	Locations []locationPayload `json:"locations"`
}

func (h *Handler) SetLocations(c *fiber.Ctx) error {
	user := currentUser(c)
	var req setLocationsRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, domain.ErrInvalidState)
	}
	event, err := h.eventUseCase.SetLocations(c.UserContext(), c.Params("id"), user.ID, toLocations(req.Locations))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"event": h.renderEvent(event, user, h.locale(c), time.Now()),
	})
}

func (h *Handler) StartVoting(c *fiber.Ctx) error {
	user := currentUser(c)
	event, err := h.eventUseCase.StartVoting(c.UserContext(), c.Params("id"), user.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"event": h.renderEvent(event, user, h.locale(c), time.Now()),
	})
}

type finalLocationRequest struct {
	LocationID string `json:"location_id"`
}

func (h *Handler) ChooseFinalLocation(c *fiber.Ctx) error {
	user := currentUser(c)
	var req finalLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, domain.ErrInvalidState)
	}
	event, err := h.eventUseCase.ChooseFinalLocation(c.UserContext(), c.Params("id"), user.ID, req.LocationID)
	if err != nil {
		return h.fail(c, err)
	}
	locale := h.locale(c)
	return c.JSON(fiber.Map{
		"message": h.translator.T(locale, "manual.selected", map[string]any{"Location": event.FinalLocation.Name}),
		"event":   h.renderEvent(event, user, locale, time.Now()),
	})
}

func toLocations(payloads []locationPayload) []entities.Location {
	out := make([]entities.Location, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, entities.Location{ID: p.ID, Name: p.Name, Address: p.Address})
	}
	return out
}
