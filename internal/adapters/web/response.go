package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"rally/internal/domain"
	"rally/internal/domain/entities"
	"rally/pkg/datetime"
)

// statusForCode maps a domain error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case "event_not_found", "location_not_found", "user_not_found":
		return fiber.StatusNotFound
	case "not_initiator", "not_participant":
		return fiber.StatusForbidden
	case "not_logged_in", "invalid_credentials":
		return fiber.StatusUnauthorized
	case "already_decided", "version_conflict", "user_exists":
		return fiber.StatusConflict
	case "deadline_passed", "invalid_state", "veto_held", "datetime_in_past":
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// fail recovers any error at the action boundary and surfaces it as a
// localized message; nothing is fatal to the process.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	locale := h.locale(c)
	code := domain.Code(err)
	if code == "" {
		h.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": h.translator.T(locale, "error.internal", nil),
		})
	}
	return c.Status(statusForCode(code)).JSON(fiber.Map{
		"code":  code,
		"error": h.translator.T(locale, "error."+code, nil),
	})
}

type locationResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Votes    int      `json:"votes"`
	VetoedBy []string `json:"vetoed_by,omitempty"`
}

type eventResponse struct {
	ID                       string                 `json:"id"`
	Name                     string                 `json:"name"`
	Date                     string                 `json:"date"`
	Status                   string                 `json:"status"`
	DisplayStatus            string                 `json:"display_status"`
	DisplayStatusLabel       string                 `json:"display_status_label"`
	Description              string                 `json:"description"`
	BudgetRange              string                 `json:"budget_range"`
	InitiatorID              string                 `json:"initiator_id"`
	InitiatorName            string                 `json:"initiator_name"`
	IsInitiator              bool                   `json:"is_initiator"`
	Participants             []entities.Participant `json:"participants"`
	RecommendedLocations     []locationResponse     `json:"recommended_locations,omitempty"`
	FinalLocation            *locationResponse      `json:"final_location,omitempty"`
	ConfirmedParticipants    []entities.Participant `json:"confirmed_participants,omitempty"`
	AllVetoed                bool                   `json:"all_vetoed"`
	RSVPDeadline             string                 `json:"rsvp_deadline,omitempty"`
	ReconfirmationDeadline   string                 `json:"reconfirmation_deadline,omitempty"`
	UserRSVPStatus           string                 `json:"user_rsvp_status,omitempty"`
	UserReconfirmationStatus string                 `json:"user_reconfirmation_status,omitempty"`
	Version                  int64                  `json:"version"`
}

func toLocationResponse(l entities.Location) locationResponse {
	return locationResponse{
		ID:       l.ID,
		Name:     l.Name,
		Address:  l.Address,
		Votes:    l.Votes,
		VetoedBy: l.VetoedBy,
	}
}

// renderEvent projects an event for one viewer: the stored status, the
// derived display status (a past event always reads as ended) and the
// viewer's own RSVP/reconfirmation answers.
func (h *Handler) renderEvent(e *entities.Event, viewer *entities.User, locale string, now time.Time) eventResponse {
	display := domain.EffectiveStatus(e, now)
	out := eventResponse{
		ID:                     e.ID,
		Name:                   e.Name,
		Date:                   datetime.Format(e.Date),
		Status:                 e.Status,
		DisplayStatus:          display,
		DisplayStatusLabel:     h.translator.T(locale, "status."+display, nil),
		Description:            e.Description,
		BudgetRange:            e.BudgetRange,
		InitiatorID:            e.InitiatorID,
		InitiatorName:          e.InitiatorName,
		Participants:           e.Participants,
		ConfirmedParticipants:  e.ConfirmedParticipants,
		AllVetoed:              e.AllVetoed,
		RSVPDeadline:           datetime.Format(e.RSVPDeadline),
		ReconfirmationDeadline: datetime.Format(e.ReconfirmationDeadline),
		Version:                e.Version,
	}
	for _, loc := range e.RecommendedLocations {
		out.RecommendedLocations = append(out.RecommendedLocations, toLocationResponse(loc))
	}
	if e.FinalLocation != nil {
		final := toLocationResponse(*e.FinalLocation)
		out.FinalLocation = &final
	}
	if viewer != nil {
		out.IsInitiator = e.InitiatorID == viewer.ID
		out.UserRSVPStatus = e.RSVPStatuses[viewer.ID]
		out.UserReconfirmationStatus = e.ReconfirmationStatuses[viewer.ID]
	}
	return out
}
