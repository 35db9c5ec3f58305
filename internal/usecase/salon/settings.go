package salon

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Profile is what the dashboard shows for the signed-in user.
type Profile struct {
	UserID       string                `json:"user_id"`
	Role         auth.Role             `json:"role"`
	Salon        *models.Salon         `json:"salon"`
	OpeningHours []models.OpeningHours `json:"opening_hours"`
}

type GetProfile struct {
	repo domain.Repository
}

func NewGetProfile(repo domain.Repository) *GetProfile {
	return &GetProfile{repo: repo}
}

func (uc *GetProfile) Execute(ctx context.Context, p *auth.Principal) (*Profile, error) {
	if p == nil {
		return nil, httperr.Unauthorized("authentication_required")
	}

	s, err := uc.repo.GetSalon(ctx, p.SalonID)
	if err != nil {
		return nil, httperr.NotFound("salon_not_found")
	}

	hours, err := uc.repo.ListOpeningHours(ctx, p.SalonID)
	if err != nil {
		return nil, err
	}
	if hours == nil {
		hours = []models.OpeningHours{}
	}

	return &Profile{
		UserID:       p.UserID,
		Role:         p.Role,
		Salon:        s,
		OpeningHours: hours,
	}, nil
}

// ReplaceOpeningHours overwrites the weekly schedule. Hours only shape the
// free-slot listing; existing appointments are left alone.
type ReplaceOpeningHours struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReplaceOpeningHours(repo domain.Repository, auditDispatcher *audit.Dispatcher) *ReplaceOpeningHours {
	return &ReplaceOpeningHours{repo: repo, audit: auditDispatcher}
}

func (uc *ReplaceOpeningHours) Execute(
	ctx context.Context,
	p *auth.Principal,
	salonID uuid.UUID,
	days []domain.Day,
) ([]models.OpeningHours, error) {

	if !p.BelongsTo(salonID) || !p.CanManageSalon() {
		return nil, httperr.Unauthorized("opening_hours_not_allowed")
	}
	if err := domain.ValidateSchedule(days); err != nil {
		return nil, err
	}

	rows := domain.ToModels(salonID, days)
	if err := uc.repo.ReplaceOpeningHours(ctx, salonID, rows); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		Actor:    p.UserID,
		Action:   audit.ActionOpeningHours,
		Entity:   audit.EntitySalon,
		EntityID: &salonID,
		Metadata: map[string]any{"days": len(rows)},
	})

	return rows, nil
}
