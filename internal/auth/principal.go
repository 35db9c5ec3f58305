package auth

import (
	"context"

	"github.com/google/uuid"
)

type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleStylist Role = "stylist"
)

// Principal is the authenticated caller. Guest requests carry none.
type Principal struct {
	UserID  string
	SalonID uuid.UUID
	Role    Role
}

// CanManageSalon reports whether the principal may change salon settings.
func (p *Principal) CanManageSalon() bool {
	return p != nil && (p.Role == RoleOwner || p.Role == RoleManager)
}

func (p *Principal) CanManageStats() bool {
	return p.CanManageSalon()
}

// BelongsTo reports whether the principal acts for salonID.
func (p *Principal) BelongsTo(salonID uuid.UUID) bool {
	return p != nil && p.SalonID == salonID
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(*Principal)
	return p, ok && p != nil
}
