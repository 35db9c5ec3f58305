package salon

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

func TestReplaceOpeningHours_ThenProfile(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Seed(t, db)
	repo := repository.NewSalonGormRepository(db)
	ctx := context.Background()

	replace := NewReplaceOpeningHours(repo, nil)

	// GIVEN a schedule that is later replaced by a shorter one
	_, err := replace.Execute(ctx, fx.Principal, fx.Salon.ID, []domain.Day{
		{Weekday: 1, Open: true, StartTime: "09:00", EndTime: "17:00"},
		{Weekday: 2, Open: true, StartTime: "09:00", EndTime: "17:00"},
	})
	require.NoError(t, err)

	_, err = replace.Execute(ctx, fx.Principal, fx.Salon.ID, []domain.Day{
		{Weekday: 3, Open: true, StartTime: "10:00", EndTime: "18:00", BreakStart: "13:00", BreakEnd: "13:30"},
	})
	require.NoError(t, err)

	// WHEN the profile is read
	profile, err := NewGetProfile(repo).Execute(ctx, fx.Principal)

	// THEN only the latest schedule is there
	require.NoError(t, err)
	assert.Equal(t, fx.Salon.ID, profile.Salon.ID)
	assert.Equal(t, auth.RoleOwner, profile.Role)
	require.Len(t, profile.OpeningHours, 1)
	assert.Equal(t, 3, profile.OpeningHours[0].Weekday)
	assert.Equal(t, "13:00", profile.OpeningHours[0].BreakStart)
}

func TestReplaceOpeningHours_Rejects(t *testing.T) {
	db := testutil.NewDB(t)
	fx := testutil.Seed(t, db)
	uc := NewReplaceOpeningHours(repository.NewSalonGormRepository(db), nil)
	ctx := context.Background()
	days := []domain.Day{{Weekday: 1, Open: true, StartTime: "09:00", EndTime: "17:00"}}

	stylist := &auth.Principal{UserID: "user-2", SalonID: fx.Salon.ID, Role: auth.RoleStylist}
	_, err := uc.Execute(ctx, stylist, fx.Salon.ID, days)
	assert.True(t, httperr.IsKind(err, httperr.KindUnauthorized))

	_, err = uc.Execute(ctx, fx.Principal, uuid.New(), days)
	assert.True(t, httperr.IsKind(err, httperr.KindUnauthorized))

	_, err = uc.Execute(ctx, fx.Principal, fx.Salon.ID, []domain.Day{{Weekday: 9}})
	assert.True(t, httperr.IsBusiness(err, "invalid_opening_hours"))
}

func TestGetProfile_RequiresPrincipal(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := NewGetProfile(repository.NewSalonGormRepository(db)).Execute(context.Background(), nil)
	assert.True(t, httperr.IsBusiness(err, "authentication_required"))
}
