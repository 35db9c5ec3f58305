package customer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"12 34 56 78":      "12345678",
		"12345678":         "12345678",
		"12.34.56.78":      "12345678",
		"+45 12.34-56 78":  "+4512345678",
		"(+45) 12-34-5678": "+4512345678",
		"  ":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePhone(in), in)
	}
}

func TestNormalizePhone_StripsEveryAcceptedSeparator(t *testing.T) {
	for _, sep := range []string{" ", "-", ".", "(", ")"} {
		phone := "12" + sep + "34" + sep + "56" + sep + "78"
		require.True(t, validators.IsPhoneValid(phone), phone)
		assert.Equal(t, "12345678", NormalizePhone(phone), phone)
	}
}

func TestNew_SetsFirstAndLastSeen(t *testing.T) {
	salonID := uuid.New()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	c := New(salonID, Contact{Name: "Anna", Phone: "12 34 56 78"}, now)

	assert.Equal(t, salonID, c.SalonID)
	assert.Equal(t, "12345678", c.NormalizedPhone)
	assert.Equal(t, "12 34 56 78", c.Phone)
	assert.Equal(t, now, c.FirstSeenAt)
	assert.Equal(t, now, c.LastSeenAt)
}

func TestMerge_LatestBookingWins(t *testing.T) {
	first := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	existing := &models.Customer{
		Name:            "Anna",
		Phone:           "12345678",
		NormalizedPhone: "12345678",
		Email:           "anna@old.dk",
		FirstSeenAt:     first,
		LastSeenAt:      first,
	}

	changed := Merge(existing, Contact{
		Name:  "Anna Jensen",
		Phone: "12 34 56 78",
		Email: "anna@new.dk",
	}, later)

	require.True(t, changed)
	assert.Equal(t, "Anna Jensen", existing.Name)
	assert.Equal(t, "12 34 56 78", existing.Phone)
	assert.Equal(t, "12345678", existing.NormalizedPhone)
	assert.Equal(t, "anna@new.dk", existing.Email)
	assert.Equal(t, first, existing.FirstSeenAt)
	assert.Equal(t, later, existing.LastSeenAt)
}

func TestMerge_EmptyEmailKeepsStored(t *testing.T) {
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	existing := &models.Customer{Name: "Bo", Phone: "87654321", Email: "bo@x.dk"}

	changed := Merge(existing, Contact{Name: "Bo", Phone: "87654321"}, now)

	assert.False(t, changed)
	assert.Equal(t, "bo@x.dk", existing.Email)
	assert.Equal(t, now, existing.LastSeenAt)
}
