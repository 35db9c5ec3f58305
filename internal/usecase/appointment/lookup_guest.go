package appointment

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// LookupGuestBooking finds a guest booking by code and surname. A wrong
// surname is reported exactly like an unknown code.
type LookupGuestBooking struct {
	repo domain.Repository
}

func NewLookupGuestBooking(repo domain.Repository) *LookupGuestBooking {
	return &LookupGuestBooking{repo: repo}
}

func (uc *LookupGuestBooking) Execute(
	ctx context.Context,
	code string,
	surname string,
) (*dto.GuestBookingDTO, error) {

	code = strings.ToUpper(strings.TrimSpace(code))
	surname = strings.ToLower(strings.TrimSpace(surname))
	if code == "" || surname == "" {
		return nil, httperr.NotFound("booking_not_found")
	}

	ap, err := uc.repo.FindByBookingCode(ctx, code)
	if err != nil {
		return nil, notFoundAs(err, "booking_not_found")
	}

	if ap.CustomerSurnameHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(ap.CustomerSurnameHash), []byte(surname)) != nil {
		return nil, httperr.NotFound("booking_not_found")
	}

	salon, err := uc.repo.GetSalon(ctx, ap.SalonID)
	if err != nil {
		return nil, notFoundAs(err, "booking_not_found")
	}
	loc := timezone.Location(salon.Timezone)

	out := &dto.GuestBookingDTO{
		AppointmentID: ap.ID,
		BookingCode:   code,
		Status:        ap.Status,
		StartsAt:      ap.StartsAt.In(loc),
		EndsAt:        ap.EndsAt.In(loc),
		CustomerName:  ap.CustomerName,
		SalonName:     salon.Name,
		SalonAddress:  salon.Address,
	}
	if ap.Staff != nil {
		out.StaffName = ap.Staff.Name
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
		out.DurationMin = ap.Service.DurationMinutes
	}
	return out, nil
}
