// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// NewDB opens a private in-memory SQLite database with the full schema.
// It is limited to one connection, so code under test must run every query
// of a transaction on the transaction handle.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type Fixture struct {
	Salon     models.Salon
	Staff     models.Staff
	Service   models.Service
	Principal *auth.Principal
}

// Seed creates a salon in UTC with one active staff member and a 30 minute
// service priced 350.
func Seed(t testing.TB, db *gorm.DB) *Fixture {
	t.Helper()

	f := &Fixture{
		Salon: models.Salon{Name: "Salon Nord", Address: "Nørregade 1", City: "København", Timezone: "UTC"},
	}
	require.NoError(t, db.Create(&f.Salon).Error)

	f.Staff = models.Staff{SalonID: f.Salon.ID, UserID: "user-1", Name: "Hanne", Active: true}
	require.NoError(t, db.Create(&f.Staff).Error)

	f.Service = models.Service{
		SalonID:         f.Salon.ID,
		Name:            "Haircut",
		DurationMinutes: 30,
		PriceDkk:        decimal.NewFromInt(350),
		Active:          true,
	}
	require.NoError(t, db.Create(&f.Service).Error)

	f.Principal = &auth.Principal{UserID: "user-1", SalonID: f.Salon.ID, Role: auth.RoleOwner}
	return f
}

// AddStaff creates another active staff member in the fixture's salon.
func (f *Fixture) AddStaff(t testing.TB, db *gorm.DB, name string) models.Staff {
	t.Helper()
	s := models.Staff{SalonID: f.Salon.ID, Name: name, Active: true}
	require.NoError(t, db.Create(&s).Error)
	return s
}

// FixedClock always returns ts.
func FixedClock(ts time.Time) timezone.Clock {
	return func() time.Time { return ts }
}

// MutableClock is a clock tests can move.
type MutableClock struct {
	Now time.Time
}

func (c *MutableClock) Clock() timezone.Clock {
	return func() time.Time { return c.Now }
}
