package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func queryContext(raw string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x?"+raw, nil)
	return c
}

func TestOptionalUUIDQuery(t *testing.T) {
	id, err := optionalUUIDQuery(queryContext(""), "staff_id")
	require.NoError(t, err)
	assert.Nil(t, id)

	want := uuid.New()
	id, err = optionalUUIDQuery(queryContext("staff_id="+want.String()), "staff_id")
	require.NoError(t, err)
	assert.Equal(t, want, *id)

	_, err = optionalUUIDQuery(queryContext("staff_id=7"), "staff_id")
	assert.True(t, httperr.IsBusiness(err, "invalid_staff_id"))
}

func TestTimeQueries(t *testing.T) {
	ts, err := timeQuery(queryContext("start=2026-06-01T09:00:00%2B02:00"), "start")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 1, 7, 0, 0, 0, time.UTC), ts.UTC())

	_, err = timeQuery(queryContext("start=09:00"), "start")
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	d, err := dateQuery(queryContext("date=2026-06-01"), "date")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Day())

	_, err = dateQuery(queryContext("date=01-06-2026"), "date")
	assert.Error(t, err)
}

func TestIntQuery(t *testing.T) {
	assert.Equal(t, 3, intQuery(queryContext("page=3"), "page", 1))
	assert.Equal(t, 1, intQuery(queryContext("page=x"), "page", 1))
	assert.Equal(t, 1, intQuery(queryContext(""), "page", 1))
}
