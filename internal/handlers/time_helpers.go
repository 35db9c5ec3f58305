package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const dateLayout = "2006-01-02"

// --------------------------------------------------
// Query / path parsing
// --------------------------------------------------

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, httperr.Validation("invalid_"+name, map[string]string{name: "expected uuid"})
	}
	return id, nil
}

func requiredUUIDQuery(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Query(name))
	if err != nil {
		return uuid.Nil, httperr.Validation("invalid_"+name, map[string]string{name: "expected uuid"})
	}
	return id, nil
}

func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, httperr.Validation("invalid_"+name, map[string]string{name: "expected uuid"})
	}
	return &id, nil
}

// timeQuery reads an RFC 3339 instant, e.g. 2026-06-01T09:00:00+02:00.
func timeQuery(c *gin.Context, name string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.Query(name))
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_"+name, map[string]string{name: "expected RFC 3339 time"})
	}
	return t, nil
}

// dateQuery reads a calendar date. The result carries no salon zone; use
// cases rebuild the day in the salon's location.
func dateQuery(c *gin.Context, name string) (time.Time, error) {
	d, err := time.Parse(dateLayout, c.Query(name))
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_"+name, map[string]string{name: "expected YYYY-MM-DD"})
	}
	return d, nil
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}
