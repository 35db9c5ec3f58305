package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

// fail writes err. Business errors get their mapped shape; anything else is
// logged and answered with a 500 carrying code.
func fail(c *gin.Context, log *logger.Logger, err error, code string) {
	if httperr.Respond(c, err) {
		return
	}
	log.Error("request failed",
		"path", c.FullPath(),
		"error_code", code,
		"error", err,
	)
	httperr.Internal(c, code, "Something went wrong, please try again.")
}

func invalidBody(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "Invalid request body.")
}
