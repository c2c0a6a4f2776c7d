// Package api contains the HTTP handlers of the v1 API.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/logging"
	"github.com/gabbyferm/savory/backend/internal/middleware"
)

const msgInvalidBody = "Invalid request body"

// respondError writes the status and body for err. Unexpected failures are
// logged with their cause and reported with the generic message.
func respondError(c *gin.Context, err error) {
	status, body := apperr.ToResponse(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"error", err,
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// bindJSON decodes the request body into dst, answering 400 when it is not
// valid JSON for dst
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apperr.Validationf(msgInvalidBody))
		return false
	}
	return true
}

// callerID resolves the authenticated user or answers 401
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		respondError(c, apperr.NotAuthenticated(""))
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the :id parameter. A malformed id cannot name an existing
// entity, so it is reported as not found.
func pathID(c *gin.Context, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.NotFound(notFound))
		return uuid.Nil, false
	}
	return id, true
}
