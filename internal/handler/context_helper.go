package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wakeup-planner-api/internal/middleware"
	"github.com/noah-isme/wakeup-planner-api/internal/models"
	"github.com/noah-isme/wakeup-planner-api/internal/service"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// requestTime returns the ?at= override parsed as RFC 3339 in the clock's
// location, or the clock's now.
func requestTime(c *gin.Context, clock service.Clock) (time.Time, error) {
	now := clock()
	raw := strings.TrimSpace(c.Query("at"))
	if raw == "" {
		return now, nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "at must be an RFC 3339 timestamp")
	}
	return at.In(now.Location()), nil
}
