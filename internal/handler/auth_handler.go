package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wakeup-planner-api/internal/models"
	appErrors "github.com/noah-isme/wakeup-planner-api/pkg/errors"
	"github.com/noah-isme/wakeup-planner-api/pkg/response"
)

type tokenIssuer interface {
	IssueToken(req models.TokenRequest) (*models.TokenResponse, error)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service tokenIssuer
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc tokenIssuer) *AuthHandler {
	return &AuthHandler{service: svc}
}

// IssueToken godoc
// @Summary Issue access token
// @Description Exchange the planner passphrase for a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.TokenRequest true "Token payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid token payload"))
		return
	}

	res, err := h.service.IssueToken(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// Session godoc
// @Summary Current token
// @Description Returns the claims of the bearer token used for the request
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	payload := gin.H{"device": claims.Device, "issuer": claims.Issuer}
	if claims.ExpiresAt != nil {
		payload["expiresAt"] = claims.ExpiresAt.Time
	}
	response.JSON(c, http.StatusOK, payload)
}
