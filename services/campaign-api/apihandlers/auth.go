package apihandlers

import (
	"log/slog"
	"net/http"
	"time"

	mw "github.com/esg-framework/esg-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/esg-framework/esg-backend/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.GET("/renew-token", mw.GetAndValidatePlatformUserJWT(h.tokenSignKey), h.getRenewToken)
}

// getRenewToken issues a fresh token with the same claims as the presented
// one. The identity provider owns sign-in; this only extends a session that
// is still valid.
func (h *HttpEndpoints) getRenewToken(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	newToken, err := jwthandling.GenerateNewPlatformUserToken(
		h.tokenExpiresIn,
		token.Subject,
		token.InstanceID,
		token.OrgID,
		token.IsPlatformAdmin,
		token.IsOrgAdmin,
		token.Payload,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to renew token", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to renew token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": newToken,
		"expiresAt":   time.Now().Add(h.tokenExpiresIn).Unix(),
	})
}
