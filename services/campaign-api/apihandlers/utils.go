package apihandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/esg-framework/esg-backend/pkg/campaign"
	"github.com/esg-framework/esg-backend/pkg/campaign/engine"
	jwthandling "github.com/esg-framework/esg-backend/pkg/jwt-handling"
	pc "github.com/esg-framework/esg-backend/pkg/permission-checker"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func (h *HttpEndpoints) isInstanceAllowed(instanceID string) bool {
	for _, id := range h.allowedInstanceIDs {
		if id == instanceID {
			return true
		}
	}
	return false
}

func roleFlagsFromToken(token *jwthandling.PlatformUserClaims) engine.RoleFlags {
	return engine.RoleFlags{
		IsPlatformAdmin: token.IsPlatformAdmin,
		IsOrgAdmin:      token.IsOrgAdmin,
	}
}

// statusCodeForServiceError maps service layer sentinels onto HTTP status
// codes so handlers report consistent results for the same failure.
func statusCodeForServiceError(err error) int {
	switch {
	case errors.Is(err, engine.ErrForbidden),
		errors.Is(err, campaign.ErrNotDelegationOwner),
		errors.Is(err, campaign.ErrNotReviewer):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrAssignmentLocked),
		errors.Is(err, engine.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, engine.ErrSelfDependency),
		errors.Is(err, engine.ErrCycleDetected),
		errors.Is(err, engine.ErrUnknownQuestion),
		errors.Is(err, campaign.ErrValueTypeMismatch),
		errors.Is(err, campaign.ErrDelegationTargetMissing),
		errors.Is(err, campaign.ErrScopeDiscriminatorMismatch),
		errors.Is(err, campaign.ErrQuestionOrSection),
		errors.Is(err, campaign.ErrResponseOutsideReview),
		errors.Is(err, campaign.ErrInvalidQuestionnaireKey):
		return http.StatusBadRequest
	case errors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type RequiredPermission struct {
	ResourceType string
	ResourceKeys []string
	Action       string
}

func (h *HttpEndpoints) useAuthorisedHandler(
	requiredPermission RequiredPermission,
	getLimiterRequirement func(c *gin.Context) map[string]string,
	handler gin.HandlerFunc,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

		var limiterReq map[string]string
		if getLimiterRequirement != nil {
			limiterReq = getLimiterRequirement(c)
		}

		hasPermission := pc.IsAuthorized(
			h.campaignDBConn,
			token.IsPlatformAdmin,
			token.InstanceID,
			token.Subject,
			pc.SUBJECT_TYPE_PLATFORM_USER,
			requiredPermission.ResourceType,
			requiredPermission.ResourceKeys,
			requiredPermission.Action,
			limiterReq,
		)
		if !hasPermission {
			requiredPermissionStr, _ := json.Marshal(requiredPermission)
			slog.Warn("unauthorised access attempted", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("requiredPermission", string(requiredPermissionStr)))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorised access attempted"})
			return
		}

		handler(c)
	}
}
