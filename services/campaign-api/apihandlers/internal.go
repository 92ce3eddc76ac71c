package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/esg-framework/esg-backend/pkg/apihelpers/middlewares"
	"github.com/gin-gonic/gin"
)

// Routes for other backend services (e.g. the notification pipeline),
// authenticated with per-instance API keys instead of user tokens.
func (h *HttpEndpoints) AddInternalAPI(rg *gin.RouterGroup, apiKeys []string) {
	internalGroup := rg.Group("/internal")
	internalGroup.Use(mw.HasValidAPIKey(apiKeys))
	{
		internalGroup.GET("/campaign-assignments/:assignmentID", h.getAssignmentForService)
	}
}

func (h *HttpEndpoints) getAssignmentForService(c *gin.Context) {
	instanceID := c.DefaultQuery("instanceID", "")
	if !h.isInstanceAllowed(instanceID) {
		slog.Warn("instanceID not allowed", slog.String("instanceID", instanceID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "instanceID not allowed"})
		return
	}

	assignmentID := c.Param("assignmentID")

	assignment, err := h.campaignDBConn.GetCampaignAssignmentByID(instanceID, assignmentID)
	if err != nil {
		slog.Error("failed to get campaign assignment", slog.String("instanceID", instanceID), slog.String("assignmentID", assignmentID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to get campaign assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignment": assignment})
}
