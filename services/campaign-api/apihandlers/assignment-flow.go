package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/esg-framework/esg-backend/pkg/apihelpers/middlewares"
	"github.com/esg-framework/esg-backend/pkg/campaign"
	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
	jwthandling "github.com/esg-framework/esg-backend/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddAssignmentFlowAPI(rg *gin.RouterGroup) {
	assignmentsGroup := rg.Group("/assignments")
	assignmentsGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey))
	assignmentsGroup.Use(mw.IsInstanceIDInJWTAllowed(h.allowedInstanceIDs))
	{
		assignmentsGroup.GET("/:assignmentID", h.getRenderedAssignment)
		assignmentsGroup.POST("/:assignmentID/responses", mw.RequirePayload(), h.saveResponse)
		assignmentsGroup.DELETE("/:assignmentID/responses/:questionID", h.clearResponse)
		assignmentsGroup.POST("/:assignmentID/submit", h.submitAssignment)

		assignmentsGroup.POST("/:assignmentID/delegations", mw.RequirePayload(), h.createDelegation)
		assignmentsGroup.DELETE("/:assignmentID/delegations/:delegationID", h.cancelDelegation)
	}
}

func (h *HttpEndpoints) getRenderedAssignment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	assignmentID := c.Param("assignmentID")

	rendered, err := campaign.RenderQuestionnaireForUser(token.InstanceID, assignmentID, token.Subject, roleFlagsFromToken(token))
	if err != nil {
		slog.Error("failed to render assignment", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("assignmentID", assignmentID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to render assignment"})
		return
	}

	c.JSON(http.StatusOK, rendered)
}

func (h *HttpEndpoints) saveResponse(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	assignmentID := c.Param("assignmentID")

	var req struct {
		QuestionID string                      `json:"questionID"`
		Value      campaignTypes.ResponseValue `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.QuestionID == "" {
		slog.Error("questionID is required", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("assignmentID", assignmentID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionID is required"})
		return
	}

	response, err := campaign.SaveResponse(token.InstanceID, assignmentID, token.Subject, roleFlagsFromToken(token), req.QuestionID, req.Value)
	if err != nil {
		slog.Error("failed to save response", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("assignmentID", assignmentID), slog.String("questionID", req.QuestionID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to save response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}

func (h *HttpEndpoints) clearResponse(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	assignmentID := c.Param("assignmentID")
	questionID := c.Param("questionID")

	response, err := campaign.ClearResponse(token.InstanceID, assignmentID, token.Subject, roleFlagsFromToken(token), questionID)
	if err != nil {
		slog.Error("failed to clear response", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("assignmentID", assignmentID), slog.String("questionID", questionID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to clear response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}

func (h *HttpEndpoints) submitAssignment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	assignmentID := c.Param("assignmentID")

	slog.Debug("submitting assignment", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("assignmentID", assignmentID))

	assignment, err := campaign.SubmitAssignment(token.InstanceID, assignmentID, token.Subject, roleFlagsFromToken(token))
	if err != nil {
		slog.Error("failed to submit assignment", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("assignmentID", assignmentID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to submit assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignment": assignment})
}

func (h *HttpEndpoints) createDelegation(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	assignmentID := c.Param("assignmentID")

	var req struct {
		QuestionID   string `json:"questionID"`
		ToUserID     string `json:"toUserID"`
		Instructions string `json:"instructions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.QuestionID == "" || req.ToUserID == "" {
		slog.Error("questionID and toUserID are required", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("assignmentID", assignmentID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionID and toUserID are required"})
		return
	}

	delegation, err := campaign.CreateDelegation(token.InstanceID, assignmentID, token.Subject, roleFlagsFromToken(token), req.QuestionID, req.ToUserID, req.Instructions)
	if err != nil {
		slog.Error("failed to create delegation", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("assignmentID", assignmentID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to create delegation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"delegation": delegation})
}

func (h *HttpEndpoints) cancelDelegation(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	assignmentID := c.Param("assignmentID")
	delegationID := c.Param("delegationID")

	if err := campaign.CancelDelegation(token.InstanceID, assignmentID, token.Subject, roleFlagsFromToken(token), delegationID); err != nil {
		slog.Error("failed to cancel delegation", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("assignmentID", assignmentID), slog.String("delegationID", delegationID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to cancel delegation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "delegation cancelled"})
}
