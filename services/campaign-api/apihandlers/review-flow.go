package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/esg-framework/esg-backend/pkg/apihelpers/middlewares"
	"github.com/esg-framework/esg-backend/pkg/campaign"
	jwthandling "github.com/esg-framework/esg-backend/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddReviewFlowAPI(rg *gin.RouterGroup) {
	reviewsGroup := rg.Group("/assignments/:assignmentID/reviews")
	reviewsGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey))
	reviewsGroup.Use(mw.IsInstanceIDInJWTAllowed(h.allowedInstanceIDs))
	{
		reviewsGroup.POST("/:reviewAssignmentID/start", h.startReview)
		reviewsGroup.POST("/:reviewAssignmentID/comments", mw.RequirePayload(), h.addReviewComment)
		reviewsGroup.POST("/:reviewAssignmentID/complete", mw.RequirePayload(), h.completeReview)
	}
}

func (h *HttpEndpoints) startReview(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	assignmentID := c.Param("assignmentID")
	reviewAssignmentID := c.Param("reviewAssignmentID")

	if err := campaign.StartReview(token.InstanceID, assignmentID, reviewAssignmentID, token.Subject); err != nil {
		slog.Error("failed to start review", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("assignmentID", assignmentID), slog.String("reviewAssignmentID", reviewAssignmentID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to start review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review started"})
}

func (h *HttpEndpoints) addReviewComment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	reviewAssignmentID := c.Param("reviewAssignmentID")

	var req struct {
		ResponseID     string `json:"responseID"`
		Comment        string `json:"comment"`
		ActionTaken    string `json:"actionTaken"`
		RequiresChange bool   `json:"requiresChange"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ResponseID == "" {
		slog.Error("responseID is required", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("reviewAssignmentID", reviewAssignmentID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "responseID is required"})
		return
	}

	comment, err := campaign.AddReviewComment(token.InstanceID, reviewAssignmentID, token.Subject, req.ResponseID, req.Comment, req.ActionTaken, req.RequiresChange)
	if err != nil {
		slog.Error("failed to add review comment", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("reviewAssignmentID", reviewAssignmentID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to add review comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

func (h *HttpEndpoints) completeReview(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	assignmentID := c.Param("assignmentID")
	reviewAssignmentID := c.Param("reviewAssignmentID")

	var req struct {
		Verdict string `json:"verdict"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Verdict == "" {
		slog.Error("verdict is required", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("reviewAssignmentID", reviewAssignmentID))
		c.JSON(http.StatusBadRequest, gin.H{"error": "verdict is required"})
		return
	}

	if err := campaign.CompleteReview(token.InstanceID, assignmentID, reviewAssignmentID, token.Subject, req.Verdict); err != nil {
		slog.Error("failed to complete review", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("assignmentID", assignmentID), slog.String("reviewAssignmentID", reviewAssignmentID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to complete review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review completed"})
}
