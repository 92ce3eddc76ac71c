package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/esg-framework/esg-backend/pkg/apihelpers"
	mw "github.com/esg-framework/esg-backend/pkg/apihelpers/middlewares"
	"github.com/esg-framework/esg-backend/pkg/campaign"
	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
	jwthandling "github.com/esg-framework/esg-backend/pkg/jwt-handling"
	pc "github.com/esg-framework/esg-backend/pkg/permission-checker"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddCampaignManagementAPI(rg *gin.RouterGroup) {
	managementGroup := rg.Group("/campaign-management")
	managementGroup.Use(mw.GetAndValidatePlatformUserJWT(h.tokenSignKey))
	managementGroup.Use(mw.IsInstanceIDInJWTAllowed(h.allowedInstanceIDs))

	questionnairesGroup := managementGroup.Group("/questionnaires")
	{
		questionnairesGroup.POST("",
			mw.RequirePayload(),
			h.useAuthorisedHandler(
				RequiredPermission{
					ResourceType: pc.RESOURCE_TYPE_QUESTIONNAIRE,
					ResourceKeys: []string{pc.RESOURCE_KEY_ALL},
					Action:       pc.ACTION_MANAGE_QUESTIONNAIRES,
				},
				nil,
				h.createQuestionnaireVersion,
			))
		questionnairesGroup.GET("/:questionnaireKey",
			h.useAuthorisedHandler(
				RequiredPermission{
					ResourceType: pc.RESOURCE_TYPE_QUESTIONNAIRE,
					ResourceKeys: []string{pc.RESOURCE_KEY_ALL},
					Action:       pc.ACTION_MANAGE_QUESTIONNAIRES,
				},
				getQuestionnaireKeyLimiter,
				h.getCurrentQuestionnaireVersion,
			))
		questionnairesGroup.POST("/:questionnaireKey/:versionID/dependencies",
			mw.RequirePayload(),
			h.useAuthorisedHandler(
				RequiredPermission{
					ResourceType: pc.RESOURCE_TYPE_QUESTIONNAIRE,
					ResourceKeys: []string{pc.RESOURCE_KEY_ALL},
					Action:       pc.ACTION_MANAGE_QUESTIONNAIRES,
				},
				getQuestionnaireKeyLimiter,
				h.addQuestionDependency,
			))
	}

	assignmentsGroup := managementGroup.Group("/campaign-assignments")
	{
		assignmentsGroup.POST("",
			mw.RequirePayload(),
			h.useAuthorisedHandler(
				RequiredPermission{
					ResourceType: pc.RESOURCE_TYPE_CAMPAIGN,
					ResourceKeys: []string{pc.RESOURCE_KEY_ALL},
					Action:       pc.ACTION_MANAGE_ASSIGNMENTS,
				},
				nil,
				h.createCampaignAssignment,
			))
		assignmentsGroup.GET("",
			h.useAuthorisedHandler(
				RequiredPermission{
					ResourceType: pc.RESOURCE_TYPE_CAMPAIGN,
					ResourceKeys: []string{pc.RESOURCE_KEY_ALL},
					Action:       pc.ACTION_READ_RESPONSES,
				},
				nil,
				h.getCampaignAssignments,
			))
		assignmentsGroup.POST("/question-assignments",
			mw.RequirePayload(),
			h.useAuthorisedHandler(
				RequiredPermission{
					ResourceType: pc.RESOURCE_TYPE_CAMPAIGN,
					ResourceKeys: []string{pc.RESOURCE_KEY_ALL},
					Action:       pc.ACTION_MANAGE_ASSIGNMENTS,
				},
				nil,
				h.createQuestionAssignment,
			))
		assignmentsGroup.POST("/review-assignments",
			mw.RequirePayload(),
			h.useAuthorisedHandler(
				RequiredPermission{
					ResourceType: pc.RESOURCE_TYPE_CAMPAIGN,
					ResourceKeys: []string{pc.RESOURCE_KEY_ALL},
					Action:       pc.ACTION_MANAGE_REVIEWS,
				},
				nil,
				h.createReviewAssignment,
			))
	}

	managementGroup.GET("/collection-indexes/:collectionName",
		h.useAuthorisedHandler(
			RequiredPermission{
				ResourceType: pc.RESOURCE_TYPE_CAMPAIGN,
				ResourceKeys: []string{pc.RESOURCE_KEY_ALL},
				Action:       pc.ACTION_MANAGE_PERMISSIONS,
			},
			nil,
			h.getCollectionIndexes,
		))

	permissionsGroup := managementGroup.Group("/permissions")
	{
		permissionsGroup.POST("",
			mw.RequirePayload(),
			h.useAuthorisedHandler(
				RequiredPermission{
					ResourceType: pc.RESOURCE_TYPE_CAMPAIGN,
					ResourceKeys: []string{pc.RESOURCE_KEY_ALL},
					Action:       pc.ACTION_MANAGE_PERMISSIONS,
				},
				nil,
				h.createPermission,
			))
		permissionsGroup.GET("",
			h.useAuthorisedHandler(
				RequiredPermission{
					ResourceType: pc.RESOURCE_TYPE_CAMPAIGN,
					ResourceKeys: []string{pc.RESOURCE_KEY_ALL},
					Action:       pc.ACTION_MANAGE_PERMISSIONS,
				},
				nil,
				h.getPermissionsBySubject,
			))
		permissionsGroup.DELETE("/:permissionID",
			h.useAuthorisedHandler(
				RequiredPermission{
					ResourceType: pc.RESOURCE_TYPE_CAMPAIGN,
					ResourceKeys: []string{pc.RESOURCE_KEY_ALL},
					Action:       pc.ACTION_MANAGE_PERMISSIONS,
				},
				nil,
				h.deletePermission,
			))
	}
}

func getQuestionnaireKeyLimiter(c *gin.Context) map[string]string {
	return map[string]string{"questionnaireKey": c.Param("questionnaireKey")}
}

func (h *HttpEndpoints) createQuestionnaireVersion(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var questionnaire campaignTypes.Questionnaire
	if err := c.ShouldBindJSON(&questionnaire); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if questionnaire.QuestionnaireKey == "" {
		slog.Error("questionnaireKey is required", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject))
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionnaireKey is required"})
		return
	}

	saved, err := campaign.CreateQuestionnaireVersion(token.InstanceID, questionnaire)
	if err != nil {
		slog.Error("failed to create questionnaire version", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("questionnaireKey", questionnaire.QuestionnaireKey), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to create questionnaire version"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionnaire": saved})
}

func (h *HttpEndpoints) getCurrentQuestionnaireVersion(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	questionnaireKey := c.Param("questionnaireKey")

	questionnaire, err := h.campaignDBConn.GetCurrentQuestionnaireVersion(token.InstanceID, questionnaireKey)
	if err != nil {
		slog.Error("failed to get questionnaire", slog.String("instanceID", token.InstanceID), slog.String("questionnaireKey", questionnaireKey), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to get questionnaire"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionnaire": questionnaire})
}

func (h *HttpEndpoints) addQuestionDependency(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	questionnaireKey := c.Param("questionnaireKey")
	versionID := c.Param("versionID")

	var dep campaignTypes.QuestionDependency
	if err := c.ShouldBindJSON(&dep); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := campaign.AddQuestionDependency(token.InstanceID, questionnaireKey, versionID, dep); err != nil {
		slog.Error("failed to add question dependency", slog.String("instanceID", token.InstanceID), slog.String("questionnaireKey", questionnaireKey), slog.String("versionID", versionID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to add question dependency"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "dependency added"})
}

func (h *HttpEndpoints) createCampaignAssignment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var assignment campaignTypes.CampaignAssignment
	if err := c.ShouldBindJSON(&assignment); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if assignment.QuestionnaireKey == "" || assignment.LeadResponderID == "" {
		slog.Error("questionnaireKey and leadResponderID are required", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject))
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionnaireKey and leadResponderID are required"})
		return
	}

	saved, err := campaign.CreateCampaignAssignment(token.InstanceID, assignment)
	if err != nil {
		slog.Error("failed to create campaign assignment", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to create campaign assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignment": saved})
}

func (h *HttpEndpoints) getCampaignAssignments(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		slog.Error("failed to parse query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignments, paginationInfo, err := h.campaignDBConn.GetCampaignAssignments(token.InstanceID, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("failed to get campaign assignments", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to get campaign assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": assignments,
		"pagination":  paginationInfo,
	})
}

func (h *HttpEndpoints) createQuestionAssignment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var questionAssignment campaignTypes.QuestionAssignment
	if err := c.ShouldBindJSON(&questionAssignment); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if questionAssignment.CampaignAssignmentID == "" || questionAssignment.AssignedUserID == "" {
		slog.Error("campaignAssignmentID and assignedUserID are required", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject))
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaignAssignmentID and assignedUserID are required"})
		return
	}

	saved, err := campaign.CreateQuestionAssignment(token.InstanceID, questionAssignment)
	if err != nil {
		slog.Error("failed to create question assignment", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to create question assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionAssignment": saved})
}

func (h *HttpEndpoints) createReviewAssignment(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var reviewAssignment campaignTypes.ReviewAssignment
	if err := c.ShouldBindJSON(&reviewAssignment); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if reviewAssignment.CampaignAssignmentID == "" || reviewAssignment.ReviewerID == "" {
		slog.Error("campaignAssignmentID and reviewerID are required", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject))
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaignAssignmentID and reviewerID are required"})
		return
	}

	saved, err := campaign.CreateReviewAssignment(token.InstanceID, reviewAssignment)
	if err != nil {
		slog.Error("failed to create review assignment", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to create review assignment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviewAssignment": saved})
}

func (h *HttpEndpoints) getCollectionIndexes(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	collectionName := c.Param("collectionName")

	indexes, err := h.campaignDBConn.GetCollectionIndexes(token.InstanceID, collectionName)
	if err != nil {
		slog.Error("failed to list collection indexes", slog.String("instanceID", token.InstanceID), slog.String("collection", collectionName), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to list collection indexes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"indexes": indexes})
}

func (h *HttpEndpoints) createPermission(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	var req struct {
		SubjectID    string              `json:"subjectID"`
		SubjectType  string              `json:"subjectType"`
		ResourceType string              `json:"resourceType"`
		ResourceKey  string              `json:"resourceKey"`
		Action       string              `json:"action"`
		Limiter      []map[string]string `json:"limiter"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.SubjectID == "" || req.ResourceType == "" || req.Action == "" {
		slog.Error("subjectID, resourceType and action are required", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject))
		c.JSON(http.StatusBadRequest, gin.H{"error": "subjectID, resourceType and action are required"})
		return
	}

	if req.SubjectType == "" {
		req.SubjectType = pc.SUBJECT_TYPE_PLATFORM_USER
	}
	if req.ResourceKey == "" {
		req.ResourceKey = pc.RESOURCE_KEY_ALL
	}

	permission, err := h.campaignDBConn.CreatePermission(
		token.InstanceID,
		req.SubjectID,
		req.SubjectType,
		req.ResourceType,
		req.ResourceKey,
		req.Action,
		req.Limiter,
	)
	if err != nil {
		slog.Error("failed to create permission", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to create permission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"permission": permission})
}

func (h *HttpEndpoints) getPermissionsBySubject(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	subjectID := c.DefaultQuery("subjectID", "")
	if subjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subjectID is required"})
		return
	}
	subjectType := c.DefaultQuery("subjectType", pc.SUBJECT_TYPE_PLATFORM_USER)

	permissions, err := h.campaignDBConn.GetPermissionBySubject(token.InstanceID, subjectID, subjectType)
	if err != nil {
		slog.Error("failed to get permissions", slog.String("instanceID", token.InstanceID), slog.String("subjectID", subjectID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to get permissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"permissions": permissions})
}

func (h *HttpEndpoints) deletePermission(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.PlatformUserClaims)

	permissionID := c.Param("permissionID")

	if err := h.campaignDBConn.DeletePermission(token.InstanceID, permissionID); err != nil {
		slog.Error("failed to delete permission", slog.String("instanceID", token.InstanceID), slog.String("permissionID", permissionID), slog.String("error", err.Error()))
		c.JSON(statusCodeForServiceError(err), gin.H{"error": "failed to delete permission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "permission deleted"})
}
