package permissionchecker

const (
	SUBJECT_TYPE_PLATFORM_USER   = "platform-user"
	SUBJECT_TYPE_SERVICE_ACCOUNT = "service-account"
)

const (
	RESOURCE_TYPE_CAMPAIGN      = "campaign"
	RESOURCE_TYPE_QUESTIONNAIRE = "questionnaire"
)

const (
	RESOURCE_KEY_ALL = "*"
)

const (
	ACTION_MANAGE_QUESTIONNAIRES = "manage-questionnaires"
	ACTION_MANAGE_ASSIGNMENTS    = "manage-assignments"
	ACTION_MANAGE_REVIEWS        = "manage-reviews"
	ACTION_READ_RESPONSES        = "read-responses"
	ACTION_MANAGE_PERMISSIONS    = "manage-permissions"

	ACTION_ALL = "*"
)
