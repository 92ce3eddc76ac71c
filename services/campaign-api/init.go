package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/esg-framework/esg-backend/pkg/apihelpers"
	"github.com/esg-framework/esg-backend/pkg/campaign"
	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
	"github.com/esg-framework/esg-backend/pkg/db"
	"github.com/esg-framework/esg-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	campaignDB "github.com/esg-framework/esg-backend/pkg/db/campaign"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_CAMPAIGN_DB_USERNAME = "CAMPAIGN_DB_USERNAME"
	ENV_CAMPAIGN_DB_PASSWORD = "CAMPAIGN_DB_PASSWORD"

	ENV_PLATFORM_USER_JWT_SIGN_KEY   = "PLATFORM_USER_JWT_SIGN_KEY"
	ENV_PLATFORM_USER_JWT_EXPIRES_IN = "PLATFORM_USER_JWT_EXPIRES_IN"
)

type CampaignApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	PlatformUserJWTConfig struct {
		SignKey   string        `json:"sign_key" yaml:"sign_key"`
		ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
	} `json:"platform_user_jwt_config" yaml:"platform_user_jwt_config"`

	AllowedInstanceIDs []string `json:"allowed_instance_ids" yaml:"allowed_instance_ids"`

	// DB configs
	DBConfigs struct {
		CampaignDB db.DBConfigYaml `json:"campaign_db" yaml:"campaign_db"`
	} `json:"db_configs" yaml:"db_configs"`
}

var (
	campaignDBService *campaignDB.CampaignDBService

	// API keys accepted on the internal service-to-service routes, one per
	// allowed instance, read from the environment.
	instanceAPIKeys []string
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
		conf.Logging.IncludeBuildInfo,
	)

	// Override secrets from environment variables
	secretsOverride()

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	initCampaignService()

	readInstanceAPIKeys()
}

func readInstanceAPIKeys() {
	for _, instanceID := range conf.AllowedInstanceIDs {
		envVarName := utils.GenerateInstanceAPIKeyEnvVarName(instanceID)
		if apiKey := os.Getenv(envVarName); apiKey != "" {
			instanceAPIKeys = append(instanceAPIKeys, apiKey)
		} else {
			slog.Warn("no API key configured for instance", slog.String("instanceID", instanceID), slog.String("envVarName", envVarName))
		}
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_CAMPAIGN_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.CampaignDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_CAMPAIGN_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.CampaignDB.Password = dbPassword
	}

	if platformUserJwtSignKey := os.Getenv(ENV_PLATFORM_USER_JWT_SIGN_KEY); platformUserJwtSignKey != "" {
		conf.PlatformUserJWTConfig.SignKey = platformUserJwtSignKey
	}

	if expInVal := os.Getenv(ENV_PLATFORM_USER_JWT_EXPIRES_IN); expInVal != "" {
		expiresIn, err := utils.ParseDurationString(expInVal)
		if err != nil {
			slog.Error("error during initConfig", slog.String("error", err.Error()), slog.String(ENV_PLATFORM_USER_JWT_EXPIRES_IN, expInVal))
			panic(err)
		}
		conf.PlatformUserJWTConfig.ExpiresIn = expiresIn
	}
}

func initDBs() {
	var err error
	campaignDBService, err = campaignDB.NewCampaignDBService(db.DBConfigFromYamlObj(conf.DBConfigs.CampaignDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Campaign DB", slog.String("error", err.Error()))
		return
	}
}

func initCampaignService() {
	campaign.Init(
		campaignDBService,
		logNotificationSender{},
	)
}

// logNotificationSender records notification-worthy events in the service log.
// Actual delivery is handled by a separate notification pipeline that tails
// these events.
type logNotificationSender struct{}

func (s logNotificationSender) OnDelegationCreated(instanceID string, delegation campaignTypes.Delegation) {
	slog.Info("delegation created",
		slog.String("instanceID", instanceID),
		slog.String("assignmentID", delegation.CampaignAssignmentID),
		slog.String("questionID", delegation.QuestionID),
		slog.String("toUserID", delegation.ToUserID),
	)
}

func (s logNotificationSender) OnChangesRequested(instanceID string, assignment campaignTypes.CampaignAssignment) {
	slog.Info("changes requested on assignment",
		slog.String("instanceID", instanceID),
		slog.String("assignmentID", assignment.ID.Hex()),
		slog.String("leadResponderID", assignment.LeadResponderID),
	)
}
