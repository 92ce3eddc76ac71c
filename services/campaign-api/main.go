package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/esg-framework/esg-backend/pkg/apihelpers"
	"github.com/esg-framework/esg-backend/services/campaign-api/apihandlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var conf CampaignApiConfig

func main() {
	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.PlatformUserJWTConfig.SignKey,
		conf.PlatformUserJWTConfig.ExpiresIn,
		campaignDBService,
		conf.AllowedInstanceIDs,
	)
	v1APIHandlers.AddAuthAPI(v1Root)
	v1APIHandlers.AddAssignmentFlowAPI(v1Root)
	v1APIHandlers.AddReviewFlowAPI(v1Root)
	v1APIHandlers.AddCampaignManagementAPI(v1Root)
	v1APIHandlers.AddInternalAPI(v1Root, instanceAPIKeys)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "campaign-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Campaign API on port " + conf.GinConfig.Port)
	if !conf.GinConfig.MTLS.Use {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Campaign API", slog.String("error", err.Error()))
			return
		}
	} else {
		// Create tls config for mutual TLS
		tlsConfig, err := apihelpers.LoadTLSConfig(conf.GinConfig.MTLS.CertificatePaths)
		if err != nil {
			slog.Error("Error loading TLS config.", slog.String("error", err.Error()))
			return
		}

		server := &http.Server{
			Addr:      ":" + conf.GinConfig.Port,
			Handler:   router,
			TLSConfig: tlsConfig,
		}

		err = server.ListenAndServeTLS(conf.GinConfig.MTLS.CertificatePaths.ServerCertPath, conf.GinConfig.MTLS.CertificatePaths.ServerKeyPath)
		if err != nil {
			slog.Error("Exited Campaign API", slog.String("error", err.Error()))
			return
		}
	}
}
