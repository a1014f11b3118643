package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/svitoratos/tangocrm-backend/internal/clients/email"
	redisclient "github.com/svitoratos/tangocrm-backend/internal/clients/redis"
	"github.com/svitoratos/tangocrm-backend/internal/db"
	"github.com/svitoratos/tangocrm-backend/internal/handlers"
	"github.com/svitoratos/tangocrm-backend/internal/logger"
	"github.com/svitoratos/tangocrm-backend/internal/middleware"
	"github.com/svitoratos/tangocrm-backend/internal/observability"
	"github.com/svitoratos/tangocrm-backend/internal/pipeline"
	"github.com/svitoratos/tangocrm-backend/internal/repos"
	"github.com/svitoratos/tangocrm-backend/internal/server"
	"github.com/svitoratos/tangocrm-backend/internal/services"
	"github.com/svitoratos/tangocrm-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing (no-op unless OTEL_ENABLED)
	shutdownTracing := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "tangocrm",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "", log),
	})
	if shutdownTracing != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(ctx)
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	dashboardCacheTTL := utils.GetEnvAsInt("DASHBOARD_CACHE_TTL", 60, log)
	mediaDir := utils.GetEnv("MEDIA_DIR", "media", log)

	// Optional stage catalog overrides
	if catalogFile := utils.GetEnv("STAGE_CATALOG_FILE", "", log); catalogFile != "" {
		if err := pipeline.LoadCatalogOverrides(catalogFile); err != nil {
			log.Error("Could not load stage catalog overrides", "error", err)
			os.Exit(1)
		}
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis (dashboard cache; the app runs without it)
	cache, err := redisclient.NewCache(log)
	if err != nil {
		log.Warn("Redis init failed, dashboard caching disabled", "error", err)
	}
	if cache != nil {
		defer cache.Close()
	}

	// Email (contact form notifications; nil when unconfigured)
	emailClient := email.NewClient(
		log,
		utils.GetEnv("RESEND_API_KEY", "", log),
		utils.GetEnv("EMAIL_FROM", "", log),
		utils.GetEnv("EMAIL_FROM_NAME", "Tango CRM", log),
		utils.GetEnv("CONTACT_NOTIFY_TO", "", log),
	)

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	oppRepo := repos.NewOpportunityRepo(thePG, log)
	clientRepo := repos.NewClientRepo(thePG, log)
	eventRepo := repos.NewCalendarEventRepo(thePG, log)
	itemRepo := repos.NewContentItemRepo(thePG, log)
	messageRepo := repos.NewContactMessageRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	avatarService, err := services.NewAvatarService(thePG, log)
	if err != nil {
		log.Error("Could not init AvatarService", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(
		thePG,
		log,
		userRepo,
		userTokenRepo,
		avatarService,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	userService := services.NewUserService(thePG, log, userRepo)
	oppService := services.NewOpportunityService(thePG, log, oppRepo)
	clientService := services.NewClientService(thePG, log, clientRepo, oppRepo)
	calendarService := services.NewCalendarService(thePG, log, eventRepo)
	itemService := services.NewContentItemService(thePG, log, itemRepo)
	dashboardService := services.NewDashboardService(
		thePG,
		log,
		oppRepo,
		clientRepo,
		eventRepo,
		cache,
		time.Duration(dashboardCacheTTL)*time.Second,
	)
	contactService := services.NewContactService(thePG, log, messageRepo, emailClient)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, avatarService)
	oppHandler := handlers.NewOpportunityHandler(oppService)
	clientHandler := handlers.NewClientHandler(clientService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	itemHandler := handlers.NewContentItemHandler(itemService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	contactHandler := handlers.NewContactHandler(contactService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:        authHandler,
		AuthMiddleware:     authMiddleware,
		UserHandler:        userHandler,
		OpportunityHandler: oppHandler,
		ClientHandler:      clientHandler,
		CalendarHandler:    calendarHandler,
		ContentItemHandler: itemHandler,
		DashboardHandler:   dashboardHandler,
		ContactHandler:     contactHandler,
		MediaDir:           mediaDir,
		TracingMiddleware:  observability.GinMiddleware("tangocrm"),
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
