package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/cjex-salaj/site-api/api/swagger"
	"github.com/cjex-salaj/site-api/internal/blob"
	"github.com/cjex-salaj/site-api/internal/collection"
	"github.com/cjex-salaj/site-api/internal/handler"
	"github.com/cjex-salaj/site-api/internal/middleware"
	"github.com/cjex-salaj/site-api/internal/models"
	"github.com/cjex-salaj/site-api/internal/service"
	"github.com/cjex-salaj/site-api/pkg/cache"
	"github.com/cjex-salaj/site-api/pkg/config"
	"github.com/cjex-salaj/site-api/pkg/logger"
	corsmiddleware "github.com/cjex-salaj/site-api/pkg/middleware/cors"
	reqidmiddleware "github.com/cjex-salaj/site-api/pkg/middleware/requestid"
)

// @title School Site Content API
// @version 1.0.0
// @description Blob-backed content API for the public site and admin dashboard
// @BasePath /api/v1
// @schemes http

type collectionRoutes interface {
	List(*gin.Context)
	Add(*gin.Context)
	Delete(*gin.Context)
	Move(*gin.Context)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := blob.NewLocal(cfg.Storage.RootDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		logr.Sugar().Fatalw("failed to init blob store", "error", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
	}

	var attempts service.AttemptStore
	if redisClient != nil {
		attempts = service.NewRedisAttemptStore(redisClient)
	} else {
		attempts = service.NewMemoryAttemptStore()
	}

	validate := validator.New()

	authSvc := service.NewAuthService(attempts, validate, logr, service.AuthServiceConfig{
		PasswordHash: cfg.Auth.PasswordHash,
		TokenSecret:  cfg.Auth.SessionSecret,
		SessionTTL:   cfg.Auth.SessionTTL,
		MaxAttempts:  cfg.RateLimit.MaxAttempts,
		Window:       cfg.RateLimit.Window,
	})
	usageSvc := service.NewUsageService(store, redisClient, logr, cfg.Usage.LimitBytes, cfg.Usage.CacheTTL)
	metricsSvc := service.NewMetricsService()

	personCodec := collection.NewCodec[models.Person]("person", validate)
	advisorCodec := collection.NewCodec[models.ClassAdvisor]("diriginte", validate)
	councilCodec := collection.NewCodec[models.CouncilMember]("profesor", validate)
	newsCodec := collection.NewCodec[models.NewsArticle]("article", validate)
	projectCodec := collection.NewCodec[models.Project]("project", validate)
	navCodec := collection.NewCodec[models.NavLinks]("navlinks", validate)

	leadership := collection.NewManager[models.Person, *models.Person](collection.Config[models.Person]{
		Store: store, Codec: personCodec, Prefix: "conducere", Logger: logr,
	})
	adminBoard := collection.NewManager[models.Person, *models.Person](collection.Config[models.Person]{
		Store: store, Codec: personCodec, Prefix: "consiliu-de-administratie", Logger: logr,
	})
	advisors := collection.NewManager[models.ClassAdvisor, *models.ClassAdvisor](collection.Config[models.ClassAdvisor]{
		Store: store, Codec: advisorCodec, Prefix: "diriginti", Logger: logr,
		KeyFunc: func(a *models.ClassAdvisor) string {
			return collection.SanitizeKey(a.Name) + "_" + collection.SanitizeKey(a.Class)
		},
	})
	council := collection.NewManager[models.CouncilMember, *models.CouncilMember](collection.Config[models.CouncilMember]{
		Store: store, Codec: councilCodec, Prefix: "consiliu-profesoral", Logger: logr,
	})
	news := collection.NewManager[models.NewsArticle, *models.NewsArticle](collection.Config[models.NewsArticle]{
		Store: store, Codec: newsCodec, Prefix: "news", Logger: logr, GuardDuplicates: true,
	})
	projects := collection.NewManager[models.Project, *models.Project](collection.Config[models.Project]{
		Store: store, Codec: projectCodec, Prefix: "projects", Logger: logr, GuardDuplicates: true,
	})

	authHandler := handler.NewAuthHandler(authSvc, cfg.Auth.CookieName, cfg.Env == config.EnvProduction)
	blobHandler := handler.NewBlobHandler(store, usageSvc, metricsSvc, cfg.Storage.PublicBaseURL, cfg.Storage.MaxUploadSize)
	newsHandler := handler.NewNewsHandler(news, newsCodec, store)
	navHandler := handler.NewNavLinksHandler(store, navCodec)
	deptHandler := handler.NewDepartmentsHandler(store)
	docsHandler := handler.NewDocumentsHandler(store)
	archiveHandler := handler.NewArchiveHandler(store)

	rosters := map[string]collectionRoutes{
		"leadership":      handler.NewCollectionHandler(leadership, "persons"),
		"admin-board":     handler.NewCollectionHandler(adminBoard, "persons"),
		"advisors":        handler.NewCollectionHandler(advisors, "diriginti"),
		"faculty-council": handler.NewCollectionHandler(council, "profesori"),
		"projects":        handler.NewCollectionHandler(projects, "projects"),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	// Stored objects are served directly off the blob root.
	r.Static("/files", cfg.Storage.RootDir)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/news", newsHandler.List)
	api.GET("/news/:id", newsHandler.Get)
	api.GET("/navbar-links", navHandler.Get)
	api.GET("/departments", deptHandler.List)
	api.GET("/documents", docsHandler.List)
	for name, routes := range rosters {
		api.GET("/"+name, routes.List)
	}

	admin := api.Group("", middleware.Session(authSvc, cfg.Auth.CookieName))
	admin.GET("/blob/list", blobHandler.List)
	admin.POST("/blob/upload", blobHandler.Upload)
	admin.DELETE("/blob/delete", blobHandler.Delete)
	admin.GET("/blob/usage", blobHandler.Usage)
	admin.PUT("/navbar-links", navHandler.Update)
	admin.POST("/archive", archiveHandler.Archive)
	for name, routes := range rosters {
		admin.POST("/"+name, routes.Add)
		admin.DELETE("/"+name, routes.Delete)
		admin.POST("/"+name+"/move", routes.Move)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
