// Package http wires the HTTP surface: middleware chain, handler
// construction, and routes.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appjournal "inkwell/internal/application/journal"
	appmigration "inkwell/internal/application/migration"
	appusage "inkwell/internal/application/usage"
	"inkwell/internal/domain/usage"
	"inkwell/internal/infrastructure/auth"
	"inkwell/internal/infrastructure/cache"
	"inkwell/internal/infrastructure/config"
	"inkwell/internal/infrastructure/repository"
	"inkwell/internal/interfaces/http/handlers"
	"inkwell/internal/interfaces/http/middleware"
	"inkwell/internal/shared/logger"
)

type Router struct {
	engine *gin.Engine
	cfg    *config.Config
	logger logger.Interface

	identityMW *middleware.IdentityMiddleware

	noteHandler      *handlers.NoteHandler
	historyHandler   *handlers.HistoryHandler
	usageHandler     *handlers.UsageHandler
	migrationHandler *handlers.MigrationHandler
	healthHandler    *handlers.HealthHandler
}

// NewRouter builds all services and handlers from the shared connections.
// The Redis client is optional: without it the usage ledger simply runs
// without its advisory denial cache.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	noteRepo := repository.NewNoteRepository(db)
	detailRepo := repository.NewNoteDetailRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	guestDataRepo := repository.NewGuestDataRepository(db)

	noteService := appjournal.NewNoteService(noteRepo, detailRepo, appjournal.NewRenderer(), log)
	historyService := appjournal.NewHistoryService(historyRepo, log)
	coordinator := appmigration.NewCoordinator(guestDataRepo, log)

	tiers := usage.Tiers{
		Guest: usage.Tier{
			Name:         "guest",
			DailyLimit:   cfg.Quota.Guest.DailyLimit,
			MonthlyLimit: cfg.Quota.Guest.MonthlyLimit,
		},
		Member: usage.Tier{
			Name:         "member",
			DailyLimit:   cfg.Quota.Member.DailyLimit,
			MonthlyLimit: cfg.Quota.Member.MonthlyLimit,
		},
	}

	var ledgerOpts []appusage.Option
	if redisClient != nil {
		ledgerOpts = append(ledgerOpts, appusage.WithDecisionCache(cache.NewUsageDecisionCache(redisClient)))
	}
	ledger := appusage.NewLedger(usageRepo, tiers, log, ledgerOpts...)

	return &Router{
		engine:           gin.New(),
		cfg:              cfg,
		logger:           log,
		identityMW:       middleware.NewIdentityMiddleware(jwtService, log),
		noteHandler:      handlers.NewNoteHandler(noteService, log),
		historyHandler:   handlers.NewHistoryHandler(historyService, ledger, log),
		usageHandler:     handlers.NewUsageHandler(ledger, log),
		migrationHandler: handlers.NewMigrationHandler(coordinator, log),
		healthHandler:    handlers.NewHealthHandler(),
	}
}

// SetupRoutes installs the middleware chain and all routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(r.identityMW.Resolve())

	r.engine.GET("/healthz", r.healthHandler.Check)

	api := r.engine.Group("/api")
	{
		notes := api.Group("/notes")
		{
			notes.GET("", r.noteHandler.List)
			notes.POST("", r.noteHandler.Create)
			notes.GET("/:sid", r.noteHandler.Get)
			notes.PUT("/:sid", r.noteHandler.Update)
			notes.DELETE("/:sid", r.noteHandler.Delete)
			notes.GET("/:sid/render", r.noteHandler.Render)
			notes.GET("/:sid/details", r.noteHandler.ListDetails)
			notes.POST("/:sid/details", r.noteHandler.AddDetail)
		}

		api.GET("/history", r.historyHandler.List)
		api.POST("/history", r.historyHandler.Append)

		api.GET("/guest-data", r.migrationHandler.HasGuestData)
		api.POST("/guest-data/merge", r.migrationHandler.Merge)

		api.POST("/usage/status", r.usageHandler.Status)
		api.POST("/usage/record", r.usageHandler.Record)
	}
}

// GetEngine returns the underlying gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
