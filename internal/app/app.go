package app

import (
	assetsvc "prosper-backend/internal/application/assets"
	authsvc "prosper-backend/internal/application/auth"
	buyoutsvc "prosper-backend/internal/application/buyouts"
	contribsvc "prosper-backend/internal/application/contributions"
	exitsvc "prosper-backend/internal/application/exits"
	invsvc "prosper-backend/internal/application/investments"
	membersvc "prosper-backend/internal/application/members"
	possvc "prosper-backend/internal/application/position"
	revsvc "prosper-backend/internal/application/reversals"
	stmtsvc "prosper-backend/internal/application/statement"
	"prosper-backend/internal/config"
	"prosper-backend/internal/constants"
	"prosper-backend/internal/database"
	assetsh "prosper-backend/internal/interfaces/handlers/assets"
	authh "prosper-backend/internal/interfaces/handlers/auth"
	buyoutsh "prosper-backend/internal/interfaces/handlers/buyouts"
	contribh "prosper-backend/internal/interfaces/handlers/contributions"
	exitsh "prosper-backend/internal/interfaces/handlers/exits"
	healthh "prosper-backend/internal/interfaces/handlers/health"
	invh "prosper-backend/internal/interfaces/handlers/investments"
	membersh "prosper-backend/internal/interfaces/handlers/members"
	posh "prosper-backend/internal/interfaces/handlers/position"
	revh "prosper-backend/internal/interfaces/handlers/reversals"
	stmth "prosper-backend/internal/interfaces/handlers/statement"
	"prosper-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. The DB and Redis client are returned so the entrypoint can
// verify connectivity before listening.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	healthHandlers := &healthh.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", healthHandlers.JSON)

	var memberFinder authsvc.MemberFinder
	if db != nil {
		memberFinder = &authsvc.GormMemberFinder{DB: db}
	}
	authHandlers := &authh.Handlers{
		MemberFinder: memberFinder,
		Rdb:          rdb,
		Config:       sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	if db != nil {
		memberHandlers := &membersh.Handlers{Service: &membersvc.Service{DB: db}}
		contribHandlers := &contribh.Handlers{Service: &contribsvc.Service{DB: db}}
		invHandlers := &invh.Handlers{Service: &invsvc.Service{DB: db}}
		assetHandlers := &assetsh.Handlers{Service: &assetsvc.Service{DB: db}}
		exitHandlers := &exitsh.Handlers{Service: &exitsvc.Service{DB: db}}
		buyoutHandlers := &buyoutsh.Handlers{Service: &buyoutsvc.Service{DB: db}}
		revHandlers := &revh.Handlers{Service: &revsvc.Service{DB: db}}
		posHandlers := &posh.Handlers{Service: &possvc.Service{DB: db}}
		stmtHandlers := &stmth.Handlers{Service: &stmtsvc.Service{DB: db}}

		admin := app.Group("/api/v1/admin", middleware.RequireAuth())
		admin.Post("/members", middleware.AuthorizePermission(constants.ManageMembers), memberHandlers.CreateMember)
		admin.Get("/members/:id", middleware.AuthorizePermission(constants.ManageMembers), memberHandlers.GetMember)
		admin.Patch("/members/:id/status", middleware.AuthorizePermission(constants.ManageMembers), memberHandlers.UpdateStatus)
		admin.Post("/contribution-windows", middleware.AuthorizePermission(constants.ManageWindows), contribHandlers.CreateWindow)
		admin.Get("/contribution-windows", middleware.AuthorizePermission(constants.ManageWindows), contribHandlers.ListWindows)
		admin.Post("/contributions", middleware.AuthorizePermission(constants.RecordContribution), contribHandlers.RecordContribution)
		admin.Post("/penalties", middleware.AuthorizePermission(constants.RecordPenalty), contribHandlers.RecordPenalty)
		admin.Post("/investments", middleware.AuthorizePermission(constants.RecordInvestment), invHandlers.RecordInvestment)
		admin.Post("/assets", middleware.AuthorizePermission(constants.RecordAsset), assetHandlers.RecordAsset)
		admin.Post("/buyouts", middleware.AuthorizePermission(constants.RecordBuyOut), buyoutHandlers.RecordBuyOut)
		admin.Post("/exit-requests", middleware.AuthorizePermission(constants.ManageExitQueue), exitHandlers.CreateExitRequest)
		admin.Post("/exit-requests/:id/fulfill", middleware.AuthorizePermission(constants.ManageExitQueue), exitHandlers.Fulfill)
		admin.Post("/exit-requests/:id/cancel", middleware.AuthorizePermission(constants.ManageExitQueue), exitHandlers.Cancel)
		admin.Get("/exit-queue", middleware.AuthorizePermission(constants.ViewExitQueue), exitHandlers.ListQueue)
		admin.Post("/reversals", middleware.AuthorizePermission(constants.CreateReversal), revHandlers.CreateReversal)

		me := app.Group("/api/v1/me", middleware.RequireAuth(), middleware.AuthorizePermission(constants.ViewOwnData))
		me.Get("/position", posHandlers.GetOwnPosition)
		me.Get("/statement", stmtHandlers.GetOwnStatement)

		group := app.Group("/api/v1/group", middleware.RequireAuth(), middleware.AuthorizePermission(constants.ViewAggregates))
		group.Get("/aggregates", posHandlers.GetGroupAggregates)
	}

	return app, db, rdb, nil
}
