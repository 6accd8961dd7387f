package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/threat-tracker/incident-api/internal/api/handler"
	"github.com/threat-tracker/incident-api/internal/api/middleware"
	"github.com/threat-tracker/incident-api/internal/core/policy"
	"github.com/threat-tracker/incident-api/internal/core/service"
	"github.com/threat-tracker/incident-api/internal/core/token"
	"github.com/threat-tracker/incident-api/internal/infrastructure/config"
	mongodb "github.com/threat-tracker/incident-api/internal/infrastructure/db/mongo"
	redisdb "github.com/threat-tracker/incident-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered. The store
// handles come in from the caller; they are created at startup and closed at
// shutdown. rdb may be nil, in which case the organization cache is skipped.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("incident"))

	// --- Dependencies ---
	issuer := token.NewIssuer(cfg.JWTSecret, token.DefaultTTL)

	users := mongodb.NewUserRepository(db)
	alerts := mongodb.NewAlertRepository(db)
	tickets := mongodb.NewTicketRepository(db)
	orgs := mongodb.NewOrganizationRepository(db)

	var orgCache service.OrganizationCache
	if rdb != nil {
		orgCache = redisdb.NewOrganizationCache(rdb)
	}

	authHandler := handler.NewAuthHandler(service.NewAuthService(users, issuer, log))
	alertHandler := handler.NewAlertHandler(service.NewAlertService(alerts, users, log))
	ticketHandler := handler.NewTicketHandler(service.NewTicketService(tickets, alerts, log))
	orgHandler := handler.NewOrganizationHandler(service.NewOrganizationService(orgs, orgCache, log))
	storeHandler := handler.NewStoreHandler(db)

	auth := middleware.Auth(issuer)

	// --- API routes ---
	g := e.Group("/api")

	g.POST("/login", authHandler.Login)
	g.POST("/register", authHandler.Register, auth, middleware.Require(policy.ActionRegisterUser))
	g.POST("/change-password", authHandler.ChangePassword)

	g.POST("/alerts", alertHandler.Create, auth, middleware.Require(policy.ActionCreateAlert))
	g.GET("/alerts", alertHandler.List, auth, middleware.Require(policy.ActionListAlerts))
	g.PUT("/alerts/:id", alertHandler.Classify, auth, middleware.Require(policy.ActionClassifyAlert))
	g.GET("/it/review", alertHandler.ListClassified, auth, middleware.Require(policy.ActionListAlerts))
	g.PUT("/alerts/:id/review", alertHandler.Review, auth, middleware.Require(policy.ActionReviewAlert))

	g.POST("/ticket", ticketHandler.Create, auth, middleware.Require(policy.ActionCreateTicket))
	g.GET("/tickets", ticketHandler.List, auth, middleware.Require(policy.ActionListTickets))
	g.PUT("/ticket/:id", ticketHandler.Update, auth, middleware.Require(policy.ActionUpdateTicket))

	g.GET("/organizations", orgHandler.List)
	g.GET("/test", storeHandler.Check)

	// --- Operational routes ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
