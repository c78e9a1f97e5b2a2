package server

import (
	"net/http"

	"github.com/agriconnect/agrimarket-backend/internal/config"
	"github.com/agriconnect/agrimarket-backend/internal/handler"
	appmw "github.com/agriconnect/agrimarket-backend/internal/middleware"
	"github.com/agriconnect/agrimarket-backend/internal/notify"
	"github.com/agriconnect/agrimarket-backend/internal/repository"
	"github.com/agriconnect/agrimarket-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(db *gorm.DB, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-User-ID"},
		AllowCredentials: true,
	}))

	var notifier notify.Notifier
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		notifier = notify.NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
	}
	dispatcher := notify.NewDispatcher(notifier)

	userRepo := repository.NewUserRepository(db)
	cropRepo := repository.NewCropRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	userSvc := service.NewUserService(userRepo, cropRepo, orderRepo)
	cropSvc := service.NewCropService(cropRepo)
	orderSvc := service.NewOrderService(db, dispatcher)
	paymentSvc := service.NewPaymentService(db, dispatcher)
	messageSvc := service.NewMessageService(messageRepo, userRepo)

	userHandler := handler.NewUserHandler(userSvc)
	cropHandler := handler.NewCropHandler(cropSvc)
	orderHandler := handler.NewOrderHandler(orderSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)
	adminHandler := handler.NewAdminHandler(userSvc)
	metaHandler := handler.NewMetaHandler()

	actorMw := appmw.NewActorMiddleware(userRepo)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")
	api.POST("/register", userHandler.Register)
	api.GET("/users/:id/public", userHandler.GetPublic)
	api.GET("/meta/categories", metaHandler.Categories)
	api.GET("/meta/counties", metaHandler.Counties)

	api.GET("/me", userHandler.Me, actorMw.RequireActor)
	api.GET("/me/crops", cropHandler.ListMine, actorMw.RequireActor)

	api.GET("/crops", cropHandler.List)
	api.GET("/crops/:id", cropHandler.Get)
	api.POST("/crops", cropHandler.Create, actorMw.RequireActor)
	api.POST("/crops/:id/expire", cropHandler.Expire, actorMw.RequireActor)

	api.GET("/orders", orderHandler.List, actorMw.RequireActor)
	api.POST("/orders", orderHandler.Create, actorMw.RequireActor)
	api.GET("/orders/:id", orderHandler.Get, actorMw.RequireActor)
	api.PUT("/orders/:id/status", orderHandler.UpdateStatus, actorMw.RequireActor)

	api.POST("/payment/initiate", paymentHandler.Initiate, actorMw.RequireActor)
	api.POST("/transactions/:id/release-escrow", paymentHandler.ReleaseEscrow, actorMw.RequireActor)

	api.GET("/messages", messageHandler.List, actorMw.RequireActor)
	api.POST("/messages", messageHandler.Send, actorMw.RequireActor)

	api.GET("/admin/users", adminHandler.ListUsers, actorMw.RequireActor)
	api.GET("/admin/stats", adminHandler.Stats, actorMw.RequireActor)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Echo exposes the router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}
