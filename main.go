package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogClient "tadreeb/clients/catalog"
	checkoutClient "tadreeb/clients/checkout"
	scheduleClient "tadreeb/clients/schedule"
	"tadreeb/config"
	"tadreeb/handlers"
	"tadreeb/middleware"
	"tadreeb/routes"
	"tadreeb/services/availability"
	"tadreeb/services/catalog"
	"tadreeb/services/checkout"
	"tadreeb/services/wizard"
	"tadreeb/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// Collaborator clients.
	schedAPI := scheduleClient.NewHTTPClient(config.AppConfig.ScheduleAPIBase)
	catAPI := catalogClient.NewHTTPClient(config.AppConfig.CatalogAPIBase)

	var checkoutAPI checkoutClient.Client
	if config.AppConfig.CheckoutProvider == "stripe" {
		checkoutAPI = checkoutClient.NewStripeClient(config.AppConfig.StripeKey)
	} else {
		checkoutAPI = checkoutClient.NewHTTPClient(config.AppConfig.CheckoutAPIBase, checkoutClient.TokenFrom)
	}

	// Services.
	availabilityModel := availability.NewModel(schedAPI, logger)

	listCache, err := catalog.NewListCache(config.AppConfig.CatalogCacheSize, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize list cache: %v", err)
	}
	catalogService := catalog.NewService(catAPI, listCache)

	handoff := checkout.NewHandoff(checkoutAPI, config.AppConfig.SignUpURL, logger)

	sessionStore := wizard.NewRedisSessionStore(utils.GetSessionCacheClient(), config.SessionTTL())
	wizardService := &wizard.Service{
		Store:        sessionStore,
		Availability: availabilityModel,
		Handoff:      handoff,
		ReturnURL:    config.AppConfig.ReturnURLBase,
		CancelURL:    config.AppConfig.CancelURLBase,
		Logger:       logger,
	}

	// Handlers.
	bundle := &routes.HandlerBundle{
		Booking:      handlers.NewBookingHandler(wizardService, logger),
		Catalog:      handlers.NewCatalogHandler(catalogService, logger),
		Availability: handlers.NewAvailabilityHandler(availabilityModel, logger),
	}
	routes.RegisterRoutes(router, bundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
