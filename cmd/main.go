package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/RoyceAzure/lab/foodorder/docs"
	"github.com/RoyceAzure/lab/foodorder/internal/api/handler"
	"github.com/RoyceAzure/lab/foodorder/internal/api/router"
	"github.com/RoyceAzure/lab/foodorder/internal/appcontext"
	"github.com/RoyceAzure/lab/foodorder/internal/config"
)

// @title foodorder
// @version 1.0
// @description 訂餐結帳與付款對帳服務

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        Authorization
// @description                 Description for Authorization header: Type "Bearer" followed by a space and the token. Example: "Bearer {token}"

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}
	logger := app.Logger

	// 初始化 handler
	server := handler.NewServer(
		handler.NewCheckoutHandler(app.CheckoutService),
		handler.NewPaymentHandler(app.WebhookService),
		handler.NewOrderHandler(app.OrderService),
		handler.NewRestaurantHandler(app.CatalogService),
		handler.NewHealthHandler(map[string]handler.Pinger{
			"database": app.DbDao,
		}),
	)

	// 設置路由
	r := router.SetupRouter(server, app.TokenMaker, app.CheckoutLimiter, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownCompleted := make(chan struct{}, 1)
	go func() {
		<-sigChan
		logger.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Printf("application shutdown error: %v", err)
		}

		shutdownCompleted <- struct{}{}
	}()

	logger.Info().Str("addr", srv.Addr).Msg("Server starting")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server stopped unexpectedly")
	}
	<-shutdownCompleted
	log.Printf("closed completed")
}
