package main

import (
	"context"
	"log"
	"net/http"

	"shopfront/internal/address"
	"shopfront/internal/backend"
	"shopfront/internal/cart"
	"shopfront/internal/checkout"
	"shopfront/internal/config"
	"shopfront/internal/customer"
	"shopfront/internal/logger"
	"shopfront/internal/middleware"
	"shopfront/internal/session"
	"shopfront/internal/token"
	"shopfront/internal/web"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	tokens := token.NewFileStore(cfg.TokenFile)
	client := backend.NewClient(cfg.APIBaseURL, tokens)

	sessionRepo := session.NewRepository(client)
	sessions := session.NewStore(sessionRepo, tokens)

	cartRepo := cart.NewRepository(client)
	count := cart.NewCount(cartRepo, sessions)
	cartSvc := cart.NewService(cartRepo, count)

	checkoutRepo := checkout.NewRepository(client)
	flow := checkout.NewFlow(checkoutRepo, count)

	addressSvc := address.NewService(address.NewRepository(client))
	customerSvc := customer.NewService(customer.NewRepository(client))

	// Guards hold requests off with a placeholder until this settles.
	go sessions.Initialize(context.Background())

	h := web.NewHandler(sessions, cartSvc, count, flow, addressSvc, customerSvc, client)

	handler := middleware.RateLimitMiddleware(
		middleware.CORS(cfg.WebOrigin,
			logger.RequestIDMiddleware(
				logger.LoggingMiddleware(
					middleware.Recover(h.Routes()),
				),
			),
		),
	)

	logger.L().Info("storefront running",
		zap.String("port", cfg.AppPort),
		zap.String("backend", cfg.APIBaseURL),
	)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, handler))
}
