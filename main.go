// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/Ankitshukla6121/pizzapal/auth"
	"github.com/Ankitshukla6121/pizzapal/config"
	"github.com/Ankitshukla6121/pizzapal/controllers"
	"github.com/Ankitshukla6121/pizzapal/logger"
	"github.com/Ankitshukla6121/pizzapal/middleware"
	"github.com/Ankitshukla6121/pizzapal/routes"
	"github.com/Ankitshukla6121/pizzapal/stores"
	"github.com/Ankitshukla6121/pizzapal/utils"
	"github.com/Ankitshukla6121/pizzapal/views"
)

const (
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	cfg := config.Load()
	log := logger.Get(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		log.Fatalw("JWT_SECRET is not set")
	}

	// Connect to MongoDB; a dead database is fatal at startup rather
	// than a degraded server.
	client, err := stores.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalw("failed to connect to mongo", "err", err)
	}
	defer func() {
		if derr := client.Disconnect(context.Background()); derr != nil {
			log.Errorw("mongo disconnect failed", "err", derr)
		}
	}()

	st := stores.New(client.Database(cfg.DBName))
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := st.EnsureIndexes(ctx); err != nil {
			log.Fatalw("failed to ensure indexes", "err", err)
		}
	}

	authService := auth.NewService(st.Users, []byte(cfg.JWTSecret))
	emailService := utils.NewEmailService(cfg.PostmarkToken, cfg.EmailSender)
	if emailService == nil {
		log.Infow("email disabled: POSTMARK_API_TOKEN not set")
	}

	renderer, err := views.New("templates/*.html", log)
	if err != nil {
		log.Fatalw("failed to parse templates", "err", err)
	}

	// Initialize controllers
	userController := controllers.NewUserController(authService, renderer, log)
	pizzaController := controllers.NewPizzaController(st.Pizzas, renderer, log)
	orderController := controllers.NewOrderController(st.Orders, st.Pizzas, st.Users, emailService, renderer, log)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, pizzaController, orderController, routes.Options{
		Session:     middleware.Session(authService),
		AuthLimiter: middleware.NewRateLimiter(rate.Limit(cfg.AuthRPS), cfg.AuthBurst, cfg.TrustProxy),
		SeedRoutes:  cfg.SeedRoutes,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(srv, log)
}

// waitForShutdown blocks until SIGINT/SIGTERM, then drains in-flight
// requests before returning.
func waitForShutdown(srv *http.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
