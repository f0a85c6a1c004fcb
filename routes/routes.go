// routes/routes.go
package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Ankitshukla6121/pizzapal/controllers"
	"github.com/Ankitshukla6121/pizzapal/middleware"
)

// Options carries the cross-cutting pieces route registration needs.
type Options struct {
	Session     func(http.Handler) http.Handler
	AuthLimiter *middleware.RateLimiter
	SeedRoutes  bool
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, pizzaController *controllers.PizzaController, orderController *controllers.OrderController, opts Options) {
	// Public routes
	router.HandleFunc("/health", health).Methods("GET")
	router.HandleFunc("/signup", userController.SignupPage).Methods("GET")
	router.Handle("/signup", opts.AuthLimiter.Wrap(http.HandlerFunc(userController.Signup))).Methods("POST")
	router.HandleFunc("/login", userController.LoginPage).Methods("GET")
	router.Handle("/login", opts.AuthLimiter.Wrap(http.HandlerFunc(userController.Login))).Methods("POST")
	router.HandleFunc("/logout", userController.Logout).Methods("GET")

	// Protected routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(opts.Session)
	protected.HandleFunc("/", pizzaController.Home).Methods("GET")
	protected.HandleFunc("/order", orderController.OrderPage).Methods("GET")
	protected.HandleFunc("/order", orderController.Create).Methods("POST")
	protected.HandleFunc("/orders", orderController.List).Methods("GET")

	// Catalog seeding, only in environments that opt in
	if opts.SeedRoutes {
		protected.HandleFunc("/add-pizza", pizzaController.AddPizza).Methods("GET")
	}
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
