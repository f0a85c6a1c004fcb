package controllers

import (
	"fmt"
	"net/http"

	"github.com/Ankitshukla6121/pizzapal/auth"
	"github.com/Ankitshukla6121/pizzapal/logger"
	"github.com/Ankitshukla6121/pizzapal/middleware"
	"github.com/Ankitshukla6121/pizzapal/models"
	"github.com/Ankitshukla6121/pizzapal/stores"
	"github.com/Ankitshukla6121/pizzapal/views"
)

// PizzaController serves the catalog pages.
type PizzaController struct {
	Pizzas stores.PizzaStore
	Views  *views.Renderer
	Log    *logger.Logger
}

// NewPizzaController creates a new PizzaController.
func NewPizzaController(pizzas stores.PizzaStore, renderer *views.Renderer, log *logger.Logger) *PizzaController {
	return &PizzaController{Pizzas: pizzas, Views: renderer, Log: log}
}

type homePage struct {
	User   *auth.Claims
	Pizzas []models.Pizza
}

// Home renders the catalog listing for the signed-in user.
func (pc *PizzaController) Home(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	pizzas, err := pc.Pizzas.FindAll(r.Context())
	if err != nil {
		pc.Log.Errorw("list_pizzas_failed", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	pc.Views.Render(w, "index.html", homePage{User: claims, Pizzas: pizzas})
}

// AddPizza inserts a hardcoded catalog entry. Only reachable when seed
// routes are enabled in the configuration.
func (pc *PizzaController) AddPizza(w http.ResponseWriter, r *http.Request) {
	pizza := models.Pizza{
		Name:        "Margherita",
		Price:       200,
		Description: "Classic Margherita Pizza",
		Ingredients: []string{"tomato", "mozzarella", "basil"},
	}

	if _, err := pc.Pizzas.Insert(r.Context(), pizza); err != nil {
		pc.Log.Errorw("add_pizza_failed", "err", err)
		http.Error(w, "Failed to add pizza", http.StatusInternalServerError)
		return
	}

	fmt.Fprint(w, "Pizza added")
}
