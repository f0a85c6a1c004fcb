// controllers/order.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Ankitshukla6121/pizzapal/logger"
	"github.com/Ankitshukla6121/pizzapal/middleware"
	"github.com/Ankitshukla6121/pizzapal/models"
	"github.com/Ankitshukla6121/pizzapal/stores"
	"github.com/Ankitshukla6121/pizzapal/utils"
	"github.com/Ankitshukla6121/pizzapal/views"
)

// OrderController handles order placement and listing.
type OrderController struct {
	Orders stores.OrderStore
	Pizzas stores.PizzaStore
	Users  stores.UserStore
	Email  *utils.EmailService
	Views  *views.Renderer
	Log    *logger.Logger
}

// NewOrderController creates a new OrderController.
func NewOrderController(orders stores.OrderStore, pizzas stores.PizzaStore, users stores.UserStore, email *utils.EmailService, renderer *views.Renderer, log *logger.Logger) *OrderController {
	return &OrderController{
		Orders: orders,
		Pizzas: pizzas,
		Users:  users,
		Email:  email,
		Views:  renderer,
		Log:    log,
	}
}

type orderFormPage struct {
	Pizzas []models.Pizza
	Error  string
}

type ordersPage struct {
	Orders []models.Order
}

// OrderPage renders the order form with the current catalog.
func (oc *OrderController) OrderPage(w http.ResponseWriter, r *http.Request) {
	pizzas, err := oc.Pizzas.FindAll(r.Context())
	if err != nil {
		oc.Log.Errorw("list_pizzas_failed", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	oc.Views.Render(w, "order.html", orderFormPage{Pizzas: pizzas})
}

// Create places a new order for the signed-in user and, when email is
// configured, sends a confirmation in the background.
func (oc *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	pizzaID, err := primitive.ObjectIDFromHex(r.PostFormValue("pizza_id"))
	if err != nil {
		oc.renderFormError(w, r, "Please choose a pizza.")
		return
	}
	address := r.PostFormValue("address")
	phone := r.PostFormValue("phone")
	if address == "" || phone == "" {
		oc.renderFormError(w, r, "Address and phone are required.")
		return
	}

	order := models.Order{
		UserID:       userID,
		CustomerName: claims.Name,
		PizzaID:      pizzaID,
		Address:      address,
		Phone:        phone,
		Status:       models.OrderStatusPending,
	}

	orderID, err := oc.Orders.Insert(r.Context(), order)
	if err != nil {
		oc.Log.Errorw("create_order_failed", "customer", claims.Name, "err", err)
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
		return
	}
	order.ID = orderID

	if oc.Email != nil {
		go oc.sendConfirmation(order)
	}

	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

// List renders the signed-in user's orders.
func (oc *OrderController) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	orders, err := oc.Orders.FindByUser(r.Context(), userID)
	if err != nil {
		oc.Log.Errorw("list_orders_failed", "user_id", claims.UserID, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	oc.Views.Render(w, "orders.html", ordersPage{Orders: orders})
}

func (oc *OrderController) renderFormError(w http.ResponseWriter, r *http.Request, msg string) {
	pizzas, err := oc.Pizzas.FindAll(r.Context())
	if err != nil {
		oc.Log.Errorw("list_pizzas_failed", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	oc.Views.Render(w, "order.html", orderFormPage{Pizzas: pizzas, Error: msg})
}

// sendConfirmation looks up the customer's email address and sends the
// order confirmation. Runs detached from the request; failures are
// only logged.
func (oc *OrderController) sendConfirmation(order models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := oc.Users.FindByID(ctx, order.UserID)
	if err != nil || user == nil {
		oc.Log.Errorw("confirmation_user_lookup_failed", "user_id", order.UserID.Hex(), "err", err)
		return
	}

	if err := oc.Email.SendOrderConfirmation(user.Email, order); err != nil {
		oc.Log.Errorw("confirmation_send_failed", "email", user.Email, "err", err)
	}
}
