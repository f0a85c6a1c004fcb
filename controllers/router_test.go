package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/time/rate"

	"github.com/Ankitshukla6121/pizzapal/auth"
	"github.com/Ankitshukla6121/pizzapal/controllers"
	"github.com/Ankitshukla6121/pizzapal/logger"
	"github.com/Ankitshukla6121/pizzapal/middleware"
	"github.com/Ankitshukla6121/pizzapal/models"
	"github.com/Ankitshukla6121/pizzapal/routes"
	"github.com/Ankitshukla6121/pizzapal/stores"
	"github.com/Ankitshukla6121/pizzapal/views"
)

// ---- Store mocks ----

type memUserStore struct {
	byEmail map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: make(map[string]*models.User)}
}

func (m *memUserStore) Create(_ context.Context, user models.User) (primitive.ObjectID, error) {
	if _, ok := m.byEmail[user.Email]; ok {
		return primitive.NilObjectID, stores.ErrDuplicateEmail
	}
	user.ID = primitive.NewObjectID()
	m.byEmail[user.Email] = &user
	return user.ID, nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type memPizzaStore struct {
	pizzas []models.Pizza
}

func (m *memPizzaStore) Insert(_ context.Context, pizza models.Pizza) (primitive.ObjectID, error) {
	pizza.ID = primitive.NewObjectID()
	m.pizzas = append(m.pizzas, pizza)
	return pizza.ID, nil
}

func (m *memPizzaStore) FindAll(_ context.Context) ([]models.Pizza, error) {
	return m.pizzas, nil
}

type memOrderStore struct {
	orders []models.Order
}

func (m *memOrderStore) Insert(_ context.Context, order models.Order) (primitive.ObjectID, error) {
	order.ID = primitive.NewObjectID()
	m.orders = append(m.orders, order)
	return order.ID, nil
}

func (m *memOrderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// ---- Test harness ----

type testApp struct {
	router *mux.Router
	auth   *auth.Service
	users  *memUserStore
	pizzas *memPizzaStore
	orders *memOrderStore
}

func newTestApp(t *testing.T, seedRoutes bool) *testApp {
	t.Helper()

	log := logger.Get("error")
	renderer, err := views.New("../templates/*.html", log)
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	users := newMemUserStore()
	pizzas := &memPizzaStore{}
	orders := &memOrderStore{}
	authService := auth.NewService(users, []byte("controller-test-key"))

	userController := controllers.NewUserController(authService, renderer, log)
	pizzaController := controllers.NewPizzaController(pizzas, renderer, log)
	orderController := controllers.NewOrderController(orders, pizzas, users, nil, renderer, log)

	limiter := middleware.NewRateLimiter(rate.Limit(1000), 1000, false)
	t.Cleanup(limiter.Stop)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, pizzaController, orderController, routes.Options{
		Session:     middleware.Session(authService),
		AuthLimiter: limiter,
		SeedRoutes:  seedRoutes,
	})

	return &testApp{router: router, auth: authService, users: users, pizzas: pizzas, orders: orders}
}

func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// sessionCookie signs up a user (if needed) and returns a valid
// session cookie for them.
func (a *testApp) sessionCookie(t *testing.T, name, email, password string) *http.Cookie {
	t.Helper()

	var id string
	if existing, _ := a.users.FindByEmail(context.Background(), email); existing != nil {
		id = existing.ID.Hex()
	} else {
		created, err := a.auth.SignUp(context.Background(), name, email, password)
		if err != nil {
			t.Fatalf("SignUp failed: %v", err)
		}
		id = created
	}

	token, err := a.auth.IssueToken(id, name)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookie, Value: token}
}
