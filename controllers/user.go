package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Ankitshukla6121/pizzapal/auth"
	"github.com/Ankitshukla6121/pizzapal/logger"
	"github.com/Ankitshukla6121/pizzapal/middleware"
	"github.com/Ankitshukla6121/pizzapal/stores"
	"github.com/Ankitshukla6121/pizzapal/views"
)

// UserController handles signup, login and logout.
type UserController struct {
	Auth  *auth.Service
	Views *views.Renderer
	Log   *logger.Logger
}

// NewUserController creates a new UserController.
func NewUserController(authService *auth.Service, renderer *views.Renderer, log *logger.Logger) *UserController {
	return &UserController{Auth: authService, Views: renderer, Log: log}
}

type authPage struct {
	Error string
}

// SignupPage renders the signup form.
func (uc *UserController) SignupPage(w http.ResponseWriter, r *http.Request) {
	uc.Views.Render(w, "signup.html", authPage{})
}

// Signup handles new registrations. Failures re-render the form with a
// fixed message; underlying errors are logged, never shown to clients.
func (uc *UserController) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if name == "" || email == "" || password == "" {
		uc.Views.Render(w, "signup.html", authPage{Error: "All fields are required."})
		return
	}

	_, err := uc.Auth.SignUp(r.Context(), name, email, password)
	if err != nil {
		if errors.Is(err, stores.ErrDuplicateEmail) {
			uc.Views.Render(w, "signup.html", authPage{Error: "That email is already registered."})
			return
		}
		uc.Log.Errorw("signup_failed", "email", email, "err", err)
		uc.Views.Render(w, "signup.html", authPage{Error: "Something went wrong. Please try again."})
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage renders the login form.
func (uc *UserController) LoginPage(w http.ResponseWriter, r *http.Request) {
	uc.Views.Render(w, "login.html", authPage{})
}

// Login authenticates credentials, mints a session token and sets it
// as an HTTP-only cookie.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := uc.Auth.Authenticate(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			uc.Views.Render(w, "login.html", authPage{Error: "User not found!"})
		case errors.Is(err, auth.ErrInvalidPassword):
			uc.Views.Render(w, "login.html", authPage{Error: "Invalid credentials!"})
		default:
			uc.Log.Errorw("login_failed", "email", email, "err", err)
			uc.Views.Render(w, "login.html", authPage{Error: "Something went wrong. Please try again."})
		}
		return
	}

	token, err := uc.Auth.IssueToken(user.ID.Hex(), user.Name)
	if err != nil {
		uc.Log.Errorw("issue_token_failed", "email", email, "err", err)
		uc.Views.Render(w, "login.html", authPage{Error: "Something went wrong. Please try again."})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.TokenTTL),
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session cookie. There is no server-side state to
// revoke.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
