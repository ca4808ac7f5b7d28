package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"tasklist-service/models"
	"tasklist-service/session"
	"tasklist-service/store"

	"github.com/umakantv/go-utils/errs"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// errUserExists crosses the store.Update boundary when a registration hits a
// duplicate username; the check runs inside the critical section so two
// concurrent registrations cannot both pass it.
var errUserExists = errors.New("user already exists")

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	store    *store.Store
	sessions *session.Store
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(st *store.Store, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		store:    st,
		sessions: sessions,
	}
}

// Register handles POST /register - create a new account
func (h *AuthHandler) Register(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, "error", "Invalid request body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Invalid JSON"))
		return
	}

	if req.Username == "" || req.Password == "" {
		logRequest(ctx, "error", "Missing required fields", zap.String("username", req.Username))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Username and password are required"))
		return
	}

	logRequest(ctx, "info", "Registering user", zap.String("username", req.Username))

	// Hash before taking the store lock; bcrypt is deliberately slow
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logRequest(ctx, "error", "Password hashing failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Failed to process password"))
		return
	}

	err = h.store.Update(func(doc *models.Document) error {
		for _, u := range doc.Users {
			if u.Username == req.Username {
				return errUserExists
			}
		}
		doc.Users = append(doc.Users, models.User{
			Username: req.Username,
			Password: string(hashedPassword),
		})
		return nil
	})
	if errors.Is(err, errUserExists) {
		logRequest(ctx, "info", "Username taken", zap.String("username", req.Username))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("User already exists"))
		return
	}
	if err != nil {
		logRequest(ctx, "error", "Failed to save user", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Server error"))
		return
	}

	logRequest(ctx, "info", "User registered", zap.String("username", req.Username))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "User registered successfully"})
}

// Login handles POST /login - verify credentials and establish a session.
// Unknown username and wrong password produce the identical response so the
// two cases cannot be told apart.
func (h *AuthHandler) Login(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logRequest(ctx, "error", "Invalid request body", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errs.NewValidationError("Invalid JSON"))
		return
	}

	doc, err := h.store.Load()
	if err != nil {
		logRequest(ctx, "error", "Failed to load store", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errs.NewInternalServerError("Server error"))
		return
	}

	var user *models.User
	for i := range doc.Users {
		if doc.Users[i].Username == req.Username {
			user = &doc.Users[i]
			break
		}
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		logRequest(ctx, "info", "Login rejected", zap.String("username", req.Username))
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errs.NewValidationError("Invalid credentials"))
		return
	}

	// Session holds the username only, never the user record
	id := h.sessions.Create(user.Username)
	session.SetCookie(w, id)

	logRequest(ctx, "info", "Login successful", zap.String("username", user.Username))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Login successful"})
}

// Logout handles GET /logout - destroy the session and redirect to the login
// page. Always succeeds, even without an active session.
func (h *AuthHandler) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		h.sessions.Destroy(cookie.Value)
	}
	session.ClearCookie(w)

	logRequest(ctx, "info", "Logged out")

	http.Redirect(w, r, "/public/login.html", http.StatusFound)
}
