package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"path"
	"path/filepath"

	"tasklist-service/session"

	"github.com/gorilla/mux"
	"github.com/umakantv/go-utils/errs"
)

// StaticHandler serves the browser pages: a public area (login/register) and
// a protected area (dashboard) that requires an active session.
type StaticHandler struct {
	sessions     *session.Store
	publicDir    string
	protectedDir string
}

// NewStaticHandler creates a new static asset handler.
func NewStaticHandler(sessions *session.Store, publicDir, protectedDir string) *StaticHandler {
	return &StaticHandler{
		sessions:     sessions,
		publicDir:    publicDir,
		protectedDir: protectedDir,
	}
}

// Home handles GET / - send the visitor to the login page or the dashboard
// depending on whether they have a session.
func (h *StaticHandler) Home(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Authenticate(r); ok {
		http.Redirect(w, r, "/protected/index.html", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/public/login.html", http.StatusFound)
}

// Dashboard handles GET /dashboard - protected redirect to the dashboard page
func (h *StaticHandler) Dashboard(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Authenticate(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errs.NewValidationError("Unauthorized"))
		return
	}
	http.Redirect(w, r, "/protected/index.html", http.StatusFound)
}

// ServePublic handles GET /public/{path} - no auth required
func (h *StaticHandler) ServePublic(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	serveFrom(h.publicDir, w, r)
}

// ServeProtected handles GET /protected/{path} - requires an active session
func (h *StaticHandler) ServeProtected(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Authenticate(r); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errs.NewValidationError("Unauthorized"))
		return
	}
	serveFrom(h.protectedDir, w, r)
}

// serveFrom serves the requested file from dir. The path is cleaned rooted at
// "/" first so ".." segments cannot escape the asset directory.
func serveFrom(dir string, w http.ResponseWriter, r *http.Request) {
	rel := path.Clean("/" + mux.Vars(r)["path"])
	http.ServeFile(w, r, filepath.Join(dir, filepath.FromSlash(rel)))
}
