package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"tasklist-service/session"
)

func newStaticEnv(t *testing.T) (*StaticHandler, *session.Store) {
	t.Helper()

	publicDir := t.TempDir()
	protectedDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(publicDir, "login.html"), []byte("<html>login</html>"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(protectedDir, "index.html"), []byte("<html>dashboard</html>"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	sessions := session.NewStore()
	return NewStaticHandler(sessions, publicDir, protectedDir), sessions
}

func TestHomeRedirects(t *testing.T) {
	static, sessions := newStaticEnv(t)

	w := call(t, static.Home, "GET", "/", "", nil, nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/public/login.html" {
		t.Errorf("Anonymous home should redirect to login, got %d -> %s", w.Code, w.Header().Get("Location"))
	}

	cookie := &http.Cookie{Name: session.CookieName, Value: sessions.Create("alice")}
	w = call(t, static.Home, "GET", "/", "", cookie, nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/protected/index.html" {
		t.Errorf("Authenticated home should redirect to dashboard, got %d -> %s", w.Code, w.Header().Get("Location"))
	}
}

func TestDashboardRequiresSession(t *testing.T) {
	static, sessions := newStaticEnv(t)

	if w := call(t, static.Dashboard, "GET", "/dashboard", "", nil, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}

	cookie := &http.Cookie{Name: session.CookieName, Value: sessions.Create("alice")}
	if w := call(t, static.Dashboard, "GET", "/dashboard", "", cookie, nil); w.Code != http.StatusFound {
		t.Errorf("Expected redirect, got %d", w.Code)
	}
}

func TestPublicAssetsNeedNoSession(t *testing.T) {
	static, _ := newStaticEnv(t)

	w := call(t, static.ServePublic, "GET", "/public/login.html", "", nil, map[string]string{"path": "login.html"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != "<html>login</html>" {
		t.Errorf("Unexpected body: %s", w.Body.String())
	}
}

func TestProtectedAssetsGuarded(t *testing.T) {
	static, sessions := newStaticEnv(t)

	vars := map[string]string{"path": "index.html"}
	if w := call(t, static.ServeProtected, "GET", "/protected/index.html", "", nil, vars); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without session, got %d", w.Code)
	}

	cookie := &http.Cookie{Name: session.CookieName, Value: sessions.Create("alice")}
	w := call(t, static.ServeProtected, "GET", "/protected/index.html", "", cookie, vars)
	if w.Code != http.StatusOK || w.Body.String() != "<html>dashboard</html>" {
		t.Errorf("Expected dashboard page, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPathTraversalBlocked(t *testing.T) {
	static, _ := newStaticEnv(t)

	// A secret outside the public dir must stay unreachable
	secret := filepath.Join(filepath.Dir(static.publicDir), "secret.txt")
	if err := os.WriteFile(secret, []byte("secret"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	w := call(t, static.ServePublic, "GET", "/public/x", "", nil, map[string]string{"path": "../secret.txt"})
	if w.Body.String() == "secret" {
		t.Error("Path traversal must not escape the asset directory")
	}
}
