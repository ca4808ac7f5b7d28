package server

import (
	"context"
	"net/http"
	"os"

	"tasklist-service/config"
	"tasklist-service/handlers"
	"tasklist-service/session"
	"tasklist-service/store"

	"github.com/umakantv/go-utils/httpserver"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// StartServer wires the store, session store, and handlers together and
// serves the HTTP surface until the process exits.
func StartServer(cfg config.Config) {
	// Initialize logger
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	logger.Info("Starting Tasklist Service...", zap.String("data_file", cfg.DataFile))

	st := store.New(cfg.DataFile)
	sessions := session.NewStore()

	authHandler := handlers.NewAuthHandler(st, sessions)
	taskHandler := handlers.NewTaskHandler(st, sessions)
	staticHandler := handlers.NewStaticHandler(sessions, cfg.PublicDir, cfg.ProtectedDir)

	// checkAuth resolves the session cookie for routes guarded with the
	// "session" auth type; requests without a live session get a 401.
	checkAuth := func(r *http.Request) (bool, httpserver.RequestAuth) {
		username, ok := sessions.Authenticate(r)
		if !ok {
			return false, httpserver.RequestAuth{}
		}
		return true, httpserver.RequestAuth{
			Type:   "session",
			Client: username,
			Claims: map[string]interface{}{"username": username},
		}
	}

	server := httpserver.New(cfg.Port, checkAuth)

	server.Register(httpserver.Route{
		Name:     "HealthCheck",
		Method:   "GET",
		Path:     "/health",
		AuthType: "none",
	}, httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "tasklist-service"}`))
	}))

	server.Register(httpserver.Route{
		Name:     "Home",
		Method:   "GET",
		Path:     "/",
		AuthType: "none",
	}, httpserver.HandlerFunc(staticHandler.Home))

	server.Register(httpserver.Route{
		Name:     "Dashboard",
		Method:   "GET",
		Path:     "/dashboard",
		AuthType: "session",
	}, httpserver.HandlerFunc(staticHandler.Dashboard))

	server.Register(httpserver.Route{
		Name:     "Register",
		Method:   "POST",
		Path:     "/register",
		AuthType: "none",
	}, httpserver.HandlerFunc(authHandler.Register))

	server.Register(httpserver.Route{
		Name:     "Login",
		Method:   "POST",
		Path:     "/login",
		AuthType: "none",
	}, httpserver.HandlerFunc(authHandler.Login))

	server.Register(httpserver.Route{
		Name:     "Logout",
		Method:   "GET",
		Path:     "/logout",
		AuthType: "none",
	}, httpserver.HandlerFunc(authHandler.Logout))

	server.Register(httpserver.Route{
		Name:     "ListTasks",
		Method:   "GET",
		Path:     "/tasks",
		AuthType: "session",
	}, httpserver.HandlerFunc(taskHandler.List))

	server.Register(httpserver.Route{
		Name:     "AddTask",
		Method:   "POST",
		Path:     "/add",
		AuthType: "session",
	}, httpserver.HandlerFunc(taskHandler.Add))

	server.Register(httpserver.Route{
		Name:     "EditTask",
		Method:   "PUT",
		Path:     "/tasks/{id}",
		AuthType: "session",
	}, httpserver.HandlerFunc(taskHandler.Edit))

	server.Register(httpserver.Route{
		Name:     "DeleteTask",
		Method:   "DELETE",
		Path:     "/tasks/{id}",
		AuthType: "session",
	}, httpserver.HandlerFunc(taskHandler.Delete))

	server.Register(httpserver.Route{
		Name:     "PublicAssets",
		Method:   "GET",
		Path:     "/public/{path:.*}",
		AuthType: "none",
	}, httpserver.HandlerFunc(staticHandler.ServePublic))

	server.Register(httpserver.Route{
		Name:     "ProtectedAssets",
		Method:   "GET",
		Path:     "/protected/{path:.*}",
		AuthType: "session",
	}, httpserver.HandlerFunc(staticHandler.ServeProtected))

	logger.Info("Tasklist Service started", zap.String("port", cfg.Port))

	// Start server
	if err := server.Start(); err != nil {
		logger.Error("Server failed to start", zap.Error(err))
		os.Exit(1)
	}
}
