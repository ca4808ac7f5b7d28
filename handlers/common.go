package handlers

import (
	"context"

	"github.com/umakantv/go-utils/httpserver"
	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// logRequest logs a handler event with the route details from the httpserver
// context attached as structured fields. When the request carries an
// authenticated session the username is included as well.
func logRequest(ctx context.Context, level string, message string, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.String("route", httpserver.GetRouteName(ctx)),
		zap.String("method", httpserver.GetRouteMethod(ctx)),
		zap.String("path", httpserver.GetRoutePath(ctx)),
	}, fields...)

	if auth := httpserver.GetRequestAuth(ctx); auth != nil {
		allFields = append(allFields, zap.String("user", auth.Client))
	}

	switch level {
	case "error":
		logger.Error(message, allFields...)
	case "debug":
		logger.Debug(message, allFields...)
	default:
		logger.Info(message, allFields...)
	}
}
