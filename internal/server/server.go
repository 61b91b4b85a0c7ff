/*
Package server implements the application's network transport layer.
It initializes the HTTP server, configures timeouts, and manages
core service dependencies like the database and router.
*/
package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/config"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/database"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/farm"
)

// Server defines the configuration and dependencies for the HTTP service.
type Server struct {
	// port specifies the TCP port the server will listen on.
	port int

	// db provides access to the database service and connection pool.
	db database.Service

	// cfg holds the process-wide settings loaded at startup.
	cfg *config.AppConfig

	// farm bundles the advisory API handlers.
	farm *farm.Handler

	startTime time.Time
}

// NewServer wires the handlers into a configured *http.Server with
// production-ready network timeouts.
func NewServer(cfg *config.AppConfig, db database.Service, handler *farm.Handler) *http.Server {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port == 0 {
		port = 8080
	}

	newApp := &Server{
		port:      port,
		db:        db,
		cfg:       cfg,
		farm:      handler,
		startTime: time.Now(),
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", newApp.port),
		Handler:      newApp.RegisterRoutes(), // Injected from routes.go
		IdleTimeout:  time.Minute,             // Time to wait for the next request on keep-alive connections.
		ReadTimeout:  10 * time.Second,        // Maximum duration for reading the entire request.
		WriteTimeout: 30 * time.Second,        // Maximum duration before timing out writes of the response.
	}

	return server
}
