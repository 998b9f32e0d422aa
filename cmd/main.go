package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "smart_home_face/docs"
	"smart_home_face/internal/camera"
	"smart_home_face/internal/config"
	"smart_home_face/internal/gateway"
	"smart_home_face/internal/handlers"
	"smart_home_face/internal/logger"
	"smart_home_face/internal/repository"
	"smart_home_face/internal/repository/db"
	"smart_home_face/internal/server"
	"smart_home_face/internal/service"
)

const (
	defaultConfigPath = "configs/config.yml"
	shutdownTimeout   = 10 * time.Second
)

// @title                       Smart Home Face API
// @version                     1.0
// @description                 Local dashboard API for the smart-home face authentication client.
// @BasePath                    /
// @securityDefinitions.apikey  SessionAuth
// @in                          header
// @name                        Cookie
func main() {
	// load config.yml + SMARTHOME_* env
	cfg, err := config.Load(configPath())
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	// open DB
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	gw := newGateway(cfg, log)
	services := service.NewService(repos, gw, log, service.Options{DefaultTheme: cfg.Theme.Default})

	cam := camera.NewCapture(camera.NewSyntheticDevice(
		camera.WithSize(cfg.Camera.Width, cfg.Camera.Height),
		camera.WithWarmup(cfg.Camera.Warmup),
	), log.Component("camera"))
	defer cam.Close()

	apiHandler := handlers.NewHandler(services, cam, log.Component("http"))

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := services.Theme.Init(ctx); err != nil {
		log.Warnw("theme_init_failed", "err", err)
	}
	sess := services.Auth.CheckAuth(ctx)
	log.Infow("session_restored", "authenticated", sess.Authenticated, "mode", cfg.Backend.Mode)

	// device and sensor polling
	stopPolling := services.Devices.StartPolling(ctx, cfg.Polling.Interval)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, stopPolling, srv, log)
}

func configPath() string {
	if p := os.Getenv("SMARTHOME_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigPath); err != nil {
		return ""
	}
	return defaultConfigPath
}

// newGateway picks the backend once for the life of the process.
func newGateway(cfg *config.Config, log *logger.Logger) gateway.Gateway {
	sim := gateway.NewSimulation(log.Component("simulation"),
		gateway.WithLatency(cfg.Simulation.Latency),
		gateway.WithSigningKey(cfg.Simulation.SigningKey),
		gateway.WithTokenTTL(cfg.Simulation.TokenTTL),
		gateway.WithSeed(cfg.Simulation.Seed),
	)
	if cfg.Simulated() {
		log.Infow("backend_selected", "mode", config.ModeSimulation)
		return sim
	}

	retry := gateway.DefaultRetryConfig()
	if cfg.Backend.Retry.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.Backend.Retry.MaxAttempts
	}
	if cfg.Backend.Retry.InitialDelay > 0 {
		retry.InitialDelay = cfg.Backend.Retry.InitialDelay
	}
	opts := []gateway.HTTPOption{gateway.WithRetryConfig(retry)}
	if cfg.Backend.Fallback {
		opts = append(opts, gateway.WithListFallback(sim))
	}
	log.Infow("backend_selected", "mode", config.ModeLive, "base_url", cfg.Backend.BaseURL, "fallback", cfg.Backend.Fallback)
	return gateway.NewHTTPGateway(cfg.Backend.BaseURL, log.Component("gateway"), opts...)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
	log.Infow("server_started", "port", port)
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, stopPolling func(), srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	stopPolling()
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
