// File: gkmslots/main.go
package main

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gkmslots/config"
	"gkmslots/cron"
	"gkmslots/database"
	"gkmslots/database/events"
	"gkmslots/database/kv"
	notesRepo "gkmslots/database/repository/notes"
	slotsRepo "gkmslots/database/repository/slots"
	"gkmslots/database/tree"
	"gkmslots/handlers"
	"gkmslots/middleware"
	"gkmslots/routes"
	"gkmslots/services/board"
	"gkmslots/services/migration"
	"gkmslots/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := utils.NewLocationClock(cfg.Location())
	var checks []utils.HealthCheck

	// Local key-value store: the board itself in local mode, migration
	// flags and legacy data in remote mode.
	var localStore kv.Store
	switch cfg.LocalStore {
	case "redis":
		client := utils.GetStoreClient()
		localStore = kv.NewRedisStore(client)
		checks = append(checks, utils.HealthCheck{Name: "redisStore", Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
	default:
		localStore = kv.NewMemoryStore()
	}

	var notifier events.Notifier
	switch cfg.Notifier {
	case "redis":
		client := utils.GetEventsClient()
		rn, err := events.NewRedisNotifier(ctx, client, logger)
		if err != nil {
			logger.Fatal("main: failed to subscribe to change events", zap.Error(err))
		}
		defer rn.Close()
		notifier = rn
		checks = append(checks, utils.HealthCheck{Name: "redisEvents", Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}})
	default:
		notifier = events.NewHub()
	}

	// repositories.
	var slots slotsRepo.SlotRepository
	var notes notesRepo.NoteRepository
	runner := &migration.Runner{Flags: localStore, Clock: clock, Logger: logger}

	if cfg.StorageBackend == "remote" {
		remote, check := openRemoteTree(ctx, cfg.RemoteStore, logger)
		if check != nil {
			checks = append(checks, *check)
		}
		slots = slotsRepo.NewRemoteSlotRepo(remote, clock, notifier, cfg.RemotePollInterval, logger)
		notes = notesRepo.NewRemoteNoteRepo(remote, clock, notifier, cfg.RemotePollInterval, logger)
		runner.Local = localStore
	} else {
		partition := kv.NewPartition(localStore, clock, logger)
		slots = slotsRepo.NewLocalSlotRepo(partition, notifier, logger)
		notes = notesRepo.NewLocalNoteRepo(partition, notifier, cfg.NotesCap, logger)
	}
	runner.Slots = slots
	runner.Notes = notes

	// Upgrade persisted data before anyone subscribes.
	if _, err := runner.Run(ctx); err != nil {
		logger.Error("main: migration failed, will retry on next start", zap.Error(err))
	}

	// services.
	boardService := board.NewDefaultBoardService(slots, notes, notifier, clock, cfg.DraftDebounce, logger)
	defer boardService.Close()

	worker, err := cron.NewRolloverWorker(boardService, cfg.RolloverSchedule, cfg.Location(), logger)
	if err != nil {
		logger.Fatal("main: failed to schedule rollover", zap.Error(err))
	}
	worker.RunOnce()
	worker.Start()
	defer worker.Stop()

	utils.StartHealthMonitor(ctx, 60*time.Second, checks)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	boardHandler := handlers.NewBoardHandler(boardService)
	handlerBundle := handlers.NewHandlerBundle(boardHandler, handlers.HealthHandler(boardService.WeekID))
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
		// Open event streams end when the process is told to stop.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	logger.Sugar().Infof("Starting server on %s (week %s)...", srv.Addr, boardService.WeekID())
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Sugar().Warnf("main: failed to disconnect MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// openRemoteTree connects the shared tree store named by kind.
func openRemoteTree(ctx context.Context, kind string, logger *zap.Logger) (tree.Tree, *utils.HealthCheck) {
	switch kind {
	case "firebase":
		utils.FirebaseInit()
		client := utils.RealtimeDB
		return tree.NewFirebaseTree(client), &utils.HealthCheck{Name: "firebase", Ping: func(ctx context.Context) error {
			var weeks map[string]bool
			return client.NewRef("weeks").GetShallow(ctx, &weeks)
		}}
	case "mongo":
		db := database.InitDB()
		if err := tree.EnsureIndexes(ctx, db); err != nil {
			logger.Fatal("main: failed to create indexes", zap.Error(err))
		}
		return tree.NewMongoTree(db), &utils.HealthCheck{Name: "mongo", Ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		}}
	default:
		logger.Warn("main: remote store is in memory; data is lost on restart")
		return tree.NewMemoryTree(), nil
	}
}
