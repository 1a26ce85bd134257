package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/duskline/hexsim/internal/application/common"
	"github.com/duskline/hexsim/internal/domain/manifest"
	"github.com/duskline/hexsim/internal/domain/shared"
	"github.com/duskline/hexsim/internal/engine"
	"github.com/duskline/hexsim/internal/infrastructure/config"
	"github.com/duskline/hexsim/internal/infrastructure/eventstream"
	"github.com/duskline/hexsim/internal/infrastructure/httpapi"
	"github.com/duskline/hexsim/internal/infrastructure/logging"
	"github.com/duskline/hexsim/internal/infrastructure/persistence"
	"github.com/duskline/hexsim/internal/infrastructure/pidfile"
)

func newRunCommand(configPath *string) *cobra.Command {
	var (
		force      bool
		strict     bool
		worldPath  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation core daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("hexsim simcore")
			fmt.Println("==============")

			fmt.Println("Loading configuration...")
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if strict {
				cfg.Sim.StrictMode = true
			}

			fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
			pf := pidfile.New(cfg.Daemon.PIDFile)
			if err := pf.Acquire(); err != nil {
				if !force {
					return fmt.Errorf("failed to acquire PID file lock: %w (use --force to kill the existing daemon)", err)
				}
				fmt.Println("Force mode enabled - killing existing daemon...")
				if err := pf.KillExisting(); err != nil {
					return fmt.Errorf("failed to kill existing daemon: %w", err)
				}
				if err := pf.Acquire(); err != nil {
					return fmt.Errorf("failed to acquire PID file lock after killing existing daemon: %w", err)
				}
			}
			defer func() {
				if err := pf.Release(); err != nil {
					fmt.Fprintf(os.Stderr, "warning: failed to release PID file: %v\n", err)
				}
			}()

			return runDaemon(cfg, worldPath)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "kill any existing daemon and start a new one")
	cmd.Flags().BoolVar(&strict, "strict", false, "panic on missed-precondition violations instead of logging and skipping")
	cmd.Flags().StringVar(&worldPath, "world", "", "path to a world seed YAML file (optional; empty world otherwise)")

	return cmd
}

func runDaemon(cfg *config.Config, worldPath string) error {
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)

	fmt.Printf("Loading manifest from %s...\n", cfg.Manifest.Path)
	m, err := manifest.LoadFile(cfg.Manifest.Path)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	tickInterval := cfg.Sim.TickInterval
	if tickInterval == 0 {
		tickInterval = time.Second / time.Duration(cfg.Sim.TickRate)
	}

	e := engine.New(engine.Config{
		TickDelta:  tickInterval.Seconds(),
		StrictMode: cfg.Sim.StrictMode,
	}, m, logger, nil)
	e.RegisterDefaultBehaviors()

	now := shared.Timestamp(0)
	if err := loadWorldSeed(worldPath, e, now); err != nil {
		return fmt.Errorf("failed to load world seed: %w", err)
	}

	store, err := persistence.Open(cfg.Persistence)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer store.Close()

	hub := eventstream.New(cfg.EventStream.MaxClients, nil)
	go hub.Run()

	mediator := common.NewMediator()
	if err := httpapi.RegisterCommands(mediator, e); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(cfg.EventStream.Path, func(w http.ResponseWriter, r *http.Request) {
		eventstream.ServeWs(hub, w, r)
	})
	mux.Handle("/commands", httpapi.Handler(mediator))
	httpServer := &http.Server{Addr: cfg.EventStream.Address, Handler: mux}
	go func() {
		fmt.Printf("Event stream listening on %s%s\n", cfg.EventStream.Address, cfg.EventStream.Path)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "event stream server error: %v\n", err)
		}
	}()

	if !cfg.Sim.StartPaused {
		e.SetState(engine.Running)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	snapshotTicker := time.NewTicker(cfg.Persistence.SnapshotInterval)
	defer snapshotTicker.Stop()

	fmt.Println("\nsimcore is running, press Ctrl+C to stop")

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nshutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
			if err := store.WriteSnapshot(e.Snapshot()); err != nil {
				fmt.Fprintf(os.Stderr, "final snapshot failed: %v\n", err)
			}
			return nil

		case <-ticker.C:
			e.Tick()
			eventstream.PublishTick(hub, e)

		case <-snapshotTicker.C:
			if err := store.WriteSnapshot(e.Snapshot()); err != nil {
				logger.Log("warn", "snapshot write failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}
