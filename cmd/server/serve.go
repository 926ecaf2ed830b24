package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Wyydra/rendezvous/internal/adapter/driven/gateway/ws"
	"github.com/Wyydra/rendezvous/internal/adapter/driven/persistence/disk"
	"github.com/Wyydra/rendezvous/internal/adapter/driven/transcribe/stub"
	handler "github.com/Wyydra/rendezvous/internal/adapter/driving/http"
	"github.com/Wyydra/rendezvous/internal/config"
	"github.com/Wyydra/rendezvous/internal/core/service"
	"github.com/Wyydra/rendezvous/internal/logger"
	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command, args []string) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	store, err := disk.NewMediaStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	registry := service.NewRegistry()
	directory := service.NewDirectory(registry)
	relay := service.NewRelay(directory)
	mediaService := service.NewMediaService(store)
	textService := service.NewTextService(stub.NewTranscriber())

	h := handler.NewHandler(registry, directory, relay, mediaService, textService, handler.Options{
		WS: ws.Config{
			SendQueue:       cfg.WS.SendQueue,
			WriteWait:       cfg.WS.WriteWait,
			PongWait:        cfg.WS.PongWait,
			PingPeriod:      cfg.WS.PingPeriod,
			MaxMessageBytes: cfg.WS.MaxMessageBytes,
		},
		MaxUploadBytes: cfg.MaxUploadBytes,
		ICEServers:     cfg.WebRTCICEServers(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: h.NewRouter(),
	}

	serveErr := make(chan error, 1)
	go func() {
		l.Info().Str("addr", cfg.Addr()).Str("upload_dir", cfg.UploadDir).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			l.Error().Err(err).Msg("Failed to start server")
			return err
		}
	case <-quit:
	}
	l.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	// hijacked websocket connections are not tracked by Shutdown
	registry.CloseAll()
	l.Info().Msg("Server exited")
	return nil
}
