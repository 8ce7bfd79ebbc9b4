package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/example/ai-editor/internal/config"
	"github.com/example/ai-editor/internal/geminiclient"
	"github.com/example/ai-editor/internal/handlers"
	"github.com/example/ai-editor/internal/logging"
	"github.com/example/ai-editor/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.GinMode == gin.DebugMode)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := geminiclient.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
	if err != nil {
		logger.Fatal("failed to connect to image service", zap.Error(err))
	}
	defer client.Close() //nolint:errcheck

	guard := initFlightGuard(ctx, cfg.Redis.Addr, logger)
	session := usecase.NewSession("default", client, guard, logger, cfg.Editor.ProcessTimeout, cfg.Editor.FlightTTL)

	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	r.MaxMultipartMemory = cfg.Editor.MaxUploadBytes
	handlers.RegisterRoutes(r, session, handlers.Options{
		MaxUploadBytes: cfg.Editor.MaxUploadBytes,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	logger.Info("image editor listening", zap.String("addr", cfg.Server.Addr), zap.String("model", cfg.Gemini.Model))
	if err := serveHTTPServer(server, cfg.Server.ShutdownTimeout, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// initFlightGuard uses Redis when an address is configured and falls back to
// process memory otherwise.
func initFlightGuard(ctx context.Context, addr string, logger *zap.Logger) usecase.FlightGuard {
	if addr == "" {
		logger.Info("using in-memory flight guard")
		return usecase.NewMemoryFlightGuard()
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Fatal("redis connection failed", zap.Error(err), zap.String("addr", addr))
	}
	logger.Info("using redis flight guard", zap.String("addr", addr))
	return usecase.NewRedisFlightGuard(client)
}

func serveHTTPServer(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	return serveHTTPServerWithOptions(server, shutdownTimeout, logger, nil, nil)
}

// serveHTTPServerWithOptions serves until the server fails or a shutdown
// signal arrives, then drains in-flight requests for up to shutdownTimeout.
// A long-running image submission keeps its request open, so the timeout
// bounds how long a shutdown waits for it.
func serveHTTPServerWithOptions(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger, listener net.Listener, signalCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if listener != nil {
			err = server.Serve(listener)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var (
		sigCh       <-chan os.Signal
		stopSignals func()
	)

	if signalCh != nil {
		sigCh = signalCh
		stopSignals = func() {}
	} else {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		sigCh = ch
		stopSignals = func() {
			signal.Stop(ch)
		}
	}
	defer stopSignals()

	select {
	case err := <-errCh:
		return err
	case sig, ok := <-sigCh:
		if !ok {
			return <-errCh
		}
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}
