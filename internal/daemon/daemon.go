package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Daemon represents the rental HTTP service process
type Daemon struct {
	server          *http.Server
	shutdownTimeout time.Duration
	logger          *zap.Logger
	ctx             context.Context
	cancel          context.CancelFunc
	ready           chan struct{}
	readyOnce       sync.Once
	mu              sync.Mutex // Protects addr, startedAt and running
	addr            net.Addr
	startedAt       time.Time
	running         bool
}

// NewDaemon creates a new daemon serving handler on addr
func NewDaemon(addr string, handler http.Handler, shutdownTimeout time.Duration, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
		ctx:             ctx,
		cancel:          cancel,
		ready:           make(chan struct{}),
	}
}

// Start starts the daemon and blocks until SIGINT/SIGTERM, Stop or a
// server failure. In-flight requests get shutdownTimeout to finish.
func (d *Daemon) Start() error {
	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	return d.run(d.ctx, sigChan)
}

// RunWithTimeout runs the daemon until the timeout elapses (for testing)
func (d *Daemon) RunWithTimeout(timeout time.Duration) error {
	d.logger.Info("Daemon started with timeout", zap.Duration("timeout", timeout))

	timeoutCtx, timeoutCancel := context.WithTimeout(d.ctx, timeout)
	defer timeoutCancel()

	return d.run(timeoutCtx, nil)
}

func (d *Daemon) run(ctx context.Context, sigChan <-chan os.Signal) error {
	listener, err := net.Listen("tcp", d.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", d.server.Addr, err)
	}

	d.mu.Lock()
	d.addr = listener.Addr()
	d.startedAt = time.Now()
	d.running = true
	d.mu.Unlock()
	d.readyOnce.Do(func() { close(d.ready) })

	defer func() {
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
	}()

	d.logger.Info("Daemon started",
		zap.String("addr", listener.Addr().String()),
		zap.Duration("shutdown_timeout", d.shutdownTimeout))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- d.server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)

	case sig := <-sigChan:
		d.logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))

	case <-ctx.Done():
		d.logger.Info("Daemon stopping")
	}

	return d.shutdown()
}

func (d *Daemon) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), d.shutdownTimeout)
	defer cancel()

	if err := d.server.Shutdown(ctx); err != nil {
		d.logger.Error("Graceful shutdown failed", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	d.logger.Info("Daemon stopped")
	return nil
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// Ready is closed once the daemon is accepting connections
func (d *Daemon) Ready() <-chan struct{} {
	return d.ready
}

// Addr returns the bound listen address, or nil before Start
func (d *Daemon) Addr() net.Addr {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addr
}

// GetStatus returns daemon status
func (d *Daemon) GetStatus() map[string]interface{} {
	d.mu.Lock()
	defer d.mu.Unlock()

	status := map[string]interface{}{
		"running":          d.running,
		"shutdown_timeout": d.shutdownTimeout.String(),
	}
	if d.addr != nil {
		status["addr"] = d.addr.String()
	}
	if d.running {
		status["uptime"] = time.Since(d.startedAt).Round(time.Second).String()
	}

	return status
}
