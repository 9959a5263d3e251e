package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mshel/snakeduel/internal/config"
	"github.com/Mshel/snakeduel/internal/game"
	"github.com/Mshel/snakeduel/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)

	newAgentStrategy, err := cfg.AgentStrategyFactory()
	if err != nil {
		log.Fatal("Invalid agent strategy", "error", err)
	}

	limiter := newConnectionLimiter(cfg.MaxConnectionsPerIP, cfg.ConnectionsPerSecond, cfg.ConnectionBurst)
	handler := sessionHandler{cfg: cfg, newAgentStrategy: newAgentStrategy}

	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(cfg.Address()),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(handler.viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.middleware,
		),
	)
	if serverCreateErr != nil {
		log.Fatal("Failed to create ssh server", "error", serverCreateErr)
	}

	metricsServer := startMetricsServer(cfg.MetricsAddr)

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "address", cfg.Address(), "difficulty", cfg.Difficulty)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			log.Error("Could not stop metrics server", "error", err)
		}
	}
}

func startMetricsServer(addr string) *http.Server {
	if addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("Starting metrics server", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server stopped", "error", err)
		}
	}()
	return server
}

type sessionHandler struct {
	cfg              config.Config
	newAgentStrategy func() (game.HeadingStrategy, error)
}

// viewHandler gives every ssh session its own engine and its own round history. Both
// are released when the session ends, even if the client drops without quitting.
func (h sessionHandler) viewHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()

	history, err := game.NewRoundHistory("")
	if err != nil {
		log.Warn("Round history unavailable", "user", sshSession.User(), "error", err)
		history = nil
	} else {
		go func() {
			<-sshSession.Context().Done()
			if err := history.Close(); err != nil {
				log.Warn("Could not close round history", "error", err)
			}
		}()
	}

	controllerModel := ui.NewControllerModel(ui.GameOptions{
		Context:          sshSession.Context(),
		Difficulty:       h.cfg.Difficulty,
		Intervals:        h.cfg.Intervals,
		History:          history,
		NewAgentStrategy: h.newAgentStrategy,
	}, pty.Window.Width, pty.Window.Height)

	return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
}
