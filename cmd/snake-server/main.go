package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/gridsnake/internal/api"
	"github.com/Mshel/gridsnake/internal/config"
	"github.com/Mshel/gridsnake/internal/game"
	"github.com/Mshel/gridsnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/gin-gonic/gin"
)

// connectionLimiter caps concurrent sessions per remote IP.
type connectionLimiter struct {
	limit int

	mu        sync.Mutex
	ipCounter map[string]int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{limit: limit, ipCounter: make(map[string]int)}
}

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// acquire takes a slot for ip and reports the count it saw.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	current := l.ipCounter[ip]
	if l.limit > 0 && current >= l.limit {
		return current, false
	}
	l.ipCounter[ip]++
	return current + 1, true
}

func (l *connectionLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ipCounter[ip]--
	if l.ipCounter[ip] <= 0 {
		delete(l.ipCounter, ip)
	}
	return l.ipCounter[ip]
}

func (l *connectionLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)
		count, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", count+1, "current_limit", l.limit)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", count+1, l.limit)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", count, "limit", l.limit)
		next(s)
		log.Info("Connection closed and counter decremented", "ip", ip, "count_after", l.release(ip))
	}
}

func main() {
	configPath := flag.String("config", "snake.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}

	var scores *game.HighScoreService
	if cfg.Storage.DBPath != "" {
		scores, err = game.NewHighScoreService(cfg.Storage.DBPath)
		if err != nil {
			log.Warn("High scores disabled", "error", err)
			scores = nil
		} else {
			defer scores.Close()
		}
	}

	limiter := newConnectionLimiter(cfg.SSH.MaxConnectionsPerIP)
	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithHostKeyPath(cfg.SSH.HostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler(cfg, scores)),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.Middleware,
		),
	)
	if serverCreateErr != nil {
		log.Fatal("Failed to create ssh server", "error", serverCreateErr)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "host", cfg.SSH.Host, "port", cfg.SSH.Port)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	var httpServer *http.Server
	if cfg.HTTP.Enabled && scores != nil {
		gin.SetMode(gin.ReleaseMode)
		httpServer = &http.Server{Addr: cfg.HTTP.Address, Handler: api.NewRouter(scores)}
		log.Info("Starting leaderboard API", "address", cfg.HTTP.Address)
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Could not start leaderboard API", "error", err)
			}
		}()
	} else if cfg.HTTP.Enabled {
		log.Warn("Leaderboard API needs storage, not starting it")
	}

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error("Could not stop leaderboard API", "error", err)
		}
	}
}

// viewHandler gives every SSH session its own game, stopped when the session ends.
func viewHandler(cfg config.Config, scores *game.HighScoreService) bubbletea.Handler {
	return func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()
		ctx := sshSession.Context()

		deps, cleanup, err := ui.NewDeps(ctx, cfg, scores)
		if err != nil {
			log.Error("Failed to set up game", "user", sshSession.User(), "error", err)
			wish.Fatalln(sshSession, "could not start a game")
			return nil, nil
		}
		go func() {
			<-ctx.Done()
			cleanup()
		}()

		controllerModel := ui.NewControllerModel(deps, pty.Window.Width, pty.Window.Height)
		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
