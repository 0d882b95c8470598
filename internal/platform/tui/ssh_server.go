package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/savegame"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.pong/host_key.
	HostKeyPath string

	// DBPath is the database shared by all players.
	DBPath string

	IdleTimeout time.Duration

	// Pong is the difficulty table and timing served to every player.
	Pong config.PongConfig

	Logger *log.Logger
}

// DefaultSSHServerConfig returns the config used by `pong serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath,
		IdleTimeout: 30 * time.Minute,
		Pong:        config.DefaultPongConfig(),
	}
}

// SSHServer serves the pong menu over SSH. Each connection runs its own
// game; the save slot is keyed by the SSH user name.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu      sync.Mutex
	players map[*Env]string
}

// NewSSHServer opens the database and prepares the listener. Scores are not
// recorded when the database cannot be opened.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("ssh")
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open database, scores will not be kept", "path", cfg.DBPath, "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		logger:  logger,
		players: make(map[*Env]string),
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// hostKeyPath resolves the key location and makes sure its directory exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".pong", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return path, nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	env := s.playerEnv(sess.User())

	// The game goroutine outlives the program unless it is stopped here.
	go func() {
		<-sess.Context().Done()
		s.release(env)
	}()

	return NewModel(env, pty.Window.Width, pty.Window.Height), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// playerEnv builds the environment of one connection and registers it so
// Shutdown can save the game before the database closes.
func (s *SSHServer) playerEnv(user string) *Env {
	logger := s.logger.With("user", user)
	env := &Env{
		Config: s.config.Pong,
		DB:     s.store,
		Saves:  savegame.NewStore(logger.WithPrefix("savegame")),
		Logger: logger,
	}
	if s.store != nil {
		slot := s.store.Slot("ssh:" + user)
		if err := env.Saves.Load(slot); err != nil {
			logger.Warn("could not load saved game", "error", err)
		}
		env.Slot = slot
	}

	s.mu.Lock()
	s.players[env] = user
	s.mu.Unlock()
	return env
}

func (s *SSHServer) release(env *Env) {
	env.Close()
	s.mu.Lock()
	delete(s.players, env)
	s.mu.Unlock()
}

// Players returns the number of connected players.
func (s *SSHServer) Players() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		started := time.Now()
		s.logger.Info("player connected",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("player disconnected",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(started).Round(time.Second),
		)
	}
}

// Serve listens until ctx is cancelled or the listener fails, then shuts
// the server down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	var err error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down", "players", s.Players())
	case err = <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
	}

	if shutErr := s.Shutdown(); shutErr != nil && err == nil {
		err = shutErr
	}
	return err
}

// Shutdown closes every connection, saves the games still running and
// closes the database.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if errors.Is(err, ssh.ErrServerClosed) {
		err = nil
	}

	s.mu.Lock()
	envs := make([]*Env, 0, len(s.players))
	for env := range s.players {
		envs = append(envs, env)
	}
	s.mu.Unlock()
	for _, env := range envs {
		s.release(env)
	}

	if s.store != nil {
		s.store.Close()
	}
	if err != nil {
		return fmt.Errorf("tui: SSH shutdown: %w", err)
	}
	return nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
