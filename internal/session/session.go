package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gofrs/flock"

	"github.com/hbnb-network/hbnb/internal/console"
	"github.com/hbnb-network/hbnb/internal/domain"
	"github.com/hbnb-network/hbnb/internal/infra/filestore"
	"github.com/hbnb-network/hbnb/internal/infra/metrics"
	"github.com/hbnb-network/hbnb/internal/infra/sqlite"
	"github.com/hbnb-network/hbnb/internal/logging"
	"github.com/hbnb-network/hbnb/internal/model"
)

// Store is a storage backend that holds resources until closed.
type Store interface {
	domain.Storage
	Close() error
}

// Session owns everything one shell run needs.
type Session struct {
	Config   Config
	Registry *model.Registry
	Storage  Store
	Logger   *slog.Logger

	lock      *flock.Flock
	logCloser io.Closer
}

// New loads the configuration and opens a session.
func New() (*Session, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig opens a session: it takes the storage lock, opens the
// configured backend and reloads every stored instance.
func NewWithConfig(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Path:   cfg.Logging.File,
	})
	if err != nil {
		return nil, err
	}

	s := &Session{
		Config:    cfg,
		Registry:  model.Default(),
		Logger:    logger,
		logCloser: logCloser,
	}
	if err := s.open(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) open() error {
	if err := os.MkdirAll(s.Config.Storage.Dir, 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	lock := flock.New(s.Config.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrStorageLocked, s.Config.LockPath())
	}
	s.lock = lock

	path := s.Config.StoragePath()
	store, err := openStore(s.Config.Storage.Driver, path, s.Registry, s.Logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	s.Storage = store

	if err := s.Storage.Reload(); err != nil {
		return fmt.Errorf("reload storage: %w", err)
	}
	metrics.Instances.Set(float64(s.Storage.All().Len()))
	s.Logger.Info("session opened",
		"driver", s.Config.Storage.Driver,
		"path", path,
		"instances", s.Storage.All().Len())
	return nil
}

func openStore(driver, path string, reg domain.Registry, logger *slog.Logger) (Store, error) {
	if driver == DriverJSON {
		return filestore.Open(path, reg, logger)
	}
	return sqlite.Open(path, reg, logger)
}

// Console builds a console over this session writing to out.
func (s *Session) Console(out io.Writer) *console.Console {
	return console.New(console.Options{
		Registry: s.Registry,
		Storage:  s.Storage,
		Out:      out,
		Logger:   s.Logger,
	})
}

// Close exports metrics if configured, then releases storage, lock and
// log file. It is safe to call on a partially opened session.
func (s *Session) Close() error {
	var errs []error
	if path := s.Config.Metrics.Textfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			s.Logger.Warn("metrics export failed", "path", path, "err", err)
			errs = append(errs, err)
		}
	}
	if s.Storage != nil {
		if err := s.Storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
		s.Storage = nil
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("release lock: %w", err))
		}
		s.lock = nil
	}
	if s.logCloser != nil {
		s.logCloser.Close()
		s.logCloser = nil
	}
	return errors.Join(errs...)
}
