package cli

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/wordbook/internal/remote"
	"github.com/mesh-intelligence/wordbook/internal/repository"
	"github.com/mesh-intelligence/wordbook/pkg/sqlite"
	"github.com/mesh-intelligence/wordbook/pkg/types"
)

// session wires the stores and the repository for one command.
type session struct {
	repo  *repository.Repository
	local types.LocalStore
}

// openSession attaches the local store and builds the repository over it
// and a remote store. The caller must call close.
func (a *app) openSession() (*session, error) {
	cfg := a.settings.storeConfig(a.dataDir)
	if err := cfg.Validate(); err != nil {
		return nil, userError(fmt.Errorf("invalid config: %w", err))
	}

	local := sqlite.NewBackend()
	if err := local.Attach(cfg); err != nil {
		return nil, sysError(fmt.Errorf("attach local store: %w", err))
	}

	rs := remote.NewStore(remote.WithLatency(a.settings.remoteLatency))
	repo, err := repository.New(rs, local, repository.WithLogger(a.log))
	if err != nil {
		_ = local.Detach()
		return nil, sysError(err)
	}
	return &session{repo: repo, local: local}, nil
}

// close waits for background fetches and detaches the local store.
func (s *session) close() error {
	s.repo.Drain()
	if err := s.local.Detach(); err != nil {
		return sysError(fmt.Errorf("detach local store: %w", err))
	}
	return nil
}

// withSession runs fn inside a session and closes it afterwards. An error
// from fn takes precedence; a close error is reported only when fn succeeded.
func (a *app) withSession(fn func(*session) error) error {
	s, err := a.openSession()
	if err != nil {
		return err
	}
	runErr := fn(s)
	closeErr := s.close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

// classify maps a repository error to a CLI error.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, types.ErrInvalidID) {
		return userError(fmt.Errorf("%s: %w", op, err))
	}
	return sysError(fmt.Errorf("%s: %w", op, err))
}
