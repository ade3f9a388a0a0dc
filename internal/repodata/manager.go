package repodata

import (
	"context"

	"github.com/repomash/repomash/internal/models"
	"github.com/repomash/repomash/internal/utils"
	"github.com/sirupsen/logrus"
)

// Manager (re)generates repository metadata directories. A missing target
// directory is created first, so refreshing a brand-new repository and
// refreshing an existing one are the same call.
type Manager struct {
	Indexer Indexer
}

// NewManager returns a Manager backed by the given indexer.
func NewManager(idx Indexer) *Manager {
	return &Manager{Indexer: idx}
}

// Refresh creates dir if needed and regenerates its metadata. Indexer
// failures are fatal for the directory; there is no partial retry.
func (m *Manager) Refresh(ctx context.Context, dir string) error {
	logrus.Debugf("Generating repository metadata for %s", dir)

	if err := utils.EnsureDir(dir); err != nil {
		return &models.RepoError{Type: models.ErrIndex, Path: dir, Err: err}
	}

	if err := m.Indexer.Index(ctx, dir); err != nil {
		return &models.RepoError{Type: models.ErrIndex, Path: dir, Err: err}
	}
	return nil
}
