package tariff

import (
	"sync/atomic"

	"go.uber.org/zap"

	"tariff-engine/internal/logging"
)

// Store holds the live tariff snapshot behind an atomically-swappable
// reference. Readers always see a complete snapshot, either the old one or
// the new one; a failed reload leaves the old snapshot serving.
type Store struct {
	path    string
	current atomic.Pointer[Tariff]
}

// NewStore loads the tariff document at path and returns a serving store.
// A load failure here is fatal to the caller: the process must not serve
// quotes with a known-invalid tariff.
func NewStore(path string) (*Store, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}

	s := &Store{path: path}
	s.current.Store(t)

	logging.Info("tariff loaded",
		zap.String("version", t.Version()),
		zap.String("content_hash", t.ContentHash()),
		zap.String("path", path))
	return s, nil
}

// Current returns the live snapshot. The returned tariff is immutable and
// remains valid for the full lifetime of the request that obtained it,
// even across a concurrent reload.
func (s *Store) Current() *Tariff {
	return s.current.Load()
}

// Path returns the tariff document path this store reloads from.
func (s *Store) Path() string {
	return s.path
}

// Reload loads the document again and swaps the snapshot atomically. On
// failure the previous snapshot stays active and the error is returned;
// in-flight and future requests are unaffected.
func (s *Store) Reload() error {
	t, err := Load(s.path)
	if err != nil {
		logging.Error("tariff reload failed, keeping previous snapshot",
			zap.String("version", s.Current().Version()),
			zap.Error(err))
		return err
	}

	prev := s.current.Swap(t)
	logging.Info("tariff reloaded",
		zap.String("previous_version", prev.Version()),
		zap.String("version", t.Version()),
		zap.String("content_hash", t.ContentHash()))
	return nil
}
