package ml

import (
	"sync/atomic"

	"github.com/bibbank/agriscore/internal/domain/model"
	"github.com/bibbank/agriscore/internal/domain/port"
)

// Compile-time assertion that ModelStore implements port.ModelStore.
var _ port.ModelStore = (*ModelStore)(nil)

type snapshot struct {
	model port.CreditModel
}

// ModelStore holds the process-wide credit model behind an atomic pointer.
// Replace swaps in a fully built snapshot; readers keep whichever snapshot
// they loaded for the rest of their request.
type ModelStore struct {
	current atomic.Pointer[snapshot]
}

// NewModelStore creates an empty store.
func NewModelStore() *ModelStore {
	return &ModelStore{}
}

// Get returns the current snapshot or model.ErrModelNotTrained.
func (s *ModelStore) Get() (port.CreditModel, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, model.ErrModelNotTrained
	}
	return snap.model, nil
}

// Replace installs m. A nil model is ignored.
func (s *ModelStore) Replace(m port.CreditModel) {
	if m == nil {
		return
	}
	s.current.Store(&snapshot{model: m})
}

// Trained reports whether a snapshot is installed.
func (s *ModelStore) Trained() bool {
	return s.current.Load() != nil
}
