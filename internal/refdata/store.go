package refdata

import "sync/atomic"

// Store holds the current reference snapshot. Readers grab the snapshot
// once per run; Swap installs a new one without disturbing runs already
// holding the old pointer.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store with an initial snapshot.
func NewStore(snap *Snapshot) *Store {
	st := &Store{}
	if snap == nil {
		snap = NewSnapshot(nil, nil, nil)
	}
	st.current.Store(snap)
	return st
}

// Snapshot returns the currently installed snapshot.
func (st *Store) Snapshot() *Snapshot {
	return st.current.Load()
}

// Swap atomically installs a new snapshot.
func (st *Store) Swap(snap *Snapshot) {
	if snap == nil {
		return
	}
	st.current.Store(snap)
}
