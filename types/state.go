package types

import "sync"

// State holds the replication bookmarks of every stream plus the marker of
// the stream still in progress. Bookmark values only move forward across
// successful syncs; the incremental controller enforces monotonicity by
// persisting the maximum cursor value it observed.
type State struct {
	*sync.RWMutex    `json:"-"`
	Bookmarks        map[string]map[string]any `json:"bookmarks"`
	CurrentlySyncing *string                   `json:"currently_syncing"`
}

func NewState() *State {
	return &State{
		RWMutex:   &sync.RWMutex{},
		Bookmarks: map[string]map[string]any{},
	}
}

func (s *State) GetBookmark(stream, key string) any {
	if key == "" {
		return nil
	}

	s.RLock()
	defer s.RUnlock()

	bookmarks, found := s.Bookmarks[stream]
	if !found {
		return nil
	}

	return bookmarks[key]
}

func (s *State) SetBookmark(stream, key string, value any) {
	if key == "" {
		return
	}

	s.Lock()
	defer s.Unlock()

	if s.Bookmarks == nil {
		s.Bookmarks = map[string]map[string]any{}
	}
	if _, found := s.Bookmarks[stream]; !found {
		s.Bookmarks[stream] = map[string]any{}
	}

	s.Bookmarks[stream][key] = value
}

// CurrentlySyncingStream returns the resume marker; empty when no sync was
// interrupted.
func (s *State) CurrentlySyncingStream() string {
	s.RLock()
	defer s.RUnlock()

	if s.CurrentlySyncing == nil {
		return ""
	}

	return *s.CurrentlySyncing
}

// SetCurrentlySyncing marks the stream in progress; an empty stream clears
// the marker (serialized as null).
func (s *State) SetCurrentlySyncing(stream string) {
	s.Lock()
	defer s.Unlock()

	if stream == "" {
		s.CurrentlySyncing = nil
		return
	}

	s.CurrentlySyncing = &stream
}

func (s *State) IsZero() bool {
	s.RLock()
	defer s.RUnlock()

	return len(s.Bookmarks) == 0 && s.CurrentlySyncing == nil
}
