package prompt

import (
	"context"
	"sync"

	"maic/internal/logging"
)

// Source is the template supplier the service composes against. It
// resolves templates in preference order: prompts.yaml on disk, then
// the SQLite cache of the last good set, then the embedded defaults.
// Safe for concurrent use; Reload swaps the whole set atomically.
type Source struct {
	path  string
	store *Store // optional

	mu   sync.RWMutex
	file *File
}

// NewSource builds a Source and performs the initial load. store may be
// nil to disable persistence.
func NewSource(path string, store *Store) *Source {
	s := &Source{path: path, store: store}
	s.Reload(context.Background())
	return s
}

// Current returns the active template set. The returned File must be
// treated as read-only.
func (s *Source) Current() *File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file
}

// Reload re-resolves the template set. A healthy prompts.yaml wins and
// refreshes the cache; otherwise the cache keeps serving the last good
// set; the embedded defaults are the floor.
func (s *Source) Reload(ctx context.Context) {
	log := logging.Get(logging.CategoryPrompt)

	f, err := Load(s.path)
	if err == nil && len(f.Modes) > 0 {
		s.swap(f)
		if s.store != nil {
			if _, serr := s.store.SaveFile(ctx, f); serr != nil {
				log.Warn("failed to refresh template cache: %v", serr)
			}
		}
		log.Info("templates reloaded from %s (%d modes)", s.path, len(f.Modes))
		return
	}
	log.Warn("prompts file unusable (%v), trying cache", err)

	if s.store != nil {
		if cached, cerr := s.store.LoadFile(ctx); cerr == nil {
			s.swap(cached)
			log.Info("serving %d cached mode templates", len(cached.Modes))
			return
		}
	}

	s.swap(Defaults())
	log.Warn("serving embedded default templates")
}

func (s *Source) swap(f *File) {
	s.mu.Lock()
	s.file = f
	s.mu.Unlock()
}
