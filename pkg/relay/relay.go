// Package relay keeps the most recently reported list of page images.
// Every message carrying images replaces the list; readers get a copy.
package relay

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

// Message is sent by a page after it collected its images.
type Message struct {
	Images []string `json:"images"`
}

type Reply struct {
	Success bool `json:"success"`
}

// Store holds the process-wide image list.
type Store interface {
	Replace(ctx context.Context, images []string) error
	Images(ctx context.Context) ([]string, error)
}

type Relay struct {
	store Store
}

func New(store Store) *Relay {
	return &Relay{store: store}
}

// Handle replaces the stored list when the message carries one. The reply is
// always successful; store failures are only logged.
func (r *Relay) Handle(ctx context.Context, message Message) Reply {
	if message.Images != nil {
		if err := r.store.Replace(ctx, message.Images); err != nil {
			log.Error().Err(err).Msg("Failed to store collected images")
		} else {
			log.Info().Int("count", len(message.Images)).Msg("Images collected")
		}
	}
	return Reply{Success: true}
}

func (r *Relay) Images(ctx context.Context) ([]string, error) {
	return r.store.Images(ctx)
}

type MemoryStore struct {
	mu     sync.RWMutex
	images []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{images: []string{}}
}

func (s *MemoryStore) Replace(ctx context.Context, images []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = slices.Clone(images)
	return nil
}

func (s *MemoryStore) Images(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.images), nil
}
