// Package session keeps one state controller per connected client.
package session

import (
	"errors"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mi-raf/rule-look/internal/service"
	"github.com/rs/zerolog/log"
)

const DefaultLimit = 1024

var ErrUnknownSession = errors.New("unknown session")

type (
	Config struct {
		Limit int
	}

	// Manager holds the live sessions. When the limit is reached the least
	// recently used session is closed and dropped.
	Manager struct {
		f     *service.Factory
		cache *lru.Cache[string, *service.Controller]
	}
)

func NewManager(f *service.Factory, cfg *Config) (*Manager, error) {
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	cache, err := lru.NewWithEvict(limit, func(id string, c *service.Controller) {
		log.Debug().Str("session", id).Msg("session closed")
		c.Close()
	})
	if err != nil {
		return nil, err
	}
	return &Manager{f: f, cache: cache}, nil
}

func (m *Manager) Create() (string, *service.Controller) {
	id := uuid.NewString()
	c := m.f.New(id)
	m.cache.Add(id, c)
	log.Debug().Str("session", id).Msg("session created")
	return id, c
}

func (m *Manager) Get(id string) (*service.Controller, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUnknownSession
	}
	c, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrUnknownSession
	}
	return c, nil
}

// Remove closes the session. Removing an unknown id is a no-op.
func (m *Manager) Remove(id string) bool {
	return m.cache.Remove(id)
}

func (m *Manager) Len() int {
	return m.cache.Len()
}

func (m *Manager) Close() {
	log.Debug().Int("sessions", m.cache.Len()).Msg("closing sessions")
	m.cache.Purge()
}
