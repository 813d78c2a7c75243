package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	mod "github.com/mi-raf/rule-look/internal/models"
)

// Preference keys, the only values that outlive a session.
const (
	KeyUserEmail = "userEmail"
	KeyUserName  = "userName"
	KeyMySchool  = "mySchool"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSqlite   = "sqlite"
)

const (
	STARTCAP = 16
)

var ErrUnknownStorage = errors.New("unknown storage")

type (
	// PostRepository keeps the community board. Posts are held in memory
	// only and newest first.
	PostRepository interface {
		Add(ctx context.Context, post *mod.PostDTO) (int64, error)
		GetAll(ctx context.Context) ([]*mod.PostDTO, error)
		Get(ctx context.Context, id int64) (*mod.PostDTO, error)
		Count(ctx context.Context) (int, error)
	}

	PreferenceRepository interface {
		Get(ctx context.Context, owner, key string) (string, bool, error)
		Set(ctx context.Context, owner, key, value string) error
		Delete(ctx context.Context, owner string, keys ...string) error
		Clear(ctx context.Context, owner string) error
	}

	PreferenceConfig struct {
		Storage    string
		DbAddr     string
		SqlitePath string
	}

	InMemoryPostRepository struct {
		posts []*mod.PostDTO
		m     sync.RWMutex
	}

	InMemoryPreferenceRepository struct {
		prefs map[string]map[string]string
		m     sync.RWMutex
	}
)

func NewPreferenceRepositoryProvider(ctx context.Context, cfg *PreferenceConfig) (PreferenceRepository, func(), error) {
	switch cfg.Storage {
	case StorageMemory, "":
		return NewInMemoryPreferenceRepository(), func() {}, nil
	case StoragePostgres:
		return NewPgPreferenceRepositoryFromAddr(ctx, cfg.DbAddr)
	case StorageSqlite:
		r, err := NewSqlitePreferenceRepository(ctx, cfg.SqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	}
	return nil, nil, fmt.Errorf("%w %q", ErrUnknownStorage, cfg.Storage)
}

func NewInMemoryPostRepository() *InMemoryPostRepository {
	return &InMemoryPostRepository{posts: make([]*mod.PostDTO, 0, STARTCAP)}
}

// Add numbers the post as current length plus one and puts it in front.
func (r *InMemoryPostRepository) Add(ctx context.Context, post *mod.PostDTO) (int64, error) {
	r.m.Lock()
	defer r.m.Unlock()
	post.Id = int64(len(r.posts) + 1)
	p := *post
	r.posts = append(r.posts, nil)
	copy(r.posts[1:], r.posts)
	r.posts[0] = &p
	return post.Id, nil
}

func (r *InMemoryPostRepository) GetAll(ctx context.Context) ([]*mod.PostDTO, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	res := make([]*mod.PostDTO, 0, len(r.posts))
	for _, p := range r.posts {
		c := *p
		res = append(res, &c)
	}
	return res, nil
}

func (r *InMemoryPostRepository) Get(ctx context.Context, id int64) (*mod.PostDTO, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	for _, p := range r.posts {
		if p.Id == id {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *InMemoryPostRepository) Count(ctx context.Context) (int, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	return len(r.posts), nil
}

func NewInMemoryPreferenceRepository() *InMemoryPreferenceRepository {
	return &InMemoryPreferenceRepository{prefs: make(map[string]map[string]string, STARTCAP)}
}

func (r *InMemoryPreferenceRepository) Get(ctx context.Context, owner, key string) (string, bool, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	v, ok := r.prefs[owner][key]
	return v, ok, nil
}

func (r *InMemoryPreferenceRepository) Set(ctx context.Context, owner, key, value string) error {
	r.m.Lock()
	defer r.m.Unlock()
	p, ok := r.prefs[owner]
	if !ok {
		p = make(map[string]string, 3)
		r.prefs[owner] = p
	}
	p[key] = value
	return nil
}

func (r *InMemoryPreferenceRepository) Delete(ctx context.Context, owner string, keys ...string) error {
	r.m.Lock()
	defer r.m.Unlock()
	for _, k := range keys {
		delete(r.prefs[owner], k)
	}
	return nil
}

func (r *InMemoryPreferenceRepository) Clear(ctx context.Context, owner string) error {
	r.m.Lock()
	defer r.m.Unlock()
	delete(r.prefs, owner)
	return nil
}
