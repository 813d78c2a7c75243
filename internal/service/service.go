package service

import (
	"errors"
	"sync"
	"time"

	"github.com/mi-raf/rule-look/internal/catalog"
	"github.com/mi-raf/rule-look/internal/chatbot"
	"github.com/mi-raf/rule-look/internal/database"
	"github.com/mi-raf/rule-look/internal/models"
	"github.com/rs/zerolog/log"
)

var (
	ErrDatabase    = errors.New("database error")
	ErrNotOnScreen = errors.New("screen is not open")
)

type (
	Config struct {
		Chat chatbot.Config
	}

	// Controller is the single owner of one client's application state.
	// Every exported method is one named state transition.
	Controller struct {
		owner string
		cat   *catalog.Catalog
		posts database.PostRepository
		prefs database.PreferenceRepository
		cfg   Config
		now   func() time.Time

		m       sync.Mutex
		state   models.ScreenState
		detail  *PostDetail
		chat    *chatbot.Session
		openFAQ int
	}

	// State is a read-only snapshot of everything a client renders.
	State struct {
		Screen  models.ScreenState `json:"screen"`
		Detail  *DetailView        `json:"detail,omitempty"`
		Chat    []models.Message   `json:"chat,omitempty"`
		OpenFAQ int                `json:"openFaq,omitempty"`
	}

	// Factory builds controllers that share reference data and storage.
	Factory struct {
		cat   *catalog.Catalog
		prefs database.PreferenceRepository
		cfg   *Config
	}
)

func NewFactory(cat *catalog.Catalog, prefs database.PreferenceRepository, cfg *Config) *Factory {
	return &Factory{cat: cat, prefs: prefs, cfg: cfg}
}

// New creates the state of one client. Each client gets its own post board.
func (f *Factory) New(owner string) *Controller {
	return NewController(owner, f.cat, database.NewInMemoryPostRepository(), f.prefs, *f.cfg)
}

func NewController(owner string, cat *catalog.Catalog, posts database.PostRepository, prefs database.PreferenceRepository, cfg Config) *Controller {
	return &Controller{
		owner: owner,
		cat:   cat,
		posts: posts,
		prefs: prefs,
		cfg:   cfg,
		now:   time.Now,
		state: models.ScreenState{CurrentPage: models.PageHome, ActiveTab: models.TabHome},
	}
}

func (c *Controller) Owner() string {
	return c.owner
}

func (c *Controller) Catalog() *catalog.Catalog {
	return c.cat
}

func (c *Controller) Screen() models.ScreenState {
	c.m.Lock()
	defer c.m.Unlock()
	return c.state
}

func (c *Controller) Snapshot() *State {
	c.m.Lock()
	defer c.m.Unlock()
	st := &State{Screen: c.state, OpenFAQ: c.openFAQ}
	if c.detail != nil {
		st.Detail = c.detail.View()
	}
	if c.chat != nil {
		st.Chat = c.chat.Messages()
	}
	return st
}

// Close releases screen resources, cancelling any scheduled chat answers.
func (c *Controller) Close() {
	c.m.Lock()
	defer c.m.Unlock()
	if c.chat != nil {
		c.chat.Close()
		c.chat = nil
	}
}

func dbError(err error, msg string) error {
	log.Error().Err(err).Msg(msg)
	return errors.Join(ErrDatabase, err)
}
