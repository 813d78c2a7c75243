package service

import (
	"context"

	"github.com/mi-raf/rule-look/internal/chatbot"
	"github.com/mi-raf/rule-look/internal/models"
	"github.com/rs/zerolog/log"
)

// parents maps each screen to the one screen its back button returns to.
var parents = map[models.Page]models.Page{
	models.PageSchoolSelect: models.PageHome,
	models.PageChatbot:      models.PageSchoolSelect,
	models.PageCommunity:    models.PageHome,
	models.PagePostDetail:   models.PageCommunity,
	models.PageWritePost:    models.PageCommunity,
	models.PageLogin:        models.PageHome,
	models.PageSignup:       models.PageLogin,
	models.PageProfile:      models.PageHome,
	models.PageEditProfile:  models.PageProfile,
	models.PageChangeSchool: models.PageProfile,
	models.PageHelp:         models.PageProfile,
	models.PagePrivacy:      models.PageProfile,
}

// Navigate shows a known screen. school-select and community also move the
// tab highlight. Profile needs a login like the profile tab. Unknown targets
// are ignored.
func (c *Controller) Navigate(ctx context.Context, target models.Page) {
	c.m.Lock()
	defer c.m.Unlock()
	if !target.Valid() {
		log.Debug().Str("target", string(target)).Msg("ignore unknown navigation target")
		return
	}
	switch target {
	case models.PageSchoolSelect:
		c.state.ActiveTab = models.TabChatbot
	case models.PageCommunity:
		c.state.ActiveTab = models.TabCommunity
	case models.PageChatbot:
		if c.state.SelectedSchool == "" {
			c.state.ActiveTab = models.TabChatbot
			target = models.PageSchoolSelect
		}
	case models.PageProfile:
		if !c.loggedIn(ctx) {
			target = models.PageLogin
		}
	case models.PagePostDetail:
		if c.state.SelectedPostId == 0 {
			return
		}
		c.openPostLocked(ctx, c.state.SelectedPostId)
		return
	}
	c.show(target)
}

// SelectSchool opens the chat for a catalog school. Other names are ignored.
func (c *Controller) SelectSchool(name string) {
	c.m.Lock()
	defer c.m.Unlock()
	if !c.cat.HasSchool(name) {
		return
	}
	c.state.SelectedSchool = name
	c.state.ActiveTab = models.TabChatbot
	c.show(models.PageChatbot)
}

// ClickTab resolves a tab to its screen. The chatbot tab lands on the chat
// only when a school is already chosen; the profile tab needs a login.
func (c *Controller) ClickTab(ctx context.Context, tab models.Tab) {
	c.m.Lock()
	defer c.m.Unlock()
	if !tab.Valid() {
		return
	}
	c.state.ActiveTab = tab
	switch tab {
	case models.TabHome:
		c.show(models.PageHome)
	case models.TabChatbot:
		if c.state.SelectedSchool != "" {
			c.show(models.PageChatbot)
		} else {
			c.show(models.PageSchoolSelect)
		}
	case models.TabCommunity:
		c.show(models.PageCommunity)
	case models.TabProfile:
		if c.loggedIn(ctx) {
			c.show(models.PageProfile)
		} else {
			c.show(models.PageLogin)
		}
	}
}

// Back returns to the fixed parent of the current screen. There is no
// history: the parent does not depend on how the screen was reached.
func (c *Controller) Back() {
	c.m.Lock()
	defer c.m.Unlock()
	cur := c.state.CurrentPage
	parent, ok := parents[cur]
	if !ok {
		return
	}
	switch cur {
	case models.PageSchoolSelect, models.PageCommunity:
		c.state.ActiveTab = models.TabHome
	case models.PagePostDetail:
		c.state.SelectedPostId = 0
	}
	c.show(parent)
}

func (c *Controller) ClickLogo() {
	c.m.Lock()
	defer c.m.Unlock()
	c.state.ActiveTab = models.TabHome
	c.show(models.PageHome)
}

func (c *Controller) OpenPost(ctx context.Context, id int64) {
	c.m.Lock()
	defer c.m.Unlock()
	c.openPostLocked(ctx, id)
}

func (c *Controller) openPostLocked(ctx context.Context, id int64) {
	p, err := c.posts.Get(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("post", id).Msg("can not load post")
		return
	}
	if p == nil {
		log.Debug().Int64("post", id).Msg("ignore unknown post")
		return
	}
	if c.detail == nil || c.detail.PostId() != id {
		c.detail = newPostDetail(p, c.now)
	}
	c.state.SelectedPostId = id
	c.show(models.PagePostDetail)
}

func (c *Controller) OpenWrite() {
	c.m.Lock()
	defer c.m.Unlock()
	c.show(models.PageWritePost)
}

// show switches the visible screen, ending the lifetime of per-screen state
// of the screen being left and starting the one being entered.
func (c *Controller) show(p models.Page) {
	prev := c.state.CurrentPage
	c.state.CurrentPage = p
	if prev != p {
		c.leave(prev)
	}
	c.enter(p)
}

func (c *Controller) leave(p models.Page) {
	switch p {
	case models.PageChatbot:
		if c.chat != nil {
			c.chat.Close()
			c.chat = nil
		}
	case models.PagePostDetail:
		c.detail = nil
	case models.PageHelp:
		c.openFAQ = 0
	}
}

func (c *Controller) enter(p models.Page) {
	if p != models.PageChatbot {
		return
	}
	if c.chat != nil && c.chat.School() == c.state.SelectedSchool {
		return
	}
	if c.chat != nil {
		c.chat.Close()
	}
	c.chat = chatbot.NewSession(c.state.SelectedSchool, c.cfg.Chat)
}
