package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/mi-raf/rule-look/internal/catalog"
	"github.com/mi-raf/rule-look/internal/chatbot"
	"github.com/mi-raf/rule-look/internal/database"
	"github.com/mi-raf/rule-look/internal/models"
	"github.com/mi-raf/rule-look/internal/session"
	"github.com/mi-raf/rule-look/internal/service"
	"github.com/stretchr/testify/suite"
)

type SessionTestSuite struct {
	suite.Suite
	f *service.Factory
}

func (s *SessionTestSuite) SetupTest() {
	cfg := &service.Config{Chat: chatbot.Config{ReplyDelay: time.Hour}}
	s.f = service.NewFactory(catalog.Default(), database.NewInMemoryPreferenceRepository(), cfg)
}

func (s *SessionTestSuite) TestCreateAndGet() {
	// given
	m, err := session.NewManager(s.f, &session.Config{Limit: 4})
	s.Require().NoError(err)

	// when
	id, c := m.Create()

	// then
	got, err := m.Get(id)
	s.NoError(err)
	s.Same(c, got)
	s.Equal(id, got.Owner())
	s.Equal(1, m.Len())
}

func (s *SessionTestSuite) TestGetUnknown() {
	m, err := session.NewManager(s.f, &session.Config{})
	s.Require().NoError(err)

	for _, id := range []string{"", "not-a-uuid", gofakeit.UUID()} {
		_, err := m.Get(id)
		s.ErrorIs(err, session.ErrUnknownSession)
	}
}

func (s *SessionTestSuite) TestSessionsAreIsolated() {
	// given
	m, _ := session.NewManager(s.f, &session.Config{})
	_, a := m.Create()
	_, b := m.Create()

	// when
	a.Navigate(context.Background(), models.PageCommunity)

	// then
	s.Equal(models.PageCommunity, a.Screen().CurrentPage)
	s.Equal(models.PageHome, b.Screen().CurrentPage)
}

func (s *SessionTestSuite) TestEvictionClosesChat() {
	// given
	m, _ := session.NewManager(s.f, &session.Config{Limit: 1})
	first, c := m.Create()
	c.SelectSchool("Korea University")
	ok, err := c.SendMessage("hello")
	s.Require().NoError(err)
	s.Require().True(ok)

	// when
	m.Create()

	// then
	_, err = m.Get(first)
	s.ErrorIs(err, session.ErrUnknownSession)
	_, err = c.ChatMessages()
	s.ErrorIs(err, service.ErrNotOnScreen)
}

func (s *SessionTestSuite) TestRemoveAndClose() {
	m, _ := session.NewManager(s.f, &session.Config{})
	id, _ := m.Create()
	m.Create()

	s.True(m.Remove(id))
	s.False(m.Remove(id))
	s.Equal(1, m.Len())

	m.Close()
	s.Zero(m.Len())
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}
