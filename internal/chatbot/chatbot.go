// Package chatbot is the placeholder school-rules assistant. It answers every
// question with a fixed text after a delay; pending answers are dropped when
// the session is closed.
package chatbot

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mi-raf/rule-look/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	DefaultReplyDelay = 500 * time.Millisecond
	DefaultReplyText  = "죄송합니다. 현재는 데모 버전입니다. 실제 학칙 정보는 연동 후 제공됩니다."
	greetingFmt       = "안녕하세요! %s 학칙 도우미입니다. 궁금한 학칙에 대해 질문해주세요."
)

type (
	Config struct {
		ReplyDelay time.Duration
		ReplyText  string
	}

	Session struct {
		school   string
		cfg      Config
		now      func() time.Time
		m        sync.Mutex
		messages []models.Message
		idGen    int64
		pending  map[int64]*time.Timer
		closed   bool
	}
)

func NewSession(school string, cfg Config) *Session {
	if cfg.ReplyDelay <= 0 {
		cfg.ReplyDelay = DefaultReplyDelay
	}
	if cfg.ReplyText == "" {
		cfg.ReplyText = DefaultReplyText
	}
	s := &Session{
		school:  school,
		cfg:     cfg,
		now:     time.Now,
		pending: make(map[int64]*time.Timer),
	}
	s.appendLocked(fmt.Sprintf(greetingFmt, school), models.SenderBot)
	return s
}

func (s *Session) School() string {
	return s.school
}

// Send records the user's message and schedules the bot answer. Blank text
// is ignored and so is anything sent after Close.
func (s *Session) Send(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	s.m.Lock()
	defer s.m.Unlock()
	if s.closed {
		return false
	}
	msg := s.appendLocked(text, models.SenderUser)

	id := msg.Id
	s.pending[id] = time.AfterFunc(s.cfg.ReplyDelay, func() { s.reply(id) })
	return true
}

func (s *Session) reply(id int64) {
	s.m.Lock()
	defer s.m.Unlock()
	if _, ok := s.pending[id]; !ok || s.closed {
		return
	}
	delete(s.pending, id)
	s.appendLocked(s.cfg.ReplyText, models.SenderBot)
}

func (s *Session) appendLocked(text string, sender models.Sender) models.Message {
	s.idGen++
	msg := models.Message{Id: s.idGen, Text: text, Sender: sender, Timestamp: s.now()}
	s.messages = append(s.messages, msg)
	return msg
}

func (s *Session) Messages() []models.Message {
	s.m.Lock()
	defer s.m.Unlock()
	return append([]models.Message(nil), s.messages...)
}

// Pending returns the number of answers still scheduled.
func (s *Session) Pending() int {
	s.m.Lock()
	defer s.m.Unlock()
	return len(s.pending)
}

// Close cancels every scheduled answer. It is safe to call more than once.
func (s *Session) Close() {
	s.m.Lock()
	defer s.m.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
	log.Debug().Str("school", s.school).Int("messages", len(s.messages)).Msg("chat session closed")
}
