package service

import (
	"github.com/mi-raf/rule-look/internal/models"
)

// SendMessage posts a question to the chat screen. The answer arrives later;
// blank input is dropped and reported as false.
func (c *Controller) SendMessage(text string) (bool, error) {
	c.m.Lock()
	defer c.m.Unlock()
	if c.state.CurrentPage != models.PageChatbot || c.chat == nil {
		return false, ErrNotOnScreen
	}
	return c.chat.Send(text), nil
}

func (c *Controller) ChatMessages() ([]models.Message, error) {
	c.m.Lock()
	defer c.m.Unlock()
	if c.chat == nil {
		return nil, ErrNotOnScreen
	}
	return c.chat.Messages(), nil
}

// ToggleFAQ opens the FAQ or closes it when it is already open; only one
// answer is shown at a time.
func (c *Controller) ToggleFAQ(id int) (int, error) {
	c.m.Lock()
	defer c.m.Unlock()
	if c.state.CurrentPage != models.PageHelp {
		return 0, ErrNotOnScreen
	}
	if _, ok := c.cat.FAQ(id); !ok {
		return c.openFAQ, nil
	}
	if c.openFAQ == id {
		c.openFAQ = 0
	} else {
		c.openFAQ = id
	}
	return c.openFAQ, nil
}
