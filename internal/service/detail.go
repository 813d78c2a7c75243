package service

import (
	"strings"
	"time"

	"github.com/mi-raf/rule-look/internal/models"
)

type (
	// PostDetail is the state of the post-detail screen. It starts from the
	// post's stored like count and lives until the screen is left; nothing
	// here is written back to the board.
	PostDetail struct {
		post      models.PostDTO
		liked     bool
		likes     int
		comments  []*models.CommentDTO
		idGen     int64
		lastReply int64
		now       func() time.Time
	}

	DetailView struct {
		Post     models.PostDTO       `json:"post"`
		Liked    bool                 `json:"liked"`
		Likes    int                  `json:"likes"`
		Comments []*models.CommentDTO `json:"comments"`
	}
)

func newPostDetail(p *models.PostDTO, now func() time.Time) *PostDetail {
	return &PostDetail{post: *p, likes: p.Likes, now: now}
}

func (d *PostDetail) PostId() int64 {
	return d.post.Id
}

// ToggleLike flips the like flag and moves the counter with it, so the
// counter only goes down after it went up.
func (d *PostDetail) ToggleLike() (bool, int) {
	if d.liked {
		d.likes--
	} else {
		d.likes++
	}
	d.liked = !d.liked
	return d.liked, d.likes
}

func (d *PostDetail) AddComment(text string) (*models.CommentDTO, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	d.idGen++
	cm := &models.CommentDTO{
		Id:      d.idGen,
		Author:  models.SelfAuthor,
		Content: text,
		TimeAgo: models.JustNow,
		Mine:    true,
		Replies: []*models.ReplyDTO{},
	}
	d.comments = append(d.comments, cm)
	return cm, true
}

// AddReply attaches a reply to the comment with the given id. Reply ids are
// millisecond timestamps, bumped when two replies land in the same
// millisecond.
func (d *PostDetail) AddReply(commentId int64, text string) (*models.ReplyDTO, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	cm := d.find(commentId)
	if cm == nil {
		return nil, false
	}
	id := d.now().UnixMilli()
	if id <= d.lastReply {
		id = d.lastReply + 1
	}
	d.lastReply = id
	r := &models.ReplyDTO{Id: id, Author: models.SelfAuthor, Content: text, TimeAgo: models.JustNow, Mine: true}
	cm.Replies = append(cm.Replies, r)
	return r, true
}

// EditComment replaces the content in place. Empty text is accepted.
func (d *PostDetail) EditComment(commentId int64, text string) bool {
	cm := d.find(commentId)
	if cm == nil {
		return false
	}
	cm.Content = text
	return true
}

// DeleteComment removes the comment and its replies. Authorship is not
// checked.
func (d *PostDetail) DeleteComment(commentId int64) bool {
	for i, cm := range d.comments {
		if cm.Id == commentId {
			d.comments = append(d.comments[:i], d.comments[i+1:]...)
			return true
		}
	}
	return false
}

func (d *PostDetail) DeleteReply(commentId, replyId int64) bool {
	cm := d.find(commentId)
	if cm == nil {
		return false
	}
	for i, r := range cm.Replies {
		if r.Id == replyId {
			cm.Replies = append(cm.Replies[:i], cm.Replies[i+1:]...)
			return true
		}
	}
	return false
}

func (d *PostDetail) find(commentId int64) *models.CommentDTO {
	for _, cm := range d.comments {
		if cm.Id == commentId {
			return cm
		}
	}
	return nil
}

// View deep-copies the screen state.
func (d *PostDetail) View() *DetailView {
	v := &DetailView{Post: d.post, Liked: d.liked, Likes: d.likes, Comments: make([]*models.CommentDTO, 0, len(d.comments))}
	for _, cm := range d.comments {
		c := *cm
		c.Replies = make([]*models.ReplyDTO, 0, len(cm.Replies))
		for _, r := range cm.Replies {
			rc := *r
			c.Replies = append(c.Replies, &rc)
		}
		v.Comments = append(v.Comments, &c)
	}
	return v
}

func (c *Controller) withDetail(fn func(d *PostDetail)) error {
	c.m.Lock()
	defer c.m.Unlock()
	if c.state.CurrentPage != models.PagePostDetail || c.detail == nil {
		return ErrNotOnScreen
	}
	fn(c.detail)
	return nil
}

func (c *Controller) ToggleLike() (liked bool, likes int, err error) {
	err = c.withDetail(func(d *PostDetail) { liked, likes = d.ToggleLike() })
	return
}

// AddComment returns a nil comment when text is blank.
func (c *Controller) AddComment(text string) (cm *models.CommentDTO, err error) {
	err = c.withDetail(func(d *PostDetail) {
		if added, ok := d.AddComment(text); ok {
			x := *added
			cm = &x
		}
	})
	return
}

func (c *Controller) AddReply(commentId int64, text string) (r *models.ReplyDTO, err error) {
	err = c.withDetail(func(d *PostDetail) {
		if added, ok := d.AddReply(commentId, text); ok {
			x := *added
			r = &x
		}
	})
	return
}

func (c *Controller) EditComment(commentId int64, text string) (ok bool, err error) {
	err = c.withDetail(func(d *PostDetail) { ok = d.EditComment(commentId, text) })
	return
}

func (c *Controller) DeleteComment(commentId int64) (ok bool, err error) {
	err = c.withDetail(func(d *PostDetail) { ok = d.DeleteComment(commentId) })
	return
}

func (c *Controller) DeleteReply(commentId, replyId int64) (ok bool, err error) {
	err = c.withDetail(func(d *PostDetail) { ok = d.DeleteReply(commentId, replyId) })
	return
}

func (c *Controller) Detail() (v *DetailView, err error) {
	err = c.withDetail(func(d *PostDetail) { v = d.View() })
	return
}
