package service

import (
	"context"
	"strings"

	"github.com/mi-raf/rule-look/internal/models"
	"github.com/mi-raf/rule-look/internal/validation"
	"github.com/rs/zerolog/log"
)

// SubmitPost validates the draft and puts the new post at the top of the
// board, then shows the community list. On a validation error nothing
// changes, including the current screen.
func (c *Controller) SubmitPost(ctx context.Context, d models.Draft) (*models.PostDTO, error) {
	c.m.Lock()
	defer c.m.Unlock()
	if err := validation.ValidateDraft(d, c.cat); err != nil {
		return nil, err
	}
	p := &models.PostDTO{
		Category: d.Category,
		Title:    d.Title,
		Content:  d.Content,
		School:   d.School,
		Author:   models.AnonymousAuthor,
		Likes:    0,
		Comments: 0,
		TimeAgo:  models.JustNow,
	}
	id, err := c.posts.Add(ctx, p)
	if err != nil {
		return nil, dbError(err, "can not add post")
	}
	p.Id = id
	log.Debug().Int64("id", id).Str("category", string(p.Category)).Msg("post submitted")
	c.show(models.PageCommunity)
	return p, nil
}

// Posts lists the board newest first. An empty category or "all" disables
// the filter.
func (c *Controller) Posts(ctx context.Context, category models.Category) ([]*models.PostDTO, error) {
	all, err := c.posts.GetAll(ctx)
	if err != nil {
		return nil, dbError(err, "can not list posts")
	}
	category = models.Category(strings.TrimSpace(string(category)))
	if category == "" || category == models.CategoryAll {
		return all, nil
	}
	res := make([]*models.PostDTO, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			res = append(res, p)
		}
	}
	return res, nil
}

func (c *Controller) Post(ctx context.Context, id int64) (*models.PostDTO, error) {
	p, err := c.posts.Get(ctx, id)
	if err != nil {
		return nil, dbError(err, "can not get post")
	}
	return p, nil
}
