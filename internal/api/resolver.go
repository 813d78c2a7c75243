package api

import (
	"github.com/graphql-go/graphql"
	"github.com/mi-raf/rule-look/internal/models"
)

// Resolvers read the client's controller from the request context, so every
// query and mutation runs against the caller's own session.

func getScreenQuery(screenType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: screenType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return c.Screen(), nil
		},
	}
}

func getPostsQuery(postType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(postType),
		Args: graphql.FieldConfigArgument{
			"category": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: string(models.CategoryAll)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			category, _ := p.Args["category"].(string)
			return c.Posts(p.Context, models.Category(category))
		},
	}
}

func getPostQuery(postType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: postType,
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(Int64)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return c.Post(p.Context, p.Args["id"].(int64))
		},
	}
}

func getDetailQuery(detailType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: detailType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return c.Detail()
		},
	}
}

func getSchoolsQuery(schoolType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(schoolType),
		Args: graphql.FieldConfigArgument{
			"query": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			q, _ := p.Args["query"].(string)
			return c.Catalog().SearchSchools(q), nil
		},
	}
}

func getFAQsQuery(faqType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(faqType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return c.Catalog().FAQs(), nil
		},
	}
}

func getMessagesQuery(messageType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewList(messageType),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return c.ChatMessages()
		},
	}
}

func getProfileQuery(profileType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: profileType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return c.Profile(p.Context)
		},
	}
}

func navigateMutation(screenType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: screenType,
		Args: graphql.FieldConfigArgument{
			"target": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			c.Navigate(p.Context, models.Page(p.Args["target"].(string)))
			return c.Screen(), nil
		},
	}
}

func selectSchoolMutation(screenType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: screenType,
		Args: graphql.FieldConfigArgument{
			"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			c.SelectSchool(p.Args["name"].(string))
			return c.Screen(), nil
		},
	}
}

func openPostMutation(screenType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: screenType,
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(Int64)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			c.OpenPost(p.Context, p.Args["id"].(int64))
			return c.Screen(), nil
		},
	}
}

func submitPostMutation(postType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: postType,
		Args: graphql.FieldConfigArgument{
			"category": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"school":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"title":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			"content":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			d := models.Draft{
				Category: models.Category(p.Args["category"].(string)),
				School:   p.Args["school"].(string),
				Title:    sanitize(p.Args["title"].(string)),
				Content:  sanitize(p.Args["content"].(string)),
			}
			return c.SubmitPost(p.Context, d)
		},
	}
}

func toggleLikeMutation(likeType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: likeType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			liked, likes, err := c.ToggleLike()
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"liked": liked, "likes": likes}, nil
		},
	}
}

func addCommentMutation(commentType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: commentType,
		Args: graphql.FieldConfigArgument{
			"text": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return c.AddComment(sanitize(p.Args["text"].(string)))
		},
	}
}

func addReplyMutation(replyType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: replyType,
		Args: graphql.FieldConfigArgument{
			"commentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(Int64)},
			"text":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return c.AddReply(p.Args["commentId"].(int64), sanitize(p.Args["text"].(string)))
		},
	}
}

func sendMessageMutation() *graphql.Field {
	return &graphql.Field{
		Type: graphql.Boolean,
		Args: graphql.FieldConfigArgument{
			"text": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			c, err := controllerFrom(p.Context)
			if err != nil {
				return nil, err
			}
			return c.SendMessage(sanitize(p.Args["text"].(string)))
		},
	}
}
