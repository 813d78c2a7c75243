package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/mi-raf/rule-look/internal/service"
	"github.com/mi-raf/rule-look/internal/session"
	"github.com/rs/zerolog/log"
)

type (
	ctxKey struct{}

	gqlHandler struct {
		schema graphql.Schema
	}

	gqlRequest struct {
		Query         string         `json:"query"`
		OperationName string         `json:"operationName"`
		Variables     map[string]any `json:"variables"`
	}
)

var DateTime = graphql.NewScalar(
	graphql.ScalarConfig{
		Name:        "DateTime",
		Description: "DateTime scalar type",
		Serialize: func(value interface{}) interface{} {
			switch v := value.(type) {
			case time.Time:
				return v.Format(time.RFC3339)
			case *time.Time:
				return v.Format(time.RFC3339)
			default:
				return nil
			}
		},
	},
)

// Int64 carries post, comment and reply ids. Reply ids are millisecond
// timestamps and overflow the 32-bit Int.
var Int64 = graphql.NewScalar(
	graphql.ScalarConfig{
		Name:        "Int64",
		Description: "64-bit integer scalar type",
		Serialize:   coerceInt64,
		ParseValue:  coerceInt64,
		ParseLiteral: func(valueAST ast.Value) interface{} {
			if v, ok := valueAST.(*ast.IntValue); ok {
				if n, err := strconv.ParseInt(v.Value, 10, 64); err == nil {
					return n
				}
			}
			return nil
		},
	},
)

func coerceInt64(value interface{}) interface{} {
	switch v := value.(type) {
	case int64:
		return v
	case *int64:
		if v == nil {
			return nil
		}
		return *v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
	}
	return nil
}

func withController(ctx context.Context, c *service.Controller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func controllerFrom(ctx context.Context) (*service.Controller, error) {
	c, ok := ctx.Value(ctxKey{}).(*service.Controller)
	if !ok {
		return nil, session.ErrUnknownSession
	}
	return c, nil
}

func newGqlHandler() (*gqlHandler, error) {
	gh := &gqlHandler{}
	if err := gh.initSchema(); err != nil {
		return nil, err
	}
	return gh, nil
}

func (gh *gqlHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req gqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Msg("can not decode graphql request")
		http.Error(w, errBadRequest.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		http.Error(w, errBadRequest.Error(), http.StatusBadRequest)
		return
	}

	res := graphql.Do(graphql.Params{
		Context:        r.Context(),
		Schema:         gh.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
	})
	if res.HasErrors() {
		log.Debug().Interface("errors", res.Errors).Msg("graphql errors in response")
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Error().Err(err).Msg("can not write graphql response")
	}
}

func (gh *gqlHandler) initSchema() error {
	screenType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Screen",
			Fields: graphql.Fields{
				"currentPage":    &graphql.Field{Type: graphql.String},
				"activeTab":      &graphql.Field{Type: graphql.String},
				"selectedSchool": &graphql.Field{Type: graphql.String},
				"selectedPostId": &graphql.Field{Type: Int64},
			},
		},
	)

	postType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Post",
			Fields: graphql.Fields{
				"id":       &graphql.Field{Type: Int64},
				"category": &graphql.Field{Type: graphql.String},
				"title":    &graphql.Field{Type: graphql.String},
				"content":  &graphql.Field{Type: graphql.String},
				"school":   &graphql.Field{Type: graphql.String},
				"author":   &graphql.Field{Type: graphql.String},
				"likes":    &graphql.Field{Type: graphql.Int},
				"comments": &graphql.Field{Type: graphql.Int},
				"timeAgo":  &graphql.Field{Type: graphql.String},
			},
		},
	)

	replyType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Reply",
			Fields: graphql.Fields{
				"id":      &graphql.Field{Type: Int64},
				"author":  &graphql.Field{Type: graphql.String},
				"content": &graphql.Field{Type: graphql.String},
				"timeAgo": &graphql.Field{Type: graphql.String},
				"mine":    &graphql.Field{Type: graphql.Boolean},
			},
		},
	)

	commentType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Comment",
			Fields: graphql.Fields{
				"id":      &graphql.Field{Type: Int64},
				"author":  &graphql.Field{Type: graphql.String},
				"content": &graphql.Field{Type: graphql.String},
				"timeAgo": &graphql.Field{Type: graphql.String},
				"mine":    &graphql.Field{Type: graphql.Boolean},
				"replies": &graphql.Field{Type: graphql.NewList(replyType)},
			},
		},
	)

	detailType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Detail",
			Fields: graphql.Fields{
				"post":     &graphql.Field{Type: postType},
				"liked":    &graphql.Field{Type: graphql.Boolean},
				"likes":    &graphql.Field{Type: graphql.Int},
				"comments": &graphql.Field{Type: graphql.NewList(commentType)},
			},
		},
	)

	likeType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Like",
			Fields: graphql.Fields{
				"liked": &graphql.Field{Type: graphql.Boolean},
				"likes": &graphql.Field{Type: graphql.Int},
			},
		},
	)

	schoolType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "School",
			Fields: graphql.Fields{
				"id":       &graphql.Field{Type: graphql.Int},
				"name":     &graphql.Field{Type: graphql.String},
				"korean":   &graphql.Field{Type: graphql.String},
				"location": &graphql.Field{Type: graphql.String},
			},
		},
	)

	faqType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "FAQ",
			Fields: graphql.Fields{
				"id":       &graphql.Field{Type: graphql.Int},
				"question": &graphql.Field{Type: graphql.String},
				"answer":   &graphql.Field{Type: graphql.String},
			},
		},
	)

	messageType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Message",
			Fields: graphql.Fields{
				"id":        &graphql.Field{Type: Int64},
				"text":      &graphql.Field{Type: graphql.String},
				"sender":    &graphql.Field{Type: graphql.String},
				"timestamp": &graphql.Field{Type: DateTime},
			},
		},
	)

	profileType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Profile",
			Fields: graphql.Fields{
				"email":        &graphql.Field{Type: graphql.String},
				"name":         &graphql.Field{Type: graphql.String},
				"avatarLetter": &graphql.Field{Type: graphql.String},
				"school":       &graphql.Field{Type: graphql.String},
				"loggedIn":     &graphql.Field{Type: graphql.Boolean},
			},
		},
	)

	queryType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"screen":   getScreenQuery(screenType),
				"posts":    getPostsQuery(postType),
				"post":     getPostQuery(postType),
				"detail":   getDetailQuery(detailType),
				"schools":  getSchoolsQuery(schoolType),
				"faqs":     getFAQsQuery(faqType),
				"messages": getMessagesQuery(messageType),
				"profile":  getProfileQuery(profileType),
			},
		},
	)

	mutationType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Mutation",
			Fields: graphql.Fields{
				"navigate":     navigateMutation(screenType),
				"selectSchool": selectSchoolMutation(screenType),
				"openPost":     openPostMutation(screenType),
				"submitPost":   submitPostMutation(postType),
				"toggleLike":   toggleLikeMutation(likeType),
				"addComment":   addCommentMutation(commentType),
				"addReply":     addReplyMutation(replyType),
				"sendMessage":  sendMessageMutation(),
			},
		},
	)

	schema, err := graphql.NewSchema(
		graphql.SchemaConfig{
			Query:    queryType,
			Mutation: mutationType,
		},
	)
	if err != nil {
		return err
	}

	gh.schema = schema
	return nil
}
