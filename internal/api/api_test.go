package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mi-raf/rule-look/internal/api"
	"github.com/mi-raf/rule-look/internal/catalog"
	"github.com/mi-raf/rule-look/internal/chatbot"
	"github.com/mi-raf/rule-look/internal/database"
	"github.com/mi-raf/rule-look/internal/service"
	"github.com/mi-raf/rule-look/internal/session"
	"github.com/stretchr/testify/suite"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type ApiTestSuite struct {
	suite.Suite
	router   *gin.Engine
	sessions *session.Manager
	sid      string
}

func (s *ApiTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *ApiTestSuite) SetupTest() {
	cfg := &service.Config{Chat: chatbot.Config{ReplyDelay: time.Hour}}
	f := service.NewFactory(catalog.Default(), database.NewInMemoryPreferenceRepository(), cfg)
	m, err := session.NewManager(f, &session.Config{Limit: 8})
	s.Require().NoError(err)
	s.sessions = m
	s.router, err = api.NewRouter(&api.Config{}, m)
	s.Require().NoError(err)

	w := s.do(http.MethodPost, "/api/v1/sessions", nil)
	s.Require().Equal(http.StatusCreated, w.Code)
	s.sid = w.Header().Get(api.SessionHeader)
	s.Require().NotEmpty(s.sid)
}

func (s *ApiTestSuite) TearDownTest() {
	s.sessions.Close()
}

func (s *ApiTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.sid != "" {
		req.Header.Set(api.SessionHeader, s.sid)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ApiTestSuite) decode(w *httptest.ResponseRecorder, data any) envelope {
	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		s.Require().NoError(json.Unmarshal(env.Data, data))
	}
	return env
}

func (s *ApiTestSuite) TestHealthcheck() {
	w := s.do(http.MethodGet, "/healthcheck", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *ApiTestSuite) TestUnknownSession() {
	// given
	s.sid = "7d1f4c1e-8f7e-4c55-9b43-2b7ad9c0a111"

	// when
	w := s.do(http.MethodGet, "/api/v1/state", nil)

	// then
	s.Equal(http.StatusNotFound, w.Code)
	env := s.decode(w, nil)
	s.False(env.Success)
}

func (s *ApiTestSuite) TestNavigation() {
	// when
	w := s.do(http.MethodPost, "/api/v1/navigate", map[string]string{"target": "community"})

	// then
	s.Equal(http.StatusOK, w.Code)
	var st service.State
	env := s.decode(w, &st)
	s.True(env.Success)
	s.Equal("community", string(st.Screen.CurrentPage))
	s.Equal("community", string(st.Screen.ActiveTab))

	// when
	w = s.do(http.MethodPost, "/api/v1/back", nil)

	// then
	s.decode(w, &st)
	s.Equal("home", string(st.Screen.CurrentPage))
	s.Equal("home", string(st.Screen.ActiveTab))
}

func (s *ApiTestSuite) TestNavigateWithoutTarget() {
	w := s.do(http.MethodPost, "/api/v1/navigate", map[string]string{})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ApiTestSuite) TestSearchSchools() {
	w := s.do(http.MethodGet, "/api/v1/schools?q=yonsei", nil)

	s.Equal(http.StatusOK, w.Code)
	var schools []map[string]any
	s.decode(w, &schools)
	s.Len(schools, 1)
	s.Equal("Yonsei University", schools[0]["name"])
}

func (s *ApiTestSuite) TestSubmitInvalidPost() {
	// when
	w := s.do(http.MethodPost, "/api/v1/posts", map[string]string{"category": "question", "school": "Korea University", "title": "", "content": "c"})

	// then
	s.Equal(http.StatusUnprocessableEntity, w.Code)
	var ve map[string]any
	env := s.decode(w, &ve)
	s.False(env.Success)
	s.Equal("모든 항목을 입력해주세요.", env.Message)
	s.Equal("missing_fields", ve["code"])
}

func (s *ApiTestSuite) TestSubmitPostStripsMarkup() {
	// when
	w := s.do(http.MethodPost, "/api/v1/posts", map[string]string{
		"category": "info",
		"school":   "Korea University",
		"title":    "<script>alert(1)</script>수강 신청",
		"content":  "<b>bold</b>",
	})

	// then
	s.Equal(http.StatusCreated, w.Code)
	var p map[string]any
	s.decode(w, &p)
	s.Equal(float64(1), p["id"])
	s.Equal("수강 신청", p["title"])
	s.Equal("<b>bold</b>", p["content"])
	s.Equal("anonymous", p["author"])
}

func (s *ApiTestSuite) TestPostDetailFlow() {
	// given
	w := s.do(http.MethodPost, "/api/v1/posts", map[string]string{"category": "free", "school": "Korea University", "title": "t", "content": "c"})
	s.Require().Equal(http.StatusCreated, w.Code)
	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/api/v1/detail/like", nil).Code)

	// when
	w = s.do(http.MethodPost, "/api/v1/posts/1/open", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	w = s.do(http.MethodPost, "/api/v1/detail/like", nil)

	// then
	var like map[string]any
	s.decode(w, &like)
	s.Equal(true, like["liked"])
	s.Equal(float64(1), like["likes"])

	// when
	w = s.do(http.MethodPost, "/api/v1/detail/comments", map[string]string{"text": "hello"})
	s.Equal(http.StatusOK, w.Code)
	w = s.do(http.MethodPost, "/api/v1/detail/comments/1/replies", map[string]string{"text": "reply"})
	s.Equal(http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/detail", nil)

	// then
	var v service.DetailView
	s.decode(w, &v)
	s.Require().Len(v.Comments, 1)
	s.Equal("me", v.Comments[0].Author)
	s.True(v.Comments[0].Mine)
	s.Len(v.Comments[0].Replies, 1)
	s.True(v.Comments[0].Replies[0].Mine)

	// when
	w = s.do(http.MethodDelete, "/api/v1/detail/comments/1", nil)

	// then
	var res map[string]bool
	s.decode(w, &res)
	s.True(res["deleted"])
	s.Equal(http.StatusBadRequest, s.do(http.MethodDelete, "/api/v1/detail/comments/abc", nil).Code)
}

func (s *ApiTestSuite) TestLogoutConfirmation() {
	// given
	w := s.do(http.MethodPost, "/api/v1/account/login", map[string]string{"email": "kim@example.com", "password": "secret"})
	s.Require().Equal(http.StatusOK, w.Code)

	// when
	w = s.do(http.MethodPost, "/api/v1/account/logout", map[string]bool{"confirmed": false})

	// then
	s.Equal(http.StatusConflict, w.Code)
	env := s.decode(w, nil)
	s.Equal("로그아웃 하시겠습니까?", env.Message)

	// when
	w = s.do(http.MethodPost, "/api/v1/account/logout", map[string]bool{"confirmed": true})

	// then
	s.Equal(http.StatusOK, w.Code)
	var p map[string]any
	s.decode(s.do(http.MethodGet, "/api/v1/account/profile", nil), &p)
	s.Equal(false, p["loggedIn"])
}

func (s *ApiTestSuite) TestSignupCheck() {
	w := s.do(http.MethodPost, "/api/v1/account/signup/check", map[string]any{
		"email":           "broken",
		"password":        "Abcdefg1!",
		"passwordConfirm": "Abcdefg1",
	})

	s.Equal(http.StatusOK, w.Code)
	var res struct {
		FieldErrors   map[string]string `json:"fieldErrors"`
		Strength      int               `json:"strength"`
		StrengthLabel string            `json:"strengthLabel"`
	}
	s.decode(w, &res)
	s.Contains(res.FieldErrors, "email")
	s.Contains(res.FieldErrors, "passwordConfirm")
	s.NotContains(res.FieldErrors, "password")
	s.Equal(4, res.Strength)
	s.Equal("매우 강함", res.StrengthLabel)
}

func (s *ApiTestSuite) TestGraphQL() {
	// given
	mutation := map[string]any{
		"query": `mutation($t: String!) { submitPost(category: "question", school: "Seoul National University", title: $t, content: "C") { id author comments } }`,
		"variables": map[string]any{"t": "T"},
	}

	// when
	w := s.do(http.MethodPost, "/api/v1/graphql", mutation)

	// then
	s.Equal(http.StatusOK, w.Code)
	var res struct {
		Data struct {
			SubmitPost struct {
				Id       int    `json:"id"`
				Author   string `json:"author"`
				Comments int    `json:"comments"`
			} `json:"submitPost"`
		} `json:"data"`
		Errors []any `json:"errors"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Empty(res.Errors)
	s.Equal(1, res.Data.SubmitPost.Id)
	s.Equal("anonymous", res.Data.SubmitPost.Author)

	// when
	w = s.do(http.MethodPost, "/api/v1/graphql", map[string]any{"query": `{ screen { currentPage activeTab } posts(category: "question") { title } }`})

	// then
	var q struct {
		Data struct {
			Screen struct {
				CurrentPage string `json:"currentPage"`
			} `json:"screen"`
			Posts []struct {
				Title string `json:"title"`
			} `json:"posts"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &q))
	s.Equal("community", q.Data.Screen.CurrentPage)
	s.Require().Len(q.Data.Posts, 1)
	s.Equal("T", q.Data.Posts[0].Title)
}

func (s *ApiTestSuite) graphql(query string, vars map[string]any, out any) {
	body := map[string]any{"query": query}
	if vars != nil {
		body["variables"] = vars
	}
	w := s.do(http.MethodPost, "/api/v1/graphql", body)
	s.Require().Equal(http.StatusOK, w.Code)
	var res struct {
		Data   json.RawMessage `json:"data"`
		Errors []any           `json:"errors"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	s.Require().Empty(res.Errors)
	s.Require().NoError(json.Unmarshal(res.Data, out))
}

func (s *ApiTestSuite) TestGraphQLReplyIds() {
	// given
	var ignore map[string]any
	s.graphql(`mutation { submitPost(category: "free", school: "Korea University", title: "t", content: "c") { id } }`, nil, &ignore)
	s.graphql(`mutation { openPost(id: 1) { currentPage selectedPostId } }`, nil, &ignore)
	s.graphql(`mutation { addComment(text: "hello") { id mine } }`, nil, &ignore)

	// when
	var added struct {
		AddReply struct {
			Id      *int64 `json:"id"`
			Content string `json:"content"`
			Mine    bool   `json:"mine"`
		} `json:"addReply"`
	}
	s.graphql(`mutation($c: Int64!) { addReply(commentId: $c, text: "r") { id content mine } }`, map[string]any{"c": 1}, &added)

	// then
	s.Require().NotNil(added.AddReply.Id)
	s.Greater(*added.AddReply.Id, int64(1<<31))
	s.Equal("r", added.AddReply.Content)
	s.True(added.AddReply.Mine)

	var detail struct {
		Detail struct {
			Comments []struct {
				Id      *int64 `json:"id"`
				Replies []struct {
					Id *int64 `json:"id"`
				} `json:"replies"`
			} `json:"comments"`
		} `json:"detail"`
	}
	s.graphql(`{ detail { comments { id replies { id } } } }`, nil, &detail)
	s.Require().Len(detail.Detail.Comments, 1)
	s.Require().Len(detail.Detail.Comments[0].Replies, 1)
	s.Require().NotNil(detail.Detail.Comments[0].Replies[0].Id)

	var v service.DetailView
	s.decode(s.do(http.MethodGet, "/api/v1/detail", nil), &v)
	s.Require().Len(v.Comments, 1)
	s.Require().Len(v.Comments[0].Replies, 1)
	s.Equal(v.Comments[0].Id, *detail.Detail.Comments[0].Id)
	s.Equal(v.Comments[0].Replies[0].Id, *detail.Detail.Comments[0].Replies[0].Id)
	s.Equal(v.Comments[0].Replies[0].Id, *added.AddReply.Id)
}

func (s *ApiTestSuite) TestGraphQLBadRequest() {
	w := s.do(http.MethodPost, "/api/v1/graphql", map[string]any{})

	s.Equal(http.StatusBadRequest, w.Code)
}

func TestApiTestSuite(t *testing.T) {
	suite.Run(t, new(ApiTestSuite))
}
