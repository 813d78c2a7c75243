package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mi-raf/rule-look/internal/models"
	"github.com/mi-raf/rule-look/internal/service"
	"github.com/mi-raf/rule-look/internal/session"
	"github.com/mi-raf/rule-look/internal/validation"
	"github.com/rs/zerolog/log"
)

const (
	SessionHeader = "X-Session-ID"

	controllerKey = "controller"
)

var errBadRequest = errors.New("bad request")

type (
	API struct {
		s      *http.Server
		listen string
		ctx    context.Context
	}

	Config struct {
		Listen      string
		CorsOrigins []string
	}

	handler struct {
		sessions *session.Manager
	}

	navigateRequest struct {
		Target models.Page `json:"target" binding:"required"`
	}

	textRequest struct {
		Text string `json:"text"`
	}

	schoolRequest struct {
		School    string `json:"school"`
		Confirmed bool   `json:"confirmed"`
	}

	confirmRequest struct {
		Confirmed     bool `json:"confirmed"`
		Confirmations int  `json:"confirmations"`
	}

	signupCheck struct {
		FieldErrors   map[string]string `json:"fieldErrors"`
		Strength      int               `json:"strength"`
		StrengthLabel string            `json:"strengthLabel"`
		AllTerms      bool              `json:"allTerms"`
	}
)

func NewApi(ctx context.Context, c *Config, sessions *session.Manager) (*API, error) {
	router, err := NewRouter(c, sessions)
	if err != nil {
		return nil, err
	}
	server := &http.Server{
		Addr:              c.Listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &API{
		s:      server,
		listen: c.Listen,
		ctx:    ctx,
	}, nil
}

func (a *API) Start() error {
	log.Debug().Msgf("listening on %v", a.listen)
	if err := a.s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Close() {
	log.Debug().Msg("start graceful server shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := a.s.Shutdown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("error while shutdowning server")
		return
	}
	log.Debug().Msg("server graceful shutdowned")
}

func logMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := c.Request
		start := time.Now()

		c.Next()
		stop := time.Now()

		log.Debug().
			Str("remote", c.ClientIP()).
			Str("user_agent", req.UserAgent()).
			Str("method", req.Method).
			Str("request uri", req.RequestURI).
			Int("status", c.Writer.Status()).
			Dur("duration", stop.Sub(start)).
			Str("duration_human", stop.Sub(start).String()).
			Msgf("called url %s", req.URL)
	}
}

// sessionMiddleware resolves the session header into the client's controller.
func (h *handler) sessionMiddleware(c *gin.Context) {
	ctrl, err := h.sessions.Get(c.GetHeader(SessionHeader))
	if err != nil {
		fail(c, err)
		c.Abort()
		return
	}
	c.Set(controllerKey, ctrl)
	c.Request = c.Request.WithContext(withController(c.Request.Context(), ctrl))
	c.Next()
}

func controller(c *gin.Context) *service.Controller {
	return c.MustGet(controllerKey).(*service.Controller)
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Debug().Err(err).Msg("can not decode request")
		fail(c, errors.Join(errBadRequest, err))
		return false
	}
	return true
}

func paramId(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		fail(c, errors.Join(errBadRequest, err))
		return 0, false
	}
	return id, true
}

func (h *handler) createSession(c *gin.Context) {
	id, ctrl := h.sessions.Create()
	c.Header(SessionHeader, id)
	created(c, gin.H{"sessionId": id, "state": ctrl.Snapshot()})
}

func (h *handler) closeSession(c *gin.Context) {
	h.sessions.Remove(c.GetHeader(SessionHeader))
	ok(c, nil)
}

func (h *handler) state(c *gin.Context) {
	ok(c, controller(c).Snapshot())
}

func (h *handler) navigate(c *gin.Context) {
	var req navigateRequest
	if !bind(c, &req) {
		return
	}
	ctrl := controller(c)
	ctrl.Navigate(c.Request.Context(), req.Target)
	ok(c, ctrl.Snapshot())
}

func (h *handler) clickTab(c *gin.Context) {
	ctrl := controller(c)
	ctrl.ClickTab(c.Request.Context(), models.Tab(c.Param("tab")))
	ok(c, ctrl.Snapshot())
}

func (h *handler) back(c *gin.Context) {
	ctrl := controller(c)
	ctrl.Back()
	ok(c, ctrl.Snapshot())
}

func (h *handler) clickLogo(c *gin.Context) {
	ctrl := controller(c)
	ctrl.ClickLogo()
	ok(c, ctrl.Snapshot())
}

func (h *handler) schools(c *gin.Context) {
	ok(c, controller(c).Catalog().SearchSchools(c.Query("q")))
}

func (h *handler) selectSchool(c *gin.Context) {
	var req schoolRequest
	if !bind(c, &req) {
		return
	}
	ctrl := controller(c)
	ctrl.SelectSchool(req.School)
	ok(c, ctrl.Snapshot())
}

func (h *handler) categories(c *gin.Context) {
	ok(c, controller(c).Catalog().Categories())
}

func (h *handler) posts(c *gin.Context) {
	posts, err := controller(c).Posts(c.Request.Context(), models.Category(c.Query("category")))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, posts)
}

func (h *handler) submitPost(c *gin.Context) {
	var d models.Draft
	if !bind(c, &d) {
		return
	}
	d.Title = sanitize(d.Title)
	d.Content = sanitize(d.Content)
	p, err := controller(c).SubmitPost(c.Request.Context(), d)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, p)
}

func (h *handler) openPost(c *gin.Context) {
	id, valid := paramId(c, "id")
	if !valid {
		return
	}
	ctrl := controller(c)
	ctrl.OpenPost(c.Request.Context(), id)
	ok(c, ctrl.Snapshot())
}

func (h *handler) openWrite(c *gin.Context) {
	ctrl := controller(c)
	ctrl.OpenWrite()
	ok(c, ctrl.Snapshot())
}

func (h *handler) detail(c *gin.Context) {
	v, err := controller(c).Detail()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, v)
}

func (h *handler) toggleLike(c *gin.Context) {
	liked, likes, err := controller(c).ToggleLike()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"liked": liked, "likes": likes})
}

func (h *handler) addComment(c *gin.Context) {
	var req textRequest
	if !bind(c, &req) {
		return
	}
	cm, err := controller(c).AddComment(sanitize(req.Text))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, cm)
}

func (h *handler) editComment(c *gin.Context) {
	id, valid := paramId(c, "cid")
	if !valid {
		return
	}
	var req textRequest
	if !bind(c, &req) {
		return
	}
	changed, err := controller(c).EditComment(id, sanitize(req.Text))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"changed": changed})
}

func (h *handler) deleteComment(c *gin.Context) {
	id, valid := paramId(c, "cid")
	if !valid {
		return
	}
	deleted, err := controller(c).DeleteComment(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"deleted": deleted})
}

func (h *handler) addReply(c *gin.Context) {
	id, valid := paramId(c, "cid")
	if !valid {
		return
	}
	var req textRequest
	if !bind(c, &req) {
		return
	}
	r, err := controller(c).AddReply(id, sanitize(req.Text))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, r)
}

func (h *handler) deleteReply(c *gin.Context) {
	cid, valid := paramId(c, "cid")
	if !valid {
		return
	}
	rid, valid := paramId(c, "rid")
	if !valid {
		return
	}
	deleted, err := controller(c).DeleteReply(cid, rid)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"deleted": deleted})
}

func (h *handler) chatMessages(c *gin.Context) {
	msgs, err := controller(c).ChatMessages()
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, msgs)
}

func (h *handler) sendMessage(c *gin.Context) {
	var req textRequest
	if !bind(c, &req) {
		return
	}
	sent, err := controller(c).SendMessage(sanitize(req.Text))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"sent": sent})
}

func (h *handler) faqs(c *gin.Context) {
	ok(c, controller(c).Catalog().FAQs())
}

func (h *handler) toggleFAQ(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, errors.Join(errBadRequest, err))
		return
	}
	open, err := controller(c).ToggleFAQ(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"openFaq": open})
}

func (h *handler) login(c *gin.Context) {
	var f validation.LoginForm
	if !bind(c, &f) {
		return
	}
	ctrl := controller(c)
	if err := ctrl.Login(c.Request.Context(), f); err != nil {
		fail(c, err)
		return
	}
	ok(c, ctrl.Snapshot())
}

// checkSignup reports live field messages and password strength without
// submitting the form.
func (h *handler) checkSignup(c *gin.Context) {
	var f validation.SignupForm
	if !bind(c, &f) {
		return
	}
	s := f.Strength()
	ok(c, signupCheck{
		FieldErrors:   f.FieldErrors(),
		Strength:      s,
		StrengthLabel: validation.StrengthLabel(s),
		AllTerms:      f.Terms.All(),
	})
}

func (h *handler) signup(c *gin.Context) {
	var f validation.SignupForm
	if !bind(c, &f) {
		return
	}
	f.Name = sanitize(f.Name)
	ctrl := controller(c)
	if err := ctrl.Signup(c.Request.Context(), f); err != nil {
		fail(c, err)
		return
	}
	ok(c, ctrl.Snapshot())
}

func (h *handler) logout(c *gin.Context) {
	var req confirmRequest
	if !bind(c, &req) {
		return
	}
	ctrl := controller(c)
	if err := ctrl.Logout(c.Request.Context(), req.Confirmed); err != nil {
		fail(c, err)
		return
	}
	ok(c, ctrl.Snapshot())
}

func (h *handler) deleteAccount(c *gin.Context) {
	var req confirmRequest
	if !bind(c, &req) {
		return
	}
	ctrl := controller(c)
	if err := ctrl.DeleteAccount(c.Request.Context(), req.Confirmations); err != nil {
		fail(c, err)
		return
	}
	ok(c, ctrl.Snapshot())
}

func (h *handler) profile(c *gin.Context) {
	p, err := controller(c).Profile(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

func (h *handler) editProfile(c *gin.Context) {
	var f validation.ProfileForm
	if !bind(c, &f) {
		return
	}
	f.Name = sanitize(f.Name)
	ctrl := controller(c)
	if err := ctrl.EditProfile(c.Request.Context(), f); err != nil {
		fail(c, err)
		return
	}
	ok(c, ctrl.Snapshot())
}

func (h *handler) changeSchool(c *gin.Context) {
	var req schoolRequest
	if !bind(c, &req) {
		return
	}
	ctrl := controller(c)
	if err := ctrl.ChangeSchool(c.Request.Context(), req.School, req.Confirmed); err != nil {
		fail(c, err)
		return
	}
	ok(c, ctrl.Snapshot())
}
