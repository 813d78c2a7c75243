package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mi-raf/rule-look/internal/session"
)

func NewRouter(c *Config, sessions *session.Manager) (*gin.Engine, error) {
	var (
		router = gin.New()
		h      = &handler{sessions: sessions}
	)

	cc := cors.Config{
		AllowOrigins:  c.CorsOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Content-Type", SessionHeader},
		ExposeHeaders: []string{SessionHeader},
		MaxAge:        300 * time.Second,
	}
	if len(c.CorsOrigins) == 0 {
		cc.AllowAllOrigins = true
	}
	router.Use(cors.New(cc), gin.Recovery())

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	gqlHandler, err := newGqlHandler()
	if err != nil {
		return nil, err
	}

	apiGroup := router.Group("/api/v1")
	{
		apiGroup.Use(logMiddleware())

		apiGroup.POST("/sessions", h.createSession)
		apiGroup.DELETE("/sessions", h.closeSession)

		sg := apiGroup.Group("", h.sessionMiddleware)
		{
			sg.POST("/graphql", gin.WrapH(gqlHandler))

			sg.GET("/state", h.state)
			sg.POST("/navigate", h.navigate)
			sg.POST("/tabs/:tab", h.clickTab)
			sg.POST("/back", h.back)
			sg.POST("/logo", h.clickLogo)

			sg.GET("/schools", h.schools)
			sg.POST("/schools/select", h.selectSchool)
			sg.GET("/categories", h.categories)

			sg.GET("/posts", h.posts)
			sg.POST("/posts", h.submitPost)
			sg.POST("/posts/:id/open", h.openPost)
			sg.POST("/write", h.openWrite)

			sg.GET("/detail", h.detail)
			sg.POST("/detail/like", h.toggleLike)
			sg.POST("/detail/comments", h.addComment)
			sg.PUT("/detail/comments/:cid", h.editComment)
			sg.DELETE("/detail/comments/:cid", h.deleteComment)
			sg.POST("/detail/comments/:cid/replies", h.addReply)
			sg.DELETE("/detail/comments/:cid/replies/:rid", h.deleteReply)

			sg.GET("/chat", h.chatMessages)
			sg.POST("/chat", h.sendMessage)

			sg.GET("/faqs", h.faqs)
			sg.POST("/faqs/:id/toggle", h.toggleFAQ)

			sg.POST("/account/login", h.login)
			sg.POST("/account/signup/check", h.checkSignup)
			sg.POST("/account/signup", h.signup)
			sg.POST("/account/logout", h.logout)
			sg.POST("/account/delete", h.deleteAccount)
			sg.GET("/account/profile", h.profile)
			sg.PUT("/account/profile", h.editProfile)
			sg.PUT("/account/school", h.changeSchool)
		}
	}

	return router, nil
}
