// Package web serves the portfolio page and its HTMX fragments with gin.
// All skill and project state is touched only from the dispatch loop.
package web

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/dispatch"
	"github.com/Zachkp/portfolio/internal/projects"
	"github.com/Zachkp/portfolio/internal/skills"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type Options struct {
	Config    *config.Config
	Portfolio *content.Portfolio
	Loop      *dispatch.Loop
	Skills    *skills.View
	Catalog   *projects.Catalog
	Analytics *analytics.Store
	Version   string
	// Now defaults to time.Now; project status is computed against it.
	Now func() time.Time
}

type Server struct {
	cfg       *config.Config
	portfolio *content.Portfolio
	loop      *dispatch.Loop
	skills    *skills.View
	catalog   *projects.Catalog
	analytics *analytics.Store
	admin     *adminAuth
	limiter   *rate.Limiter
	version   string
	now       func() time.Time
	engine    *gin.Engine
}

func New(opts Options) (*Server, error) {
	if opts.Config == nil || opts.Portfolio == nil || opts.Loop == nil ||
		opts.Skills == nil || opts.Catalog == nil || opts.Analytics == nil {
		return nil, errors.New("web: incomplete server options")
	}

	s := &Server{
		cfg:       opts.Config,
		portfolio: opts.Portfolio,
		loop:      opts.Loop,
		skills:    opts.Skills,
		catalog:   opts.Catalog,
		analytics: opts.Analytics,
		admin:     newAdminAuth(opts.Config.Admin),
		limiter:   rate.NewLimiter(rate.Limit(opts.Config.Server.RateLimit), opts.Config.Server.RateBurst),
		version:   opts.Version,
		now:       opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}

	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestIDMiddleware())
	if origins := s.cfg.Server.CORSOrigins; len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{"GET", "POST"},
			AllowHeaders:  []string{"Origin", "Content-Type", "HX-Request", "HX-Target", "HX-Current-URL", "HX-Trigger"},
			ExposeHeaders: []string{"HX-Trigger", "HX-Reswap", "HX-Retarget", "HX-Redirect"},
			MaxAge:        12 * time.Hour,
		}))
	}
	r.Use(s.visitorTrackingMiddleware())
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", http.FS(static))
	r.Static("/images", "./images")

	NewHealthHandler("portfolio", s.version, s.analytics).RegisterRoutes(r)

	r.GET("/", s.index)
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy", gin.H{"title": "Privacy Policy"})
	})

	limited := s.rateLimitMiddleware()

	r.GET("/skills", s.listSkills)
	r.POST("/skills", limited, s.addSkill)
	r.GET("/skills/:pos/edit", s.editSkill)
	r.GET("/skills/:pos", s.cancelEdit)
	r.POST("/skills/:pos", limited, s.commitEdit)
	r.POST("/skills/:pos/delete", limited, s.deleteSkill)

	r.GET("/projects", s.listProjects)

	r.POST("/resume/download", limited, s.recordDownload)
	r.GET("/resume/file", s.resumeFile)

	s.setupAdminRoutes(r, limited)

	s.engine = r
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// onLoop runs fn on the dispatch loop. It writes a 503 and returns false if
// the loop is gone or the request was cancelled first.
func (s *Server) onLoop(c *gin.Context, fn func()) bool {
	if err := s.loop.Do(c.Request.Context(), fn); err != nil {
		log.Printf("Error dispatching %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.String(http.StatusServiceUnavailable, "Service unavailable")
		return false
	}
	return true
}

func (s *Server) retention() time.Duration {
	return s.cfg.Analytics.Retention()
}
