package web

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/projects"
)

type pageView struct {
	Title     string
	Greeting  string
	Summary   string
	Portfolio *content.Portfolio
	Skills    skillsListView
	Cards     []projects.Card
	SortMode  string
	FadeMs    int64
	Downloads int64
	HasResume bool
	ScrollMs  int
}

func (s *Server) index(c *gin.Context) {
	var (
		view  skillsListView
		order []projects.Project
		mode  projects.SortMode
	)
	if !s.onLoop(c, func() {
		view = s.skillsListView(s.skills.Rows(), "", nil)
		order = s.catalog.ViewOrder()
		mode = s.catalog.Mode()
	}) {
		return
	}

	downloads, err := s.analytics.DownloadCount(c.Request.Context())
	if err != nil {
		log.Printf("Error loading download count: %v", err)
	}

	c.HTML(http.StatusOK, "index", pageView{
		Title:     s.portfolio.Name,
		Greeting:  s.portfolio.Greeting(),
		Summary:   s.portfolio.Summary,
		Portfolio: s.portfolio,
		Skills:    view,
		Cards:     projects.Cards(order, s.now()),
		SortMode:  mode.String(),
		FadeMs:    s.cfg.UI.ProjectFade.Milliseconds(),
		Downloads: downloads,
		HasResume: s.cfg.Content.ResumePath != "",
		ScrollMs:  800,
	})
}

func (s *Server) listProjects(c *gin.Context) {
	mode, err := projects.ParseSortMode(c.Query("sort"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	var order []projects.Project
	if !s.onLoop(c, func() {
		s.catalog.SetSortMode(mode)
		order = s.catalog.ViewOrder()
	}) {
		return
	}

	// Status is derived from the date at render time, never cached.
	c.HTML(http.StatusOK, "projects-grid", projects.Cards(order, s.now()))
}

func (s *Server) recordDownload(c *gin.Context) {
	count, err := s.analytics.RecordDownload(c.Request.Context())
	if err != nil {
		log.Printf("Error recording download: %v", err)
		c.String(http.StatusInternalServerError, "Could not record download")
		return
	}

	if s.cfg.Content.ResumePath != "" {
		c.Header("HX-Redirect", "/resume/file")
	}
	c.HTML(http.StatusOK, "download-count", count)
}

func (s *Server) resumeFile(c *gin.Context) {
	path := s.cfg.Content.ResumePath
	if path == "" {
		c.String(http.StatusNotFound, "No resume available")
		return
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("Resume file unavailable: %v", err)
		c.String(http.StatusNotFound, "No resume available")
		return
	}
	c.FileAttachment(path, "resume"+filepath.Ext(path))
}
