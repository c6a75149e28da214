package web

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
)

const adminCookie = "admin_token"

type adminAuth struct {
	token    string
	username string
	password string
}

// A fresh token per process; restarting the server logs everyone out.
func newAdminAuth(cfg config.AdminConfig) *adminAuth {
	a := &adminAuth{
		token:    generateAdminToken(),
		username: cfg.Username,
		password: cfg.Password,
	}

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode && cfg.UsingDefaults {
		log.Println("WARNING: Using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD environment variables.")
	}
	return a
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

func (a *adminAuth) valid(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

// Middleware to check admin authentication
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) setupAdminRoutes(r *gin.Engine, limited gin.HandlerFunc) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", limited, func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		if s.admin.valid(username, password) {
			// Secure cookie (24 hours)
			c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", s.analytics.HashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}

		log.Printf("Failed admin login attempt from %s", s.analytics.HashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", s.analytics.HashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(s.admin.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.analytics.Stats(c.Request.Context())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		var skillCount, projectCount int
		if !s.onLoop(c, func() {
			skillCount = s.skills.Len()
			projectCount = s.catalog.Len()
		}) {
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard", gin.H{
			"stats":    stats,
			"skills":   skillCount,
			"projects": projectCount,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.analytics.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.analytics.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-visitors", gin.H{
			"visitors": visitors,
		})
	})

	// Privacy compliance: drop visitor rows past the retention window now
	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		removed, err := s.analytics.CleanupVisitors(c.Request.Context(), s.retention())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup completed", "removed": removed})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.analytics.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")

		log.Printf("Admin stats exported by %s", s.analytics.HashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
