package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/dispatch"
	"github.com/Zachkp/portfolio/internal/web"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	Long: `Serve the portfolio page and its HTMX fragments.

Configuration comes from the environment and an optional .env file.
--port overrides PORT.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}
	gin.SetMode(cfg.Server.GinMode)

	state, err := loadPageState(cfg)
	if err != nil {
		return err
	}

	db, err := analytics.Open(cfg.Analytics.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	janitor, err := analytics.NewJanitor(db, cfg.Analytics.CleanupSchedule, cfg.Analytics.Retention())
	if err != nil {
		return err
	}
	janitor.Start()
	defer janitor.Stop()

	// The loop outlives the listener so in-flight requests can finish
	// during shutdown.
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	loop := dispatch.New(64)
	go loop.Run(loopCtx)

	srv, err := web.New(web.Options{
		Config:    cfg,
		Portfolio: state.portfolio,
		Loop:      loop,
		Skills:    state.skills,
		Catalog:   state.catalog,
		Analytics: db,
		Version:   version,
	})
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on :%s", cfg.Server.Port)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Server stopped")
	return nil
}
