package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/picto-id/print-service/internal/assets"
	"github.com/picto-id/print-service/internal/config"
	"github.com/picto-id/print-service/internal/dispatch"
	"github.com/picto-id/print-service/internal/httpx"
	"github.com/picto-id/print-service/internal/profile"
	"github.com/picto-id/print-service/internal/ws"
)

// arLink expands the configured template ("https://ar.example.id/o/%d")
// with the order id.
func arLink(template string, orderID int64) string {
	return fmt.Sprintf(template, orderID)
}

func buildPrinters(defs []config.PrinterDef) []dispatch.Printer {
	printers := make([]dispatch.Printer, 0, len(defs))
	for _, def := range defs {
		// Load already validated every model; a miss here is a bug.
		prof, err := profile.Resolve(def.Model)
		if err != nil {
			log.Fatalf("[main] %s: %v", def.Name, err)
		}
		printers = append(printers, dispatch.Printer{
			Name:    def.Name,
			Addr:    def.Addr,
			Profile: prof,
		})
	}
	return printers
}

func newRouter(d *dispatch.Dispatcher, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())
	corsCfg := cors.Config{
		AllowMethods: []string{http.MethodPost},
		AllowHeaders: []string{"Content-Type"},
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.POST("/print_receipt", printReceiptHandler(d, hub, cfg))
	r.POST("/print_number", printNumberHandler(d, hub))
	r.GET("/ws", hub.Handler())
	return r
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] config: %v", err)
	}

	store := assets.NewStore(cfg.AssetDir)
	d := dispatch.New(buildPrinters(cfg.Printers), store, nil)

	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = true
	}
	hub := ws.NewHub(func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || len(allowed) == 0 || allowed[origin]
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: newRouter(d, hub, cfg),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[main] print-service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("[main] %v", err)
	}
}
