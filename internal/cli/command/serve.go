package command

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"github.com/layer-3/inkgate/internal/authstub"
	httptransport "github.com/layer-3/inkgate/transport/http"
)

const shutdownTimeout = 10 * time.Second

// ServeCommand returns the serve command.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web companion (login and register forms, gated pages)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default from web.addr)",
			},
		},
		Action: serveWeb,
	}
}

// StubCommand returns the stub command.
func StubCommand() *cli.Command {
	return &cli.Command{
		Name:  "stub",
		Usage: "Run an in-memory auth backend for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (default from stub.addr)",
			},
		},
		Action: serveStub,
	}
}

func serveWeb(c *cli.Context) error {
	cfg := GetConfig(c)
	log := GetLogger(c)
	setGinMode(cfg.Log.Level)

	sess, err := openSession(c)
	if err != nil {
		return err
	}
	defer sess.Close()

	routerCfg := httptransport.RouterConfig{
		AuthService: sess.AuthService(),
		Store:       sess.Store(),
		API:         sess.API(),
		Metrics:     sess.Metrics(),
		LoginPath:   cfg.Web.LoginPath,
		RootPath:    cfg.Web.RootPath,
		Logger:      log,
	}
	if cfg.Web.Metrics {
		routerCfg.Gatherer = sess.Gatherer()
	}

	addr := c.String("addr")
	if addr == "" {
		addr = cfg.Web.Addr
	}

	return listen(c.Context, log, "web companion", addr, httptransport.SetupRouter(routerCfg))
}

func serveStub(c *cli.Context) error {
	cfg := GetConfig(c)
	log := GetLogger(c)
	setGinMode(cfg.Log.Level)

	addr := c.String("addr")
	if addr == "" {
		addr = cfg.Stub.Addr
	}

	stub := authstub.New(authstub.WithLogger(log))
	return listen(c.Context, log, "auth stub", addr, stub.Router())
}

func setGinMode(level string) {
	if level == "debug" {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}

// listen serves handler until SIGINT/SIGTERM, then shuts down gracefully.
func listen(ctx context.Context, log *slog.Logger, name, addr string, handler http.Handler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "server", name, "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "server", name)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
