package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/slotscore/internal/cli"
	"github.com/julianstephens/slotscore/internal/logger"
	"github.com/julianstephens/slotscore/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address (host:port). Defaults to [server] listen from the config file."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.Server.Listen
	}

	ctx.PerformAutomaticBackup()

	srv := server.New(ctx.Service, server.Options{
		Addr:    addr,
		LockDir: ctx.ConfigDir,
		Metrics: ctx.Metrics,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Serving API on http://%s for user %q (Ctrl+C to stop)\n", addr, ctx.Service.UserID())
	if ctx.Metrics != nil {
		ctx.Printf("Metrics available at http://%s/metrics\n", addr)
	}
	logger.Info("Starting server", "addr", addr, "metrics", ctx.Metrics != nil)
	return srv.Run(runCtx)
}
