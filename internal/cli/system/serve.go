package system

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/moodlit/internal/cli"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/mockserver"
)

type ServeMockCmd struct {
	Port int    `help:"Port to listen on." default:"8787"`
	Host string `help:"Interface to bind." default:"127.0.0.1"`
}

func (c *ServeMockCmd) Run(ctx *cli.Context) error {
	ln, err := net.Listen("tcp", net.JoinHostPort(c.Host, fmt.Sprint(c.Port)))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port

	lockPath, err := mockserver.WriteLockfile(ctx.Config.Dir(), port)
	if err != nil {
		ln.Close()
		return err
	}
	defer func() {
		if err := mockserver.RemoveLockfile(lockPath); err != nil {
			logger.Warn("failed to remove lockfile", "path", lockPath, "error", err)
		}
	}()

	sigCtx, stop := signal.NotifyContext(ctx.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Mock backend listening on http://%s\n", ln.Addr())
	ctx.Printf("Demo login: %s / %s\n", mockserver.DemoEmail, mockserver.DemoPassword)
	ctx.Printf("Admin login: %s / %s\n", mockserver.AdminEmail, mockserver.AdminPassword)
	logger.Info("mock backend started", "addr", ln.Addr().String(), "lockfile", lockPath)

	return mockserver.New(mockserver.Options{}).Serve(sigCtx, ln)
}
