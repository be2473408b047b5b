package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/ilkoid/onelife/internal/web"
	appcomponents "github.com/ilkoid/onelife/pkg/app"
	"github.com/ilkoid/onelife/pkg/utils"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd создаёт команду serve.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web interface",
		Long: `Serve starts the web interface. Each analysis is streamed to the
browser as server-sent events and re-rendered on every fragment.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringP("addr", "a", "", "Listen address (default: server.addr)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	flags := readGlobalFlags(cmd)
	cfg, cfgPath, err := loadConfig(flags)
	if err != nil {
		return err
	}
	initWriterLogging(cmd, cfg, flags)

	ctx := cmd.Context()
	c, err := appcomponents.Initialize(ctx, cfg, flags.model)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}

	srv := web.NewServer(c.Provider,
		web.WithOrchestratorOptions(c.OrchestratorOptions()...),
		web.WithTexts(c.Texts),
		web.WithBrand(cfg.App.Brand),
		web.WithParser(c.Parser),
	)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		// Запросы наследуют ctx: сигнал прерывает идущие анализы
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.Info("Web server listening", "addr", addr, "config", cfgPath, "model", c.ModelAlias)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		utils.Info("Web server shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
