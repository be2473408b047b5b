package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	analysis "github.com/ilkoid/onelife/internal/app"
	"github.com/ilkoid/onelife/internal/ui"
	appcomponents "github.com/ilkoid/onelife/pkg/app"
	"github.com/ilkoid/onelife/pkg/config"
	"github.com/ilkoid/onelife/pkg/debug"
	"github.com/ilkoid/onelife/pkg/events"
	"github.com/ilkoid/onelife/pkg/tui"
	"github.com/ilkoid/onelife/pkg/utils"
	"github.com/spf13/cobra"
)

// NewRootCmd создаёт корневую команду; без подкоманды запускается TUI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onelife",
		Short: "AI analysis of real estate listings",
		Long: `Onelife asks an LLM to analyse a real estate listing link and
renders the streamed markdown report as it arrives.

Without a subcommand it starts the interactive terminal UI.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runTUI,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to config.yaml")
	cmd.PersistentFlags().StringP("model", "m", "", "Model alias from models.definitions (default: default_chat)")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute запускает корневую команду.
//
// SIGINT/SIGTERM отменяют контекст всех команд.
func Execute() {
	ctx, shutdown := utils.SetupGracefulShutdownWithContext(context.Background())
	err := NewRootCmd().ExecuteContext(ctx)
	shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// globalFlags - значения persistent флагов.
type globalFlags struct {
	config string
	model  string
	debug  bool
}

func readGlobalFlags(cmd *cobra.Command) globalFlags {
	var f globalFlags
	f.config, _ = cmd.Flags().GetString("config")
	f.model, _ = cmd.Flags().GetString("model")
	f.debug, _ = cmd.Flags().GetBool("debug")
	return f
}

// loadConfig находит и читает config.yaml с учётом --config.
func loadConfig(flags globalFlags) (*config.AppConfig, string, error) {
	finder := &appcomponents.DefaultConfigPathFinder{ConfigFlag: flags.config}
	return appcomponents.InitializeConfig(finder, flags.config != "")
}

// initWriterLogging направляет лог в stderr (analyze, serve, render).
// Возвращает итоговый флаг debug.
func initWriterLogging(cmd *cobra.Command, cfg *config.AppConfig, flags globalFlags) bool {
	utils.InitWriterLogger(cmd.ErrOrStderr())
	debugOn := cfg.App.Debug || flags.debug
	utils.SetDebug(debugOn)
	return debugOn
}

// traceEmitter в debug режиме оборачивает next записью трейсов в <log_dir>/debug_logs.
func traceEmitter(cfg *config.AppConfig, debugOn bool, model string, next events.Emitter) events.Emitter {
	if !debugOn {
		return next
	}
	rec, err := debug.NewRecorder(debug.RecorderConfig{
		LogsDir: filepath.Join(cfg.App.LogDir, "debug_logs"),
		Model:   model,
	}, next)
	if err != nil {
		utils.Warn("Debug traces disabled", "error", err)
		return next
	}
	return rec
}

func runTUI(cmd *cobra.Command, _ []string) error {
	flags := readGlobalFlags(cmd)
	cfg, cfgPath, err := loadConfig(flags)
	if err != nil {
		return err
	}

	// Терминал занят интерфейсом, поэтому лог идёт в файл
	if err := utils.InitLogger(cfg.App.LogDir); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to init logger: %v\n", err)
	}
	defer utils.Close()
	debugOn := cfg.App.Debug || flags.debug
	utils.SetDebug(debugOn)
	utils.Info("Application started", "version", getVersion(), "config", cfgPath)

	ctx := cmd.Context()
	c, err := appcomponents.Initialize(ctx, cfg, flags.model)
	if err != nil {
		utils.Error("Initialization failed", "error", err)
		return err
	}

	emitter := events.NewChanEmitter(256)
	defer emitter.Close()

	orch := c.NewOrchestrator(analysis.WithEmitter(traceEmitter(cfg, debugOn, c.Model.ModelName, emitter)))
	model := ui.New(ctx, orch, emitter.Subscribe(), ui.Config{
		Brand:           cfg.App.Brand,
		ModelName:       c.Model.ModelName,
		Colors:          c.Colors,
		ScrollThreshold: cfg.UI.ScrollThreshold,
		MaxWidth:        cfg.UI.MaxWidth,
		Debug:           debugOn,
		Parser:          c.Parser,
	})

	utils.Info("Starting TUI")
	if err := tui.Run(ctx, model); err != nil {
		utils.Error("TUI failed", "error", err)
		return err
	}
	utils.Info("Application exited")
	return nil
}
