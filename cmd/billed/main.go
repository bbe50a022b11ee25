package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/garyjia/billed/internal/config"
	"github.com/garyjia/billed/internal/container"
	"github.com/garyjia/billed/internal/interfaces/terminal"
	"github.com/garyjia/billed/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once the root command has run
type app struct {
	configPath string
	out        io.Writer

	container *container.Container
	renderer  *terminal.Renderer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	a := &app{out: out}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)

	err := root.ExecuteContext(ctx)
	if a.container != nil {
		if closeErr := a.container.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "billed",
		Short:         "Submit and review expense reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.start(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "configs/billed.yaml", "config file (optional)")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newBillsCmd(a),
		newDashboardCmd(a),
	)
	return root
}

func (a *app) start(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.renderer = terminal.NewRenderer(a.out)
	c, err := container.NewContainer(cfg, logger, a.renderer)
	if err != nil {
		return err
	}
	if err := c.Start(ctx); err != nil {
		logger.Error("Failed to start", zap.Error(err))
		return err
	}
	a.container = c
	return nil
}

func (a *app) services() *container.ServiceBundle {
	return a.container.Services()
}
