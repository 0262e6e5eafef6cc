package cli

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/relabs-tech/gyro_pointer/internal/app"
	"github.com/relabs-tech/gyro_pointer/internal/config"
	"github.com/relabs-tech/gyro_pointer/internal/observability"
	"github.com/relabs-tech/gyro_pointer/internal/pointer"
)

func newServeCmd(st *state) *cobra.Command {
	var driver string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the phone page and accept orientation streams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := st.cfg
			if driver != "" {
				cfg.PointerDriver = driver
			}
			return runServe(cmd.Context(), cfg, observability.GetLogger())
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "", "pointer driver (uinput or log), overrides POINTER_DRIVER")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	engine, cleanup, err := buildEngine(cfg, cfg.MQTTBroker, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.RunServe(gctx, engine, app.ServeOptions{
			HTTPAddr:  net.JoinHostPort("", strconv.Itoa(cfg.HTTPPort)),
			WSAddr:    net.JoinHostPort("", strconv.Itoa(cfg.WSPort)),
			StaticDir: cfg.StaticDir,
			IndexFile: cfg.IndexFile,
		})
	})
	if cfg.SerialPort != "" {
		g.Go(func() error {
			return app.RunSerial(gctx, engine, cfg.SerialPort, uint(cfg.SerialBaudRate))
		})
	}
	return g.Wait()
}

// buildEngine resolves the screen, opens the pointer driver and the
// telemetry publisher. broker may be empty to disable telemetry.
func buildEngine(cfg *config.Config, broker string, logger *zap.Logger) (*app.Engine, func(), error) {
	rect, err := cfg.Screen()
	if err != nil {
		logger.Warn("screen detection failed, using fallback", zap.Stringer("screen", rect), zap.Error(err))
	}
	logger.Info("screen bounds", zap.Stringer("screen", rect))

	driver, err := pointer.New(cfg.PointerDriver, rect, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("pointer driver %s: %w", cfg.PointerDriver, err)
	}

	publisher, err := app.NewMQTTPublisher(broker, cfg.MQTTClientID, cfg.TopicEmissions, logger.Named("telemetry"))
	if err != nil {
		driver.Close()
		return nil, nil, err
	}

	cleanup := func() {
		publisher.Close()
		if err := driver.Close(); err != nil {
			logger.Warn("pointer close failed", zap.Error(err))
		}
	}
	return app.NewEngine(rect, driver, publisher, cfg.DefaultSmoothing, logger.Named("engine")), cleanup, nil
}
