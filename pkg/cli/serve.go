package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/getmockd/mocksauce/pkg/config"
	"github.com/getmockd/mocksauce/pkg/logging"
	"github.com/getmockd/mocksauce/pkg/server"
)

type serveOptions struct {
	configPath string
	address    string
	logLevel   string
	logFormat  string
	logFile    string
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve fixture routes from a project file",
		Example: `  # Serve mocksauce.yaml from the working directory
  mocksauce serve

  # Serve another project on a different port with debug diagnostics
  mocksauce serve --config api/mocks.yaml --address :8080 --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.applyTo(cmd, cfg)

			log, closeLog, err := newLogger(cfg.Logging, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			srv, err := server.New(cfg, server.WithLogger(log), server.WithAddress(opts.address))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Serve(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "Project file (default: discover mocksauce.yaml)")
	f.StringVarP(&opts.address, "address", "a", "", "Listen address, overrides server.address")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	f.StringVar(&opts.logFile, "log-file", "", "Also write JSON logs to this file")
	return cmd
}

// applyTo overrides project logging settings with explicitly set flags.
func (o *serveOptions) applyTo(cmd *cobra.Command, cfg *config.ProjectConfig) {
	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if f.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	if f.Changed("log-file") {
		cfg.Logging.File = o.logFile
	}
}

// newLogger builds the process logger. With a log file configured, records
// go to both the console handler and a JSON handler on the file.
func newLogger(lc config.LoggingConfig, console io.Writer) (*slog.Logger, func(), error) {
	consoleCfg := logging.Config{
		Level:  logging.ParseLevel(lc.Level),
		Format: logging.ParseFormat(lc.Format),
		Output: console,
	}
	if lc.File == "" {
		return logging.New(consoleCfg), func() {}, nil
	}

	file, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	fileCfg := logging.Config{
		Level:  consoleCfg.Level,
		Format: logging.FormatJSON,
		Output: file,
	}
	log := logging.Tee(logging.NewHandler(consoleCfg), logging.NewHandler(fileCfg))
	return log, func() { _ = file.Close() }, nil
}
