package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"laswell.com/web/internal/config"
	"laswell.com/web/internal/observability"
	"laswell.com/web/internal/theme"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "laswell: %v\n", err)
		os.Exit(1)
	}
}

type serveFlags struct {
	envFile  string
	port     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:           "laswell",
		Short:         "LasWell storefront web server",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}
	bindServeFlags(cmd, flags)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCSSCmd())
	return cmd
}

func bindServeFlags(cmd *cobra.Command, flags *serveFlags) {
	cmd.Flags().StringVar(&flags.envFile, "env-file", ".env", "Path to a .env file with local overrides")
	cmd.Flags().StringVar(&flags.port, "port", "", "HTTP port (overrides LASWELL_PORT)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func newServeCmd() *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}
	bindServeFlags(cmd, flags)
	return cmd
}

func newCSSCmd() *cobra.Command {
	var (
		minified bool
		token    string
	)
	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print the stylesheet generated from the theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := theme.Default()
			if token != "" {
				value, ok := t.Lookup(token)
				if !ok {
					return fmt.Errorf("unknown theme token %q", token)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", theme.VarName(token), value)
				return err
			}
			if !minified {
				_, err := fmt.Fprint(cmd.OutOrStdout(), theme.Stylesheet(t))
				return err
			}
			asset, err := theme.Build(t)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(asset.Body)
			return err
		},
	}
	cmd.Flags().BoolVar(&minified, "minify", false, "Print the minified stylesheet served at /assets/css/site.css")
	cmd.Flags().StringVar(&token, "token", "", "Print a single theme token, e.g. colors.dejaVuBlue")
	return cmd
}

func runServe(cmd *cobra.Command, flags *serveFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	overrides := map[string]string{}
	if flags.port != "" {
		overrides["LASWELL_PORT"] = flags.port
	}
	if flags.logLevel != "" {
		overrides["LASWELL_LOG_LEVEL"] = flags.logLevel
	}
	cfg, err := config.Load(ctx, config.WithEnvFile(flags.envFile), config.WithEnvMap(overrides))
	if err != nil {
		return err
	}

	baseLogger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("initialise logger: %w", err)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	errCh := make(chan error, 1)
	go func() {
		serverLogger.Info("laswell web listening",
			zap.String("env", cfg.Site.Environment),
			zap.Bool("dev", cfg.Site.Dev),
			zap.String("contact_sink", cfg.Contact.Sink),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received; draining requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
