package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"

	"niedziele/internal/capture"
	"niedziele/internal/config"
	appLog "niedziele/internal/log"
	"niedziele/internal/metrics"
	"niedziele/internal/web"
)

const (
	version           = "1.0.0"
	defaultConfigPath = "/etc/niedziele/config.yaml"
	shutdownTimeout   = 5 * time.Second
)

// serveFlags holds CLI flag values for the serve command.
type serveFlags struct {
	configPath string
	listen     string
}

func main() {
	args := os.Args[1:]
	cmd := "serve"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe(args)
	case "export":
		err = runExport(args)
	case "dates":
		err = runDates(args)
	case "verify":
		err = runVerify(args)
	case "capture":
		err = runCapture(args)
	case "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}

	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		appLog.Error(cmd+" failed", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: niedziele [command] [flags]

commands:
  serve     run the HTTP server (default)
  export    write the iCalendar document
  dates     print the trading Sundays, one per line
  verify    compare a published calendar with the registry
  capture   save a PNG preview of the landing page
`)
}

func runServe(args []string) error {
	var flags serveFlags
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&flags.configPath, "config", defaultConfigPath, "Path to config file")
	fs.StringVar(&flags.listen, "listen", "", "HTTP listen address (overrides config if set)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	appLog.Info("niedziele starting", "version", version)

	conf, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", flags.configPath, err)
	}
	// CLI --listen overrides config file listen if provided.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	applyLogLevel(conf)

	appLog.Info("effective config",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"year", conf.Year,
		"configured_dates", len(conf.Dates),
		"attachment", conf.Attachment,
		"cache_max_age", conf.CacheMaxAge,
		"refresh", conf.RefreshCron,
		"capture", conf.Capture.Enabled,
	)

	metrics.Init(nil)

	srv, err := web.NewServer(conf)
	if err != nil {
		return err
	}

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	sched, err := startScheduler(ctx, conf, srv)
	if err != nil {
		return err
	}
	defer func() {
		<-sched.Stop().Done()
	}()

	httpSrv := &http.Server{
		Addr:              conf.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh, err := startHTTP(httpSrv)
	if err != nil {
		return err
	}

	if conf.Capture.Enabled {
		go capturePreview(ctx, conf)
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("http shutdown failed", err)
	}

	appLog.Info("niedziele exiting")
	return nil
}

// startHTTP binds srv.Addr and serves on it in the background. The port is
// accepting connections when startHTTP returns, so the start-up preview
// capture cannot race the listener.
func startHTTP(srv *http.Server) (<-chan error, error) {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", srv.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()
	return errCh, nil
}

// startScheduler runs the refresh job on conf.RefreshCron in the
// configured timezone, so the published year rolls over at local midnight.
func startScheduler(ctx context.Context, conf *config.Config, srv *web.Server) (*cron.Cron, error) {
	loc, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		appLog.Error("failed to load timezone; scheduling in local time", err, "name", conf.Timezone)
		loc = time.Local
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(conf.RefreshCron, func() {
		if err := srv.Refresh(); err != nil {
			// Keep serving the previous registry.
			return
		}
		if conf.Capture.Enabled {
			capturePreview(ctx, conf)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", conf.RefreshCron, err)
	}

	c.Start()
	appLog.Info("refresh scheduler started", "schedule", conf.RefreshCron, "timezone", loc.String())
	return c, nil
}

func capturePreview(ctx context.Context, conf *config.Config) {
	opts := captureOptions(conf, conf.PublicURL()+"/", conf.Capture.Output)
	if err := capture.PNG(ctx, opts); err != nil {
		appLog.Error("preview capture failed", err, "url", opts.URL)
		return
	}
	appLog.Info("preview captured", "output", opts.OutputPath)
}

func captureOptions(conf *config.Config, url, output string) capture.Options {
	return capture.Options{
		URL:        url,
		OutputPath: output,
		Width:      conf.Capture.Width,
		Height:     conf.Capture.Height,
		Timeout:    time.Duration(conf.Capture.TimeoutSeconds) * time.Second,
	}
}

func applyLogLevel(conf *config.Config) {
	level, err := appLog.ParseLevel(conf.LogLevel)
	if err != nil {
		appLog.Error("invalid log level; using INFO", err, "log_level", conf.LogLevel)
	}
	appLog.SetLevel(level)
}
