package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohanod/busDisplay/internal/config"
	"github.com/rohanod/busDisplay/internal/logging"
	"github.com/rohanod/busDisplay/internal/transit"
	"github.com/rohanod/busDisplay/internal/webui"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	listen := flag.String("listen", ":5000", "listen address")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, closeLog, err := logging.New(logging.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "busdisplay-web: %v\n", err)
		return 1
	}
	defer closeLog()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorw("load config", "error", err)
		return 1
	}

	timeout := time.Duration(cfg.HTTPTimeout) * time.Second
	client, err := transit.NewClient("", timeout)
	if err != nil {
		logger.Errorw("init stationboard client", "error", err)
		return 1
	}

	server, err := webui.New(webui.Options{
		ConfigPath: *configPath,
		Log:        logger,
		Client:     client,
		Directory:  transit.NewDirectory("", timeout),
	})
	if err != nil {
		logger.Errorw("init server", "error", err)
		return 1
	}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown()
	}()

	logger.Infow("serving config api", "addr", *listen)
	if err := server.Listen(*listen); err != nil {
		logger.Errorw("listen", "error", err)
		return 1
	}
	return 0
}
