package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tuber/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override tuber config path (optional)")
	apiURL := flag.String("api", "", "override VidTube API base URL (optional)")
	noProxy := flag.Bool("no-proxy", false, "disable the embedded media proxy")
	pollEvery := flag.Int("poll", 0, "feed refresh interval in seconds (0 = default)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:   *configPath,
		APIURL:       *apiURL,
		PollEvery:    *pollEvery,
		DisableProxy: *noProxy,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "tuber: %v\n", err)
		return 1
	}
	return 0
}
