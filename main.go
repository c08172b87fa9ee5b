package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"fyne.io/fyne/v2"

	"TouchBoard/internal/applog"
	"TouchBoard/internal/config"
	"TouchBoard/internal/gesture"
	touchnet "TouchBoard/internal/net"
	"TouchBoard/internal/ui"
)

const discoverTimeout = 3 * time.Second

func main() {
	cfg, err := config.Load()
	level, lerr := applog.ParseLevel(cfg.LogLevel)
	applog.Init(os.Stderr, level)
	if err != nil {
		slog.Warn("using default settings", "err", err)
	}
	if lerr != nil {
		slog.Warn("bad log level", "err", lerr)
	}

	args := os.Args
	switch {
	case len(args) > 1 && touchnet.IsLink(args[1]):
		addr, err := touchnet.ParseLink(args[1])
		if err != nil {
			log.Fatalf("Invalid link: %v", err)
		}
		runFeed(addr)
	case len(args) > 1 && args[1] == "feed":
		addr, err := touchnet.Discover(discoverTimeout)
		if err != nil {
			log.Fatalf("No board found: %v", err)
		}
		runFeed(addr)
	default:
		runHost(cfg)
	}
}

func runHost(cfg *config.Config) {
	slog.Info("starting board")
	policy, err := cfg.Policy()
	if err != nil {
		log.Fatalf("Invalid curve policy: %v", err)
	}
	swatches, err := cfg.Colors()
	if err != nil {
		log.Fatalf("Invalid palette: %v", err)
	}

	board := ui.NewBoardWidget(cfg.Style(),
		gesture.WithCurvePolicy(policy),
		gesture.WithTouchSlop(cfg.TouchSlop),
		gesture.WithLogger(applog.With("gesture")),
	)

	shareLink := ""
	if cfg.Relay.Enabled {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		shareLink = startRelay(ctx, cfg.Relay, board)
	}
	ui.RunApp(board, swatches, shareLink)
}

// startRelay serves remote touch input for board and returns the share link.
func startRelay(ctx context.Context, rc config.Relay, board *ui.BoardWidget) string {
	logger := applog.With("relay")
	relay := touchnet.NewRelay(board, fyne.Do, logger)
	go func() {
		if err := relay.Serve(ctx, rc.Port); err != nil {
			logger.Error("relay stopped", "err", err)
			board.SetStatus(fmt.Sprintf("Touch relay failed: %v", err))
		}
	}()

	if rc.Advertise {
		server, err := touchnet.Advertise(rc.Port)
		if err != nil {
			logger.Warn("mDNS advertisement failed", "err", err)
		} else {
			go func() {
				<-ctx.Done()
				server.Shutdown()
			}()
		}
	}
	return touchnet.ShareLink(touchnet.OutgoingIP(), rc.Port)
}

// runFeed streams JSON lines from stdin to the board at addr.
func runFeed(addr string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sent, err := touchnet.Feed(ctx, addr, os.Stdin, applog.With("feed"))
	if err != nil {
		log.Fatalf("Feed to %s failed after %d messages: %v", addr, sent, err)
	}
	slog.Info("feed finished", "addr", addr, "sent", sent)
}
