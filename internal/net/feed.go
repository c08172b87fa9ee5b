package net

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"TouchBoard/internal/applog"
)

// closeWait bounds how long Feed waits for the relay to acknowledge the
// close frame after the last line.
const closeWait = 2 * time.Second

// Feed connects to the relay at addr (host:port) and sends every JSON line
// read from in. Lines that do not decode are logged and skipped. Error
// replies from the relay are logged. Feed returns when in is exhausted or
// ctx is cancelled, and reports the number of messages sent. Before
// returning it waits for the relay to close the connection, so replies to
// the last lines are still logged.
func Feed(ctx context.Context, addr string, in io.Reader, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = applog.Nop()
	}
	url := "ws://" + addr + Path
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return 0, fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()
	logger.Info("connected to relay", "url", url)

	replies := make(chan struct{})
	go func() {
		defer close(replies)
		for {
			var reply Message
			if err := conn.ReadJSON(&reply); err != nil {
				return
			}
			if reply.Type == TypeError {
				logger.Warn("relay rejected message", "err", reply.Error)
			}
		}
	}()

	sent := 0
	scanner := bufio.NewScanner(in)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if _, err := DecodeMessage(line); err != nil {
			logger.Warn("skipping line", "line", lineNo, "err", err)
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, line); err != nil {
			return sent, fmt.Errorf("send line %d: %w", lineNo, err)
		}
		sent++
	}
	if err := scanner.Err(); err != nil {
		return sent, fmt.Errorf("read input: %w", err)
	}

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
		return sent, fmt.Errorf("close: %w", err)
	}
	select {
	case <-replies:
	case <-time.After(closeWait):
		logger.Warn("relay did not acknowledge close", "after", closeWait)
	case <-ctx.Done():
	}
	return sent, nil
}
