// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/taibuivan/playbill/internal/catalog"
	"github.com/taibuivan/playbill/internal/platform/ctxutil"
	"github.com/taibuivan/playbill/internal/platform/metrics"
	"github.com/taibuivan/playbill/internal/view"
)

// # Connection Limits

const (
	writeWait     = 10 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = (pongWait * 9) / 10
	maxFrameBytes = 1024
)

// # Frames

const (
	FrameLoading = "loading"
	FrameResults = "results"
	FrameError   = "error"
)

// MsgSearchFailed is sent when the catalog query fails.
const MsgSearchFailed = "Search failed, please try again"

type clientFrame struct {
	Query string `json:"q"`
}

type statusFrame struct {
	Type    string `json:"type"`
	Seq     uint64 `json:"seq"`
	Message string `json:"message,omitempty"`
}

type resultsFrame struct {
	Type  string            `json:"type"`
	Seq   uint64            `json:"seq"`
	Query string            `json:"query"`
	Items []view.PosterCard `json:"items"`
}

// Searcher runs a catalog title search.
type Searcher interface {
	Search(context context.Context, query string) ([]*catalog.Play, error)
}

// LiveHandler serves GET /search/live as a WebSocket.
//
// Client frames carry {"q": "..."}; each one reschedules the session's
// debounced query. An optional ?q= starts a query on connect.
type LiveHandler struct {
	searcher Searcher
	upgrader websocket.Upgrader
	delay    time.Duration
}

// NewLiveHandler builds the handler. checkOrigin guards cross-site upgrades;
// delay is the debounce period ([DefaultDelay] when zero).
func NewLiveHandler(searcher Searcher, checkOrigin func(*http.Request) bool, delay time.Duration) *LiveHandler {
	return &LiveHandler{
		searcher: searcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		delay: delay,
	}
}

func (handler *LiveHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	logger := ctxutil.GetLogger(request.Context())

	conn, err := handler.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logger.Warn("live_search_upgrade_failed", slog.String("error", err.Error()))
		return
	}

	ctx, cancel := context.WithCancel(request.Context())
	session := &liveSession{
		conn:      conn,
		searcher:  handler.searcher,
		debouncer: NewDebouncer(handler.delay),
		logger:    logger,
	}

	defer func() {
		cancel()
		session.debouncer.Stop()
		_ = conn.Close()
		logger.Debug("live_search_closed")
	}()

	go session.keepAlive(ctx)

	if initial := strings.TrimSpace(request.URL.Query().Get("q")); initial != "" {
		session.schedule(ctx, initial)
	}

	session.readLoop(ctx)
}

// liveSession is one connected client.
type liveSession struct {
	conn      *websocket.Conn
	searcher  Searcher
	debouncer *Debouncer
	logger    *slog.Logger

	writeMu sync.Mutex
}

func (session *liveSession) readLoop(ctx context.Context) {
	session.conn.SetReadLimit(maxFrameBytes)
	_ = session.conn.SetReadDeadline(time.Now().Add(pongWait))
	session.conn.SetPongHandler(func(string) error {
		return session.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := session.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				session.logger.Warn("live_search_read_failed", slog.String("error", err.Error()))
			}
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			session.write(statusFrame{Type: FrameError, Message: "Malformed search frame"})
			continue
		}

		session.schedule(ctx, strings.TrimSpace(frame.Query))
	}
}

func (session *liveSession) schedule(ctx context.Context, query string) {
	session.debouncer.Schedule(ctx, func(taskCtx context.Context, gen uint64) {
		session.run(taskCtx, gen, query)
	})
}

// run executes one debounced query. Every frame goes through publish, so a
// superseded query writes nothing, not even its loading frame.
func (session *liveSession) run(ctx context.Context, gen uint64, query string) {
	session.publish(gen, statusFrame{Type: FrameLoading, Seq: gen})

	plays, err := session.searcher.Search(ctx, query)
	if errors.Is(ctx.Err(), context.Canceled) {
		metrics.RecordSearch(metrics.OutcomeSuperseded)
		return
	}

	if err != nil {
		metrics.RecordSearch(metrics.OutcomeFailed)
		session.logger.Error("live_search_failed", slog.String("error", err.Error()))
		session.publish(gen, statusFrame{Type: FrameError, Seq: gen, Message: MsgSearchFailed})
		return
	}

	applied := session.publish(gen, resultsFrame{Type: FrameResults, Seq: gen, Query: query, Items: view.Cards(plays)})

	if applied {
		metrics.RecordSearch(metrics.OutcomeApplied)
	} else {
		metrics.RecordSearch(metrics.OutcomeSuperseded)
	}
}

// publish writes frame if gen is still the latest query.
//
// writeMu is held across the generation check and the write, so frames leave in
// generation order; the debouncer lock is only held for the check, so a slow
// client never stalls Schedule or the read loop.
func (session *liveSession) publish(gen uint64, frame any) bool {
	session.writeMu.Lock()
	defer session.writeMu.Unlock()

	return session.debouncer.Publish(gen, func() { session.writeLocked(frame) })
}

func (session *liveSession) write(frame any) {
	session.writeMu.Lock()
	defer session.writeMu.Unlock()

	session.writeLocked(frame)
}

// writeLocked sends one frame; the caller holds writeMu.
func (session *liveSession) writeLocked(frame any) {
	_ = session.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := session.conn.WriteJSON(frame); err != nil {
		session.logger.Debug("live_search_write_failed", slog.String("error", err.Error()))
	}
}

// keepAlive pings until the session ends; a missing pong ends the read loop.
func (session *liveSession) keepAlive(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := session.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
