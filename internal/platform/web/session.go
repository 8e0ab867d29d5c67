package web

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/papuso/internal/app"
	"github.com/vovakirdan/papuso/internal/timeline"
)

const (
	writeWait   = 5 * time.Second
	loadTimeout = 15 * time.Second
)

// clientMessage is a key event from the page.
type clientMessage struct {
	Type string `json:"type"` // "down" or "up"
	Key  string `json:"key"`
}

type lineMessage struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

type frameMessage struct {
	Type  string        `json:"type"`
	Stage string        `json:"stage"`
	Lines []lineMessage `json:"lines"`
	// Prevent lists the keys the page must not let the browser act on.
	Prevent []string `json:"prevent,omitempty"`
}

func encodeFrame(v app.View, prevent []string) ([]byte, error) {
	msg := frameMessage{
		Type:    "frame",
		Stage:   v.Stage.String(),
		Lines:   make([]lineMessage, len(v.Lines)),
		Prevent: prevent,
	}
	for i, l := range v.Lines {
		msg.Lines[i] = lineMessage{Text: l.Text, Tone: l.Tone.String()}
	}
	return json.Marshal(msg)
}

type loadResult struct {
	entries []timeline.Entry
	err     error
}

// session drives one terminal. The read goroutine and the tick loop both
// touch the terminal under mu; only the tick loop writes to the socket.
type session struct {
	conn   *websocket.Conn
	logger *log.Logger
	uiTick time.Duration

	mu      sync.Mutex
	term    *app.Terminal
	gen     uint64
	nextRun time.Time

	dirty  chan struct{}
	loaded chan loadResult
	last   []byte
}

func newSession(conn *websocket.Conn, term *app.Terminal, uiTick time.Duration, logger *log.Logger) *session {
	return &session{
		conn:   conn,
		logger: logger,
		uiTick: uiTick,
		term:   term,
		dirty:  make(chan struct{}, 1),
		loaded: make(chan loadResult, 1),
	}
}

// run blocks until the client goes away or ctx ends.
func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.conn.Close()

	s.mu.Lock()
	s.term.Start()
	s.mu.Unlock()

	go s.readLoop(ctx, cancel)
	s.tickLoop(ctx)

	s.mu.Lock()
	s.term.Close()
	s.mu.Unlock()
}

func (s *session) readLoop(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()
	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Debug("discarding malformed message", "error", err)
			continue
		}

		s.mu.Lock()
		switch msg.Type {
		case "down":
			s.term.KeyDown(msg.Key)
		case "up":
			s.term.KeyUp(msg.Key)
		}
		s.mu.Unlock()

		select {
		case s.dirty <- struct{}{}:
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (s *session) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(s.uiTick)
	defer ticker.Stop()

	if !s.push(ctx) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.mu.Lock()
			s.term.Tick()
			s.advance(now)
			s.mu.Unlock()
		case res := <-s.loaded:
			s.mu.Lock()
			if res.err != nil {
				s.logger.Warn("timeline load failed", "error", res.err)
			}
			s.term.SetData(res.entries, res.err)
			s.mu.Unlock()
		case <-s.dirty:
		}
		if !s.push(ctx) {
			return
		}
	}
}

// advance steps the running minigame for every interval that has elapsed.
// Called with mu held.
func (s *session) advance(now time.Time) {
	gen, interval, ok := s.term.Game()
	if !ok {
		s.gen = 0
		return
	}
	if gen != s.gen {
		s.gen = gen
		s.nextRun = now.Add(interval)
		return
	}
	for !now.Before(s.nextRun) {
		s.term.StepGame(gen)
		s.nextRun = s.nextRun.Add(interval)
		if g, _, running := s.term.Game(); !running || g != gen {
			return
		}
	}
}

// push starts a pending load and sends the current frame if it changed.
func (s *session) push(ctx context.Context) bool {
	s.mu.Lock()
	if s.term.TakeLoadRequest() {
		go s.fetch(ctx)
	}
	frame, err := encodeFrame(s.term.View(), s.term.PreventedKeys())
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("cannot encode frame", "error", err)
		return false
	}
	if bytes.Equal(frame, s.last) {
		return true
	}
	s.last = frame

	s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
	if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		s.logger.Debug("write failed", "error", err)
		return false
	}
	return true
}

func (s *session) fetch(ctx context.Context) {
	loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
	entries, err := s.term.Fetch(loadCtx)
	cancel()
	select {
	case s.loaded <- loadResult{entries: entries, err: err}:
	case <-ctx.Done():
	}
}
