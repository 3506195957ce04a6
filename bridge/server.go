package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/cwbudde/algo-handsound/hand"
	"github.com/cwbudde/algo-handsound/preset"
	"github.com/cwbudde/algo-handsound/session"
)

// DefaultIdleTimeout silences the player when frames stop arriving.
const DefaultIdleTimeout = 2 * time.Second

// Server serves the frame WebSocket and the profile API.
type Server struct {
	log     *zap.Logger
	preset  *preset.Preset
	idle    time.Duration
	static  string
	origins []string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithPreset sets the instrument and pad tables served to every connection.
func WithPreset(p *preset.Preset) Option {
	return func(s *Server) { s.preset = p }
}

// WithIdleTimeout sets how long the player keeps sounding without frames.
// Zero disables the watchdog.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) { s.idle = d }
}

// WithStaticDir serves files from dir for every path not otherwise routed.
func WithStaticDir(dir string) Option {
	return func(s *Server) { s.static = dir }
}

// WithAllowedOrigins restricts browser origins for both CORS and the
// WebSocket handshake. Empty allows any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.origins = origins }
}

func NewServer(opts ...Option) *Server {
	s := &Server{
		log:    zap.NewNop(),
		preset: preset.Default(),
		idle:   DefaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}
	return s
}

// Handler returns the routed, CORS-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter().StrictSlash(true)
	r.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	r.HandleFunc("/api/profiles", s.handleProfiles).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	if s.static != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.static)))
	}

	return cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler(r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr), zap.String("static", s.static))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(profilesOf(s.preset)); err != nil {
		s.log.Error("encode profiles", zap.Error(err))
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.origins})
	if err != nil {
		s.log.Warn("websocket accept", zap.Error(err))
		return
	}
	c := s.newConn(ws)
	c.log.Info("connection opened", zap.String("remote", r.RemoteAddr))
	err = c.serve(r.Context())
	c.close()
	if status := websocket.CloseStatus(err); status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
		err = nil
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		c.log.Info("connection closed", zap.Error(err))
		return
	}
	c.log.Info("connection closed")
}

// conn is one browser session. mu serializes frame handling and writes,
// since the idle watchdog fires on its own goroutine.
type conn struct {
	ws     *websocket.Conn
	log    *zap.Logger
	remote *Remote
	idle   func(func())

	mu       sync.Mutex
	ctx      context.Context
	statuses []session.Status
	player   *session.PlayerHandler
	drum     *session.DrumHandler
}

func (s *Server) newConn(ws *websocket.Conn) *conn {
	c := &conn{
		ws:     ws,
		log:    s.log.With(zap.String("conn", uuid.NewString())),
		remote: NewRemote(),
	}
	if s.idle > 0 {
		c.idle = debounce.New(s.idle)
	}
	opts := []session.Option{
		session.WithLogger(c.log),
		session.WithListener(c.collect),
		session.WithCatalog(s.preset.Catalog),
		session.WithKit(s.preset.Kit),
	}
	c.player = session.NewPlayerHandler(c.remote, opts...)
	c.drum = session.NewDrumHandler(c.remote, opts...)
	return c
}

func (c *conn) collect(st session.Status) {
	c.statuses = append(c.statuses, st)
}

func (c *conn) serve(ctx context.Context) error {
	c.ctx = ctx
	for {
		typ, data, err := c.ws.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			c.log.Warn("dropping binary message", zap.Int("bytes", len(data)))
			continue
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.Warn("dropping malformed message", zap.Error(err))
			continue
		}

		c.mu.Lock()
		err = c.dispatch(msg)
		if err == nil {
			err = c.flush()
		}
		c.mu.Unlock()
		if err != nil {
			return err
		}
	}
}

// dispatch runs one message against the handlers. Must hold mu.
func (c *conn) dispatch(msg ClientMessage) error {
	if msg.Type == MsgEnded {
		c.remote.Ended(msg.Tone)
		return nil
	}

	var h session.Handler
	switch msg.Subsystem {
	case session.Player:
		h = c.player
	case session.Drum:
		h = c.drum
	default:
		c.log.Warn("unknown subsystem", zap.String("subsystem", string(msg.Subsystem)), zap.String("type", msg.Type))
		return nil
	}

	switch msg.Type {
	case MsgFrame:
		hands := c.validHands(msg.Hands)
		if msg.Subsystem == session.Drum && msg.T != nil {
			c.drum.OnFrameAt(hands, *msg.T)
		} else {
			h.OnFrame(hands)
		}
		if msg.Subsystem == session.Player && len(hands) > 0 && c.idle != nil {
			c.idle(c.onIdle)
		}
	case MsgStart:
		h.Start()
	case MsgStop:
		h.Stop()
	case MsgError:
		h.Fail(errors.New(msg.Message))
	default:
		c.log.Warn("unknown message type", zap.String("type", msg.Type))
	}
	return nil
}

func (c *conn) validHands(in []hand.Hand) []hand.Hand {
	out := in[:0]
	for i, hd := range in {
		if err := hand.Validate(hd); err != nil {
			c.log.Warn("dropping hand", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, hd)
	}
	return out
}

func (c *conn) onIdle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.player == nil {
		return
	}
	c.log.Debug("idle timeout")
	c.player.OnFrame(nil)
	if err := c.flush(); err != nil {
		c.log.Error("idle flush", zap.Error(err))
	}
}

// flush sends everything produced since the last flush. Must hold mu.
func (c *conn) flush() error {
	b := Batch{Commands: c.remote.Drain(), Statuses: c.statuses}
	c.statuses = nil
	if len(b.Commands) == 0 && len(b.Statuses) == 0 {
		return nil
	}
	if b.Statuses == nil {
		b.Statuses = []session.Status{}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}
	if err := c.ws.Write(c.ctx, websocket.MessageText, data); err != nil {
		c.log.Error("write batch", zap.Error(err))
		return err
	}
	return nil
}

func (c *conn) close() {
	if c.idle != nil {
		c.idle(func() {})
	}
	c.mu.Lock()
	c.player.Voice().Stop()
	c.player = nil
	c.mu.Unlock()
	_ = c.ws.Close(websocket.StatusNormalClosure, "")
}
