package websocket

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ctkqiang/redrtc/internal/ingress"
	"github.com/ctkqiang/redrtc/internal/proto"
)

// RateLimitConfig bounds how many frames per second a single connection
// may push into the ingress queue before it is disconnected.
type RateLimitConfig struct {
	MessagesPerSecond rate.Limit
	Burst             int
	Enabled           bool
}

// DefaultRateLimitConfig allows 50 messages/second with a burst of 100,
// generous for a signaling session's offer/answer/ICE traffic.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{MessagesPerSecond: 50, Burst: 100, Enabled: true}
}

// Server upgrades incoming HTTP requests to WebSocket connections and
// feeds the resulting lifecycle events into an ingress queue. It never
// touches the signaling registries directly — that is the
// dispatcher's job.
type Server struct {
	upgrader  websocket.Upgrader
	queue     *ingress.Queue
	rateLimit RateLimitConfig
	log       *zerolog.Logger

	malformedFrames atomic.Uint64
}

// MalformedFrames reports how many frames failed to decode into an
// envelope across the server's lifetime.
func (s *Server) MalformedFrames() uint64 {
	return s.malformedFrames.Load()
}

// NewServer builds a Server that checks origins with checkOrigin (nil
// permits any origin, matching a signaling server with no same-origin
// requirement) and feeds queue.
func NewServer(queue *ingress.Queue, rateLimit RateLimitConfig, checkOrigin func(*http.Request) bool, log *zerolog.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		queue:     queue,
		rateLimit: rateLimit,
		log:       log,
	}
}

// ServeHTTP implements http.Handler, upgrading the request and handing
// the connection off to its own read goroutine.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	socket, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := newConn(socket)
	var limiter *rate.Limiter
	if s.rateLimit.Enabled {
		limiter = rate.NewLimiter(s.rateLimit.MessagesPerSecond, s.rateLimit.Burst)
	}

	go s.readLoop(c, limiter)
}

// readLoop is the connection's sole reader. It parses every frame into
// an envelope and pushes it to the ingress queue. It closes the
// connection on a read error or a rate-limit violation; a frame that
// fails to decode is counted and dropped, and the connection stays open.
func (s *Server) readLoop(c *conn, limiter *rate.Limiter) {
	defer func() {
		c.close()
		if err := s.queue.Push(ingress.Event{Kind: ingress.Closed, Handle: c}); err == ingress.ErrQueueFull {
			s.log.Warn().Msg("ingress queue full: dropped closed event")
		}
	}()

	if err := s.queue.Push(ingress.Event{Kind: ingress.Accepted, Handle: c}); err != nil {
		s.log.Warn().Err(err).Msg("ingress queue full: dropped accepted event")
		return
	}

	c.socket.SetReadDeadline(time.Now().Add(pongWait))
	c.socket.SetPongHandler(func(string) error {
		c.socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.socket.ReadMessage()
		if err != nil {
			return
		}
		c.socket.SetReadDeadline(time.Now().Add(pongWait))

		if limiter != nil && !limiter.Allow() {
			c.socket.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "rate limit exceeded"),
				time.Now().Add(writeWait))
			return
		}

		env, err := proto.Decode(raw)
		if err != nil {
			s.malformedFrames.Add(1)
			continue
		}

		// Push takes its own reference on success; the producer's
		// reference from Decode is dropped either way.
		_ = s.queue.Push(ingress.Event{Kind: ingress.Received, Handle: c, Envelope: env})
		env.Data.Unref()
	}
}
