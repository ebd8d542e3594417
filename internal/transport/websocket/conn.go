// Package websocket adapts gorilla/websocket connections into the
// accepted/received/closed lifecycle events the ingress queue carries,
// so the dispatcher goroutine never touches a socket directly.
package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 256
)

// conn wraps one upgraded socket. It implements registry.ConnHandle via
// Send, which never blocks the caller: frames are handed to a buffered
// channel drained by writePump.
type conn struct {
	socket *websocket.Conn
	sendCh chan []byte
	closed chan struct{}
}

func newConn(socket *websocket.Conn) *conn {
	c := &conn{
		socket: socket,
		sendCh: make(chan []byte, sendBuffer),
		closed: make(chan struct{}),
	}
	go c.writePump()
	return c
}

// Send enqueues frame for delivery. Returns an error if the connection
// has already been closed or the send buffer is full — a slow reader
// loses frames rather than stalling the dispatcher.
func (c *conn) Send(frame []byte) error {
	select {
	case <-c.closed:
		return errConnClosed
	default:
	}

	select {
	case c.sendCh <- frame:
		return nil
	default:
		return errSendBufferFull
	}
}

// close tears down the write pump and the underlying socket. Safe to
// call more than once.
func (c *conn) close() {
	select {
	case <-c.closed:
		return
	default:
		close(c.closed)
	}
	c.socket.Close()
}

// writePump is the sole writer of the underlying socket, matching the
// one-goroutine-writes-a-gorilla-conn requirement: concurrent writes
// from multiple goroutines are not safe on *websocket.Conn.
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.socket.Close()
	}()

	for {
		select {
		case frame, ok := <-c.sendCh:
			c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.socket.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.socket.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}
