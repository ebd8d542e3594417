package websocket

import "errors"

var (
	errConnClosed     = errors.New("websocket: connection closed")
	errSendBufferFull = errors.New("websocket: send buffer full")
)
