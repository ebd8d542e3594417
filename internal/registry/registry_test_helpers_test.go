package registry

import "errors"

var errSendFailed = errors.New("fakeHandle: send failed")

// fakeHandle is a minimal ConnHandle used across registry tests. It
// records every frame it was sent and can be flipped to simulate a
// broken connection.
type fakeHandle struct {
	sent   [][]byte
	broken bool
}

func (h *fakeHandle) Send(frame []byte) error {
	if h.broken {
		return errSendFailed
	}
	h.sent = append(h.sent, frame)
	return nil
}

func newTestClient(reg *ClientRegistry) *Client {
	c, err := reg.Add(&fakeHandle{})
	if err != nil {
		panic(err)
	}
	return c
}
