// Package dispatch runs the single goroutine that drains the ingress
// queue and is the sole mutator of the signaling core's registries,
// reproducing the original single-threaded service loop's reap cadence
// on top of Go's goroutine-per-connection transport.
package dispatch

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ctkqiang/redrtc/internal/ingress"
	"github.com/ctkqiang/redrtc/internal/signaling"
)

// reapInterval mirrors the original's "every >=10 seconds" cleanup
// cadence.
const reapInterval = 10 * time.Second

// drainPollInterval mirrors the original's 50ms lws_service tick: how
// often the loop wakes to drain the queue.
const drainPollInterval = 50 * time.Millisecond

// Dispatcher owns a signaling.Core and the ingress queue it drains.
type Dispatcher struct {
	core    *signaling.Core
	queue   *ingress.Queue
	timeout int64
	log     *zerolog.Logger
}

// New builds a dispatcher around core and queue. idleTimeoutSec is
// passed straight to Core.Reap on every cycle.
func New(core *signaling.Core, queue *ingress.Queue, idleTimeoutSec int64, log *zerolog.Logger) *Dispatcher {
	return &Dispatcher{core: core, queue: queue, timeout: idleTimeoutSec, log: log}
}

// Run drains the ingress queue and runs the periodic reaper until ctx
// is cancelled. It is the only goroutine that calls into the
// signaling.Core after construction — every registry mutation in the
// process happens here.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	reapTicker := time.NewTicker(reapInterval)
	defer reapTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-reapTicker.C:
			clientsReaped, roomsReaped := d.core.Reap(d.timeout)
			if clientsReaped > 0 || roomsReaped > 0 {
				d.log.Info().
					Int("clients_reaped", clientsReaped).
					Int("rooms_reaped", roomsReaped).
					Msg("reap cycle")
			}
		case <-ticker.C:
			d.drain()
		}
	}
}

// drain pops every currently queued event and routes it. Bounded by
// the queue's fixed capacity, so this always terminates.
func (d *Dispatcher) drain() {
	for {
		ev, ok := d.queue.Pop()
		if !ok {
			return
		}
		d.handle(ev)
	}
}

func (d *Dispatcher) handle(ev ingress.Event) {
	switch ev.Kind {
	case ingress.Accepted:
		if _, err := d.core.Accept(ev.Handle); err != nil {
			d.log.Warn().Err(err).Msg("accept rejected: client registry full")
		}
	case ingress.Received:
		client, ok := d.core.Clients.FindByHandle(ev.Handle)
		if !ok {
			ev.Envelope.Data.Unref()
			return
		}
		d.core.Dispatch(client, ev.Envelope)
		ev.Envelope.Data.Unref()
	case ingress.Closed:
		if client, ok := d.core.Clients.FindByHandle(ev.Handle); ok {
			d.core.Close(client)
		}
	}
}
