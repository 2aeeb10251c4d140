package room

import (
	"context"
	"time"
)

// poller is the one component with its own timer: a cancellable repeating
// fetch keyed by room generation. There is no backoff and no jitter; the
// cadence is fixed.
type poller struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *Session) startPolling(gen uint64, roomID string) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &poller{cancel: cancel, done: make(chan struct{})}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		cancel()
		close(p.done)
		return
	}
	s.poller = p
	s.apply(StartPolling{Generation: gen})
	interval := s.state.Polling.Interval
	s.mu.Unlock()
	s.notify()

	go p.run(ctx, s, gen, roomID, interval)
}

func (p *poller) run(ctx context.Context, s *Session, gen uint64, roomID string, interval time.Duration) {
	defer close(p.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			messages, err := s.client.GetMessages(ctx, roomID)
			if err != nil {
				// Background refresh failures are diagnostics only; they
				// never compete with user-facing errors.
				s.log.Debug().Err(err).Str("room", roomID).Msg("poll failed")
				continue
			}
			s.dispatchTagged(gen, PollUpdate{Messages: messages})
			s.saveCache(roomID, messages)
		}
	}
}

// stop cancels the poll loop and waits for it to exit, guaranteeing no
// further completions are delivered from this poller.
func (p *poller) stop() {
	p.cancel()
	<-p.done
}
