package cart

import (
	"sync"

	"optic-storefront/internal/domain"
)

const subscriberBuffer = 8

// hub fans cart snapshots out to the subscribers of a session. Slow subscribers
// drop snapshots instead of blocking the publisher; the newest one always wins
// on their next receive.
type hub struct {
	mu     sync.Mutex
	subs   map[string]map[*subscription]struct{}
	onJoin func()
	onQuit func()
}

type subscription struct {
	ch   chan domain.Cart
	once sync.Once
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[*subscription]struct{})}
}

func (h *hub) subscribe(sessionID string) (<-chan domain.Cart, func()) {
	sub := &subscription{ch: make(chan domain.Cart, subscriberBuffer)}

	h.mu.Lock()
	set, ok := h.subs[sessionID]
	if !ok {
		set = make(map[*subscription]struct{})
		h.subs[sessionID] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()
	if h.onJoin != nil {
		h.onJoin()
	}

	cancel := func() {
		sub.once.Do(func() {
			h.mu.Lock()
			if set, ok := h.subs[sessionID]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(h.subs, sessionID)
				}
			}
			close(sub.ch)
			h.mu.Unlock()
			if h.onQuit != nil {
				h.onQuit()
			}
		})
	}
	return sub.ch, cancel
}

func (h *hub) publish(cart domain.Cart) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[cart.SessionID] {
		snapshot := cart.Clone()
		select {
		case sub.ch <- snapshot:
			continue
		default:
		}
		// full: drop the oldest pending snapshot and retry once
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- snapshot:
		default:
		}
	}
}

func (h *hub) count(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sessionID])
}
