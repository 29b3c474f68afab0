package settings

import "sync"

// hub fans out change notifications to per-key subscribers. Each subscriber
// channel holds at most one pending Change; a full channel already promises
// a re-read, so further sends are dropped.
type hub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan Change
}

func newHub() *hub {
	return &hub{subs: map[string]map[int]chan Change{}}
}

func (h *hub) subscribe(key string) (<-chan Change, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan Change, 1)
	id := h.next
	h.next++
	if h.subs[key] == nil {
		h.subs[key] = map[int]chan Change{}
	}
	h.subs[key][id] = ch
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[key], id)
			close(ch)
		})
	}
	return ch, cancel
}

func (h *hub) publish(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[key] {
		select {
		case ch <- Change{Key: key}:
		default:
		}
	}
}
