package store

import (
	"sync"

	"spendwise/internal/models"
)

// Subscription is the handle returned to snapshot listeners. Unsubscribe is
// safe to call more than once; after the first call no further snapshots are
// delivered.
type Subscription struct {
	hub        *hub
	userID     string
	id         int
	onSnapshot func([]models.Expense)
	onError    func(error)
	once       sync.Once
}

// Unsubscribe detaches the listener from the hub.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.unsubscribe(s.userID, s.id)
	})
}

func (s *Subscription) deliver(expenses []models.Expense) {
	if s.onSnapshot != nil {
		s.onSnapshot(expenses)
	}
}

func (s *Subscription) deliverError(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

// hub tracks snapshot subscribers per owner. Listener registration is owned
// by whichever component subscribed; the hub holds no other state.
type hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]*Subscription
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[int]*Subscription)}
}

func (h *hub) subscribe(userID string, onSnapshot func([]models.Expense), onError func(error)) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		hub:        h,
		userID:     userID,
		id:         h.nextID,
		onSnapshot: onSnapshot,
		onError:    onError,
	}
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int]*Subscription)
	}
	h.subs[userID][sub.id] = sub
	return sub
}

func (h *hub) unsubscribe(userID string, id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs[userID], id)
	if len(h.subs[userID]) == 0 {
		delete(h.subs, userID)
	}
}

func (h *hub) hasSubscribers(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID]) > 0
}

// broadcast delivers a snapshot to every subscriber of the owner. Callbacks
// run outside the lock so a listener may unsubscribe from within its own
// callback.
func (h *hub) broadcast(userID string, expenses []models.Expense) {
	for _, sub := range h.snapshotSubs(userID) {
		sub.deliver(expenses)
	}
}

func (h *hub) broadcastError(userID string, err error) {
	for _, sub := range h.snapshotSubs(userID) {
		sub.deliverError(err)
	}
}

func (h *hub) snapshotSubs(userID string) []*Subscription {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subs := make([]*Subscription, 0, len(h.subs[userID]))
	for _, sub := range h.subs[userID] {
		subs = append(subs, sub)
	}
	return subs
}
