// Package realtime fans database change notifications out to in-process
// subscribers. The Postgres listener publishes into a Hub; live views use
// Watch to re-run their query on every notification.
package realtime

import (
	"sync"
	"time"
)

// Op is a row change kind. OpAll matches every kind.
type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
	OpAll    Op = "*"
)

// AllTables subscribes to every table. An event on AllTables reaches every
// subscription.
const AllTables = "*"

// Event is one row change on a table.
type Event struct {
	Table string    `json:"table"`
	Op    Op        `json:"op"`
	At    time.Time `json:"at"`
}

// Subscription receives events for its tables on C until Unsubscribe.
//
// C has a single slot. When a new event arrives while one is still pending,
// the pending one is replaced, so a slow consumer sees at most one queued
// notification however many changes happened in between.
type Subscription struct {
	C <-chan Event

	ch     chan Event
	op     Op
	tables map[string]struct{}
	hub    *Hub
	once   sync.Once
}

func (s *Subscription) matches(ev Event) bool {
	if s.op != OpAll && s.op != ev.Op {
		return false
	}
	if ev.Table == AllTables {
		return true
	}
	if _, ok := s.tables[AllTables]; ok {
		return true
	}
	_, ok := s.tables[ev.Table]
	return ok
}

// Unsubscribe detaches the subscription and closes C. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() { s.hub.remove(s) })
}

// Hub is a process-wide publish/subscribe point keyed by table name.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Subscribe listens for every kind of change on the given tables.
func (h *Hub) Subscribe(tables ...string) *Subscription {
	return h.SubscribeOp(OpAll, tables...)
}

// SubscribeOp listens for one kind of change on the given tables.
func (h *Hub) SubscribeOp(op Op, tables ...string) *Subscription {
	ch := make(chan Event, 1)
	s := &Subscription{
		C:      ch,
		ch:     ch,
		op:     op,
		tables: make(map[string]struct{}, len(tables)),
		hub:    h,
	}
	for _, t := range tables {
		s.tables[t] = struct{}{}
	}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.ch)
	}
}

// Publish delivers ev to every matching subscription without blocking.
func (h *Hub) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		if !s.matches(ev) {
			continue
		}
		select {
		case s.ch <- ev:
		default:
			// Replace the pending event with the newer one.
			select {
			case <-s.ch:
			default:
			}
			s.ch <- ev
		}
	}
}

// Subscribers counts live subscriptions that would receive changes on table.
func (h *Hub) Subscribers(table string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for s := range h.subs {
		if s.matches(Event{Table: table, Op: s.op}) {
			n++
		}
	}
	return n
}

// Close unsubscribes everyone.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		delete(h.subs, s)
		close(s.ch)
	}
}
