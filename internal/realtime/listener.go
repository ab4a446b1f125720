package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// PGListener holds a dedicated Postgres connection on LISTEN and forwards
// every notification on its channel into a Hub.
type PGListener struct {
	dsn        string
	channel    string
	hub        *Hub
	minBackoff time.Duration
	maxBackoff time.Duration

	// session runs one connection and calls ready once LISTEN is active.
	session func(ctx context.Context, ready func()) error
	after   func(time.Duration) <-chan time.Time
}

func NewPGListener(dsn, channel string, hub *Hub) *PGListener {
	l := &PGListener{
		dsn:        dsn,
		channel:    channel,
		hub:        hub,
		minBackoff: time.Second,
		maxBackoff: 30 * time.Second,
		after:      time.After,
	}
	l.session = l.listen
	return l
}

// Run listens until ctx is cancelled, reconnecting with exponential backoff
// whenever the connection drops. The backoff resets once a connection is
// listening again. Notifications sent while disconnected are lost, so every
// reconnect publishes an UPDATE on AllTables to make live views re-query.
func (l *PGListener) Run(ctx context.Context) {
	log.Info().Str("channel", l.channel).Msg("realtime: listener started")
	backoff := l.minBackoff
	connected := false
	ready := func() {
		backoff = l.minBackoff
		if connected {
			log.Info().Str("channel", l.channel).Msg("realtime: listener reconnected, resyncing")
			l.hub.Publish(Event{Table: AllTables, Op: OpUpdate})
		}
		connected = true
	}
	for {
		err := l.session(ctx, ready)
		if ctx.Err() != nil {
			log.Info().Msg("realtime: listener stopped")
			return
		}
		log.Error().Err(err).Dur("retry_in", backoff).Msg("realtime: listener disconnected")
		select {
		case <-ctx.Done():
			log.Info().Msg("realtime: listener stopped")
			return
		case <-l.after(backoff):
		}
		backoff *= 2
		if backoff > l.maxBackoff {
			backoff = l.maxBackoff
		}
	}
}

func (l *PGListener) listen(ctx context.Context, ready func()) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	log.Debug().Str("channel", l.channel).Msg("realtime: listening")
	ready()

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		ev, err := DecodeEvent(n.Payload)
		if err != nil {
			log.Warn().Err(err).Str("payload", n.Payload).Msg("realtime: bad notification")
			continue
		}
		l.hub.Publish(ev)
	}
}

// DecodeEvent parses a trigger payload of the form {"table": "...", "op": "..."}.
func DecodeEvent(payload string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, fmt.Errorf("decode: %w", err)
	}
	if ev.Table == "" {
		return Event{}, fmt.Errorf("decode: missing table")
	}
	ev.Op = Op(strings.ToUpper(string(ev.Op)))
	switch ev.Op {
	case OpInsert, OpUpdate, OpDelete:
	default:
		return Event{}, fmt.Errorf("decode: unknown op %q", ev.Op)
	}
	ev.At = time.Now()
	return ev, nil
}
