package handler

import (
	"context"
	"errors"
	"net/http"

	"unboxx/internal/apierror"
	"unboxx/internal/middleware"
	"unboxx/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SSE event names written by live endpoints.
const (
	eventSnapshot = "snapshot"
	eventError    = "error"
	eventChange   = "change"
)

func startStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()
}

// streamLive serves a live view over server-sent events. It sends a
// snapshot on connect and another after every change to tables. A failed
// fetch sends an error event and the stream stays open, so the client keeps
// showing its previous snapshot.
func streamLive[T any](c *gin.Context, hub *realtime.Hub, tables []string, fetch func(context.Context) (T, error), failMsg string) {
	startStream(c)
	err := realtime.Watch(c.Request.Context(), hub, tables, fetch, func(v T, err error) error {
		if err != nil {
			log.Warn().
				Err(err).
				Str("request_id", c.GetString(middleware.RequestIDKey)).
				Str("path", c.FullPath()).
				Msg("live: fetch failed")
			c.SSEvent(eventError, apierror.New(failMsg))
		} else {
			c.SSEvent(eventSnapshot, v)
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Debug().Err(err).Str("path", c.FullPath()).Msg("live: stream ended")
	}
}

// RealtimeHandler exposes raw change notifications per table.
type RealtimeHandler struct {
	hub    *realtime.Hub
	tables map[string]bool
}

func NewRealtimeHandler(hub *realtime.Hub, tables []string) *RealtimeHandler {
	allowed := make(map[string]bool, len(tables))
	for _, t := range tables {
		allowed[t] = true
	}
	return &RealtimeHandler{hub: hub, tables: allowed}
}

// Stream sends one "change" event per notification on :table. The optional
// ?event= query narrows it to INSERT, UPDATE or DELETE; "*" or empty means all.
func (h *RealtimeHandler) Stream(c *gin.Context) {
	table := c.Param("table")
	if table != realtime.AllTables && !h.tables[table] {
		c.JSON(http.StatusNotFound, apierror.New("Unknown table"))
		return
	}
	op := realtime.OpAll
	switch ev := realtime.Op(c.DefaultQuery("event", "*")); ev {
	case realtime.OpAll, realtime.OpInsert, realtime.OpUpdate, realtime.OpDelete:
		op = ev
	default:
		c.JSON(http.StatusBadRequest, apierror.New("event must be INSERT, UPDATE, DELETE or *"))
		return
	}

	sub := h.hub.SubscribeOp(op, table)
	defer sub.Unsubscribe()
	startStream(c)

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			c.SSEvent(eventChange, ev)
			c.Writer.Flush()
		}
	}
}
