package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Jobs that run out of attempts land in dlq:<source queue> for inspection.
const DLQPrefix = "dlq:"

// Queues lists every queue the pool consumes.
var Queues = []string{QueueOrderPDF, QueueEmail}

// DLQEntry is one dead-lettered job.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      time.Time       `json:"failed_at"`
	Attempts      int             `json:"attempts"`
}

// deadLetter parks job on the DLQ of queue. Push failures are only logged;
// the job is gone either way.
func deadLetter(ctx context.Context, q Queue, queue string, job Job, reason string) {
	key := DLQPrefix + queue
	data, err := json.Marshal(DLQEntry{
		OriginalQueue: queue,
		JobType:       job.Type,
		Payload:       job.Payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC(),
		Attempts:      job.Attempts,
	})
	if err == nil {
		err = q.LPush(ctx, key, data).Err()
	}
	if err != nil {
		log.Error().Err(err).Str("dlq", key).Str("type", job.Type).Msg("dlq: job dropped")
		return
	}
	log.Warn().Str("queue", queue).Str("type", job.Type).Int("attempts", job.Attempts).
		Str("reason", reason).Msg("dlq: job dead-lettered")
}

// LenReader is the slice of the Redis client needed to measure queues.
type LenReader interface {
	LLen(ctx context.Context, key string) *redis.IntCmd
}

// DLQDepths reports how many dead jobs each consumed queue holds, keyed by
// job type.
func DLQDepths(ctx context.Context, r LenReader) (map[string]int64, error) {
	depths := make(map[string]int64, len(Queues))
	for _, queue := range Queues {
		n, err := r.LLen(ctx, DLQPrefix+queue).Result()
		if err != nil {
			return nil, err
		}
		depths[jobTypeOf(queue)] = n
	}
	return depths, nil
}

func jobTypeOf(queue string) string {
	switch queue {
	case QueueOrderPDF:
		return JobOrderPDF
	case QueueEmail:
		return JobEmail
	}
	return queue
}
