package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/AlzProject/backend/internal/config"
	"github.com/AlzProject/backend/internal/model"
)

const (
	AuditBatchSize    = 50
	AuditBatchTimeout = 2 * time.Second
	AuditPollTimeout  = 1 * time.Second
)

// AuditQueue is the producer side of the grade-audit pipeline. Enqueue
// is best-effort: a failed push is logged, never surfaced to the
// grading request.
type AuditQueue struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewAuditQueue creates a new AuditQueue.
func NewAuditQueue(rdb *redis.Client, log zerolog.Logger) *AuditQueue {
	return &AuditQueue{
		rdb: rdb,
		log: log.With().Str("component", "audit_queue").Logger(),
	}
}

// Enqueue pushes a manual-grading event onto the audit queue.
func (q *AuditQueue) Enqueue(ctx context.Context, ev model.GradeAuditEvent) {
	raw, err := json.Marshal(ev)
	if err != nil {
		q.log.Error().Err(err).Msg("Marshal audit event failed")
		return
	}
	if err := q.rdb.RPush(ctx, config.WorkerKey.GradeAuditQueue, raw).Err(); err != nil {
		q.log.Error().Err(err).
			Str("response_id", ev.ResponseID.String()).
			Msg("Enqueue audit event failed")
	}
}

// AuditWorker drains the grade-audit queue and persists entries in
// batches.
type AuditWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewAuditWorker creates a new AuditWorker.
func NewAuditWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *AuditWorker {
	return &AuditWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "audit_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is canceled, flushing any
// remaining batch on shutdown.
func (w *AuditWorker) Start(ctx context.Context) {
	w.log.Info().Msg("AuditWorker started")

	batch := make([]*model.GradeAuditEvent, 0, AuditBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= AuditBatchSize || time.Since(lastFlush) >= AuditBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, AuditPollTimeout, config.WorkerKey.GradeAuditQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var ev model.GradeAuditEvent
			if err := json.Unmarshal([]byte(item[1]), &ev); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &ev)
		}
	}
}

func (w *AuditWorker) flushSafe(ctx context.Context, batch []*model.GradeAuditEvent) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkInsert(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("Bulk audit insert failed, using fallback")

		for _, ev := range batch {
			if err := w.insertSingle(ctx, ev); err != nil {
				w.log.Error().Err(err).Msg("insertSingle failed — requeueing")
				raw, _ := json.Marshal(ev)
				w.rdb.RPush(ctx, config.WorkerKey.GradeAuditQueue, raw)
			}
		}
	}
}

func (w *AuditWorker) bulkInsert(ctx context.Context, batch []*model.GradeAuditEvent) error {
	n := len(batch)

	responseIDs := make([]uuid.UUID, 0, n)
	graderIDs := make([]uuid.UUID, 0, n)
	scores := make([]string, 0, n)
	comments := make([]*string, 0, n)

	for _, ev := range batch {
		responseIDs = append(responseIDs, ev.ResponseID)
		graderIDs = append(graderIDs, ev.GraderID)
		scores = append(scores, ev.Score)
		comments = append(comments, ev.Comment)
	}

	query := `
		INSERT INTO grade_audit_log (response_id, grader_id, score, comment)
		SELECT u.response_id, u.grader_id, u.score, u.comment
		FROM UNNEST(
			$1::uuid[],
			$2::uuid[],
			$3::numeric[],
			$4::text[]
		) AS u (response_id, grader_id, score, comment)
	`

	_, err := w.pool.Exec(ctx, query, responseIDs, graderIDs, scores, comments)
	return err
}

func (w *AuditWorker) insertSingle(ctx context.Context, ev *model.GradeAuditEvent) error {
	_, err := w.pool.Exec(ctx,
		`INSERT INTO grade_audit_log (response_id, grader_id, score, comment)
		 VALUES ($1, $2, $3, $4)`,
		ev.ResponseID, ev.GraderID, ev.Score, ev.Comment,
	)
	return err
}
