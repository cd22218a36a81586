package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const (
	defaultKeyPrefix  = "jta:reminder_jobs"
	defaultBatchSize  = 50
	defaultPollSpec   = "@every 1s"
	defaultVisibility = 5 * time.Minute
)

// claimScript moves a due job into the processing set, scored by its lease
// deadline, and returns the payload. A job another poller took, or one
// cancelled in between, yields nil.
var claimScript = redis.NewScript(`
if redis.call('ZREM', KEYS[1], ARGV[1]) == 0 then return false end
local payload = redis.call('HGET', KEYS[3], ARGV[1])
if not payload then return false end
redis.call('ZADD', KEYS[2], ARGV[2], ARGV[1])
return payload
`)

// ackScript deletes a handled job, but only while the caller still holds the
// lease it claimed with.
var ackScript = redis.NewScript(`
if tonumber(redis.call('ZSCORE', KEYS[1], ARGV[1])) ~= tonumber(ARGV[2]) then return 0 end
redis.call('ZREM', KEYS[1], ARGV[1])
return redis.call('HDEL', KEYS[2], ARGV[1])
`)

// reclaimScript returns jobs whose lease ran out to the due set.
var reclaimScript = redis.NewScript(`
local ids = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, ARGV[2])
for _, id in ipairs(ids) do
	redis.call('ZREM', KEYS[1], id)
	redis.call('ZADD', KEYS[2], ARGV[1], id)
end
return #ids
`)

// RedisConfig configures a Redis-backed scheduler.
type RedisConfig struct {
	// KeyPrefix namespaces the sorted set and hash the scheduler uses.
	KeyPrefix string
	// PollSpec is the robfig/cron spec the due-job poller runs on.
	PollSpec  string
	BatchSize int64
	// Visibility is how long a claimed job may stay unacknowledged before
	// another poll hands it out again.
	Visibility time.Duration
}

// Redis keeps pending jobs in a sorted set scored by fire time (unix millis)
// and their payloads in a hash. Any number of processes may poll the same
// keys: a job is claimed by whoever moves it from the due set to the
// processing set, and deleted only after its handler returns. A poller that
// dies mid-job leaves the job in the processing set until its lease expires,
// so delivery is at least once.
type Redis struct {
	client        *redis.Client
	handler       FireHandler
	logger        *slog.Logger
	dueKey        string
	processingKey string
	jobsKey       string
	pollSpec      string
	batchSize     int64
	visibility    time.Duration
	now           func() time.Time
	backoff       func(attempt int) time.Duration

	mu   sync.Mutex
	cron *cron.Cron
}

var _ portssvc.JobScheduler = (*Redis)(nil)

// NewRedisClient parses url, connects and pings.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// NewRedis creates a scheduler on client delivering due jobs to handler.
// Call Start to begin polling.
func NewRedis(client *redis.Client, handler FireHandler, logger *slog.Logger, cfg RedisConfig) *Redis {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	if cfg.PollSpec == "" {
		cfg.PollSpec = defaultPollSpec
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Visibility <= 0 {
		cfg.Visibility = defaultVisibility
	}
	return &Redis{
		client:        client,
		handler:       handler,
		logger:        logger.With(slog.String("component", "redis_queue")),
		dueKey:        cfg.KeyPrefix + ":due",
		processingKey: cfg.KeyPrefix + ":processing",
		jobsKey:       cfg.KeyPrefix + ":payloads",
		pollSpec:      cfg.PollSpec,
		batchSize:     cfg.BatchSize,
		visibility:    cfg.Visibility,
		now:           time.Now,
		backoff:       retryDelay,
	}
}

// Enqueue stores a job for reminderID due after delay.
func (q *Redis) Enqueue(ctx context.Context, reminderID string, delay time.Duration) (string, error) {
	job := domain.ReminderJob{JobID: uuid.NewString(), ReminderID: reminderID}
	if err := q.put(ctx, job, q.now().Add(delay)); err != nil {
		return "", err
	}
	return job.JobID, nil
}

func (q *Redis) put(ctx context.Context, job domain.ReminderJob, due time.Time) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode reminder job: %w", err)
	}
	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, q.jobsKey, job.JobID, payload)
		pipe.ZAdd(ctx, q.dueKey, &redis.Z{Score: float64(due.UnixMilli()), Member: job.JobID})
		pipe.ZRem(ctx, q.processingKey, job.JobID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store reminder job: %w", err)
	}
	return nil
}

// Cancel removes a pending job. Unknown ids are ignored. A job already being
// handled still runs; its acknowledgement then finds nothing to delete.
func (q *Redis) Cancel(ctx context.Context, jobID string) error {
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, q.dueKey, jobID)
		pipe.ZRem(ctx, q.processingKey, jobID)
		pipe.HDel(ctx, q.jobsKey, jobID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cancel reminder job: %w", err)
	}
	return nil
}

// Start runs the due-job poller on the configured cron spec until Stop.
func (q *Redis) Start(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cron != nil {
		return errors.New("queue: poller already running")
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(q.pollSpec, func() { q.Poll(ctx) }); err != nil {
		return fmt.Errorf("invalid queue poll spec %q: %w", q.pollSpec, err)
	}
	c.Start()
	q.cron = c
	q.logger.Info("Reminder job poller started", slog.String("spec", q.pollSpec))
	return nil
}

// Stop halts the poller and waits for an in-flight poll to finish.
func (q *Redis) Stop() {
	q.mu.Lock()
	c := q.cron
	q.cron = nil
	q.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
	q.logger.Info("Reminder job poller stopped")
}

// Poll returns expired leases to the due set, then claims and handles every
// job that is due. It returns the number of jobs handed to the handler.
func (q *Redis) Poll(ctx context.Context) int {
	now := strconv.FormatInt(q.now().UnixMilli(), 10)
	q.reclaimExpired(ctx, now)

	ids, err := q.client.ZRangeByScore(ctx, q.dueKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   now,
		Count: q.batchSize,
	}).Result()
	if err != nil {
		q.logger.Error("Failed to fetch due reminder jobs", slog.String("error", err.Error()))
		return 0
	}

	handled := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return handled
		}
		job, lease, ok := q.claim(ctx, id)
		if !ok {
			continue
		}
		q.handle(ctx, job, lease)
		handled++
	}
	return handled
}

func (q *Redis) reclaimExpired(ctx context.Context, now string) {
	n, err := reclaimScript.Run(ctx, q.client, []string{q.processingKey, q.dueKey}, now, q.batchSize).Int()
	if err != nil {
		q.logger.Error("Failed to reclaim expired reminder jobs", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		q.logger.Warn("Reclaimed reminder jobs with expired leases", slog.Int("count", n))
	}
}

// claim moves id into the processing set and returns its payload with the
// lease score to acknowledge it under. Losing the race to another poller, or
// a cancel in between, yields false.
func (q *Redis) claim(ctx context.Context, id string) (domain.ReminderJob, string, bool) {
	var job domain.ReminderJob
	lease := strconv.FormatInt(q.now().Add(q.visibility).UnixMilli(), 10)
	payload, err := claimScript.Run(ctx, q.client,
		[]string{q.dueKey, q.processingKey, q.jobsKey}, id, lease).Text()
	if errors.Is(err, redis.Nil) {
		return job, "", false
	}
	if err != nil {
		q.logger.Error("Failed to claim reminder job", slog.String("job_id", id), slog.String("error", err.Error()))
		return job, "", false
	}

	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		q.logger.Error("Dropping undecodable reminder job", slog.String("job_id", id), slog.String("error", err.Error()))
		q.ack(ctx, id, lease)
		return job, "", false
	}
	return job, lease, true
}

// ack deletes a handled job. It reports false when the lease had already
// expired or the job was cancelled while running.
func (q *Redis) ack(ctx context.Context, id, lease string) bool {
	deleted, err := ackScript.Run(ctx, q.client, []string{q.processingKey, q.jobsKey}, id, lease).Int()
	if err != nil {
		q.logger.Error("Failed to acknowledge reminder job", slog.String("job_id", id), slog.String("error", err.Error()))
		return false
	}
	if deleted == 0 {
		q.logger.Warn("Reminder job lease lost before acknowledgement", slog.String("job_id", id))
		return false
	}
	return true
}

func (q *Redis) handle(ctx context.Context, job domain.ReminderJob, lease string) {
	logger := q.logger.With(slog.String("job_id", job.JobID), slog.String("reminder_id", job.ReminderID))
	err := q.handler(middleware.WithLogger(ctx, logger), job)
	if err == nil {
		q.ack(ctx, job.JobID, lease)
		return
	}

	job.Attempt++
	if job.Attempt >= MaxAttempts {
		logger.Error("Reminder job failed, giving up", slog.String("error", err.Error()), slog.Int("attempts", job.Attempt))
		q.ack(ctx, job.JobID, lease)
		return
	}
	delay := q.backoff(job.Attempt)
	logger.Warn("Reminder job failed, retrying", slog.String("error", err.Error()), slog.Duration("retry_in", delay))
	if err := q.put(ctx, job, q.now().Add(delay)); err != nil {
		// The lease expires and the job comes back on its own.
		logger.Error("Failed to requeue reminder job", slog.String("error", err.Error()))
	}
}
