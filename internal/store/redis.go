// Package store persists evaluation records in Redis. It is the persistence
// collaborator the analytics engine reads its corpus from: records live in a
// hash keyed by record ID, with a sorted-set index on creation time so
// listings come back newest first, matching how reviewers browse their work.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ahrav/go-parity/internal/domain"
)

// Store errors.
var (
	// ErrRecordNotFound indicates no record exists with the requested ID.
	ErrRecordNotFound = errors.New("evaluation record not found")

	// ErrJudgeAlreadyAttached indicates a completed judge result is already
	// present. Records are mutated exactly once to attach judge scores; a
	// second attachment is a workflow bug, not a retryable condition.
	ErrJudgeAlreadyAttached = errors.New("judge result already attached")
)

// DefaultKeyPrefix namespaces all store keys in Redis.
const DefaultKeyPrefix = "parity"

// attachJudgeScript atomically replaces a record only if its stored judge
// status is not yet completed. Running the check and the write as one script
// keeps concurrent judge passes from overwriting an attached result.
//
// KEYS[1] = records hash key
// ARGV[1] = record ID
// ARGV[2] = updated record JSON
// Returns 1 on success, 0 when already attached, -1 when the record is missing.
const attachJudgeScript = `
	local current = redis.call('HGET', KEYS[1], ARGV[1])
	if not current then return -1 end
	local ok, obj = pcall(cjson.decode, current)
	if ok and type(obj) == 'table' and type(obj['judge']) == 'table' and obj['judge']['status'] == 'completed' then
		return 0
	end
	redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
	return 1
`

// RecordStore is a Redis-backed evaluation record store. It implements the
// analytics RecordSource contract and the record lifecycle: create, list,
// one-shot judge attachment, delete.
type RecordStore struct {
	client  redis.UniversalClient
	catalog *domain.Catalog
	prefix  string
	attach  *redis.Script
}

// NewRecordStore creates a record store over the provided Redis client.
// The catalog is used to enforce human-score completeness on writes, keeping
// partially scored records out of the corpus the aggregators read.
func NewRecordStore(client redis.UniversalClient, catalog *domain.Catalog, prefix string) *RecordStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RecordStore{
		client:  client,
		catalog: catalog,
		prefix:  prefix,
		attach:  redis.NewScript(attachJudgeScript),
	}
}

func (s *RecordStore) recordsKey() string { return s.prefix + ":records" }
func (s *RecordStore) indexKey() string   { return s.prefix + ":records:by_time" }

// Put stores a new evaluation record. The record must be structurally valid
// and its human scores complete; the aggregators read no defensive nulls, so
// incomplete records must stay in the evaluation workflow's pending state.
func (s *RecordStore) Put(ctx context.Context, rec *domain.EvaluationRecord) error {
	if err := rec.ValidateComplete(s.catalog); err != nil {
		return fmt.Errorf("validate record %s: %w", rec.ID, err)
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", rec.ID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.recordsKey(), rec.ID, payload)
	pipe.ZAdd(ctx, s.indexKey(), redis.Z{
		Score:  float64(rec.CreatedAt.UnixNano()),
		Member: rec.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store record %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns one record by ID.
func (s *RecordStore) Get(ctx context.Context, id string) (*domain.EvaluationRecord, error) {
	payload, err := s.client.HGet(ctx, s.recordsKey(), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("record %s: %w", id, ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch record %s: %w", id, err)
	}

	var rec domain.EvaluationRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return &rec, nil
}

// List returns every record, newest first.
func (s *RecordStore) List(ctx context.Context) ([]domain.EvaluationRecord, error) {
	return s.list(ctx, func(domain.EvaluationRecord) bool { return true })
}

// ListForUser returns records visible to one reviewer, newest first.
// Admins see the whole corpus; other reviewers see only their own records.
func (s *RecordStore) ListForUser(ctx context.Context, userID string, admin bool) ([]domain.EvaluationRecord, error) {
	if admin {
		return s.List(ctx)
	}
	return s.list(ctx, func(rec domain.EvaluationRecord) bool { return rec.UserID == userID })
}

func (s *RecordStore) list(ctx context.Context, keep func(domain.EvaluationRecord) bool) ([]domain.EvaluationRecord, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list record index: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	payloads, err := s.client.HMGet(ctx, s.recordsKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	records := make([]domain.EvaluationRecord, 0, len(payloads))
	for i, payload := range payloads {
		text, ok := payload.(string)
		if !ok {
			// Index entry without a hash entry; a half-applied delete.
			continue
		}
		var rec domain.EvaluationRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", ids[i], err)
		}
		if keep(rec) {
			records = append(records, rec)
		}
	}
	return records, nil
}

// AttachJudgeResult performs the record's single permitted mutation:
// attaching a completed judge assessment. The assessment must be fully
// populated, and attachment fails with ErrJudgeAlreadyAttached if a
// completed result is already stored.
func (s *RecordStore) AttachJudgeResult(ctx context.Context, id string, scores domain.Assessment) error {
	if !scores.Complete(s.catalog) {
		return fmt.Errorf("judge scores for record %s: %w", id, domain.ErrIncompleteScores)
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	rec.Judge = domain.JudgeResult{Status: domain.JudgeCompleted, Scores: &scores}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", id, err)
	}

	status, err := s.attach.Run(ctx, s.client, []string{s.recordsKey()}, id, payload).Int()
	if err != nil {
		return fmt.Errorf("attach judge result to %s: %w", id, err)
	}
	switch status {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("record %s: %w", id, ErrJudgeAlreadyAttached)
	default:
		return fmt.Errorf("record %s: %w", id, ErrRecordNotFound)
	}
}

// Delete removes a record and its index entry.
func (s *RecordStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, s.recordsKey(), id)
	pipe.ZRem(ctx, s.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}

// Options configures the Redis connection for a record store.
type Options struct {
	// Addr is the Redis server address, host:port.
	Addr string

	// Password is the optional server password.
	Password string

	// DB is the Redis logical database.
	DB int

	// DialTimeout bounds connection establishment. Zero means 5s.
	DialTimeout time.Duration
}

// NewClient creates a Redis client from store options.
func NewClient(opts Options) redis.UniversalClient {
	dialTimeout := opts.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = 5 * time.Second
	}
	return redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: dialTimeout,
	})
}
