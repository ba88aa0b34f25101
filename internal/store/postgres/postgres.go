// Package postgres reads and writes quiz responses in the hosted backend's
// user_responses table.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"adviseek/internal/domain"
)

const (
	selectResponsesSQL = `
		SELECT user_id::text, quiz_type, COALESCE(component, ''), COALESCE(score, 0)::float8
		FROM user_responses
		WHERE user_id::text = $1 AND (cardinality($2::text[]) = 0 OR quiz_type = ANY($2))
	`
	insertResponseSQL = `
		INSERT INTO user_responses (user_id, quiz_type, component, score)
		VALUES ($1, $2, $3, $4)
	`
)

// Connect opens a pgx connection pool and performs a Ping to ensure connectivity.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "parse pgx config")
	}
	config.MaxConns = 4
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, errors.Wrap(err, "open pgx pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return pool, nil
}

// Store is a response store backed by a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Open connects to dsn and returns a store over the new pool.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return NewStore(pool), nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Responses returns the responses of userID, limited to quizTypes when any
// are given. Rows come back in the table's natural order.
func (s *Store) Responses(ctx context.Context, userID string, quizTypes ...string) ([]domain.Response, error) {
	if quizTypes == nil {
		quizTypes = []string{}
	}

	rows, err := s.pool.Query(ctx, selectResponsesSQL, userID, quizTypes)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query responses for %s", userID)
	}

	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Response, error) {
		var r domain.Response
		err := row.Scan(&r.UserID, &r.QuizType, &r.Component, &r.Score)
		return r, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response rows")
	}
	return list, nil
}

// SaveResponses inserts responses as a single batch inside a transaction.
func (s *Store) SaveResponses(ctx context.Context, responses []domain.Response) error {
	if len(responses) == 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, r := range responses {
			batch.Queue(insertResponseSQL, r.UserID, r.QuizType, r.Component, r.Score)
		}

		br := tx.SendBatch(ctx, batch)
		for i, r := range responses {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				log.WithFields(log.Fields{
					"index":     i,
					"user":      r.UserID,
					"quiz_type": r.QuizType,
				}).WithError(err).Error("failed to insert response")
				return errors.Wrapf(err, "error inserting response[%d]: %s", i, r.UserID)
			}
		}
		return errors.Wrap(br.Close(), "failed to close batch")
	})
}
