// Package sqlite keeps quiz responses in a local SQLite file so profiles
// can be scored offline.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"adviseek/internal/domain"
)

const DataFileName string = "adviseek.db"

const (
	insertResponseSQL  = `INSERT INTO user_responses (user_id, quiz_type, component, score) VALUES (?, ?, ?, ?)`
	selectResponsesSQL = `SELECT user_id, quiz_type, component, score FROM user_responses WHERE user_id = ?`
	selectUsersSQL     = `SELECT DISTINCT user_id FROM user_responses ORDER BY user_id`
)

var (
	//go:embed sql/*
	f embed.FS

	errDBNotInitialized = errors.New("database not initialized")
)

// Init creates the schema when dbFilePath does not exist yet.
func Init(dbFilePath string) error {
	if dbFilePath == "" {
		return errors.New("dbFilePath not specified")
	}

	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		db, err := GetDB(dbFilePath)
		if err != nil {
			return errors.Wrapf(err, "error opening database: %s", dbFilePath)
		}
		defer db.Close()

		log.Debug("creating db schema...")
		b, err := f.ReadFile("sql/ddl.sql")
		if err != nil {
			return errors.Wrap(err, "failed to read the schema creation file")
		}
		if _, err := db.Exec(string(b)); err != nil {
			return errors.Wrapf(err, "failed to create database schema in: %s", dbFilePath)
		}
		log.Debug("db schema created")
	}

	return nil
}

func GetDB(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", path)
	}
	return conn, nil
}

// Store reads and writes user_responses rows.
type Store struct {
	db *sql.DB
}

// Open initializes dbFilePath if needed and returns a store over it.
func Open(dbFilePath string) (*Store, error) {
	if err := Init(dbFilePath); err != nil {
		return nil, err
	}
	db, err := GetDB(dbFilePath)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveResponses inserts all responses in one transaction.
func (s *Store) SaveResponses(ctx context.Context, responses []domain.Response) error {
	if s == nil || s.db == nil {
		return errDBNotInitialized
	}
	if len(responses) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	stmt, err := tx.PrepareContext(ctx, insertResponseSQL)
	if err != nil {
		rollbackTransaction(tx)
		return errors.Wrap(err, "failed to prepare response insert statement")
	}
	defer stmt.Close()

	for i, r := range responses {
		if _, err := stmt.ExecContext(ctx, r.UserID, r.QuizType, r.Component, r.Score); err != nil {
			log.WithFields(log.Fields{
				"index":     i,
				"user":      r.UserID,
				"quiz_type": r.QuizType,
			}).WithError(err).Error("failed to insert response")
			rollbackTransaction(tx)
			return errors.Wrapf(err, "error inserting response[%d]: %s", i, r.UserID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// Responses returns the responses of userID in insertion order, limited to
// quizTypes when any are given.
func (s *Store) Responses(ctx context.Context, userID string, quizTypes ...string) ([]domain.Response, error) {
	if s == nil || s.db == nil {
		return nil, errDBNotInitialized
	}

	query := selectResponsesSQL
	args := []any{userID}
	if len(quizTypes) > 0 {
		query += " AND quiz_type IN (?" + strings.Repeat(", ?", len(quizTypes)-1) + ")"
		for _, qt := range quizTypes {
			args = append(args, qt)
		}
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query responses for %s", userID)
	}
	defer rows.Close()

	list := make([]domain.Response, 0)
	for rows.Next() {
		var r domain.Response
		if err := rows.Scan(&r.UserID, &r.QuizType, &r.Component, &r.Score); err != nil {
			return nil, errors.Wrap(err, "failed to scan response row")
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate response rows")
	}
	return list, nil
}

// Users lists the distinct users with stored responses.
func (s *Store) Users(ctx context.Context) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := s.db.QueryContext(ctx, selectUsersSQL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query users")
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, errors.Wrap(err, "failed to scan user row")
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func rollbackTransaction(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		log.WithError(err).Error("failed to rollback transaction")
	}
}
