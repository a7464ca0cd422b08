package storages

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/mailconfigs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is the message archive.
type Store struct {
	db *sql.DB
}

func Open(ctx context.Context, path string, logger logs.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db: db,
	}, nil
}

func migrate(ctx context.Context, db *sql.DB, logger logs.Logger) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, result := range results {
		logger.DebugContext(ctx, "migrated",
			"version", result.Source.Version,
			"duration", result.Duration,
		)
	}
	return nil
}

type OpenStore func(ctx context.Context) (*Store, error)

func (Module) OpenStore(
	path mailconfigs.DBPath,
	logger logs.Logger,
) OpenStore {
	return func(ctx context.Context) (*Store, error) {
		return Open(ctx, string(path), logger)
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

// Begin starts a transaction for one request.
func (s *Store) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	return sqlTx{tx: tx}, nil
}

// Insert adds messages in one transaction. Messages whose non-empty
// MessageID is already stored are skipped. It returns the number inserted.
func (s *Store) Insert(ctx context.Context, messages ...Message) (n int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO messages (
		id, timestamp, from_email, from_name, to_email, to_name,
		subject, content, links, attachments, message_id, thread_id
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, msg := range messages {
		var id any
		if msg.ID != 0 {
			id = msg.ID
		}
		var timestamp string
		if !msg.Timestamp.IsZero() {
			timestamp = msg.Timestamp.UTC().Format(TimeLayout)
		}
		res, err := stmt.ExecContext(ctx,
			id, timestamp, msg.FromEmail, msg.FromName, msg.ToEmail, msg.ToName,
			msg.Subject, msg.Content, joinList(msg.Links), joinList(msg.Attachments),
			msg.MessageID, msg.ThreadID,
		)
		if err != nil {
			return 0, fmt.Errorf("insert message: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		n += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}
