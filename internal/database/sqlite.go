package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sbp-go/internal/database/migrations"
	"sbp-go/internal/model"
	"sbp-go/internal/sbp"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements sbp.ClientStore using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens the database at path and applies pending migrations.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating client database: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection with the PRAGMAs
// the store relies on. path can be a file path or ":memory:".
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serialises
	// writers on file databases.
	db.SetMaxOpenConns(1)

	// SQLite leaves foreign keys off unless asked.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Client operations

func (s *SQLiteStore) CreateClient(client *model.Client) error {
	_, err := s.db.ExecContext(context.Background(),
		"INSERT INTO clients (id, name, notes, created_at) VALUES (?, ?, ?, ?)",
		client.ID, client.Name, client.Notes, client.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindClientByName(name string) (*model.Client, error) {
	ctx := context.Background()

	var c model.Client
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, notes, created_at FROM clients WHERE name = ?", name).
		Scan(&c.ID, &c.Name, &c.Notes, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding client by name: %w", err)
	}

	projects, err := s.projectsFor(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Projects = projects
	return &c, nil
}

func (s *SQLiteStore) ListClients() ([]*model.Client, error) {
	ctx := context.Background()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, notes, created_at FROM clients ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}

	clients := []*model.Client{}
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Notes, &c.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		clients = append(clients, &c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	// Release the connection before loading projects.
	rows.Close()

	for _, c := range clients {
		projects, err := s.projectsFor(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Projects = projects
	}
	return clients, nil
}

func (s *SQLiteStore) UpdateClientNotes(clientID string, notes string) error {
	res, err := s.db.ExecContext(context.Background(), "UPDATE clients SET notes = ? WHERE id = ?", notes, clientID)
	if err != nil {
		return fmt.Errorf("updating client notes: %w", err)
	}
	return requireRow(res, clientID)
}

func (s *SQLiteStore) DeleteClient(clientID string) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM client_projects WHERE client_id = ?", clientID); err != nil {
		return fmt.Errorf("deleting client projects: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", clientID)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	if err := requireRow(res, clientID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddClientProject(clientID string, project string, addedAt time.Time) (bool, error) {
	res, err := s.db.ExecContext(context.Background(),
		"INSERT OR IGNORE INTO client_projects (client_id, project, added_at) VALUES (?, ?, ?)",
		clientID, project, addedAt.UTC())
	if err != nil {
		return false, fmt.Errorf("adding client project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("adding client project: %w", err)
	}
	return n == 1, nil
}

func (s *SQLiteStore) projectsFor(ctx context.Context, clientID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT project FROM client_projects WHERE client_id = ? ORDER BY added_at, rowid", clientID)
	if err != nil {
		return nil, fmt.Errorf("loading client projects: %w", err)
	}
	defer rows.Close()

	projects := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning client project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Operation tracking

func (s *SQLiteStore) CreateOperation(operation string, parameters string, startedAt time.Time) (*model.Operation, error) {
	startedAt = startedAt.UTC()
	res, err := s.db.ExecContext(context.Background(),
		"INSERT INTO operations (operation, parameters, started_at, status) VALUES (?, ?, ?, 'running')",
		operation, parameters, startedAt)
	if err != nil {
		return nil, fmt.Errorf("creating operation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("creating operation: %w", err)
	}
	return &model.Operation{
		ID:         id,
		Operation:  operation,
		Parameters: parameters,
		StartedAt:  startedAt,
		Status:     "running",
	}, nil
}

func (s *SQLiteStore) FinishOperation(id int64, status string, finishedAt time.Time) error {
	res, err := s.db.ExecContext(context.Background(),
		"UPDATE operations SET finished_at = ?, status = ? WHERE id = ?", finishedAt.UTC(), status, id)
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	return requireRow(res, fmt.Sprint(id))
}

func (s *SQLiteStore) ListOperations(limit int) ([]*model.Operation, error) {
	rows, err := s.db.QueryContext(context.Background(),
		"SELECT id, operation, parameters, started_at, finished_at, status FROM operations ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	ops := []*model.Operation{}
	for rows.Next() {
		var (
			op       model.Operation
			finished sql.NullTime
		)
		if err := rows.Scan(&op.ID, &op.Operation, &op.Parameters, &op.StartedAt, &finished, &op.Status); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		if finished.Valid {
			op.FinishedAt = &finished.Time
		}
		ops = append(ops, &op)
	}
	return ops, rows.Err()
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no row with id %s", id)
	}
	return nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteStore) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.Check(s.db)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteStore implements sbp.ClientStore
var _ sbp.ClientStore = (*SQLiteStore)(nil)
