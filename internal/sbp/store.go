package sbp

import (
	"time"

	"sbp-go/internal/model"
)

// ClientStore persists clients, their project lists and the operation log.
type ClientStore interface {
	// Client operations

	// CreateClient inserts a new client. The name must be unique.
	CreateClient(client *model.Client) error

	// FindClientByName returns the client with an exact name match, with its
	// projects loaded. Returns nil, nil when no client matches.
	FindClientByName(name string) (*model.Client, error)

	// ListClients returns all clients ordered by name.
	ListClients() ([]*model.Client, error)

	// UpdateClientNotes replaces the notes of a client.
	UpdateClientNotes(clientID string, notes string) error

	// DeleteClient removes a client and its project list.
	DeleteClient(clientID string) error

	// AddClientProject records a project for a client. Returns false if the
	// project was already recorded.
	AddClientProject(clientID string, project string, addedAt time.Time) (bool, error)

	// Operation tracking

	// CreateOperation inserts a running operation and returns it with its ID.
	CreateOperation(operation string, parameters string, startedAt time.Time) (*model.Operation, error)

	// FinishOperation stamps a finish time and final status on an operation.
	FinishOperation(id int64, status string, finishedAt time.Time) error

	// ListOperations returns at most limit operations, newest first.
	ListOperations(limit int) ([]*model.Operation, error)

	// Close closes the underlying connection.
	Close() error
}
