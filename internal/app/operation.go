package app

import (
	"fmt"
	"strings"
)

// Operation statuses recorded in the operation log.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusError   = "error"
)

// CommandOperation tracks the CLI command being run. It starts in memory
// with ID 0; commands that mutate the client store persist it, which gives
// it an ID and a row in the operation log.
type CommandOperation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string
}

// NewCommandOperation creates an in-memory operation that will finish as a
// success unless Fail is called.
func NewCommandOperation(operation, parameters string) *CommandOperation {
	return &CommandOperation{
		Operation:  operation,
		Parameters: parameters,
		Status:     StatusSuccess,
	}
}

// Persisted returns true if this operation has been saved to the store.
func (op *CommandOperation) Persisted() bool {
	return op.ID != 0
}

// Fail marks the operation as failed.
func (op *CommandOperation) Fail() {
	op.Status = StatusError
}

// FormatParameters renders alternating key/value pairs as "k=v k=v". Values
// containing spaces are quoted. Empty values are skipped.
func FormatParameters(kv ...string) string {
	var parts []string
	for i := 0; i+1 < len(kv); i += 2 {
		v := kv[i+1]
		if v == "" {
			continue
		}
		if strings.ContainsAny(v, " \t") {
			v = fmt.Sprintf("%q", v)
		}
		parts = append(parts, kv[i]+"="+v)
	}
	return strings.Join(parts, " ")
}
