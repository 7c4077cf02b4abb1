package sbp

import (
	"fmt"

	"sbp-go/internal/model"
)

// GetHistory returns the most recent operations, ordered newest first.
// A limit of zero or less returns every operation.
func (s *SBPService) GetHistory(limit int) ([]*model.Operation, error) {
	if limit <= 0 {
		limit = -1
	}
	ops, err := s.clients.ListOperations(limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}
