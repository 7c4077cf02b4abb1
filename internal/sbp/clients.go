package sbp

import (
	"fmt"
	"strings"

	"sbp-go/internal/model"
)

// AddClient registers a new client. The name is trimmed and must be unique.
func (s *SBPService) AddClient(name, notes string) (*model.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("client name is required")
	}

	existing, err := s.clients.FindClientByName(name)
	if err != nil {
		return nil, fmt.Errorf("checking for existing client: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrClientExists, name)
	}

	client := &model.Client{
		ID:        s.idgen.New(),
		Name:      name,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: s.clock.Now(),
		Projects:  []string{},
	}
	if err := s.clients.CreateClient(client); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	s.logger.Info("client added", "name", name)
	return client, nil
}

// GetClient returns a client by exact name.
func (s *SBPService) GetClient(name string) (*model.Client, error) {
	client, err := s.clients.FindClientByName(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("finding client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, name)
	}
	return client, nil
}

// ListClients returns all clients ordered by name.
func (s *SBPService) ListClients() ([]*model.Client, error) {
	clients, err := s.clients.ListClients()
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	return clients, nil
}

// UpdateClientNotes replaces a client's notes and returns the updated client.
func (s *SBPService) UpdateClientNotes(name, notes string) (*model.Client, error) {
	client, err := s.GetClient(name)
	if err != nil {
		return nil, err
	}

	notes = strings.TrimSpace(notes)
	if err := s.clients.UpdateClientNotes(client.ID, notes); err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}
	client.Notes = notes
	return client, nil
}

// RemoveClient deletes a client and its project list.
func (s *SBPService) RemoveClient(name string) error {
	client, err := s.GetClient(name)
	if err != nil {
		return err
	}

	if err := s.clients.DeleteClient(client.ID); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	s.logger.Info("client removed", "name", client.Name)
	return nil
}

// SearchClients returns clients whose name contains query, ignoring case.
// An empty query matches every client.
func (s *SBPService) SearchClients(query string) ([]*model.Client, error) {
	clients, err := s.ListClients()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	matches := []*model.Client{}
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), query) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// SuggestClients returns up to limit client names starting with prefix,
// ignoring case, for autocompletion. A limit of zero or less means no limit.
func (s *SBPService) SuggestClients(prefix string, limit int) ([]string, error) {
	clients, err := s.ListClients()
	if err != nil {
		return nil, err
	}

	prefix = strings.ToLower(strings.TrimSpace(prefix))
	names := []string{}
	for _, c := range clients {
		if limit > 0 && len(names) == limit {
			break
		}
		if strings.HasPrefix(strings.ToLower(c.Name), prefix) {
			names = append(names, c.Name)
		}
	}
	return names, nil
}

// AddProjectToClient records a project for an existing client. It returns
// false if the project was already recorded.
func (s *SBPService) AddProjectToClient(name, project string) (bool, error) {
	client, err := s.GetClient(name)
	if err != nil {
		return false, err
	}

	project = strings.TrimSpace(project)
	if project == "" {
		return false, fmt.Errorf("project name is required")
	}

	added, err := s.clients.AddClientProject(client.ID, project, s.clock.Now())
	if err != nil {
		return false, fmt.Errorf("recording project: %w", err)
	}
	if added {
		s.logger.Debug("project recorded", "client", client.Name, "project", project)
	}
	return added, nil
}
