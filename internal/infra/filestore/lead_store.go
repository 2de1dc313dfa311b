package filestore

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/gemlabs/gem-platform/internal/entity"
)

// LeadStore is the local-dev fallback for leads: a single flat JSON file
// shaped {"leads": [...], "count": n}. It implements the same repository
// interface as the database so read paths can swap it in transparently.
// Not shared across instances; its durability ends at the local disk.
type LeadStore struct {
	mu   sync.Mutex
	path string
}

type leadFile struct {
	Leads []entity.Lead `json:"leads"`
	Count int           `json:"count"`
}

func NewLeadStore(path string) *LeadStore {
	if path == "" {
		path = "leads.json"
	}
	return &LeadStore{path: path}
}

func (s *LeadStore) load() (*leadFile, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &leadFile{Leads: []entity.Lead{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var file leadFile
	if err := json.Unmarshal(data, &file); err != nil {
		// A corrupt fallback file should not take the read path down.
		return &leadFile{Leads: []entity.Lead{}}, nil
	}
	if file.Leads == nil {
		file.Leads = []entity.Lead{}
	}
	return &file, nil
}

func (s *LeadStore) save(file *leadFile) error {
	file.Count = len(file.Leads)

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *LeadStore) Upsert(ctx context.Context, lead *entity.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	for i := range file.Leads {
		if file.Leads[i].Email == lead.Email {
			if lead.Name != "" {
				file.Leads[i].Name = lead.Name
			}
			if lead.Phone != "" {
				file.Leads[i].Phone = lead.Phone
			}
			file.Leads[i].Source = lead.Source
			file.Leads[i].UpdatedAt = time.Now()
			*lead = file.Leads[i]
			return s.save(file)
		}
	}

	file.Leads = append(file.Leads, *lead)
	return s.save(file)
}

func (s *LeadStore) List(ctx context.Context) ([]entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	return file.Leads, nil
}

func (s *LeadStore) Update(ctx context.Context, lead *entity.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	for i := range file.Leads {
		if file.Leads[i].ID == lead.ID {
			lead.UpdatedAt = time.Now()
			file.Leads[i] = *lead
			return s.save(file)
		}
	}
	return entity.ErrLeadNotFound
}

func (s *LeadStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	for i := range file.Leads {
		if file.Leads[i].ID == id {
			file.Leads = append(file.Leads[:i], file.Leads[i+1:]...)
			return s.save(file)
		}
	}
	return entity.ErrLeadNotFound
}
