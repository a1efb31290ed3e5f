package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/dcode-github/property_chatbot/backend/models"
)

// FileStore keeps listings in memory and mirrors them to a JSON array file.
type FileStore struct {
	path string

	mu         sync.RWMutex
	properties []models.Property
}

// OpenFileStore loads the listings at path. A missing or unreadable file
// yields an empty store; the file is only written on the first mutation.
func OpenFileStore(path string) *FileStore {
	s := &FileStore{path: path, properties: []models.Property{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Error reading properties file %s: %v", path, err)
		}
		return s
	}

	var loaded []models.Property
	if err := json.Unmarshal(data, &loaded); err != nil {
		log.Printf("Error parsing properties file %s, starting empty: %v", path, err)
		return s
	}
	if loaded != nil {
		s.properties = loaded
	}
	log.Printf("Loaded %d properties from %s", len(s.properties), path)
	return s
}

func (s *FileStore) List(ctx context.Context) ([]models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Property, len(s.properties))
	copy(out, s.properties)
	return out, nil
}

func (s *FileStore) Get(ctx context.Context, id int) (models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.properties {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Property{}, fmt.Errorf("property %d: %w", id, models.ErrNotFound)
}

func (s *FileStore) Add(ctx context.Context, p models.Property) (models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = nextID(s.properties)

	updated := make([]models.Property, len(s.properties), len(s.properties)+1)
	copy(updated, s.properties)
	updated = append(updated, p)

	if err := s.persist(updated); err != nil {
		return models.Property{}, err
	}
	s.properties = updated
	return p, nil
}

func (s *FileStore) Remove(ctx context.Context, id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Property, 0, len(s.properties))
	for _, p := range s.properties {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	removed := len(s.properties) - len(kept)

	if err := s.persist(kept); err != nil {
		return 0, err
	}
	s.properties = kept
	return removed, nil
}

// persist replaces the file with the given list via a temp file and rename,
// so readers never observe a half-written array.
func (s *FileStore) persist(properties []models.Property) error {
	data, err := json.MarshalIndent(properties, "", "    ")
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace properties file: %w", err)
	}
	return nil
}
