package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/service"
)

var (
	ErrOpeningNotFound = errors.New("opening not found")
	ErrInvalidOpening  = errors.New("invalid opening")
)

// Placeholder names used to validate an opening before real players are
// seated.
const (
	placeholderFirst  = "joueur1"
	placeholderSecond = "joueur2"
)

// Manager handles opening loading and caching. It implements
// service.OpeningStore.
type Manager struct {
	openingDir     string
	defaultOpening *service.Opening
	openings       map[string]*service.Opening
	mu             sync.RWMutex
}

// NewManager creates a new opening manager reading from openingDir. An
// empty openingDir gives a manager that only knows the canonical opening.
func NewManager(openingDir string) (*Manager, error) {
	if openingDir == "" {
		return &Manager{
			openings:       make(map[string]*service.Opening),
			defaultOpening: createMinimalOpening(),
		}, nil
	}
	if _, err := os.Stat(openingDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("opening directory does not exist: %s", openingDir)
	}

	m := &Manager{
		openingDir: openingDir,
		openings:   make(map[string]*service.Opening),
	}
	m.defaultOpening = m.loadDefaultOpening()
	return m, nil
}

// LoadOpening loads an opening by name
func (m *Manager) LoadOpening(name string) (*service.Opening, error) {
	name = strings.TrimSuffix(name, ".json")

	m.mu.RLock()
	if o, exists := m.openings[name]; exists {
		m.mu.RUnlock()
		return o, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if o, exists := m.openings[name]; exists {
		return o, nil
	}

	if m.openingDir == "" || strings.ContainsAny(name, `/\`) || name == "" || name == "." || name == ".." {
		return nil, ErrOpeningNotFound
	}

	data, err := os.ReadFile(filepath.Join(m.openingDir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrOpeningNotFound
		}
		return nil, fmt.Errorf("failed to read opening file: %w", err)
	}

	var o service.Opening
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOpening, err)
	}
	if err := ValidateOpening(&o); err != nil {
		return nil, err
	}
	if o.Name == "" {
		o.Name = name
	}

	m.openings[name] = &o
	return &o, nil
}

// ListOpenings returns information about all available openings
func (m *Manager) ListOpenings() ([]*service.OpeningInfo, error) {
	if m.openingDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(m.openingDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read opening directory: %w", err)
	}

	var openings []*service.OpeningInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		o, err := m.LoadOpening(name)
		if err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping opening")
			continue
		}

		openings = append(openings, &service.OpeningInfo{
			Filename:    entry.Name(),
			OpeningID:   name,
			Name:        o.Name,
			Description: o.Description,
			WallsPlaced: o.State.Walls.Count(),
		})
	}

	return openings, nil
}

// GetDefault returns the default opening
func (m *Manager) GetDefault() *service.Opening {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultOpening
}

// SetDefault sets the default opening by name
func (m *Manager) SetDefault(name string) error {
	o, err := m.LoadOpening(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultOpening = o
	return nil
}

// SaveOpening validates an opening and writes it to disk
func (m *Manager) SaveOpening(name string, o *service.Opening) error {
	if err := ValidateOpening(o); err != nil {
		return err
	}

	if m.openingDir == "" {
		return fmt.Errorf("no opening directory to save %s in", name)
	}
	name = strings.TrimSuffix(name, ".json")
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal opening: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.openingDir, name+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write opening file: %w", err)
	}

	m.mu.Lock()
	m.openings[name] = o
	m.mu.Unlock()

	return nil
}

// ValidateOpening checks that an opening's position could have been reached
// in play, whatever names its file uses.
func ValidateOpening(o *service.Opening) error {
	if err := engine.ValidateState(o.StateFor(placeholderFirst, placeholderSecond)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOpening, err)
	}
	return nil
}

// loadDefaultOpening picks classic.json, then the first valid opening, then
// the canonical opening.
func (m *Manager) loadDefaultOpening() *service.Opening {
	if o, err := m.LoadOpening("classic"); err == nil {
		return o
	}

	openings, err := m.ListOpenings()
	if err == nil && len(openings) > 0 {
		if o, err := m.LoadOpening(openings[0].OpeningID); err == nil {
			return o
		}
	}

	return createMinimalOpening()
}

func createMinimalOpening() *service.Opening {
	return &service.Opening{
		Name:        "default",
		Description: "Standard opening",
		State:       engine.NewState(placeholderFirst, placeholderSecond),
	}
}
