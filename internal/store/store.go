// Package store holds the loaded dataset and the current filtered view.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sheet-filter/internal/codec"
	"sheet-filter/internal/logger"
	"sheet-filter/internal/model"
	"sheet-filter/internal/source"
)

var (
	// ErrDecode wraps any failure to turn a buffer into a dataset
	ErrDecode = errors.New("decode failed")
	// ErrEmptyDataset is returned when data is required but none is loaded
	ErrEmptyDataset = errors.New("no data loaded")
)

// Store owns the Dataset/View pair. Both are replaced wholesale, never
// mutated in place, so readers may keep slices they were handed.
type Store struct {
	mu      sync.RWMutex
	opts    codec.Options
	name    string
	dataset model.Dataset
	view    model.View
}

// New creates an empty Store decoding with opts
func New(opts codec.Options) *Store {
	return &Store{opts: opts}
}

// Load decodes raw and, on success, replaces the dataset and resets the
// view to the full dataset. name is used to detect the format.
// On failure the store keeps its previous state.
func (s *Store) Load(name string, raw []byte) (model.Dataset, error) {
	format := codec.DetectFormat(name, raw)
	ds, err := codec.Decode(raw, format, s.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
	}

	s.mu.Lock()
	s.name = name
	s.dataset = ds
	s.view = model.View(ds)
	s.mu.Unlock()

	logger.Debug("Loaded %d rows from %s (%s)", len(ds), name, format)
	return ds, nil
}

// LoadFrom fetches src and loads the result
func (s *Store) LoadFrom(ctx context.Context, src source.Source) (model.Dataset, error) {
	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.Load(src.Name(), raw)
}

// Current returns the most recently loaded dataset, nil before any load
func (s *Store) Current() model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// RequireCurrent is Current for callers that need rows to work with
func (s *Store) RequireCurrent() (model.Dataset, error) {
	ds := s.Current()
	if len(ds) == 0 {
		return nil, ErrEmptyDataset
	}
	return ds, nil
}

// View returns the current filtered view
func (s *Store) View() model.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView replaces the current filtered view
func (s *Store) SetView(v model.View) {
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
}

// Name returns the name of the loaded source
func (s *Store) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Loaded reports whether a load has succeeded
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset != nil
}
