package featuresource

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrSourceNotOpen = errors.New("feature source is not open")
	ErrTableNotFound = errors.New("table not found")
)

// MemorySource keeps its tables in memory. it counts Open/Close calls so callers can check
// that every pass released the source.
type MemorySource struct {
	tables map[string][]Feature
	open   bool

	OpenCount  int
	CloseCount int
}

func NewMemorySource() *MemorySource {
	return &MemorySource{
		tables: make(map[string][]Feature),
	}
}

// AddFeatures appends features to table, keeping their order.
func (m *MemorySource) AddFeatures(table string, features ...Feature) {
	m.tables[table] = append(m.tables[table], features...)
}

func (m *MemorySource) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "open memory source")
	}
	m.open = true
	m.OpenCount++
	return nil
}

func (m *MemorySource) Features(ctx context.Context, table string, filter Filter) (Iterator, error) {
	if !m.open {
		return nil, ErrSourceNotOpen
	}
	features, ok := m.tables[table]
	if !ok {
		return nil, errors.Wrapf(ErrTableNotFound, "memory source table %q", table)
	}
	return newSliceIterator(ctx, features, filter), nil
}

func (m *MemorySource) Close() error {
	if m.open {
		m.CloseCount++
	}
	m.open = false
	return nil
}

// IsOpen. true between Open and Close.
func (m *MemorySource) IsOpen() bool {
	return m.open
}
