package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
)

// Memory keeps aquariums in process. Listing follows insertion order.
type Memory struct {
	mu    sync.RWMutex
	items map[string]*entity.Aquarium
	order []string
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]*entity.Aquarium)}
}

func (m *Memory) GetAquarium(_ context.Context, id string) (*entity.Aquarium, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	aq, ok := m.items[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return aq.Clone(), nil
}

func (m *Memory) ListAquariums(_ context.Context, filter entity.AquariumListFilter) ([]entity.Aquarium, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	matched := lo.FilterMap(m.order, func(id string, _ int) (entity.Aquarium, bool) {
		aq := m.items[id]
		if filter.WaterType != "" && !strings.EqualFold(aq.WaterType(), filter.WaterType) {
			return entity.Aquarium{}, false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(aq.Name()), search) &&
			!strings.Contains(strings.ToLower(aq.Location()), search) {
			return entity.Aquarium{}, false
		}
		return *aq, true
	})

	total := int64(len(matched))
	offset := int(max(filter.Offset, 0))
	if offset >= len(matched) {
		return []entity.Aquarium{}, total, nil
	}
	matched = matched[offset:]
	if filter.Limit > 0 && int(filter.Limit) < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, total, nil
}

func (m *Memory) CreateAquarium(_ context.Context, in entity.Aquarium) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[in.ID()]; ok {
		return goerror.ErrConflict
	}
	m.items[in.ID()] = in.Clone()
	m.order = append(m.order, in.ID())
	return nil
}

func (m *Memory) UpdateAquarium(_ context.Context, in entity.Aquarium) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[in.ID()]; !ok {
		return goerror.ErrNotFound
	}
	m.items[in.ID()] = in.Clone()
	return nil
}

func (m *Memory) DeleteAquarium(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(m.items, id)
	m.order = lo.Without(m.order, id)
	return nil
}
