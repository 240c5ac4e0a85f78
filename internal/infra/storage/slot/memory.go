package slot

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// MemoryRepository хранилище слотов в памяти процесса.
// Наружу отдаются только копии, поэтому вызывающий код не может изменить хранимые записи.
type MemoryRepository struct {
	mu    sync.RWMutex
	slots map[string]domain.TimeSlot
}

// NewMemoryRepository создает пустое хранилище слотов
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		slots: make(map[string]domain.TimeSlot),
	}
}

// List возвращает слоты, отсортированные по дате и времени начала
func (r *MemoryRepository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.TimeSlot, 0, len(r.slots))
	for _, s := range r.slots {
		slot := s
		if !filter.Matches(&slot) {
			continue
		}
		result = append(result, &slot)
	}

	sortSlots(result)
	return result, nil
}

// GetByID получает слот по ID
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slot, ok := r.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return &slot, nil
}

// Create сохраняет слот. Если ID не задан, генерируется UUID.
func (r *MemoryRepository) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	stored := *slot
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Date = domain.DateOnly(stored.Date)

	r.mu.Lock()
	r.slots[stored.ID] = stored
	r.mu.Unlock()

	return &stored, nil
}

// Update применяет частичное обновление к слоту
func (r *MemoryRepository) Update(ctx context.Context, id string, patch domain.SlotPatch) (*domain.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}

	updated := patch.Apply(slot)
	r.slots[id] = updated
	return &updated, nil
}

// ReserveIfAvailable атомарно переводит isAvailable из true в false
func (r *MemoryRepository) ReserveIfAvailable(ctx context.Context, id string) (*domain.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	if !slot.IsAvailable {
		return nil, ErrSlotNotAvailable
	}

	slot.IsAvailable = false
	r.slots[id] = slot
	return &slot, nil
}

func sortSlots(slots []*domain.TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime.IsBefore(slots[j].StartTime)
		}
		return slots[i].ID < slots[j].ID
	})
}
