package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// MemoryRepository хранилище заявок в памяти процесса.
// Порядок выдачи совпадает с порядком создания.
type MemoryRepository struct {
	mu           sync.RWMutex
	appointments map[string]domain.Appointment
	order        []string
	now          func() time.Time
}

// NewMemoryRepository создает пустое хранилище заявок
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		appointments: make(map[string]domain.Appointment),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// List возвращает все заявки
func (r *MemoryRepository) List(ctx context.Context) ([]*domain.Appointment, error) {
	return r.filter(func(*domain.Appointment) bool { return true }), nil
}

// ListByStatus возвращает заявки с указанным статусом
func (r *MemoryRepository) ListByStatus(ctx context.Context, status domain.AppointmentStatus) ([]*domain.Appointment, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return r.filter(func(a *domain.Appointment) bool { return a.Status == status }), nil
}

// ListBySlotID возвращает все заявки, ссылающиеся на слот
func (r *MemoryRepository) ListBySlotID(ctx context.Context, slotID string) ([]*domain.Appointment, error) {
	return r.filter(func(a *domain.Appointment) bool { return a.SlotID == slotID }), nil
}

// GetByID получает заявку по ID
func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

// Create создает заявку со статусом pending и текущим временем bookedAt
func (r *MemoryRepository) Create(ctx context.Context, data *domain.NewAppointment) (*domain.Appointment, error) {
	a := domain.Appointment{
		ID:            uuid.NewString(),
		SlotID:        data.SlotID,
		CustomerName:  data.CustomerName,
		CustomerEmail: data.CustomerEmail,
		Reason:        data.Reason,
		Status:        domain.StatusPending,
		BookedAt:      r.now(),
	}

	r.mu.Lock()
	r.appointments[a.ID] = a
	r.order = append(r.order, a.ID)
	r.mu.Unlock()

	return &a, nil
}

// UpdateStatus заменяет запись заявки копией с новым статусом
func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}

	a.Status = status
	r.appointments[id] = a
	return &a, nil
}

func (r *MemoryRepository) filter(keep func(*domain.Appointment) bool) []*domain.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Appointment, 0, len(r.order))
	for _, id := range r.order {
		a := r.appointments[id]
		if keep(&a) {
			result = append(result, &a)
		}
	}
	return result
}
