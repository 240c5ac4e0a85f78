package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	// uniqueViolation код ошибки PostgreSQL 23505
	uniqueViolation = "23505"
)

var columns = []string{
	"id",
	"slot_id",
	"customer_name",
	"customer_email",
	"reason",
	"status",
	"booked_at",
}

// Repository репозиторий заявок в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все заявки в порядке создания
func (r *Repository) List(ctx context.Context) ([]*domain.Appointment, error) {
	return r.list(ctx, "List", nil)
}

// ListByStatus возвращает заявки с указанным статусом
func (r *Repository) ListByStatus(ctx context.Context, status domain.AppointmentStatus) ([]*domain.Appointment, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return r.list(ctx, "ListByStatus", squirrel.Eq{"status": status})
}

// ListBySlotID возвращает все заявки, ссылающиеся на слот
func (r *Repository) ListBySlotID(ctx context.Context, slotID string) ([]*domain.Appointment, error) {
	if _, err := uuid.Parse(slotID); err != nil {
		return []*domain.Appointment{}, nil
	}
	return r.list(ctx, "ListBySlotID", squirrel.Eq{"slot_id": slotID})
}

// GetByID получает заявку по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAppointmentNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// Create создает заявку со статусом pending; booked_at проставляет база
func (r *Repository) Create(ctx context.Context, data *domain.NewAppointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("id", "slot_id", "customer_name", "customer_email", "reason", "status").
		Values(uuid.NewString(), data.SlotID, data.CustomerName, data.CustomerEmail, data.Reason, domain.StatusPending).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return a, nil
}

// UpdateStatus обновляет статус заявки
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrAppointmentNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return a, nil
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(tableName)
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.OrderBy("booked_at ASC, id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := row.Scan(
		&a.ID,
		&a.SlotID,
		&a.CustomerName,
		&a.CustomerEmail,
		&a.Reason,
		&a.Status,
		&a.BookedAt,
	); err != nil {
		return nil, err
	}
	a.BookedAt = a.BookedAt.UTC()
	return &a, nil
}
