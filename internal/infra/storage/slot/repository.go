package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const tableName = "time_slots"

var columns = []string{
	"id",
	"date",
	"start_time",
	"end_time",
	"is_available",
}

// Repository репозиторий слотов в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает слоты с фильтрацией по периоду
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": domain.DateOnly(*filter.From)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": domain.DateOnly(*filter.To)})
	}

	query, args, err := selectBuilder.OrderBy("date ASC, start_time ASC, id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// GetByID получает слот по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.TimeSlot, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSlotNotFound
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

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// Create сохраняет новый слот
func (r *Repository) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	stored := *slot
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.Date = domain.DateOnly(stored.Date)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(columns...).
		Values(stored.ID, stored.Date, stored.StartTime, stored.EndTime, stored.IsAvailable).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return &stored, nil
}

// Update применяет частичное обновление к слоту
func (r *Repository) Update(ctx context.Context, id string, patch domain.SlotPatch) (*domain.TimeSlot, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSlotNotFound
	}
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_available", *patch.IsAvailable).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// ReserveIfAvailable атомарно занимает слот: UPDATE ... WHERE is_available = true.
// Если строка не обновилась, отличаем "нет слота" от "слот занят".
func (r *Repository) ReserveIfAvailable(ctx context.Context, id string) (*domain.TimeSlot, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSlotNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_available", false).
		Where(squirrel.Eq{"id": id, "is_available": true}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReserveIfAvailable - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return slot, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: ReserveIfAvailable - scan slot: %w", ErrScanRow, err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrSlotNotAvailable
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	if err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsAvailable,
	); err != nil {
		return nil, err
	}
	slot.Date = domain.DateOnly(slot.Date)
	return &slot, nil
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}
