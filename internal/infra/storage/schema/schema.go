package schema

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

//go:embed schema.sql
var ddl string

// ErrApplySchema возвращается, когда не удалось применить схему
var ErrApplySchema = errors.New("schema: failed to apply")

// DDL возвращает SQL-схему хранилища
func DDL() string {
	return ddl
}

// Apply создает типы, таблицы и индексы, если их еще нет.
// Повторный вызов безопасен.
func Apply(ctx context.Context, db dbmetrics.DBExecutor) error {
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: %v", ErrApplySchema, err)
	}
	return nil
}
