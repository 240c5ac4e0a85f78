package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schema"
	slotRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// storage хранилища и менеджер транзакций выбранного драйвера
type storage struct {
	slots        SlotStore
	appointments AppointmentStore
	txManager    TransactionManager
	close        func() error
}

func newMemoryStorage() *storage {
	return &storage{
		slots:        slotRepo.NewMemoryRepository(),
		appointments: appointmentRepo.NewMemoryRepository(),
		txManager:    simpletxmanager.NewTransactionManager(),
		close:        func() error { return nil },
	}
}

// newPostgresStorage подключается к PostgreSQL, применяет схему и оборачивает соединение метриками
func newPostgresStorage(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log Logger) (*storage, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(config.Duration(cfg.Database.ConnMaxLifetime))

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database %s: %w", cfg.Database.RedactedDSN(), err)
	}
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopCh := make(chan struct{})
	wrapped := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)

	if err := schema.Apply(ctx, wrapped); err != nil {
		close(stopCh)
		_ = db.Close()
		return nil, err
	}
	log.Info("Database schema applied")

	return &storage{
		slots:        slotRepo.NewRepository(wrapped),
		appointments: appointmentRepo.NewRepository(wrapped),
		txManager:    txmanager.NewTransactionManager(wrapped),
		close: func() error {
			close(stopCh)
			return db.Close()
		},
	}, nil
}
