package simpletxmanager

import (
	"context"
	"sync"
)

type txKey struct{}

// TransactionManager транзакции для in-memory хранилища.
// Все функции, запущенные через менеджер, выполняются строго по очереди,
// поэтому последовательность "проверить и записать" над несколькими хранилищами атомарна.
// Отката нет: при частичной ошибке вызывающий код выполняет компенсирующее действие.
type TransactionManager struct {
	mu sync.Mutex
}

func NewTransactionManager() *TransactionManager {
	return &TransactionManager{}
}

func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.DoSerializable(ctx, fn)
}

func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.DoSerializable(ctx, fn)
}

// DoSerializable выполняет fn под общим мьютексом. Вложенные вызовы не блокируются повторно.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}
