package util

import (
	"context"
	"time"

	"papeleria/internal/app/pos/entity"
)

// CategoryCache интерфейс для кеша списка категорий
// Используется для dependency injection и упрощения тестирования
type CategoryCache interface {
	SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error
	GetCategories(ctx context.Context) ([]entity.Category, error)
	DeleteCategories(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// StockNotifier интерфейс для уведомлений об обнулении остатка товара
// Уведомление best-effort: ошибка не должна прерывать продажу
type StockNotifier interface {
	NotifyStockDepleted(ctx context.Context, productName string) error
}
