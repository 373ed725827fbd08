package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"papeleria/internal/app/pos/entity"
	"papeleria/internal/app/pos/repository"
	"papeleria/internal/app/pos/util"
	"papeleria/pkg/logger"
	"papeleria/pkg/metrics"

	"github.com/google/uuid"
)

// SaleService обрабатывает бизнес-логику продаж
// Координирует транзакцию чекаута, восстановление остатков при отмене
// и best-effort уведомления об обнулении stock
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	notifier    util.StockNotifier
	publisher   util.MessagePublisher
}

// NewSaleService создает новый сервис продаж с внедрением зависимостей
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	notifier util.StockNotifier,
	publisher util.MessagePublisher,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		notifier:    notifier,
		publisher:   publisher,
	}
}

// Checkout обрабатывает корзину как одну all-or-nothing транзакцию
// Либо все позиции записаны и stock списан полностью, либо ничего не меняется
func (s *SaleService) Checkout(ctx context.Context, req *entity.CheckoutRequest) (*entity.Sale, error) {
	if len(req.Cart) == 0 {
		metrics.SalesProcessed.WithLabelValues("rejected").Inc()
		return nil, ErrEmptyCart
	}

	cart := make(map[uuid.UUID]int, len(req.Cart))
	for idStr, item := range req.Cart {
		id, err := uuid.Parse(idStr)
		if err != nil {
			metrics.SalesProcessed.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, idStr)
		}
		if item.Cantidad <= 0 {
			metrics.SalesProcessed.WithLabelValues("rejected").Inc()
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, idStr)
		}
		cart[id] = item.Cantidad
	}

	sale, depleted, err := s.saleRepo.ProcessSale(ctx, cart)
	if err != nil {
		metrics.SalesProcessed.WithLabelValues("rejected").Inc()
		if errors.Is(err, repository.ErrInsufficientStock) || errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to process sale: %w", err)
	}

	metrics.SalesProcessed.WithLabelValues("success").Inc()
	metrics.SaleAmount.Observe(sale.Total)

	// Уведомления после коммита: их ошибки не могут отменить продажу
	for _, product := range depleted {
		s.notifyStockDepleted(ctx, product)
	}

	return sale, nil
}

// ReverseSale отменяет продажу: возвращает количества позиций на склад
// и удаляет продажу вместе с позициями. Точная инверсия чекаута
func (s *SaleService) ReverseSale(ctx context.Context, id uuid.UUID) error {
	if err := s.saleRepo.DeleteWithStockRestore(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("failed to reverse sale: %w", err)
	}

	metrics.SalesReversed.Inc()

	return nil
}

// GetActiveProducts возвращает активные товары для страницы кассы
func (s *SaleService) GetActiveProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetAll(ctx, repository.ProductFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get active products: %w", err)
	}

	return products, nil
}

// notifyStockDepleted отправляет уведомления об обнулении остатка:
// письмо администратору и событие STOCK_DEPLETED в Kafka. Оба best-effort
func (s *SaleService) notifyStockDepleted(ctx context.Context, product entity.Product) {
	metrics.StockDepletions.Inc()

	if err := s.notifier.NotifyStockDepleted(ctx, product.Name); err != nil {
		logger.Error().
			Err(err).
			Str("product", product.Name).
			Msg("failed to send stock depletion notification")
	}

	event := entity.StockEvent{
		EventType:   "STOCK_DEPLETED",
		ProductID:   product.ID,
		ProductName: product.Name,
		Timestamp:   time.Now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal stock event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, product.ID.String(), eventData); err != nil {
		logger.Error().
			Err(err).
			Str("product", product.Name).
			Msg("failed to publish stock event")
	}
}
