package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"papeleria/internal/app/pos/entity"
	"papeleria/internal/app/pos/repository"
	"papeleria/internal/app/pos/util"
	"papeleria/pkg/metrics"
)

// DefaultImportCategory - категория, назначаемая товарам из CSV импорта
// Создаётся автоматически при первом импорте
const DefaultImportCategory = "Papelería"

var requiredColumns = []string{"Product", "Quantity", "Cost Unit Price", "Sale Unit Price"}

// ImportService обрабатывает массовый CSV импорт товаров
// Весь батч применяется одной транзакцией: ошибка любой строки
// откатывает импорт целиком
type ImportService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewImportService создает новый сервис импорта
func NewImportService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ImportService {
	return &ImportService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ImportCSV разбирает загруженный CSV и выполняет upsert товаров по имени
// Возвращает количество применённых строк
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	rows, err := s.parseRows(r)
	if err != nil {
		metrics.ImportRows.WithLabelValues("failed").Inc()
		return 0, err
	}

	category, err := s.categoryRepo.GetOrCreateByName(ctx, DefaultImportCategory)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve import category: %w", err)
	}

	if err := s.productRepo.BulkUpsert(ctx, rows, category.ID); err != nil {
		metrics.ImportRows.WithLabelValues("failed").Add(float64(len(rows)))
		return 0, fmt.Errorf("failed to import products: %w", err)
	}

	metrics.ImportRows.WithLabelValues("upserted").Add(float64(len(rows)))

	return len(rows), nil
}

// parseRows читает заголовок и строки CSV
// Отсутствие обязательной колонки фатально для всего батча
func (s *ImportService) parseRows(r io.Reader) ([]entity.ImportRow, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, required)
		}
	}

	var rows []entity.ImportRow
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRow, line, err)
		}

		row, err := parseRow(record, columns)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRow, line, err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// parseRow разбирает одну строку CSV в ImportRow
func parseRow(record []string, columns map[string]int) (entity.ImportRow, error) {
	var row entity.ImportRow

	name := strings.TrimSpace(record[columns["Product"]])
	if name == "" {
		return row, fmt.Errorf("empty product name")
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[columns["Quantity"]]))
	if err != nil {
		return row, fmt.Errorf("invalid quantity %q", record[columns["Quantity"]])
	}
	if quantity < 0 {
		return row, fmt.Errorf("negative quantity %d", quantity)
	}

	costPrice, err := util.ParseCurrency(record[columns["Cost Unit Price"]])
	if err != nil {
		return row, err
	}

	salePrice, err := util.ParseCurrency(record[columns["Sale Unit Price"]])
	if err != nil {
		return row, err
	}

	row = entity.ImportRow{
		Name:      name,
		Quantity:  quantity,
		CostPrice: costPrice,
		SalePrice: salePrice,
	}

	return row, nil
}
