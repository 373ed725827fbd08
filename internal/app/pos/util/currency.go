package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCurrency приводит валютную строку вида "$1,234.56" к числу.
// Убирает символ валюты, пробелы и разделители тысяч; отклоняет
// пустые и нечисловые значения
func ParseCurrency(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return 0, fmt.Errorf("empty currency value %q", value)
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed currency value %q", value)
	}

	if amount < 0 {
		return 0, fmt.Errorf("negative currency value %q", value)
	}

	return amount, nil
}
