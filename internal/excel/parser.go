// Package excel разбирает выгрузки журнала операций из .xlsx файлов.
// Формат фиксированный: первая строка — заголовок, данные со второй строки,
// колонки B..G — Telegram ID, дата, накладная, короб, артикул, количество.
package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Индексы колонок в строке листа (A = 0)
const (
	colTelegramID = 1
	colDate       = 2
	colWaybill    = 3
	colBox        = 4
	colArticle    = 5
	colQuantity   = 6
)

// Текстовые форматы дат, встречающиеся в выгрузках
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"02.01.2006",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"01-02-06",
}

// Row представляет одну разобранную строку выгрузки
type Row struct {
	TelegramID int64
	Date       time.Time
	Waybill    string
	Box        string
	Article    string
	Quantity   int
}

// ReadFile открывает .xlsx файл и возвращает разобранные строки данных
func ReadFile(path string) ([]Row, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return ParseRows(rows)
}

// ParseRows разбирает строки листа, пропуская строку заголовка.
// Ошибка в любой строке прерывает разбор целиком.
func ParseRows(rows [][]string) ([]Row, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}

	parsed := make([]Row, 0, len(rows)-1)

	for i, row := range rows[1:] {
		r, err := parseRow(row)
		if err != nil {
			// Нумерация строк как в Excel: заголовок — строка 1
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		parsed = append(parsed, r)
	}

	return parsed, nil
}

func parseRow(row []string) (Row, error) {
	telegramID, err := strconv.ParseInt(cellValue(row, colTelegramID), 10, 64)
	if err != nil {
		return Row{}, fmt.Errorf("invalid telegram id: %w", err)
	}

	date, err := parseDate(cellValue(row, colDate))
	if err != nil {
		return Row{}, err
	}

	quantity, err := strconv.Atoi(cellValue(row, colQuantity))
	if err != nil {
		return Row{}, fmt.Errorf("invalid quantity: %w", err)
	}

	return Row{
		TelegramID: telegramID,
		Date:       date,
		Waybill:    cellValue(row, colWaybill),
		Box:        cellValue(row, colBox),
		Article:    cellValue(row, colArticle),
		Quantity:   quantity,
	}, nil
}

// cellValue возвращает значение ячейки без пробелов; за пределами строки — ""
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDate разбирает ячейку даты: числовой сериал Excel либо текстовый формат
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		parsed, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return parsed, nil
		}
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}
