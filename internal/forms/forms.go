// Package forms содержит схемы форм приложения.
// Каждая форма разбирается из POST-запроса и проверяется методом Validate,
// который возвращает типизированные значения и карту ошибок по полям;
// пустая карта означает, что форма корректна.
package forms

import (
	"strconv"
	"strings"
	"time"

	"opslog-service/internal/models"
)

// Формат дат в формах фильтра
const dateLayout = "2006-01-02"

// OperationForm представляет форму новой записи журнала
type OperationForm struct {
	TelegramID string `form:"telegram_id"`
	Block      string `form:"block"`
	Waybill    string `form:"waybill"`
	Box        string `form:"box"`
	Article    string `form:"article"`
	Quantity   string `form:"quantity"`
}

// OperationInput содержит проверенные значения формы новой записи
type OperationInput struct {
	TelegramID int64
	Block      string
	Waybill    string
	Box        string
	Article    string
	Quantity   int
}

// Validate проверяет форму; сотрудник должен входить в текущий список
func (f *OperationForm) Validate(employees []models.Employee) (*OperationInput, map[string]string) {
	errs := make(map[string]string)

	telegramID, err := strconv.ParseInt(strings.TrimSpace(f.TelegramID), 10, 64)
	if err != nil {
		errs["telegram_id"] = "Выберите сотрудника"
	} else {
		found := false
		for _, e := range employees {
			if e.TelegramID == telegramID {
				found = true
				break
			}
		}
		if !found {
			errs["telegram_id"] = "Сотрудник не найден в списке"
		}
	}

	if !models.ValidBlock(f.Block) {
		errs["block"] = "Выберите блок"
	}

	waybill := strings.TrimSpace(f.Waybill)
	if waybill == "" {
		errs["waybill"] = "Укажите номер накладной"
	}

	box := strings.TrimSpace(f.Box)
	if box == "" {
		errs["box"] = "Укажите номер короба"
	}

	article := strings.TrimSpace(f.Article)
	if article == "" {
		errs["article"] = "Укажите артикул"
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(f.Quantity))
	if err != nil {
		errs["quantity"] = "Количество должно быть целым числом"
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &OperationInput{
		TelegramID: telegramID,
		Block:      f.Block,
		Waybill:    waybill,
		Box:        box,
		Article:    article,
		Quantity:   quantity,
	}, nil
}

// FilterForm представляет форму фильтра журнала; все поля необязательные
type FilterForm struct {
	TelegramID string `form:"telegram_id"`
	Block      string `form:"block"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
}

// Validate проверяет форму фильтра и собирает критерии запроса.
// Пустая строка в поле блока означает "все блоки".
func (f *FilterForm) Validate() (*models.OperationFilter, map[string]string) {
	errs := make(map[string]string)
	filter := &models.OperationFilter{}

	if s := strings.TrimSpace(f.TelegramID); s != "" {
		telegramID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			errs["telegram_id"] = "ID сотрудника должен быть числом"
		} else {
			filter.TelegramID = &telegramID
		}
	}

	if f.Block != "" {
		if !models.ValidBlock(f.Block) {
			errs["block"] = "Неизвестный блок"
		} else {
			filter.Block = f.Block
		}
	}

	if s := strings.TrimSpace(f.DateFrom); s != "" {
		from, err := time.Parse(dateLayout, s)
		if err != nil {
			errs["date_from"] = "Дата должна быть в формате ГГГГ-ММ-ДД"
		} else {
			filter.DateFrom = &from
		}
	}

	if s := strings.TrimSpace(f.DateTo); s != "" {
		to, err := time.Parse(dateLayout, s)
		if err != nil {
			errs["date_to"] = "Дата должна быть в формате ГГГГ-ММ-ДД"
		} else {
			filter.DateTo = &to
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return filter, nil
}

// EmployeeForm представляет форму создания/редактирования сотрудника
type EmployeeForm struct {
	TelegramID string `form:"telegram_id"`
	Name       string `form:"name"`
}

// EmployeeInput содержит проверенные значения формы сотрудника
type EmployeeInput struct {
	TelegramID int64
	Name       string
}

// Validate проверяет форму сотрудника
func (f *EmployeeForm) Validate() (*EmployeeInput, map[string]string) {
	errs := make(map[string]string)

	telegramID, err := strconv.ParseInt(strings.TrimSpace(f.TelegramID), 10, 64)
	if err != nil {
		errs["telegram_id"] = "Telegram ID должен быть числом"
	}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		errs["name"] = "Укажите имя"
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &EmployeeInput{TelegramID: telegramID, Name: name}, nil
}

// ImportForm представляет форму импорта из Excel
type ImportForm struct {
	Block string `form:"block"`
}

// ImportInput содержит проверенные значения формы импорта
type ImportInput struct {
	Block string
}

// Validate проверяет блок и расширение загружаемого файла
func (f *ImportForm) Validate(filename string) (*ImportInput, map[string]string) {
	errs := make(map[string]string)

	if !models.ValidBlock(f.Block) {
		errs["block"] = "Выберите блок"
	}

	if filename == "" {
		errs["file"] = "Выберите файл"
	} else if !strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		errs["file"] = "Поддерживаются только файлы .xlsx"
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &ImportInput{Block: f.Block}, nil
}
