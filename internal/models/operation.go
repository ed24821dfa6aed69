package models

import (
	"database/sql"
	"time"
)

// Блоки (категории) операций
const (
	BlockReceiving = "Приемка"
	BlockPacking   = "Упаковка"
	BlockPicking   = "Комплектовка"
)

// BlockChoices возвращает список блоков для выпадающих списков
func BlockChoices() []string {
	return []string{BlockReceiving, BlockPacking, BlockPicking}
}

// ValidBlock проверяет, что блок входит в перечисление
func ValidBlock(block string) bool {
	switch block {
	case BlockReceiving, BlockPacking, BlockPicking:
		return true
	}
	return false
}

// Operation представляет запись об операции в журнале
type Operation struct {
	ID        int64         `db:"id"`
	UserID    sql.NullInt64 `db:"user_id"` // Telegram ID сотрудника, NULL после удаления сотрудника
	Block     string        `db:"block"`
	Waybill   string        `db:"waybill"`
	Box       string        `db:"box"`
	Article   string        `db:"article"`
	Quantity  int           `db:"quantity"`
	CreatedAt time.Time     `db:"created_at"`
}

// OperationFilter представляет критерии фильтрации журнала операций.
// Незаполненные поля не участвуют в фильтре, заполненные объединяются по AND.
type OperationFilter struct {
	TelegramID *int64
	Block      string
	DateFrom   *time.Time
	DateTo     *time.Time
}
