package models

import (
	"strconv"
	"time"
)

// Employee представляет сотрудника склада
type Employee struct {
	ID         int64     `db:"id"`
	TelegramID int64     `db:"telegram_id"`
	Name       string    `db:"name"`
	CreatedAt  time.Time `db:"created_at"`
}

// DisplayName возвращает имя сотрудника, либо Telegram ID, если имя не задано
func (e Employee) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return strconv.FormatInt(e.TelegramID, 10)
}
