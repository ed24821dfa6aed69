package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"opslog-service/internal/db"
	"opslog-service/internal/models"

	"github.com/Masterminds/squirrel"
)

// ErrEmployeeNotFound возвращается, когда сотрудник с указанным Telegram ID не найден
var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeQueriesInterface определяет интерфейс для запросов к сотрудникам
type EmployeeQueriesInterface interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployeeByTelegramID(ctx context.Context, telegramID int64) (*models.Employee, error)
	CreateEmployee(ctx context.Context, telegramID int64, name string) (*models.Employee, error)
	UpdateEmployeeName(ctx context.Context, telegramID int64, name string) error
}

// EmployeeQueries содержит методы запросов для работы с сотрудниками
type EmployeeQueries struct {
	db *db.Database
	sq squirrel.StatementBuilderType
}

// NewEmployeeQueries создает новый экземпляр EmployeeQueries
func NewEmployeeQueries(db *db.Database) *EmployeeQueries {
	return &EmployeeQueries{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(db),
	}
}

// ListEmployees получает список всех сотрудников, отсортированный по имени
func (q *EmployeeQueries) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	query := q.sq.
		Select("id", "telegram_id", "COALESCE(name, '') AS name", "created_at").
		From("users").
		OrderBy("name")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var employees []models.Employee
	err = q.db.SelectContext(ctx, &employees, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// GetEmployeeByTelegramID получает сотрудника по его Telegram ID
func (q *EmployeeQueries) GetEmployeeByTelegramID(ctx context.Context, telegramID int64) (*models.Employee, error) {
	query := q.sq.
		Select("id", "telegram_id", "COALESCE(name, '') AS name", "created_at").
		From("users").
		Where(squirrel.Eq{"telegram_id": telegramID})

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var employee models.Employee
	err = q.db.QueryRowxContext(ctx, qsql, args...).StructScan(&employee)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return &employee, nil
}

// CreateEmployee создает нового сотрудника
func (q *EmployeeQueries) CreateEmployee(ctx context.Context, telegramID int64, name string) (*models.Employee, error) {
	now := time.Now()

	query := q.sq.
		Insert("users").
		Columns("telegram_id", "name", "created_at").
		Values(telegramID, name, now).
		Suffix("RETURNING id, telegram_id, name, created_at")

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var employee models.Employee
	err = q.db.QueryRowxContext(ctx, qsql, args...).StructScan(&employee)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return &employee, nil
}

// UpdateEmployeeName обновляет имя сотрудника по его Telegram ID
func (q *EmployeeQueries) UpdateEmployeeName(ctx context.Context, telegramID int64, name string) error {
	query := q.sq.
		Update("users").
		Set("name", name).
		Where(squirrel.Eq{"telegram_id": telegramID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := q.db.ExecContext(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	return nil
}
