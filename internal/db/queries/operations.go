package queries

import (
	"context"
	"fmt"
	"time"

	"opslog-service/internal/db"
	"opslog-service/internal/models"

	"github.com/Masterminds/squirrel"
)

// OperationQueriesInterface определяет интерфейс для запросов к журналу операций
type OperationQueriesInterface interface {
	CreateOperation(ctx context.Context, op models.Operation) (*models.Operation, error)
	ListOperations(ctx context.Context, filter models.OperationFilter) ([]models.Operation, error)
	SumQuantityForDay(ctx context.Context, telegramID int64, year int, month int, day int) (int, error)
	OperationExists(ctx context.Context, telegramID int64, waybill, box, article string, quantity int, createdAt time.Time) (bool, error)
}

// OperationQueries содержит методы запросов для работы с журналом операций
type OperationQueries struct {
	db *db.Database
	sq squirrel.StatementBuilderType
}

// NewOperationQueries создает новый экземпляр OperationQueries
func NewOperationQueries(db *db.Database) *OperationQueries {
	return &OperationQueries{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(db),
	}
}

// CreateOperation добавляет запись в журнал операций.
// Если CreatedAt не задан, используется текущее время сервера;
// импорт из Excel передает исходную дату события.
func (q *OperationQueries) CreateOperation(ctx context.Context, op models.Operation) (*models.Operation, error) {
	createdAt := op.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := q.sq.
		Insert("operations_log").
		Columns("user_id", "block", "waybill", "box", "article", "quantity", "created_at").
		Values(op.UserID, op.Block, op.Waybill, op.Box, op.Article, op.Quantity, createdAt).
		Suffix("RETURNING id, user_id, block, waybill, box, article, quantity, created_at")

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var created models.Operation
	err = q.db.QueryRowxContext(ctx, qsql, args...).StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation: %w", err)
	}

	return &created, nil
}

// ListOperations получает записи журнала по фильтру, новые записи первыми.
// Пустой фильтр возвращает все записи.
func (q *OperationQueries) ListOperations(ctx context.Context, filter models.OperationFilter) ([]models.Operation, error) {
	queryBuilder := q.sq.
		Select("id", "user_id", "block", "waybill", "box", "article", "quantity", "created_at").
		From("operations_log")

	if filter.TelegramID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"user_id": *filter.TelegramID})
	}

	if filter.Block != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"block": filter.Block})
	}

	if filter.DateFrom != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"created_at": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"created_at": *filter.DateTo})
	}

	queryBuilder = queryBuilder.OrderBy("created_at DESC")

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var operations []models.Operation
	err = q.db.SelectContext(ctx, &operations, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	return operations, nil
}

// SumQuantityForDay считает суммарное количество по сотруднику за конкретный день.
// Если записей нет, возвращает 0.
func (q *OperationQueries) SumQuantityForDay(ctx context.Context, telegramID int64, year int, month int, day int) (int, error) {
	query := q.sq.
		Select("COALESCE(SUM(quantity), 0)").
		From("operations_log").
		Where(squirrel.Eq{"user_id": telegramID}).
		Where(squirrel.Expr("EXTRACT(YEAR FROM created_at) = ?", year)).
		Where(squirrel.Expr("EXTRACT(MONTH FROM created_at) = ?", month)).
		Where(squirrel.Expr("EXTRACT(DAY FROM created_at) = ?", day))

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var total int
	err = q.db.QueryRowContext(ctx, sql, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum quantity: %w", err)
	}

	return total, nil
}

// OperationExists проверяет, есть ли уже запись с теми же полями и датой.
// Используется импортом из Excel как ключ дедупликации.
func (q *OperationQueries) OperationExists(ctx context.Context, telegramID int64, waybill, box, article string, quantity int, createdAt time.Time) (bool, error) {
	query := q.sq.
		Select("COUNT(*)").
		From("operations_log").
		Where(squirrel.Eq{
			"user_id":    telegramID,
			"waybill":    waybill,
			"box":        box,
			"article":    article,
			"quantity":   quantity,
			"created_at": createdAt,
		})

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	err = q.db.QueryRowContext(ctx, sql, args...).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check operation existence: %w", err)
	}

	return count > 0, nil
}
