package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"opslog-service/internal/db"
)

// setupEmployeeQueriesTest настраивает тестовое окружение для тестирования EmployeeQueries
func setupEmployeeQueriesTest(t *testing.T) (*EmployeeQueries, sqlmock.Sqlmock) {
	// Создаем новую мок-базу данных
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Ошибка при создании mock-базы данных: %v", err)
	}

	// Оборачиваем в sqlx
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")

	// Создаем экземпляр Database с моком
	dbInstance := &db.Database{DB: sqlxDB}

	q := &EmployeeQueries{
		db: dbInstance,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}

	return q, mock
}

func TestListEmployees(t *testing.T) {
	q, mock := setupEmployeeQueriesTest(t)
	ctx := context.Background()

	createdAt := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	expectedSQL := `SELECT id, telegram_id, COALESCE\(name, ''\) AS name, created_at FROM users ORDER BY name`
	rows := sqlmock.NewRows([]string{"id", "telegram_id", "name", "created_at"}).
		AddRow(1, int64(123456789), "Иванов И.", createdAt).
		AddRow(2, int64(987654321), "", createdAt)
	mock.ExpectQuery(expectedSQL).WillReturnRows(rows)

	employees, err := q.ListEmployees(ctx)

	assert.NoError(t, err, "ListEmployees должен выполняться без ошибок")
	assert.Len(t, employees, 2, "Должно быть два сотрудника")
	assert.Equal(t, int64(123456789), employees[0].TelegramID)
	assert.Equal(t, "Иванов И.", employees[0].DisplayName())
	// Сотрудник без имени показывается по Telegram ID
	assert.Equal(t, "987654321", employees[1].DisplayName())

	assert.NoError(t, mock.ExpectationsWereMet(), "Не все ожидаемые запросы были выполнены")
}

func TestGetEmployeeByTelegramID(t *testing.T) {
	q, mock := setupEmployeeQueriesTest(t)
	ctx := context.Background()

	expectedSQL := `SELECT id, telegram_id, COALESCE\(name, ''\) AS name, created_at FROM users WHERE telegram_id = \$1`

	t.Run("Сотрудник найден", func(t *testing.T) {
		createdAt := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{"id", "telegram_id", "name", "created_at"}).
			AddRow(1, int64(123456789), "Иванов И.", createdAt)
		mock.ExpectQuery(expectedSQL).WithArgs(int64(123456789)).WillReturnRows(rows)

		employee, err := q.GetEmployeeByTelegramID(ctx, 123456789)

		assert.NoError(t, err)
		assert.Equal(t, int64(123456789), employee.TelegramID)
		assert.Equal(t, "Иванов И.", employee.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Сотрудник не найден", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "telegram_id", "name", "created_at"})
		mock.ExpectQuery(expectedSQL).WithArgs(int64(42)).WillReturnRows(rows)

		employee, err := q.GetEmployeeByTelegramID(ctx, 42)

		assert.Nil(t, employee)
		assert.ErrorIs(t, err, ErrEmployeeNotFound, "Отсутствующий сотрудник должен давать ErrEmployeeNotFound")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateEmployee(t *testing.T) {
	q, mock := setupEmployeeQueriesTest(t)
	ctx := context.Background()

	createdAt := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	expectedSQL := `INSERT INTO users \(telegram_id,name,created_at\) VALUES \(\$1,\$2,\$3\) RETURNING id, telegram_id, name, created_at`
	rows := sqlmock.NewRows([]string{"id", "telegram_id", "name", "created_at"}).
		AddRow(7, int64(123456789), "Иванов И.", createdAt)
	mock.ExpectQuery(expectedSQL).
		WithArgs(int64(123456789), "Иванов И.", sqlmock.AnyArg()).
		WillReturnRows(rows)

	employee, err := q.CreateEmployee(ctx, 123456789, "Иванов И.")

	assert.NoError(t, err, "CreateEmployee должен выполняться без ошибок")
	assert.Equal(t, int64(7), employee.ID)
	assert.Equal(t, int64(123456789), employee.TelegramID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmployeeName(t *testing.T) {
	q, mock := setupEmployeeQueriesTest(t)
	ctx := context.Background()

	expectedSQL := `UPDATE users SET name = \$1 WHERE telegram_id = \$2`

	t.Run("Имя обновлено", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).
			WithArgs("Петров П.", int64(123456789)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := q.UpdateEmployeeName(ctx, 123456789, "Петров П.")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Сотрудник не найден", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).
			WithArgs("Петров П.", int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := q.UpdateEmployeeName(ctx, 42, "Петров П.")

		assert.ErrorIs(t, err, ErrEmployeeNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).
			WithArgs("Петров П.", int64(123456789)).
			WillReturnError(errors.New("connection lost"))

		err := q.UpdateEmployeeName(ctx, 123456789, "Петров П.")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmployeeNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
