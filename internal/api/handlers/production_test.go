package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"opslog-service/internal/models"
)

// setupProductionTest настраивает роутер с обработчиком выработки
func setupProductionTest() (*gin.Engine, *MockEmployeeQueries, *MockOperationQueries) {
	r := newTestRouter()

	employeeQueries := new(MockEmployeeQueries)
	operationQueries := new(MockOperationQueries)

	handler := NewProductionHandler(employeeQueries, operationQueries)
	r.GET("/production", handler.Production)

	return r, employeeQueries, operationQueries
}

// TestProductionLeapMonth проверяет таблицу за февраль високосного года:
// сумма запрашивается для каждого из 29 дней, дни без записей дают 0
func TestProductionLeapMonth(t *testing.T) {
	r, employeeQueries, operationQueries := setupProductionTest()

	employees := []models.Employee{{ID: 1, TelegramID: 123456789, Name: "Иванов И."}}
	employeeQueries.On("ListEmployees", mock.Anything).Return(employees, nil)

	// Выработка только за 15-е число, остальные дни нулевые
	operationQueries.On("SumQuantityForDay", mock.Anything, int64(123456789), 2024, 2, 15).Return(42, nil)
	operationQueries.On("SumQuantityForDay", mock.Anything, int64(123456789), 2024, 2, mock.Anything).Return(0, nil)

	w := getPage(r, "/production?month=2&year=2024")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Иванов И.")
	assert.Contains(t, w.Body.String(), "42")
	// Февраль 2024 — 29 дней
	operationQueries.AssertNumberOfCalls(t, "SumQuantityForDay", 29)
	employeeQueries.AssertExpectations(t)
}

// TestProductionThirtyDayMonth проверяет число дней обычного месяца
func TestProductionThirtyDayMonth(t *testing.T) {
	r, employeeQueries, operationQueries := setupProductionTest()

	employees := []models.Employee{{ID: 1, TelegramID: 123456789, Name: "Иванов И."}}
	employeeQueries.On("ListEmployees", mock.Anything).Return(employees, nil)

	operationQueries.On("SumQuantityForDay", mock.Anything, int64(123456789), 2025, 4, mock.Anything).Return(0, nil)

	w := getPage(r, "/production?month=4&year=2025")

	assert.Equal(t, http.StatusOK, w.Code)
	operationQueries.AssertNumberOfCalls(t, "SumQuantityForDay", 30)
}

// TestProductionNoEmployees проверяет страницу без сотрудников
func TestProductionNoEmployees(t *testing.T) {
	r, employeeQueries, operationQueries := setupProductionTest()

	employeeQueries.On("ListEmployees", mock.Anything).Return([]models.Employee{}, nil)

	w := getPage(r, "/production?month=4&year=2025")

	assert.Equal(t, http.StatusOK, w.Code)
	operationQueries.AssertNotCalled(t, "SumQuantityForDay",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestProductionInvalidParams проверяет, что некорректные параметры
// месяца и года заменяются текущими
func TestProductionInvalidParams(t *testing.T) {
	r, employeeQueries, operationQueries := setupProductionTest()

	employeeQueries.On("ListEmployees", mock.Anything).Return([]models.Employee{{ID: 1, TelegramID: 1}}, nil)
	operationQueries.On("SumQuantityForDay", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything).Return(0, nil)

	w := getPage(r, "/production?month=13&year=abc")

	assert.Equal(t, http.StatusOK, w.Code)
}
