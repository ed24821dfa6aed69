package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"opslog-service/internal/db/queries"
	"opslog-service/internal/forms"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler содержит обработчики управления сотрудниками
type EmployeeHandler struct {
	employeeQueries queries.EmployeeQueriesInterface
}

// NewEmployeeHandler создает новый экземпляр EmployeeHandler
func NewEmployeeHandler(employeeQueries queries.EmployeeQueriesInterface) *EmployeeHandler {
	return &EmployeeHandler{employeeQueries: employeeQueries}
}

// EmployeesPage отображает список сотрудников и форму добавления
func (h *EmployeeHandler) EmployeesPage(c *gin.Context) {
	employees, err := h.employeeQueries.ListEmployees(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Ошибка при получении списка сотрудников: %v", err)
		return
	}

	render(c, http.StatusOK, "employees.html", gin.H{
		"Form":      &forms.EmployeeForm{},
		"Errors":    map[string]string{},
		"Employees": employees,
	})
}

// SaveEmployee создает сотрудника либо обновляет имя существующего.
// Ключом служит Telegram ID: если он уже известен, меняется только имя.
func (h *EmployeeHandler) SaveEmployee(c *gin.Context) {
	var form forms.EmployeeForm
	_ = c.ShouldBind(&form)

	input, fieldErrors := form.Validate()
	if fieldErrors != nil {
		employees, err := h.employeeQueries.ListEmployees(c.Request.Context())
		if err != nil {
			c.String(http.StatusInternalServerError, "Ошибка при получении списка сотрудников: %v", err)
			return
		}

		render(c, http.StatusOK, "employees.html", gin.H{
			"Form":      &form,
			"Errors":    fieldErrors,
			"Employees": employees,
		})
		return
	}

	_, err := h.employeeQueries.GetEmployeeByTelegramID(c.Request.Context(), input.TelegramID)
	switch {
	case errors.Is(err, queries.ErrEmployeeNotFound):
		if _, err := h.employeeQueries.CreateEmployee(c.Request.Context(), input.TelegramID, input.Name); err != nil {
			c.String(http.StatusInternalServerError, "Ошибка при создании сотрудника: %v", err)
			return
		}
	case err != nil:
		c.String(http.StatusInternalServerError, "Ошибка при поиске сотрудника: %v", err)
		return
	default:
		if err := h.employeeQueries.UpdateEmployeeName(c.Request.Context(), input.TelegramID, input.Name); err != nil {
			c.String(http.StatusInternalServerError, "Ошибка при обновлении сотрудника: %v", err)
			return
		}
	}

	flashAndRedirect(c, "Сотрудник сохранён", "/employees")
}

// EditEmployeePage отображает форму редактирования имени сотрудника
func (h *EmployeeHandler) EditEmployeePage(c *gin.Context) {
	telegramID, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Сотрудник не найден")
		return
	}

	employee, err := h.employeeQueries.GetEmployeeByTelegramID(c.Request.Context(), telegramID)
	if errors.Is(err, queries.ErrEmployeeNotFound) {
		c.String(http.StatusNotFound, "Сотрудник не найден")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Ошибка при поиске сотрудника: %v", err)
		return
	}

	render(c, http.StatusOK, "employees_edit.html", gin.H{
		"TelegramID": employee.TelegramID,
		"Form": &forms.EmployeeForm{
			TelegramID: strconv.FormatInt(employee.TelegramID, 10),
			Name:       employee.Name,
		},
		"Errors": map[string]string{},
	})
}

// UpdateEmployee обновляет имя сотрудника, указанного в пути
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	telegramID, err := strconv.ParseInt(c.Param("telegram_id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Сотрудник не найден")
		return
	}

	var form forms.EmployeeForm
	_ = c.ShouldBind(&form)
	// Ключ сотрудника берется из пути, форма меняет только имя
	form.TelegramID = strconv.FormatInt(telegramID, 10)

	input, fieldErrors := form.Validate()
	if fieldErrors != nil {
		render(c, http.StatusOK, "employees_edit.html", gin.H{
			"TelegramID": telegramID,
			"Form":       &form,
			"Errors":     fieldErrors,
		})
		return
	}

	err = h.employeeQueries.UpdateEmployeeName(c.Request.Context(), input.TelegramID, input.Name)
	if errors.Is(err, queries.ErrEmployeeNotFound) {
		c.String(http.StatusNotFound, "Сотрудник не найден")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, "Ошибка при обновлении сотрудника: %v", err)
		return
	}

	flashAndRedirect(c, "Имя обновлено", "/employees")
}
