package handlers

import (
	"database/sql"
	"net/http"

	"opslog-service/internal/db/queries"
	"opslog-service/internal/forms"
	"opslog-service/internal/models"

	"github.com/gin-gonic/gin"
)

// RecordHandler содержит обработчики журнала операций
type RecordHandler struct {
	employeeQueries  queries.EmployeeQueriesInterface
	operationQueries queries.OperationQueriesInterface
}

// NewRecordHandler создает новый экземпляр RecordHandler
func NewRecordHandler(employeeQueries queries.EmployeeQueriesInterface, operationQueries queries.OperationQueriesInterface) *RecordHandler {
	return &RecordHandler{
		employeeQueries:  employeeQueries,
		operationQueries: operationQueries,
	}
}

// NewRecordPage отображает форму новой записи со списком сотрудников
func (h *RecordHandler) NewRecordPage(c *gin.Context) {
	employees, err := h.employeeQueries.ListEmployees(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Ошибка при получении списка сотрудников: %v", err)
		return
	}

	render(c, http.StatusOK, "new_record.html", gin.H{
		"Form":      &forms.OperationForm{},
		"Errors":    map[string]string{},
		"Employees": employees,
		"Blocks":    models.BlockChoices(),
	})
}

// CreateRecord проверяет форму и добавляет запись в журнал
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var form forms.OperationForm
	_ = c.ShouldBind(&form)

	employees, err := h.employeeQueries.ListEmployees(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Ошибка при получении списка сотрудников: %v", err)
		return
	}

	input, fieldErrors := form.Validate(employees)
	if fieldErrors != nil {
		render(c, http.StatusOK, "new_record.html", gin.H{
			"Form":      &form,
			"Errors":    fieldErrors,
			"Employees": employees,
			"Blocks":    models.BlockChoices(),
		})
		return
	}

	op := models.Operation{
		UserID:   sql.NullInt64{Int64: input.TelegramID, Valid: true},
		Block:    input.Block,
		Waybill:  input.Waybill,
		Box:      input.Box,
		Article:  input.Article,
		Quantity: input.Quantity,
	}

	if _, err := h.operationQueries.CreateOperation(c.Request.Context(), op); err != nil {
		c.String(http.StatusInternalServerError, "Ошибка при сохранении записи: %v", err)
		return
	}

	flashAndRedirect(c, "Запись сохранена", "/new")
}

// ListRecords отображает весь журнал, новые записи первыми
func (h *RecordHandler) ListRecords(c *gin.Context) {
	records, err := h.operationQueries.ListOperations(c.Request.Context(), models.OperationFilter{})
	if err != nil {
		c.String(http.StatusInternalServerError, "Ошибка при получении журнала: %v", err)
		return
	}

	render(c, http.StatusOK, "database.html", gin.H{
		"Form":    &forms.FilterForm{},
		"Errors":  map[string]string{},
		"Records": records,
		"Blocks":  models.BlockChoices(),
	})
}

// FilterRecords проверяет форму фильтра и отображает отфильтрованный журнал.
// Фильтр не сохраняется между запросами.
func (h *RecordHandler) FilterRecords(c *gin.Context) {
	var form forms.FilterForm
	_ = c.ShouldBind(&form)

	filter, fieldErrors := form.Validate()
	if fieldErrors != nil {
		// Некорректный фильтр: показываем журнал без фильтрации и ошибки полей
		filter = &models.OperationFilter{}
	} else {
		fieldErrors = map[string]string{}
	}

	records, err := h.operationQueries.ListOperations(c.Request.Context(), *filter)
	if err != nil {
		c.String(http.StatusInternalServerError, "Ошибка при получении журнала: %v", err)
		return
	}

	render(c, http.StatusOK, "database.html", gin.H{
		"Form":    &form,
		"Errors":  fieldErrors,
		"Records": records,
		"Blocks":  models.BlockChoices(),
	})
}
