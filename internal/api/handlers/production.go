package handlers

import (
	"net/http"
	"strconv"
	"time"

	"opslog-service/internal/db/queries"

	"github.com/gin-gonic/gin"
)

// ProductionHandler содержит обработчик страницы выработки за месяц
type ProductionHandler struct {
	employeeQueries  queries.EmployeeQueriesInterface
	operationQueries queries.OperationQueriesInterface
}

// NewProductionHandler создает новый экземпляр ProductionHandler
func NewProductionHandler(employeeQueries queries.EmployeeQueriesInterface, operationQueries queries.OperationQueriesInterface) *ProductionHandler {
	return &ProductionHandler{
		employeeQueries:  employeeQueries,
		operationQueries: operationQueries,
	}
}

// Production отображает таблицу сотрудник×день с суммами количества за месяц.
// Параметры month и year берутся из запроса, по умолчанию — текущий месяц.
func (h *ProductionHandler) Production(c *gin.Context) {
	now := time.Now()

	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		year = now.Year()
	}

	// Число дней в месяце с учетом високосных лет
	daysCount := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	days := make([]int, 0, daysCount)
	for d := 1; d <= daysCount; d++ {
		days = append(days, d)
	}

	employees, err := h.employeeQueries.ListEmployees(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, "Ошибка при получении списка сотрудников: %v", err)
		return
	}

	// Суммы по каждому сотруднику за каждый день; дни без записей дают 0
	data := make(map[int64]map[int]int, len(employees))
	for _, employee := range employees {
		dayTotals := make(map[int]int, daysCount)
		for _, d := range days {
			total, err := h.operationQueries.SumQuantityForDay(c.Request.Context(), employee.TelegramID, year, month, d)
			if err != nil {
				c.String(http.StatusInternalServerError, "Ошибка при подсчете выработки: %v", err)
				return
			}
			dayTotals[d] = total
		}
		data[employee.TelegramID] = dayTotals
	}

	render(c, http.StatusOK, "production.html", gin.H{
		"Month":     month,
		"Year":      year,
		"Days":      days,
		"Employees": employees,
		"Data":      data,
	})
}
