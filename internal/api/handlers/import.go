package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"opslog-service/internal/db/queries"
	"opslog-service/internal/excel"
	"opslog-service/internal/forms"
	"opslog-service/internal/models"

	"github.com/gin-gonic/gin"
)

// ImportHandler содержит обработчики импорта журнала из Excel
type ImportHandler struct {
	operationQueries queries.OperationQueriesInterface
	uploadDir        string
}

// NewImportHandler создает новый экземпляр ImportHandler
func NewImportHandler(operationQueries queries.OperationQueriesInterface, uploadDir string) *ImportHandler {
	return &ImportHandler{
		operationQueries: operationQueries,
		uploadDir:        uploadDir,
	}
}

// ImportPage отображает форму загрузки файла с выбором блока
func (h *ImportHandler) ImportPage(c *gin.Context) {
	render(c, http.StatusOK, "import_excel.html", gin.H{
		"Form":   &forms.ImportForm{},
		"Errors": map[string]string{},
		"Blocks": models.BlockChoices(),
	})
}

// ImportExcel сохраняет загруженный файл, разбирает его и добавляет строки
// в журнал. Строки, уже существующие в журнале (полное совпадение полей
// и даты), пропускаются — повторный импорт того же файла ничего не меняет.
func (h *ImportHandler) ImportExcel(c *gin.Context) {
	var form forms.ImportForm
	_ = c.ShouldBind(&form)

	filename := ""
	fileHeader, err := c.FormFile("file")
	if err == nil {
		filename = fileHeader.Filename
	}

	input, fieldErrors := form.Validate(filename)
	if fieldErrors != nil {
		render(c, http.StatusOK, "import_excel.html", gin.H{
			"Form":   &form,
			"Errors": fieldErrors,
			"Blocks": models.BlockChoices(),
		})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		c.String(http.StatusInternalServerError, "Ошибка при создании каталога загрузок: %v", err)
		return
	}

	// Файл сохраняется под исходным (очищенным) именем, совпадение имен перезаписывает файл
	path := filepath.Join(h.uploadDir, sanitizeFilename(filename))
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		c.String(http.StatusInternalServerError, "Ошибка при сохранении файла: %v", err)
		return
	}

	rows, err := excel.ReadFile(path)
	if err != nil {
		c.String(http.StatusInternalServerError, "Ошибка при разборе файла: %v", err)
		return
	}

	added := 0
	for _, row := range rows {
		exists, err := h.operationQueries.OperationExists(
			c.Request.Context(),
			row.TelegramID, row.Waybill, row.Box, row.Article, row.Quantity, row.Date,
		)
		if err != nil {
			c.String(http.StatusInternalServerError, "Ошибка при проверке дубликатов: %v", err)
			return
		}
		if exists {
			continue
		}

		op := models.Operation{
			UserID:    sql.NullInt64{Int64: row.TelegramID, Valid: true},
			Block:     input.Block,
			Waybill:   row.Waybill,
			Box:       row.Box,
			Article:   row.Article,
			Quantity:  row.Quantity,
			CreatedAt: row.Date,
		}
		if _, err := h.operationQueries.CreateOperation(c.Request.Context(), op); err != nil {
			c.String(http.StatusInternalServerError, "Ошибка при сохранении записи: %v", err)
			return
		}
		added++
	}

	flashAndRedirect(c, fmt.Sprintf("Импортировано: %d", added), "/database")
}

// sanitizeFilename оставляет от имени файла только безопасную часть:
// без каталогов, пробелы заменяются подчеркиванием, спецсимволы отбрасываются
func sanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")

	var b strings.Builder
	for _, r := range base {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 || b.String() == "." {
		return "upload.xlsx"
	}
	return b.String()
}
