package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"opslog-service/internal/models"
)

// MockEmployeeQueries мокирует запросы для работы с сотрудниками
type MockEmployeeQueries struct {
	mock.Mock
}

func (m *MockEmployeeQueries) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Employee), args.Error(1)
}

func (m *MockEmployeeQueries) GetEmployeeByTelegramID(ctx context.Context, telegramID int64) (*models.Employee, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeQueries) CreateEmployee(ctx context.Context, telegramID int64, name string) (*models.Employee, error) {
	args := m.Called(ctx, telegramID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeQueries) UpdateEmployeeName(ctx context.Context, telegramID int64, name string) error {
	args := m.Called(ctx, telegramID, name)
	return args.Error(0)
}

// MockOperationQueries мокирует запросы для работы с журналом операций
type MockOperationQueries struct {
	mock.Mock
}

func (m *MockOperationQueries) CreateOperation(ctx context.Context, op models.Operation) (*models.Operation, error) {
	args := m.Called(ctx, op)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Operation), args.Error(1)
}

func (m *MockOperationQueries) ListOperations(ctx context.Context, filter models.OperationFilter) ([]models.Operation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Operation), args.Error(1)
}

func (m *MockOperationQueries) SumQuantityForDay(ctx context.Context, telegramID int64, year int, month int, day int) (int, error) {
	args := m.Called(ctx, telegramID, year, month, day)
	return args.Int(0), args.Error(1)
}

func (m *MockOperationQueries) OperationExists(ctx context.Context, telegramID int64, waybill, box, article string, quantity int, createdAt time.Time) (bool, error) {
	args := m.Called(ctx, telegramID, waybill, box, article, quantity, createdAt)
	return args.Bool(0), args.Error(1)
}

// newTestRouter создает роутер с шаблонами и cookie-сессиями для тестов
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("opslog_session", store))

	r.LoadHTMLGlob("../../../web/templates/*.html")

	return r
}

// getPage выполняет GET-запрос к роутеру
func getPage(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// postForm выполняет POST-запрос с данными формы
func postForm(r *gin.Engine, path string, values url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
