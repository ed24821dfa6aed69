package api

import (
	"opslog-service/internal/api/handlers"
	"opslog-service/internal/config"
	"opslog-service/internal/db"
	"opslog-service/internal/db/queries"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func SetupRouter(config *config.Config, db *db.Database) *gin.Engine {
	// Создаем экземпляр Gin
	router := gin.Default()

	// Cookie-сессии для flash-сообщений, подписанные секретным ключом
	store := cookie.NewStore([]byte(config.App.SecretKey))
	router.Use(sessions.Sessions("opslog_session", store))

	// Шаблоны и статика
	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/static", "./web/static")

	// Создаем запросы к базе данных
	employeeQueries := queries.NewEmployeeQueries(db)
	operationQueries := queries.NewOperationQueries(db)

	// Создаем обработчики
	pageHandler := handlers.NewPageHandler()
	recordHandler := handlers.NewRecordHandler(employeeQueries, operationQueries)
	productionHandler := handlers.NewProductionHandler(employeeQueries, operationQueries)
	employeeHandler := handlers.NewEmployeeHandler(employeeQueries)
	importHandler := handlers.NewImportHandler(operationQueries, config.App.UploadDir)

	// Маршруты
	router.GET("/", pageHandler.Home)
	router.GET("/theme/:theme", pageHandler.SetTheme)

	router.GET("/new", recordHandler.NewRecordPage)
	router.POST("/new", recordHandler.CreateRecord)

	router.GET("/database", recordHandler.ListRecords)
	router.POST("/database", recordHandler.FilterRecords)

	router.GET("/production", productionHandler.Production)

	router.GET("/employees", employeeHandler.EmployeesPage)
	router.POST("/employees", employeeHandler.SaveEmployee)
	router.GET("/employees/edit/:telegram_id", employeeHandler.EditEmployeePage)
	router.POST("/employees/edit/:telegram_id", employeeHandler.UpdateEmployee)

	router.GET("/import_excel", importHandler.ImportPage)
	router.POST("/import_excel", importHandler.ImportExcel)

	return router
}
