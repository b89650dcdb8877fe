package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/KJohnson82/MMPD/config"
	"github.com/KJohnson82/MMPD/internal/api/handler"
	"github.com/KJohnson82/MMPD/internal/api/middleware"
	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/model"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时不启用限流
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return nil, fmt.Errorf("注册校验规则失败: %w", err)
		}
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	if cfg.Server.BodyLimitBytes > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))
	}
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// ── 健康检查（无需 API Key）──
	r.GET("/health", h.Directory.Health)

	// ── 业务接口 ──
	api := r.Group("/api")
	api.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger))
	}
	{
		// 地点模块
		locations := api.Group("/Locations")
		{
			locations.GET("", h.Location.ListLocations)
			locations.GET("/corporate", h.Location.ListByType(model.LocationTypeCorporate))
			locations.GET("/metalmart", h.Location.ListByType(model.LocationTypeMetalMart))
			locations.GET("/servicecenter", h.Location.ListByType(model.LocationTypeServiceCenter))
			locations.GET("/plant", h.Location.ListByType(model.LocationTypePlant))
			locations.GET("/type/:name", h.Location.ListByTypeName)
			locations.GET("/:id", h.Location.GetLocation)
			locations.GET("/:id/departments", h.Location.ListDepartments)
			locations.GET("/:id/employees", h.Location.ListEmployees)
			locations.POST("", h.Location.CreateLocation)
			locations.PUT("/:id", h.Location.UpdateLocation)
			locations.DELETE("/:id", h.Location.DeleteLocation)
			locations.POST("/:id/restore", h.Location.RestoreLocation)
		}

		// 部门模块
		departments := api.Group("/Departments")
		{
			departments.GET("", h.Department.ListDepartments)
			departments.GET("/location/:locationId", h.Department.ListByLocation)
			departments.GET("/:id", h.Department.GetDepartment)
			departments.GET("/:id/employees", h.Department.ListEmployees)
			departments.POST("", h.Department.CreateDepartment)
			departments.PUT("/:id", h.Department.UpdateDepartment)
			departments.DELETE("/:id", h.Department.DeleteDepartment)
			departments.POST("/:id/restore", h.Department.RestoreDepartment)
		}

		// 员工模块
		employees := api.Group("/Employees")
		{
			employees.GET("", h.Employee.ListEmployees)
			employees.GET("/department/:departmentId", h.Employee.ListByDepartment)
			employees.GET("/location/:locationId", h.Employee.ListByLocation)
			employees.GET("/:id", h.Employee.GetEmployee)
			employees.POST("", h.Employee.CreateEmployee)
			employees.PUT("/:id", h.Employee.UpdateEmployee)
			employees.DELETE("/:id", h.Employee.DeleteEmployee)
			employees.POST("/:id/restore", h.Employee.RestoreEmployee)
		}

		// 地点类型（参考数据，允许硬删除）
		loctypes := api.Group("/Loctypes")
		{
			loctypes.GET("", h.LocationType.ListLocationTypes)
			loctypes.GET("/:id", h.LocationType.GetLocationType)
			loctypes.POST("", h.LocationType.CreateLocationType)
			loctypes.PUT("/:id", h.LocationType.UpdateLocationType)
			loctypes.DELETE("/:id", h.LocationType.DeleteLocationType)
		}

		api.GET("/Search", h.Search.Search)

		// 目录同步与导出
		directory := api.Group("/Directory")
		{
			directory.GET("/sync", h.Directory.Sync)
			directory.GET("/sync/incremental", h.Directory.SyncIncremental)
			directory.GET("/sync/status", h.Directory.SyncStatus)
			directory.GET("/export", h.Directory.Export)
			directory.GET("/export/xlsx", h.Export.ExportWorkbook)
		}
	}

	// 目录健康检查与 /health 一致，不要求 API Key
	r.GET("/api/Directory/health", h.Directory.Health)

	return r, nil
}
