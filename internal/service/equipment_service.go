package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/javfg/indico/internal/dto"
	"github.com/javfg/indico/internal/model"
	"github.com/javfg/indico/internal/repository"
	"github.com/javfg/indico/pkg/redis"
)

// ── 设备种类模块业务错误 ──

var ErrEquipmentNotFound = errors.New("设备种类不存在")

// EquipmentService 设备种类业务接口
type EquipmentService interface {
	ListNames(ctx context.Context, locationID uint) ([]string, error)
	List(ctx context.Context, locationID uint) ([]dto.EquipmentResponse, error)
	GetByName(ctx context.Context, locationID uint, name string) (*dto.EquipmentResponse, error)
	// Add 不存在则创建；返回值指示是否新建了记录（幂等）
	Add(ctx context.Context, locationID uint, name string) (*dto.AddEquipmentResponse, error)
	// Remove 删除设备种类及房间关联；不存在时视为空操作
	Remove(ctx context.Context, locationID uint, name string) error
	Has(ctx context.Context, locationID uint, name string) (bool, error)
}

type equipmentService struct {
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewEquipmentService 创建 EquipmentService 实例
func NewEquipmentService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) EquipmentService {
	return &equipmentService{repo: repo, cache: cache, logger: logger}
}

// ListNames 投影设备记录为名称列表
func (s *equipmentService) ListNames(ctx context.Context, locationID uint) ([]string, error) {
	list, err := s.List(ctx, locationID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(list))
	for _, eq := range list {
		names = append(names, eq.Name)
	}
	return names, nil
}

func (s *equipmentService) List(ctx context.Context, locationID uint) ([]dto.EquipmentResponse, error) {
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return nil, err
	}

	list, err := s.repo.Equipment.ListByLocation(ctx, locationID)
	if err != nil {
		s.logger.Error("列出设备种类失败", zap.Uint("location_id", locationID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.EquipmentResponse, 0, len(list))
	for i := range list {
		result = append(result, dto.EquipmentResponse{ID: list[i].ID, Name: list[i].Name})
	}
	return result, nil
}

func (s *equipmentService) GetByName(ctx context.Context, locationID uint, name string) (*dto.EquipmentResponse, error) {
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return nil, err
	}

	eq, err := s.repo.Equipment.GetByName(ctx, locationID, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		s.logger.Error("查询设备种类失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return &dto.EquipmentResponse{ID: eq.ID, Name: eq.Name}, nil
}

func (s *equipmentService) Add(ctx context.Context, locationID uint, name string) (*dto.AddEquipmentResponse, error) {
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return nil, err
	}

	eq := &model.RoomEquipment{LocationID: locationID, Name: name}
	created, err := s.repo.Equipment.CreateIfAbsent(ctx, eq)
	if err != nil {
		s.logger.Error("添加设备种类失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	if created {
		s.invalidateBuildings(ctx, locationID)
	}
	return &dto.AddEquipmentResponse{ID: eq.ID, Name: name, Created: created}, nil
}

func (s *equipmentService) Remove(ctx context.Context, locationID uint, name string) error {
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return err
	}

	if err := s.repo.Equipment.DeleteByName(ctx, locationID, name); err != nil {
		s.logger.Error("删除设备种类失败", zap.String("name", name), zap.Error(err))
		return err
	}
	s.invalidateBuildings(ctx, locationID)
	return nil
}

func (s *equipmentService) Has(ctx context.Context, locationID uint, name string) (bool, error) {
	if err := s.ensureLocation(ctx, locationID); err != nil {
		return false, err
	}

	has, err := s.repo.Equipment.ExistsByName(ctx, locationID, name)
	if err != nil {
		s.logger.Error("查询设备种类失败", zap.String("name", name), zap.Error(err))
		return false, err
	}
	return has, nil
}

// ── 内部辅助方法 ──

func (s *equipmentService) ensureLocation(ctx context.Context, locationID uint) error {
	if _, err := s.repo.Location.GetByID(ctx, locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		s.logger.Error("查询地点失败", zap.Uint("id", locationID), zap.Error(err))
		return err
	}
	return nil
}

// 设备变化影响楼栋聚合的候选房间集，需失效缓存
func (s *equipmentService) invalidateBuildings(ctx context.Context, locationID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateBuildingsCache(ctx, locationID); err != nil {
		s.logger.Warn("失效楼栋缓存失败", zap.Uint("location_id", locationID), zap.Error(err))
	}
}
