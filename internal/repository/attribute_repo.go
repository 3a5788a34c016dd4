package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/javfg/indico/internal/model"
)

// AttributeRepository 属性定义数据访问接口
type AttributeRepository interface {
	Create(ctx context.Context, attr *model.RoomAttribute) error
	GetByName(ctx context.Context, locationID uint, name string) (*model.RoomAttribute, error)
	ListByLocation(ctx context.Context, locationID uint) ([]model.RoomAttribute, error)
	Delete(ctx context.Context, locationID, attributeID uint) error
}

type attributeRepo struct {
	db *gorm.DB
}

// NewAttributeRepo 创建 AttributeRepository 实例
func NewAttributeRepo(db *gorm.DB) AttributeRepository {
	return &attributeRepo{db: db}
}

func (r *attributeRepo) Create(ctx context.Context, attr *model.RoomAttribute) error {
	return r.db.WithContext(ctx).Create(attr).Error
}

func (r *attributeRepo) GetByName(ctx context.Context, locationID uint, name string) (*model.RoomAttribute, error) {
	var attr model.RoomAttribute
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND name = ?", locationID, name).
		First(&attr).Error
	if err != nil {
		return nil, err
	}
	return &attr, nil
}

func (r *attributeRepo) ListByLocation(ctx context.Context, locationID uint) ([]model.RoomAttribute, error) {
	var attrs []model.RoomAttribute
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("name ASC").
		Find(&attrs).Error
	return attrs, err
}

func (r *attributeRepo) Delete(ctx context.Context, locationID, attributeID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND location_id = ?", attributeID, locationID).
		Delete(&model.RoomAttribute{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
