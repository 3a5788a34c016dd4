package model

// Aspect 地图视角表 — 对应 aspects
// 描述一个地点在地图上的展示视口（中心坐标、缩放级别、边界框）
// 坐标全程以字符串存储，不做数值转换
type Aspect struct {
	ID         uint `gorm:"primaryKey"     json:"id"`
	LocationID uint `gorm:"not null;index" json:"location_id"`

	Name             string `gorm:"type:varchar(100);not null" json:"name"`
	CenterLatitude   string `gorm:"type:varchar(32);not null;default:''" json:"center_latitude"`
	CenterLongitude  string `gorm:"type:varchar(32);not null;default:''" json:"center_longitude"`
	ZoomLevel        int    `gorm:"not null;default:0"                   json:"zoom_level"`
	TopLeftLatitude  string `gorm:"type:varchar(32);not null;default:''" json:"top_left_latitude"`
	TopLeftLongitude string `gorm:"type:varchar(32);not null;default:''" json:"top_left_longitude"`
	BottomRightLat   string `gorm:"type:varchar(32);not null;default:''" json:"bottom_right_latitude"`
	BottomRightLon   string `gorm:"type:varchar(32);not null;default:''" json:"bottom_right_longitude"`
	DefaultOnStartup bool   `gorm:"not null;default:false"               json:"default_on_startup"`

	BaseModel
}

// TableName 指定表名
func (Aspect) TableName() string { return "aspects" }
