package dto

// ── 房间与楼栋聚合 DTO ──

// CreateRoomRequest 创建房间请求
// 经纬度为展示用字符串，未设置时留空串
type CreateRoomRequest struct {
	Name      string `json:"name"      binding:"required,min=1,max=100"`
	Building  string `json:"building"  binding:"required,min=1,max=32"`
	Floor     string `json:"floor"     binding:"omitempty,max=16"`
	Number    string `json:"number"    binding:"omitempty,max=16"`
	Longitude string `json:"longitude" binding:"omitempty,max=32"`
	Latitude  string `json:"latitude"  binding:"omitempty,max=32"`
	Capacity  int    `json:"capacity"  binding:"omitempty,min=0"`
}

// RoomResponse 房间信息响应
type RoomResponse struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Building  string   `json:"building"`
	Floor     string   `json:"floor"`
	Number    string   `json:"number"`
	Longitude string   `json:"longitude"`
	Latitude  string   `json:"latitude"`
	Capacity  int      `json:"capacity"`
	Equipment []string `json:"equipment,omitempty"`
}

// BuildingListRequest 楼栋聚合查询参数
type BuildingListRequest struct {
	IncludeAllRooms bool `form:"include_all_rooms"`
}

// BuildingSummary 楼栋聚合结果
// 每个楼栋取组内首个非空经度与首个非空纬度作为代表坐标；
// 缺任一坐标的楼栋整体不出现在结果中
type BuildingSummary struct {
	Number    string         `json:"number"`
	Title     string         `json:"title"`
	Longitude string         `json:"longitude"`
	Latitude  string         `json:"latitude"`
	Rooms     []RoomResponse `json:"rooms"`
}
