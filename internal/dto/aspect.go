package dto

// ── 地图视角模块 DTO ──

// CreateAspectRequest 创建视角请求
type CreateAspectRequest struct {
	Name             string `json:"name"                    binding:"required,min=1,max=100"`
	CenterLatitude   string `json:"center_latitude"         binding:"omitempty,max=32"`
	CenterLongitude  string `json:"center_longitude"        binding:"omitempty,max=32"`
	ZoomLevel        int    `json:"zoom_level"              binding:"omitempty,min=0,max=21"`
	TopLeftLatitude  string `json:"top_left_latitude"       binding:"omitempty,max=32"`
	TopLeftLongitude string `json:"top_left_longitude"      binding:"omitempty,max=32"`
	BottomRightLat   string `json:"bottom_right_latitude"   binding:"omitempty,max=32"`
	BottomRightLon   string `json:"bottom_right_longitude"  binding:"omitempty,max=32"`
	DefaultOnStartup bool   `json:"default_on_startup"`
}

// AspectResponse 视角信息响应
type AspectResponse struct {
	ID               uint   `json:"id"`
	LocationID       uint   `json:"location_id"`
	Name             string `json:"name"`
	CenterLatitude   string `json:"center_latitude"`
	CenterLongitude  string `json:"center_longitude"`
	ZoomLevel        int    `json:"zoom_level"`
	TopLeftLatitude  string `json:"top_left_latitude"`
	TopLeftLongitude string `json:"top_left_longitude"`
	BottomRightLat   string `json:"bottom_right_latitude"`
	BottomRightLon   string `json:"bottom_right_longitude"`
	DefaultOnStartup bool   `json:"default_on_startup"`
}

// MapAvailabilityResponse 地图可用性响应
type MapAvailabilityResponse struct {
	Available bool `json:"available"`
}
