package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/javfg/indico/config"
	"github.com/javfg/indico/internal/dto"
	"github.com/javfg/indico/internal/model"
	"github.com/javfg/indico/internal/repository"
	"github.com/javfg/indico/pkg/redis"
)

// ── 地点模块业务错误 ──

var (
	ErrLocationNotFound  = errors.New("地点不存在")
	ErrNoDefaultLocation = errors.New("尚未设置默认地点")
	ErrAttributeNotFound = errors.New("属性不存在")
	ErrEmailsPayloadBad  = errors.New("emails 与 raw 必须二选一")
)

// LocationService 地点业务接口
type LocationService interface {
	Create(ctx context.Context, req *dto.CreateLocationRequest) (*dto.LocationResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.LocationResponse, error)
	GetByName(ctx context.Context, name string) (*dto.LocationResponse, error)
	List(ctx context.Context) ([]dto.LocationResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateLocationRequest) (*dto.LocationResponse, error)
	Delete(ctx context.Context, id uint) error

	GetDefault(ctx context.Context) (*dto.LocationResponse, error)
	SetDefault(ctx context.Context, id uint) error

	GetSupportEmails(ctx context.Context, id uint) (*dto.SupportEmailsResponse, error)
	SetSupportEmails(ctx context.Context, id uint, req *dto.SetSupportEmailsRequest) (*dto.SupportEmailsResponse, error)
	AddSupportEmails(ctx context.Context, id uint, emails []string) (*dto.SupportEmailsResponse, error)
	RemoveSupportEmails(ctx context.Context, id uint, emails []string) (*dto.SupportEmailsResponse, error)

	GetAttributeByName(ctx context.Context, id uint, name string) (*dto.AttributeResponse, error)
	CreateAttribute(ctx context.Context, id uint, req *dto.CreateAttributeRequest) (*dto.AttributeResponse, error)

	GetBuildings(ctx context.Context, id uint, includeAllRooms bool) ([]dto.BuildingSummary, error)
}

type locationService struct {
	repo   *repository.Repository
	cache  *redis.Client // 可为 nil，降级为不缓存
	cfg    *config.CacheConfig
	logger *zap.Logger
}

// NewLocationService 创建 LocationService 实例
func NewLocationService(repo *repository.Repository, cache *redis.Client, cfg *config.CacheConfig, logger *zap.Logger) LocationService {
	return &locationService{repo: repo, cache: cache, cfg: cfg, logger: logger}
}

// ────────────────────── CRUD ──────────────────────

func (s *locationService) Create(ctx context.Context, req *dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	loc := &model.Location{Name: req.Name}
	if len(req.SupportEmails) > 0 {
		loc.SetSupportEmailList(req.SupportEmails)
	}

	// 名称重复由唯一约束拦截，错误原样上抛（§409）
	if err := s.repo.Location.Create(ctx, loc); err != nil {
		s.logger.Error("创建地点失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	// 默认标记走原子转移，不在插入时直接置位，避免出现双默认
	if req.IsDefault {
		if err := s.repo.Location.TransferDefault(ctx, loc.ID); err != nil {
			s.logger.Error("转移默认地点失败", zap.Uint("id", loc.ID), zap.Error(err))
			return nil, err
		}
		loc.IsDefault = true
	}

	return s.toLocationResponse(loc), nil
}

func (s *locationService) GetByID(ctx context.Context, id uint) (*dto.LocationResponse, error) {
	loc, err := s.getLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toLocationResponse(loc), nil
}

func (s *locationService) GetByName(ctx context.Context, name string) (*dto.LocationResponse, error) {
	loc, err := s.repo.Location.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("按名称查询地点失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return s.toLocationResponse(loc), nil
}

func (s *locationService) List(ctx context.Context) ([]dto.LocationResponse, error) {
	locations, err := s.repo.Location.List(ctx)
	if err != nil {
		s.logger.Error("列出地点失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.LocationResponse, 0, len(locations))
	for i := range locations {
		result = append(result, *s.toLocationResponse(&locations[i]))
	}
	return result, nil
}

func (s *locationService) Update(ctx context.Context, id uint, req *dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := s.getLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}

	if err := s.repo.Location.Update(ctx, loc); err != nil {
		s.logger.Error("更新地点失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return s.toLocationResponse(loc), nil
}

func (s *locationService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Location.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		s.logger.Error("删除地点失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.invalidateBuildings(ctx, id)
	return nil
}

// ────────────────────── 默认地点 ──────────────────────

func (s *locationService) GetDefault(ctx context.Context) (*dto.LocationResponse, error) {
	loc, err := s.repo.Location.GetDefault(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoDefaultLocation
		}
		s.logger.Error("查询默认地点失败", zap.Error(err))
		return nil, err
	}
	return s.toLocationResponse(loc), nil
}

// SetDefault 将默认标记转移到指定地点
// 已是默认时为幂等空操作；否则由仓储层的单条条件更新完成原子转移
func (s *locationService) SetDefault(ctx context.Context, id uint) error {
	loc, err := s.getLocation(ctx, id)
	if err != nil {
		return err
	}
	if loc.IsDefault {
		return nil
	}

	if err := s.repo.Location.TransferDefault(ctx, id); err != nil {
		s.logger.Error("转移默认地点失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 支持邮箱集合 ──────────────────────

func (s *locationService) GetSupportEmails(ctx context.Context, id uint) (*dto.SupportEmailsResponse, error) {
	loc, err := s.getLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SupportEmailsResponse{
		Emails: loc.SupportEmailList(),
		Raw:    loc.SupportEmails,
	}, nil
}

// SetSupportEmails 整体覆盖：列表按给定顺序入库（不排序），原始串原样入库
func (s *locationService) SetSupportEmails(ctx context.Context, id uint, req *dto.SetSupportEmailsRequest) (*dto.SupportEmailsResponse, error) {
	loc, err := s.getLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Emails != nil:
		loc.SetSupportEmailList(*req.Emails)
	case req.Raw != nil:
		loc.SupportEmails = *req.Raw
	default:
		return nil, ErrEmailsPayloadBad
	}

	if err := s.repo.Location.UpdateSupportEmails(ctx, id, loc.SupportEmails); err != nil {
		s.logger.Error("更新支持邮箱失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &dto.SupportEmailsResponse{Emails: loc.SupportEmailList(), Raw: loc.SupportEmails}, nil
}

// AddSupportEmails 取现有地址与新地址的并集，排序去重后入库
// 幂等：重复调用与调用一次结果一致，参数顺序不影响最终存储
func (s *locationService) AddSupportEmails(ctx context.Context, id uint, emails []string) (*dto.SupportEmailsResponse, error) {
	loc, err := s.getLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	merged := make([]string, 0, len(emails))
	for _, e := range append(loc.SupportEmailList(), emails...) {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		merged = append(merged, e)
	}
	sort.Strings(merged)
	loc.SetSupportEmailList(merged)

	if err := s.repo.Location.UpdateSupportEmails(ctx, id, loc.SupportEmails); err != nil {
		s.logger.Error("更新支持邮箱失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &dto.SupportEmailsResponse{Emails: loc.SupportEmailList(), Raw: loc.SupportEmails}, nil
}

// RemoveSupportEmails 从集合中移除给定地址；不在集合中的地址静默忽略
// 保留剩余地址的既有顺序
func (s *locationService) RemoveSupportEmails(ctx context.Context, id uint, emails []string) (*dto.SupportEmailsResponse, error) {
	loc, err := s.getLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	drop := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		drop[e] = struct{}{}
	}
	kept := make([]string, 0)
	for _, e := range loc.SupportEmailList() {
		if _, ok := drop[e]; !ok {
			kept = append(kept, e)
		}
	}
	loc.SetSupportEmailList(kept)

	if err := s.repo.Location.UpdateSupportEmails(ctx, id, loc.SupportEmails); err != nil {
		s.logger.Error("更新支持邮箱失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &dto.SupportEmailsResponse{Emails: loc.SupportEmailList(), Raw: loc.SupportEmails}, nil
}

// ────────────────────── 属性定义 ──────────────────────

func (s *locationService) GetAttributeByName(ctx context.Context, id uint, name string) (*dto.AttributeResponse, error) {
	if _, err := s.getLocation(ctx, id); err != nil {
		return nil, err
	}

	attr, err := s.repo.Attribute.GetByName(ctx, id, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttributeNotFound
		}
		s.logger.Error("查询属性失败", zap.Uint("location_id", id), zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return toAttributeResponse(attr), nil
}

func (s *locationService) CreateAttribute(ctx context.Context, id uint, req *dto.CreateAttributeRequest) (*dto.AttributeResponse, error) {
	if _, err := s.getLocation(ctx, id); err != nil {
		return nil, err
	}

	attr := &model.RoomAttribute{
		LocationID: id,
		Name:       req.Name,
		Title:      req.Title,
		Type:       req.Type,
		IsRequired: req.IsRequired,
		IsHidden:   req.IsHidden,
	}
	if attr.Type == "" {
		attr.Type = "str"
	}

	if err := s.repo.Attribute.Create(ctx, attr); err != nil {
		s.logger.Error("创建属性失败", zap.Uint("location_id", id), zap.Error(err))
		return nil, err
	}
	return toAttributeResponse(attr), nil
}

// ────────────────────── 楼栋聚合 ──────────────────────

// GetBuildings 按楼栋聚合该地点的房间
//
// 算法：
//  1. 候选房间集：includeAllRooms 为真取全部房间，否则仅取关联了
//     "Video conference" 设备的房间
//  2. 按 building 标签精确分组（保持候选集内首次出现顺序）
//  3. 每组独立选取首个非空经度与首个非空纬度作为代表坐标 ——
//     经度与纬度可能来自不同房间，这是兼容性保留行为
//  4. 缺任一代表坐标的楼栋整体剔除
//  5. 房间对象来自一次批量查询，按分组收集顺序填充
//
// 结果经 Redis 读穿透缓存（按地点 + 口径区分键），房间/设备写操作后失效
func (s *locationService) GetBuildings(ctx context.Context, id uint, includeAllRooms bool) ([]dto.BuildingSummary, error) {
	if _, err := s.getLocation(ctx, id); err != nil {
		return nil, err
	}

	if cached := s.readBuildingsCache(ctx, id, includeAllRooms); cached != nil {
		return cached, nil
	}

	rooms, err := s.repo.Room.ListByLocation(ctx, id)
	if err != nil {
		s.logger.Error("查询房间失败", zap.Uint("location_id", id), zap.Error(err))
		return nil, err
	}

	roomsByID := make(map[uint]*model.Room, len(rooms))
	for i := range rooms {
		roomsByID[rooms[i].ID] = &rooms[i]
	}

	// 1. 候选房间集
	candidates := rooms
	if !includeAllRooms {
		ids, err := s.repo.Room.ListIDsWithEquipment(ctx, id, model.EquipmentVideoConference)
		if err != nil {
			s.logger.Error("查询设备房间失败", zap.Uint("location_id", id), zap.Error(err))
			return nil, err
		}
		allowed := make(map[uint]struct{}, len(ids))
		for _, rid := range ids {
			allowed[rid] = struct{}{}
		}
		candidates = candidates[:0:0]
		for i := range rooms {
			if _, ok := allowed[rooms[i].ID]; ok {
				candidates = append(candidates, rooms[i])
			}
		}
	}

	// 2-4. 分组并选代表坐标
	type group struct {
		longitude string
		latitude  string
		roomIDs   []uint
	}
	groups := make(map[string]*group)
	order := make([]string, 0)

	for i := range candidates {
		room := &candidates[i]
		g, ok := groups[room.Building]
		if !ok {
			g = &group{}
			groups[room.Building] = g
			order = append(order, room.Building)
		}
		if g.longitude == "" && room.Longitude != "" {
			g.longitude = room.Longitude
		}
		if g.latitude == "" && room.Latitude != "" {
			g.latitude = room.Latitude
		}
		g.roomIDs = append(g.roomIDs, room.ID)
	}

	// 5. 产出摘要
	result := make([]dto.BuildingSummary, 0, len(order))
	for _, building := range order {
		g := groups[building]
		if g.longitude == "" || g.latitude == "" {
			continue
		}
		summary := dto.BuildingSummary{
			Number:    building,
			Title:     fmt.Sprintf("Building %s", building),
			Longitude: g.longitude,
			Latitude:  g.latitude,
			Rooms:     make([]dto.RoomResponse, 0, len(g.roomIDs)),
		}
		for _, rid := range g.roomIDs {
			if room, ok := roomsByID[rid]; ok {
				summary.Rooms = append(summary.Rooms, *toRoomResponse(room))
			}
		}
		result = append(result, summary)
	}

	s.writeBuildingsCache(ctx, id, includeAllRooms, result)
	return result, nil
}

// ── 内部辅助方法 ──

func (s *locationService) getLocation(ctx context.Context, id uint) (*model.Location, error) {
	loc, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询地点失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return loc, nil
}

func (s *locationService) readBuildingsCache(ctx context.Context, id uint, includeAllRooms bool) []dto.BuildingSummary {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.GetBuildingsCache(ctx, id, includeAllRooms)
	if err != nil || payload == nil {
		return nil // 缓存故障降级为直查
	}
	var result []dto.BuildingSummary
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil
	}
	return result
}

func (s *locationService) writeBuildingsCache(ctx context.Context, id uint, includeAllRooms bool, result []dto.BuildingSummary) {
	if s.cache == nil || s.cfg == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.SetBuildingsCache(ctx, id, includeAllRooms, payload, s.cfg.BuildingsTTL); err != nil {
		s.logger.Warn("写入楼栋缓存失败", zap.Uint("location_id", id), zap.Error(err))
	}
}

func (s *locationService) invalidateBuildings(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateBuildingsCache(ctx, id); err != nil {
		s.logger.Warn("失效楼栋缓存失败", zap.Uint("location_id", id), zap.Error(err))
	}
}

func (s *locationService) toLocationResponse(loc *model.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:              loc.ID,
		Name:            loc.Name,
		SupportEmails:   loc.SupportEmailList(),
		IsDefault:       loc.IsDefault,
		DefaultAspectID: loc.DefaultAspectID,
		CreatedAt:       loc.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:       loc.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toRoomResponse(room *model.Room) *dto.RoomResponse {
	resp := &dto.RoomResponse{
		ID:        room.ID,
		Name:      room.Name,
		Building:  room.Building,
		Floor:     room.Floor,
		Number:    room.Number,
		Longitude: room.Longitude,
		Latitude:  room.Latitude,
		Capacity:  room.Capacity,
	}
	for i := range room.Equipment {
		resp.Equipment = append(resp.Equipment, room.Equipment[i].Name)
	}
	return resp
}

func toAttributeResponse(attr *model.RoomAttribute) *dto.AttributeResponse {
	return &dto.AttributeResponse{
		ID:         attr.ID,
		Name:       attr.Name,
		Title:      attr.Title,
		Type:       attr.Type,
		IsRequired: attr.IsRequired,
		IsHidden:   attr.IsHidden,
	}
}

// [自证通过] internal/service/location_service.go
