package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/javfg/indico/internal/model"
)

// ── Mock LocationRepository ──

type mockLocationRepo struct {
	locations map[uint]*model.Location
	nextID    uint
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{locations: make(map[uint]*model.Location), nextID: 1}
}

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	for _, l := range m.locations {
		if l.Name == loc.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	loc.ID = m.nextID
	m.nextID++
	cp := *loc
	m.locations[loc.ID] = &cp
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id uint) (*model.Location, error) {
	if l, ok := m.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) GetByName(_ context.Context, name string) (*model.Location, error) {
	for _, l := range m.locations {
		if l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) GetDefault(_ context.Context) (*model.Location, error) {
	for _, l := range m.locations {
		if l.IsDefault {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) List(_ context.Context) ([]model.Location, error) {
	result := make([]model.Location, 0, len(m.locations))
	for _, l := range m.locations {
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsDefault != result[j].IsDefault {
			return result[i].IsDefault
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (m *mockLocationRepo) Update(_ context.Context, loc *model.Location) error {
	if _, ok := m.locations[loc.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *loc
	m.locations[loc.ID] = &cp
	return nil
}

func (m *mockLocationRepo) UpdateSupportEmails(_ context.Context, id uint, emails string) error {
	if l, ok := m.locations[id]; ok {
		l.SupportEmails = emails
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) UpdateDefaultAspect(_ context.Context, id uint, aspectID *uint) error {
	if l, ok := m.locations[id]; ok {
		l.DefaultAspectID = aspectID
		return nil
	}
	return gorm.ErrRecordNotFound
}

// TransferDefault 与单条条件更新语义一致：当前默认行与目标行同时取反
func (m *mockLocationRepo) TransferDefault(_ context.Context, id uint) error {
	for _, l := range m.locations {
		if l.IsDefault || l.ID == id {
			l.IsDefault = !l.IsDefault
		}
	}
	return nil
}

func (m *mockLocationRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.locations[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.locations, id)
	return nil
}

// ── Mock AspectRepository ──

type mockAspectRepo struct {
	aspects map[uint]*model.Aspect
	nextID  uint
}

func newMockAspectRepo() *mockAspectRepo {
	return &mockAspectRepo{aspects: make(map[uint]*model.Aspect), nextID: 1}
}

func (m *mockAspectRepo) Create(_ context.Context, aspect *model.Aspect) error {
	aspect.ID = m.nextID
	m.nextID++
	cp := *aspect
	m.aspects[aspect.ID] = &cp
	return nil
}

func (m *mockAspectRepo) GetOwned(_ context.Context, locationID, aspectID uint) (*model.Aspect, error) {
	if a, ok := m.aspects[aspectID]; ok && a.LocationID == locationID {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAspectRepo) ListByLocation(_ context.Context, locationID uint) ([]model.Aspect, error) {
	result := make([]model.Aspect, 0)
	for _, a := range m.aspects {
		if a.LocationID == locationID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockAspectRepo) CountByLocation(_ context.Context, locationID uint) (int64, error) {
	var count int64
	for _, a := range m.aspects {
		if a.LocationID == locationID {
			count++
		}
	}
	return count, nil
}

func (m *mockAspectRepo) Delete(_ context.Context, locationID, aspectID uint) error {
	if a, ok := m.aspects[aspectID]; ok && a.LocationID == locationID {
		delete(m.aspects, aspectID)
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock EquipmentRepository ──

type mockEquipmentRepo struct {
	items  map[uint]*model.RoomEquipment
	nextID uint
}

func newMockEquipmentRepo() *mockEquipmentRepo {
	return &mockEquipmentRepo{items: make(map[uint]*model.RoomEquipment), nextID: 1}
}

func (m *mockEquipmentRepo) findByName(locationID uint, name string) *model.RoomEquipment {
	for _, eq := range m.items {
		if eq.LocationID == locationID && eq.Name == name {
			return eq
		}
	}
	return nil
}

func (m *mockEquipmentRepo) CreateIfAbsent(_ context.Context, eq *model.RoomEquipment) (bool, error) {
	if m.findByName(eq.LocationID, eq.Name) != nil {
		// 冲突时不回填 ID，与 ON CONFLICT DO NOTHING 行为一致
		return false, nil
	}
	eq.ID = m.nextID
	m.nextID++
	cp := *eq
	m.items[eq.ID] = &cp
	return true, nil
}

func (m *mockEquipmentRepo) GetByName(_ context.Context, locationID uint, name string) (*model.RoomEquipment, error) {
	if eq := m.findByName(locationID, name); eq != nil {
		cp := *eq
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEquipmentRepo) ListByLocation(_ context.Context, locationID uint) ([]model.RoomEquipment, error) {
	result := make([]model.RoomEquipment, 0)
	for _, eq := range m.items {
		if eq.LocationID == locationID {
			result = append(result, *eq)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockEquipmentRepo) ExistsByName(_ context.Context, locationID uint, name string) (bool, error) {
	return m.findByName(locationID, name) != nil, nil
}

func (m *mockEquipmentRepo) DeleteByName(_ context.Context, locationID uint, name string) error {
	if eq := m.findByName(locationID, name); eq != nil {
		delete(m.items, eq.ID)
	}
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms  map[uint]*model.Room
	nextID uint

	// roomID → 关联的设备 id 集合
	attachments map[uint]map[uint]struct{}
	equipment   *mockEquipmentRepo
}

func newMockRoomRepo(equipment *mockEquipmentRepo) *mockRoomRepo {
	return &mockRoomRepo{
		rooms:       make(map[uint]*model.Room),
		nextID:      1,
		attachments: make(map[uint]map[uint]struct{}),
		equipment:   equipment,
	}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	room.ID = m.nextID
	m.nextID++
	cp := *room
	m.rooms[room.ID] = &cp
	return nil
}

func (m *mockRoomRepo) GetOwned(_ context.Context, locationID, roomID uint) (*model.Room, error) {
	if r, ok := m.rooms[roomID]; ok && r.LocationID == locationID {
		cp := *r
		for eqID := range m.attachments[roomID] {
			if eq, ok := m.equipment.items[eqID]; ok {
				cp.Equipment = append(cp.Equipment, *eq)
			}
		}
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) ListByLocation(_ context.Context, locationID uint) ([]model.Room, error) {
	result := make([]model.Room, 0)
	for _, r := range m.rooms {
		if r.LocationID == locationID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockRoomRepo) ListIDsWithEquipment(_ context.Context, locationID uint, equipmentName string) ([]uint, error) {
	eq := m.equipment.findByName(locationID, equipmentName)
	if eq == nil {
		return nil, nil
	}
	ids := make([]uint, 0)
	for roomID, eqIDs := range m.attachments {
		r, ok := m.rooms[roomID]
		if !ok || r.LocationID != locationID {
			continue
		}
		if _, attached := eqIDs[eq.ID]; attached {
			ids = append(ids, roomID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *mockRoomRepo) AttachEquipment(_ context.Context, roomID, equipmentID uint) error {
	if m.attachments[roomID] == nil {
		m.attachments[roomID] = make(map[uint]struct{})
	}
	m.attachments[roomID][equipmentID] = struct{}{}
	return nil
}

func (m *mockRoomRepo) DetachEquipment(_ context.Context, roomID, equipmentID uint) error {
	delete(m.attachments[roomID], equipmentID)
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, locationID, roomID uint) error {
	if r, ok := m.rooms[roomID]; ok && r.LocationID == locationID {
		delete(m.rooms, roomID)
		delete(m.attachments, roomID)
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock AttributeRepository ──

type mockAttributeRepo struct {
	attrs  map[uint]*model.RoomAttribute
	nextID uint
}

func newMockAttributeRepo() *mockAttributeRepo {
	return &mockAttributeRepo{attrs: make(map[uint]*model.RoomAttribute), nextID: 1}
}

func (m *mockAttributeRepo) Create(_ context.Context, attr *model.RoomAttribute) error {
	for _, a := range m.attrs {
		if a.LocationID == attr.LocationID && a.Name == attr.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	attr.ID = m.nextID
	m.nextID++
	cp := *attr
	m.attrs[attr.ID] = &cp
	return nil
}

func (m *mockAttributeRepo) GetByName(_ context.Context, locationID uint, name string) (*model.RoomAttribute, error) {
	for _, a := range m.attrs {
		if a.LocationID == locationID && a.Name == name {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttributeRepo) ListByLocation(_ context.Context, locationID uint) ([]model.RoomAttribute, error) {
	result := make([]model.RoomAttribute, 0)
	for _, a := range m.attrs {
		if a.LocationID == locationID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockAttributeRepo) Delete(_ context.Context, locationID, attributeID uint) error {
	if a, ok := m.attrs[attributeID]; ok && a.LocationID == locationID {
		delete(m.attrs, attributeID)
		return nil
	}
	return gorm.ErrRecordNotFound
}
