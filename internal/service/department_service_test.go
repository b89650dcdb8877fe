package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/model"
	pkgerrors "github.com/KJohnson82/MMPD/pkg/errors"
)

// ── 测试辅助 ──

func setupTestDepartmentService() (DepartmentService, *fakeStore) {
	store := newFakeStore()
	store.addLocation(10, model.LocationTypePlant, "Plant A", true)
	return NewDepartmentService(store.repo(), zap.NewNop()), store
}

// ── Create 测试 ──

func TestDepartmentService_Create_Success(t *testing.T) {
	svc, store := setupTestDepartmentService()

	result, err := svc.Create(context.Background(), &dto.DepartmentRequest{Name: "Maintenance", LocationID: 10})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if !result.Active {
		t.Error("期望新建部门 Active=true")
	}
	if result.Location == nil || result.Location.Name != "Plant A" {
		t.Error("期望响应附带所属地点")
	}
	if _, ok := store.departments[result.ID]; !ok {
		t.Error("期望部门已入库")
	}
}

func TestDepartmentService_Create_LocationUnavailable(t *testing.T) {
	svc, store := setupTestDepartmentService()
	store.addLocation(11, model.LocationTypePlant, "Closed", false)

	tests := []struct {
		name       string
		locationID int
	}{
		{"地点不存在", 99},
		{"地点已停用", 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &dto.DepartmentRequest{Name: "X", LocationID: tt.locationID})
			if !errors.Is(err, ErrDepartmentLocationUnavailable) {
				t.Errorf("期望 ErrDepartmentLocationUnavailable，实际: %v", err)
			}
		})
	}
}

// ── 查询测试 ──

func TestDepartmentService_List_AttachesLocationAndActiveEmployees(t *testing.T) {
	svc, store := setupTestDepartmentService()
	store.addDepartment(20, 10, "Shipping", true)
	store.addDepartment(21, 10, "Maintenance", true)
	store.addDepartment(22, 10, "Archived", false)
	store.addEmployee(30, intPtr(21), intPtr(10), "Jane", "Doe", true)
	store.addEmployee(31, intPtr(21), intPtr(10), "Gone", "Away", false)

	result, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("期望 2 个启用部门，实际 %d", len(result))
	}
	if result[0].Name != "Maintenance" {
		t.Errorf("期望按名称排序，首个为 Maintenance，实际 %s", result[0].Name)
	}
	if len(result[0].Employees) != 1 || result[0].Location == nil {
		t.Error("期望附带 1 名启用员工与所属地点")
	}
	if result[1].Employees == nil {
		t.Error("无员工时应返回空数组而非 nil")
	}
}

func TestDepartmentService_ListEmployees_InactiveDepartment(t *testing.T) {
	svc, store := setupTestDepartmentService()
	store.addDepartment(20, 10, "Maintenance", false)

	if _, err := svc.ListEmployees(context.Background(), 20); !errors.Is(err, ErrDepartmentNotFoundOrInactive) {
		t.Errorf("期望 ErrDepartmentNotFoundOrInactive，实际: %v", err)
	}
}

// ── 软删除门禁 ──

func TestDepartmentService_Delete_BlockedByActiveEmployee(t *testing.T) {
	svc, store := setupTestDepartmentService()
	store.addDepartment(20, 10, "Maintenance", true)
	store.addEmployee(30, intPtr(20), intPtr(10), "Jane", "Doe", true)

	err := svc.Delete(context.Background(), 20)
	if !errors.Is(err, ErrDepartmentHasActiveEmployees) {
		t.Errorf("期望 ErrDepartmentHasActiveEmployees，实际: %v", err)
	}
	if !store.departments[20].IsActive() {
		t.Error("被拒绝的删除不应改变状态")
	}
}

func TestDepartmentService_Delete_Success(t *testing.T) {
	svc, store := setupTestDepartmentService()
	store.addDepartment(20, 10, "Maintenance", true)
	store.addEmployee(30, intPtr(20), intPtr(10), "Jane", "Doe", false)

	if err := svc.Delete(context.Background(), 20); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if store.departments[20].IsActive() {
		t.Error("期望部门已停用")
	}

	list, _ := svc.List(context.Background())
	for _, d := range list {
		if d.ID == 20 {
			t.Error("已停用部门不应出现在列表中")
		}
	}
}

// ── 恢复门禁 ──

func TestDepartmentService_Restore_ParentInactive(t *testing.T) {
	svc, store := setupTestDepartmentService()
	store.locations[10].Active = model.BoolPtr(false)
	store.addDepartment(20, 10, "Maintenance", false)

	if err := svc.Restore(context.Background(), 20); !errors.Is(err, ErrDepartmentParentInactive) {
		t.Errorf("期望 ErrDepartmentParentInactive，实际: %v", err)
	}
	if store.departments[20].IsActive() {
		t.Error("被拒绝的恢复不应改变状态")
	}
}

func TestDepartmentService_Restore_Success(t *testing.T) {
	svc, store := setupTestDepartmentService()
	store.addDepartment(20, 10, "Maintenance", false)

	if err := svc.Restore(context.Background(), 20); err != nil {
		t.Fatalf("Restore 应成功: %v", err)
	}
	if !store.departments[20].IsActive() {
		t.Error("期望部门已恢复")
	}
}

// ── Update 测试 ──

func TestDepartmentService_Update(t *testing.T) {
	svc, store := setupTestDepartmentService()
	store.addDepartment(20, 10, "Maintenance", true)

	req := &dto.DepartmentRequest{ID: 21, Name: "Maint", LocationID: 10}
	if err := svc.Update(context.Background(), 20, req); !errors.Is(err, ErrIDMismatch) {
		t.Errorf("期望 ErrIDMismatch，实际: %v", err)
	}

	req.ID = 20
	req.ManagerName = strPtr("Sam Smith")
	if err := svc.Update(context.Background(), 20, req); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if got := store.departments[20]; got.Name != "Maint" || !got.IsActive() {
		t.Errorf("期望名称更新且保持启用，实际 %+v", got)
	}

	store.vanishOnUpdate = true
	if err := svc.Update(context.Background(), 20, req); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际: %v", err)
	}
}

func TestDepartmentService_Update_WriteErrors(t *testing.T) {
	tests := []struct {
		name    string
		arrange func(s *fakeStore)
		want    error
	}{
		{"并发删除视为不存在", func(s *fakeStore) { s.vanishOnUpdate = true }, ErrDepartmentNotFound},
		{"记录仍在时冲突原样返回", func(s *fakeStore) { s.updateErr = pkgerrors.ErrConcurrentUpdate }, pkgerrors.ErrConcurrentUpdate},
		{"外键失败", func(s *fakeStore) { s.updateErr = fkViolation() }, ErrInvalidReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := setupTestDepartmentService()
			store.addDepartment(20, 10, "Maintenance", true)
			tt.arrange(store)

			req := &dto.DepartmentRequest{ID: 20, Name: "Maint", LocationID: 10}
			if err := svc.Update(context.Background(), 20, req); !errors.Is(err, tt.want) {
				t.Errorf("期望 %v，实际: %v", tt.want, err)
			}
		})
	}
}
