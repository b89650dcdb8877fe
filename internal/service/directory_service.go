package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/model"
	"github.com/KJohnson82/MMPD/internal/repository"
	"github.com/KJohnson82/MMPD/pkg/metrics"
)

// 同步响应消息
const (
	msgFullSyncOK        = "Full directory sync completed"
	msgIncrementalSyncOK = "Incremental sync completed"
	msgNoChanges         = "No changes since last sync"
	msgSyncFailed        = "Failed to retrieve directory data"
	healthMessage        = "MMPD Directory API is running"
)

// snapshotRootKey 快照顶层分组键
const snapshotRootKey = "loctype"

// DirectoryService 目录同步接口
//
// FullSnapshot / IncrementalSnapshot 不返回 error：失败时 Success=false，由调用方决定状态码
type DirectoryService interface {
	FullSnapshot(ctx context.Context) *dto.SyncResponse
	IncrementalSnapshot(ctx context.Context, since time.Time) *dto.SyncResponse
	SyncStatus(ctx context.Context) (*dto.SyncStatusResponse, error)
	CanConnect(ctx context.Context) bool
	Health(ctx context.Context) *dto.HealthResponse
	Export(ctx context.Context) (*dto.DirectoryExport, error)
}

type directoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDirectoryService 创建 DirectoryService 实例
func NewDirectoryService(repo *repository.Repository, logger *zap.Logger) DirectoryService {
	return &directoryService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// 快照
// ═══════════════════════════════════════════════════════════

func (s *directoryService) FullSnapshot(ctx context.Context) *dto.SyncResponse {
	data, counts, err := buildSnapshot(ctx, s.repo, nil)
	metrics.ObserveSync("full", err)
	if err != nil {
		s.logger.Error("构建全量快照失败", zap.Error(err))
		return syncFailure()
	}

	metrics.SetSnapshotCounts(counts.Locations, counts.Departments, counts.Employees)
	return &dto.SyncResponse{
		Data:          data,
		SyncTimestamp: nowFunc(),
		Success:       true,
		Message:       msgFullSyncOK,
		RecordCounts:  counts,
	}
}

// IncrementalSnapshot 水位线仅作用于地点层：
// 未修改地点下新增或修改的部门、员工不会被返回
func (s *directoryService) IncrementalSnapshot(ctx context.Context, since time.Time) *dto.SyncResponse {
	data, counts, err := buildSnapshot(ctx, s.repo, &since)
	metrics.ObserveSync("incremental", err)
	if err != nil {
		s.logger.Error("构建增量快照失败", zap.Time("since", since), zap.Error(err))
		return syncFailure()
	}

	if counts.Locations == 0 {
		return &dto.SyncResponse{
			Data:          map[string]map[string]dto.LocationGroup{},
			SyncTimestamp: nowFunc(),
			Success:       true,
			Message:       msgNoChanges,
		}
	}

	return &dto.SyncResponse{
		Data:          data,
		SyncTimestamp: nowFunc(),
		Success:       true,
		Message:       msgIncrementalSyncOK,
		RecordCounts:  counts,
	}
}

// buildSnapshot 启用地点按类型分组，since 非空时只取 record_add > since 的地点
func buildSnapshot(ctx context.Context, repo *repository.Repository, since *time.Time) (map[string]map[string]dto.LocationGroup, dto.RecordCounts, error) {
	locs, err := repo.Location.ListActive(ctx, repository.LocationFilter{Since: since})
	if err != nil {
		return nil, dto.RecordCounts{}, err
	}

	nested, counts, err := nestLocations(ctx, repo, locs)
	if err != nil {
		return nil, dto.RecordCounts{}, err
	}

	groups := make(map[string]dto.LocationGroup)
	for _, loc := range nested {
		key := model.LocationTypeGroupKey(loc.LocationTypeID)
		g := groups[key]
		g.Locations = append(g.Locations, loc)
		groups[key] = g
	}

	return map[string]map[string]dto.LocationGroup{snapshotRootKey: groups}, counts, nil
}

func syncFailure() *dto.SyncResponse {
	return &dto.SyncResponse{
		Data:          map[string]map[string]dto.LocationGroup{},
		SyncTimestamp: nowFunc(),
		Success:       false,
		Message:       msgSyncFailed,
	}
}

// ═══════════════════════════════════════════════════════════
// 状态与健康检查
// ═══════════════════════════════════════════════════════════

// SyncStatus 计数为整表启用行数，与快照的遍历计数口径不同
func (s *directoryService) SyncStatus(ctx context.Context) (*dto.SyncStatusResponse, error) {
	var counts dto.RecordCounts

	locs, err := s.repo.Location.CountActive(ctx)
	if err != nil {
		return nil, s.statusError(err)
	}
	depts, err := s.repo.Department.CountActive(ctx)
	if err != nil {
		return nil, s.statusError(err)
	}
	emps, err := s.repo.Employee.CountActive(ctx)
	if err != nil {
		return nil, s.statusError(err)
	}
	counts.Locations, counts.Departments, counts.Employees = int(locs), int(depts), int(emps)

	var latest *time.Time
	for _, fetch := range []func(context.Context) (*time.Time, error){
		s.repo.Employee.MaxRecordAdd,
		s.repo.Location.MaxRecordAdd,
		s.repo.Department.MaxRecordAdd,
	} {
		t, err := fetch(ctx)
		if err != nil {
			return nil, s.statusError(err)
		}
		if t != nil && (latest == nil || t.After(*latest)) {
			latest = t
		}
	}

	metrics.ObserveSync("status", nil)
	return &dto.SyncStatusResponse{
		LastModified: latest,
		RecordCounts: counts,
		ServerTime:   nowFunc(),
	}, nil
}

func (s *directoryService) statusError(err error) error {
	metrics.ObserveSync("status", err)
	s.logger.Error("查询同步状态失败", zap.Error(err))
	return err
}

func (s *directoryService) CanConnect(ctx context.Context) bool {
	return s.repo.Health.Ping(ctx) == nil
}

func (s *directoryService) Health(ctx context.Context) *dto.HealthResponse {
	resp := &dto.HealthResponse{
		Status:    "Unhealthy",
		Timestamp: nowFunc(),
		Database:  "Disconnected",
		Message:   healthMessage,
	}
	if !s.CanConnect(ctx) {
		return resp
	}

	resp.Status = "Healthy"
	resp.Database = "Connected"
	count, err := s.repo.Location.CountActive(ctx)
	if err != nil {
		s.logger.Warn("健康检查统计地点失败", zap.Error(err))
		return resp
	}
	resp.ActiveLocations = count
	return resp
}

// ═══════════════════════════════════════════════════════════
// 扁平导出
// ═══════════════════════════════════════════════════════════

// Export 四类数据并发查询，任一失败即整体失败
func (s *directoryService) Export(ctx context.Context) (*dto.DirectoryExport, error) {
	var (
		emps  []model.Employee
		depts []model.Department
		locs  []model.Location
		types []model.LocationType
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emps, err = s.repo.Employee.ListActive(gctx, repository.EmployeeFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		depts, err = s.repo.Department.ListActive(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		locs, err = s.repo.Location.ListActive(gctx, repository.LocationFilter{Order: repository.OrderByName})
		return err
	})
	g.Go(func() error {
		var err error
		types, err = s.repo.LocationType.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("导出目录数据失败", zap.Error(err))
		return nil, err
	}

	out := &dto.DirectoryExport{
		Employees:     toEmployeeResponses(emps),
		Departments:   make([]dto.DepartmentResponse, 0, len(depts)),
		Locations:     make([]dto.LocationResponse, 0, len(locs)),
		LocationTypes: toLocationTypeResponses(types),
		Timestamp:     nowFunc(),
	}
	for i := range depts {
		out.Departments = append(out.Departments, toDepartmentResponse(&depts[i]))
	}
	for i := range locs {
		out.Locations = append(out.Locations, toLocationResponse(&locs[i]))
	}
	return out, nil
}
