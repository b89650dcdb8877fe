package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/service"
)

// ── Mock 目录与导出服务 ──

type stubDirectory struct {
	snap *dto.SyncResponse
}

func (s *stubDirectory) FullSnapshot(_ context.Context) *dto.SyncResponse { return s.snap }
func (s *stubDirectory) IncrementalSnapshot(_ context.Context, _ time.Time) *dto.SyncResponse {
	return s.snap
}
func (s *stubDirectory) SyncStatus(_ context.Context) (*dto.SyncStatusResponse, error) {
	return &dto.SyncStatusResponse{}, nil
}
func (s *stubDirectory) CanConnect(_ context.Context) bool { return true }
func (s *stubDirectory) Health(_ context.Context) *dto.HealthResponse {
	return &dto.HealthResponse{Status: "Healthy"}
}
func (s *stubDirectory) Export(_ context.Context) (*dto.DirectoryExport, error) {
	return nil, errors.New("flat export should not be used by the CLI")
}

type stubWorkbook struct {
	err error
}

func (s *stubWorkbook) ExportWorkbook(_ context.Context) (*bytes.Buffer, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return bytes.NewBufferString("PK-xlsx"), "directory.xlsx", nil
}

func stubServices(snap *dto.SyncResponse, workbookErr error) *service.Service {
	return &service.Service{
		Directory: &stubDirectory{snap: snap},
		Export:    &stubWorkbook{err: workbookErr},
	}
}

func TestParseFormat(t *testing.T) {
	for _, raw := range []string{"json", "XLSX", " xlsx "} {
		_, err := parseFormat(raw)
		assert.NoError(t, err, raw)
	}

	_, err := parseFormat("csv")
	assert.Error(t, err)
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{{"migrate"}, {"export"}, {"user", "create"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestExportCmd_RejectsUnknownFormat(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"export", "--format", "csv", "--out", "x.csv"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --format")
}

func TestRunExport_JSONWritesFullSnapshot(t *testing.T) {
	snap := &dto.SyncResponse{
		Data:    map[string]map[string]dto.LocationGroup{"loctype": {"plant": {Locations: []dto.LocationDetailResponse{}}}},
		Success: true,
		Message: "Full directory sync completed",
	}
	out := filepath.Join(t.TempDir(), "directory.json")

	err := runExport(context.Background(), stubServices(snap, nil), exportOptions{format: "json", out: out})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Contains(t, body, "syncTimestamp")
	assert.Contains(t, body, "recordCounts")
	assert.Contains(t, body["data"], "loctype")
}

func TestRunExport_SnapshotFailureLeavesNoFile(t *testing.T) {
	snap := &dto.SyncResponse{Success: false, Message: "Failed to retrieve directory data"}
	out := filepath.Join(t.TempDir(), "directory.json")

	err := runExport(context.Background(), stubServices(snap, nil), exportOptions{format: "json", out: out})
	require.Error(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "存储失败时不应创建输出文件")
}

func TestRunExport_Workbook(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "directory.xlsx")

	require.NoError(t, runExport(context.Background(), stubServices(nil, nil), exportOptions{format: "xlsx", out: out}))
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "PK-xlsx", string(raw))

	failed := filepath.Join(dir, "failed.xlsx")
	err = runExport(context.Background(), stubServices(nil, errors.New("timeout")), exportOptions{format: "xlsx", out: failed})
	require.Error(t, err)
	_, statErr := os.Stat(failed)
	assert.True(t, os.IsNotExist(statErr))
}
