package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/KJohnson82/MMPD/internal/dto"
	"github.com/KJohnson82/MMPD/internal/model"
	"github.com/KJohnson82/MMPD/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 目录导出接口
//
// 设计说明：
//   - 导出以 bytes.Buffer 返回，由 Handler 或 CLI 决定写入 HTTP 响应还是文件
//   - Excel 格式：每个地点类型一个 Sheet，每行一名员工；无员工的部门、无部门的地点各占一行
type ExportService interface {
	// ExportWorkbook 导出全量快照为 Excel
	ExportWorkbook(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// sheetOrder Sheet 的固定顺序
var sheetOrder = []string{
	model.GroupCorporate,
	model.GroupMetalMart,
	model.GroupServiceCenter,
	model.GroupPlant,
	model.GroupUnknown,
}

var sheetHeaders = []string{
	"Location", "Number", "City", "State", "Department", "Manager",
	"First Name", "Last Name", "Job Title", "Phone", "Extension", "Cell Phone", "Email",
}

// ═══════════════════════════════════════════════════════════
// ExportWorkbook 导出目录为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportWorkbook(ctx context.Context) (*bytes.Buffer, string, error) {
	data, _, err := buildSnapshot(ctx, s.repo, nil)
	if err != nil {
		s.logger.Error("构建导出快照失败", zap.Error(err))
		return nil, "", err
	}
	groups := data[snapshotRootKey]

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	first := true
	for _, key := range sheetOrder {
		group, ok := groups[key]
		if !ok {
			continue
		}
		sheetName := key
		idx, err := f.NewSheet(sheetName)
		if err != nil {
			s.logger.Error("创建 Sheet 失败", zap.String("sheet", sheetName), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
		if first {
			f.SetActiveSheet(idx)
			first = false
		}
		writeSheet(f, sheetName, group.Locations, headerStyle)
	}

	if first {
		// 没有任何启用地点时保留一个只有表头的 Sheet
		f.SetSheetName("Sheet1", "directory")
		writeSheet(f, "directory", nil, headerStyle)
	} else {
		// 删除默认 Sheet1
		f.DeleteSheet("Sheet1")
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("directory_%s.xlsx", nowFunc().Format("20060102_150405"))
	return buf, filename, nil
}

func writeSheet(f *excelize.File, sheet string, locs []dto.LocationDetailResponse, headerStyle int) {
	for i, h := range sheetHeaders {
		f.SetCellValue(sheet, cell(colName(i), 1), h)
		f.SetColWidth(sheet, colName(i), colName(i), 18)
	}
	f.SetCellStyle(sheet, cell(colName(0), 1), cell(colName(len(sheetHeaders)-1), 1), headerStyle)

	row := 2
	for _, loc := range locs {
		number := ""
		if loc.Number != nil {
			number = strconv.Itoa(*loc.Number)
		}
		locCols := []string{loc.Name, number, loc.City, loc.State}

		if len(loc.Departments) == 0 {
			setRow(f, sheet, row, locCols)
			row++
			continue
		}
		for _, dept := range loc.Departments {
			deptCols := append(append([]string{}, locCols...), dept.Name, str(dept.ManagerName))
			if len(dept.Employees) == 0 {
				setRow(f, sheet, row, deptCols)
				row++
				continue
			}
			for _, emp := range dept.Employees {
				setRow(f, sheet, row, append(append([]string{}, deptCols...),
					emp.FirstName, emp.LastName, emp.JobTitle, emp.Phone,
					str(emp.Extension), str(emp.CellPhone), emp.Email))
				row++
			}
		}
	}
}

// ── 辅助函数 ──

func setRow(f *excelize.File, sheet string, row int, values []string) {
	for i, v := range values {
		f.SetCellValue(sheet, cell(colName(i), row), v)
	}
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
