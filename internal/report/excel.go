package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"wisefido-tremor/internal/models"
)

// SessionReportHeader 会话报告表头
var SessionReportHeader = []string{
	"Timestamp (ms)",
	"Accel X",
	"Accel Y",
	"Accel Z",
	"Gyro X",
	"Gyro Y",
	"Gyro Z",
	"EMG",
	"ECG",
	"Severity",
	"Frequency (Hz)",
	"Confidence",
	"Tremor Score",
	"Bradykinesia Score",
	"Gait Score",
	"Postural Instability Score",
	"Muscle Rigidity",
	"Dyskinesia",
	"Autonomic Dysfunction",
}

const sessionSheetName = "Session"

// GenerateSessionReport 生成会话报告 Excel 文件
//
// 每条保留的快照一行，录制停止时由服务层调用。
// snapshots 为空时只生成表头。
func GenerateSessionReport(sessionID string, snapshots []*models.RealtimeSnapshot) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	index, err := f.NewSheet(sessionSheetName)
	if err != nil {
		f.Close() // Close on error
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	// 第一行：会话信息
	if err := f.SetCellValue(sessionSheetName, "A1", "Session ID"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set session cell: %w", err)
	}
	if err := f.SetCellValue(sessionSheetName, "B1", sessionID); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set session cell: %w", err)
	}

	// 第二行：表头
	for i, header := range SessionReportHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sessionSheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell: %w", err)
		}
		if err := f.SetCellStyle(sessionSheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	// 数据行
	for rowIdx, snapshot := range snapshots {
		values := []interface{}{
			snapshot.Timestamp,
			snapshot.Sample.Accelerometer.X,
			snapshot.Sample.Accelerometer.Y,
			snapshot.Sample.Accelerometer.Z,
			snapshot.Sample.Gyroscope.X,
			snapshot.Sample.Gyroscope.Y,
			snapshot.Sample.Gyroscope.Z,
			snapshot.Sample.EMG,
			snapshot.Sample.ECG,
			string(snapshot.Tremor.Severity),
			snapshot.Tremor.Frequency,
			snapshot.Tremor.Confidence,
			snapshot.Predictions.Tremor,
			snapshot.Predictions.Bradykinesia,
			snapshot.Predictions.Gait,
			snapshot.Predictions.PosturalInstability,
			snapshot.MedicalStatus.MuscleRigidity,
			snapshot.MedicalStatus.Dyskinesia,
			snapshot.MedicalStatus.AutonomicDysfunction,
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+3)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to compute data cell: %w", err)
			}
			if err := f.SetCellValue(sessionSheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set data cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel file: %w", err)
	}

	return buf.Bytes(), nil
}
