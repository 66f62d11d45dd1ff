package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"wisefido-tremor/internal/models"
)

// TremorTimeSeriesRepository 震颤时序数据仓库
//
// 每个 tick 写入一行 tremor_timeseries（持久化开启时），
// 供会话回放和报告导出查询。
type TremorTimeSeriesRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTremorTimeSeriesRepository 创建时序数据仓库
func NewTremorTimeSeriesRepository(db *sql.DB, logger *zap.Logger) *TremorTimeSeriesRepository {
	return &TremorTimeSeriesRepository{
		db:     db,
		logger: logger,
	}
}

// InsertSnapshot 写入一条快照记录
func (r *TremorTimeSeriesRepository) InsertSnapshot(snapshot *models.RealtimeSnapshot) error {
	query := `
		INSERT INTO tremor_timeseries (
			device_id, session_id, timestamp,
			accel_x, accel_y, accel_z,
			gyro_x, gyro_y, gyro_z,
			emg, ecg,
			severity, frequency, confidence,
			pred_tremor, pred_bradykinesia, pred_gait, pred_postural_instability,
			muscle_rigidity, dyskinesia, autonomic_dysfunction
		) VALUES (
			$1, $2, $3,
			$4, $5, $6,
			$7, $8, $9,
			$10, $11,
			$12, $13, $14,
			$15, $16, $17, $18,
			$19, $20, $21
		)
	`

	_, err := r.db.Exec(query,
		snapshot.DeviceID, snapshot.SessionID, snapshot.Timestamp,
		snapshot.Sample.Accelerometer.X, snapshot.Sample.Accelerometer.Y, snapshot.Sample.Accelerometer.Z,
		snapshot.Sample.Gyroscope.X, snapshot.Sample.Gyroscope.Y, snapshot.Sample.Gyroscope.Z,
		snapshot.Sample.EMG, snapshot.Sample.ECG,
		string(snapshot.Tremor.Severity), snapshot.Tremor.Frequency, snapshot.Tremor.Confidence,
		snapshot.Predictions.Tremor, snapshot.Predictions.Bradykinesia,
		snapshot.Predictions.Gait, snapshot.Predictions.PosturalInstability,
		snapshot.MedicalStatus.MuscleRigidity, snapshot.MedicalStatus.Dyskinesia,
		snapshot.MedicalStatus.AutonomicDysfunction,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tremor_timeseries: %w", err)
	}

	return nil
}

// GetLatestByDeviceID 获取设备最新的时序数据（按时间戳倒序）
func (r *TremorTimeSeriesRepository) GetLatestByDeviceID(deviceID string, limit int) ([]*models.RealtimeSnapshot, error) {
	query := `
		SELECT
			device_id, session_id, timestamp,
			accel_x, accel_y, accel_z,
			gyro_x, gyro_y, gyro_z,
			emg, ecg,
			severity, frequency, confidence,
			pred_tremor, pred_bradykinesia, pred_gait, pred_postural_instability,
			muscle_rigidity, dyskinesia, autonomic_dysfunction
		FROM tremor_timeseries
		WHERE device_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := r.db.Query(query, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tremor_timeseries: %w", err)
	}
	defer rows.Close()

	var results []*models.RealtimeSnapshot
	for rows.Next() {
		item := &models.RealtimeSnapshot{}
		var severity string
		err := rows.Scan(
			&item.DeviceID, &item.SessionID, &item.Timestamp,
			&item.Sample.Accelerometer.X, &item.Sample.Accelerometer.Y, &item.Sample.Accelerometer.Z,
			&item.Sample.Gyroscope.X, &item.Sample.Gyroscope.Y, &item.Sample.Gyroscope.Z,
			&item.Sample.EMG, &item.Sample.ECG,
			&severity, &item.Tremor.Frequency, &item.Tremor.Confidence,
			&item.Predictions.Tremor, &item.Predictions.Bradykinesia,
			&item.Predictions.Gait, &item.Predictions.PosturalInstability,
			&item.MedicalStatus.MuscleRigidity, &item.MedicalStatus.Dyskinesia,
			&item.MedicalStatus.AutonomicDysfunction,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tremor_timeseries row: %w", err)
		}
		item.Sample.Timestamp = item.Timestamp
		item.Tremor.Severity = models.Severity(severity)
		// 常量字段不入库
		item.MedicalStatus.Fatigue = models.StatusNormal
		item.MedicalStatus.SleepDisturbances = models.StatusNormal
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tremor_timeseries rows: %w", err)
	}

	return results, nil
}

// DeleteBySessionID 删除指定会话的全部记录（demo 数据清理）
func (r *TremorTimeSeriesRepository) DeleteBySessionID(sessionID string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM tremor_timeseries WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tremor_timeseries: %w", err)
	}
	return result.RowsAffected()
}
