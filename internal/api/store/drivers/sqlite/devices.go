package sqlite

import (
	"context"

	"github.com/breathehq/breathe/internal/api/domain"
)

type devicesRepo struct {
	q dbtx
}

func (r *devicesRepo) CreateDevice(ctx context.Context, d domain.Device) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO user_devices (id, user_id, device_type, browser, os, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.DeviceType, d.Browser, d.OS, d.CreatedAt)
	return mapConstraint(err)
}

func (r *devicesRepo) ListDevicesByUser(ctx context.Context, userID string) ([]domain.Device, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, user_id, device_type, browser, os, created_at
		FROM user_devices WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []domain.Device
	for rows.Next() {
		var d domain.Device
		if err := rows.Scan(&d.ID, &d.UserID, &d.DeviceType, &d.Browser, &d.OS, &d.CreatedAt); err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}
