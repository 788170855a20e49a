package service

import (
	"context"
	"time"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/store"
	"github.com/breathehq/breathe/pkg/idx"
)

type DeviceService struct {
	Store store.Store
}

// RecordDevice stores one device/browser report for the caller.
func (s *DeviceService) RecordDevice(ctx context.Context, userID, deviceType, browser, os string) (domain.Device, error) {
	d := domain.Device{
		ID:         idx.New().String(),
		UserID:     userID,
		DeviceType: deviceType,
		Browser:    browser,
		OS:         os,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Store.Devices().CreateDevice(ctx, d); err != nil {
		return domain.Device{}, err
	}
	return d, nil
}

// ListDevices returns the caller's reported devices, newest first.
func (s *DeviceService) ListDevices(ctx context.Context, userID string) ([]domain.Device, error) {
	return s.Store.Devices().ListDevicesByUser(ctx, userID)
}
