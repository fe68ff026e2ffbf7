package notification_log

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/fatflowers/mollie-ideal/internal/models"
	"github.com/fatflowers/mollie-ideal/pkg/types"
)

const maxScanSize = 200

// ScanFields are the columns admin listings may filter and sort on.
var ScanFields = map[string]bool{
	"object_id":         true,
	"mode":              true,
	"transaction_id":    true,
	"trace_id":          true,
	"status":            true,
	"notification_time": true,
	"created_at":        true,
}

var ErrInvalidScan = errors.New("notification_log: invalid scan request")

type ScanRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanResponse struct {
	Items []*models.PaymentNotificationLog `json:"items"`
	Total int64                            `json:"total"`
}

// Scanner lists stored notification logs.
type Scanner interface {
	Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error)
}

func (r *ScanRequest) normalize() error {
	if r.Size <= 0 {
		r.Size = 10
	}
	if r.Size > maxScanSize {
		r.Size = maxScanSize
	}
	if r.From < 0 {
		r.From = 0
	}
	if r.SortBy == "" {
		r.SortBy = "notification_time"
	}
	if !ScanFields[r.SortBy] {
		return fmt.Errorf("%w: sort by %q", ErrInvalidScan, r.SortBy)
	}
	for _, f := range r.Filters {
		if f == nil {
			return fmt.Errorf("%w: nil filter", ErrInvalidScan)
		}
		if err := f.Validate(ScanFields); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScan, err)
		}
	}
	return nil
}

// Scan returns a page of notification logs, newest first unless SortOrder is "asc".
func (s *Service) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", ErrInvalidScan)
	}
	if err := req.normalize(); err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Model(&models.PaymentNotificationLog{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{types.FiltersAnd(req.Filters)}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count notification logs: %w", err)
	}

	var rows []*models.PaymentNotificationLog
	q := tx.Limit(req.Size).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list notification logs: %w", err)
	}
	return &ScanResponse{Items: rows, Total: total}, nil
}
