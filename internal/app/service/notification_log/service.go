package notification_log

import (
	"context"
	"fmt"

	"github.com/fatflowers/bankgate/internal/models"
	"github.com/fatflowers/bankgate/pkg/logctx"
	"github.com/fatflowers/bankgate/pkg/tool"
	"github.com/fatflowers/bankgate/pkg/types"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

var Module = fx.Options(
	fx.Provide(New),
)

// Save asynchronously persists a payment notification log. Nil input is ignored.
func (s *Service) Save(ctx context.Context, log *models.PaymentNotificationLog) {
	if log == nil {
		return
	}
	if log.ID == "" {
		log.ID = tool.GenerateUUIDV7()
	}
	// the request context is cancelled once the response is written
	saveCtx := context.WithoutCancel(ctx)
	go func() {
		if err := s.db.WithContext(saveCtx).Save(log).Error; err != nil {
			logctx.FromCtx(saveCtx, s.log).Errorf("failed to save notification log: %v", err)
		}
	}()
}

// ScanRequest filters, paginates and sorts audit log rows.
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

// FilterFields are the audit log fields accepted in filters. The jsonb paths
// read the stored notification body.
var FilterFields = types.NewFilterFields(
	"bank_code",
	"token_key",
	"trace_id",
	"trace_transfer",
	"response_code",
	"response_id",
	"status",
	"notification_time",
	"created_at",
	"data->>'orderCode'",
	"data->>'accountNo'",
	"data->>'mobile'",
	"data->>'payDate'",
)

var sortableColumns = map[string]bool{
	"created_at":        true,
	"notification_time": true,
	"bank_code":         true,
	"response_code":     true,
}

// normalize applies pagination defaults and rejects unknown sort columns and
// filters outside FilterFields.
func (r *ScanRequest) normalize() error {
	if r.Size <= 0 {
		r.Size = 10
	}
	if r.Size > 200 {
		r.Size = 200
	}
	if r.From < 0 {
		r.From = 0
	}
	if r.SortBy == "" {
		r.SortBy = "created_at"
	}
	if !sortableColumns[r.SortBy] {
		return fmt.Errorf("%w: unsupported sort_by: %s", types.ErrInvalidRequest, r.SortBy)
	}
	return FilterFields.Validate(r.Filters)
}

// filtersAnd is a helper to combine multiple CommonFilter into a single clause.Expression
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// Scan implements the admin listing with filters.
func (s *Service) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil scan request", types.ErrInvalidRequest)
	}
	if err := req.normalize(); err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Model(&models.PaymentNotificationLog{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}
	// count and page run on their own copies of the filtered statement
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count notification logs: %w", err)
	}

	var rows []*models.PaymentNotificationLog
	q := tx.Limit(req.Size).Offset(req.From).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list notification logs: %w", err)
	}

	return &ScanResponse{Items: rows, Total: total}, nil
}
