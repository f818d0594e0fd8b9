package statistics

import (
	"context"
	"fmt"
	"sync"

	notificationlog "github.com/fatflowers/bankgate/internal/app/service/notification_log"
	"github.com/fatflowers/bankgate/internal/app/service/verification"
	"github.com/fatflowers/bankgate/internal/models"
	"github.com/fatflowers/bankgate/pkg/types"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatisticType string

const (
	// Daily notification counts, labelled by response code
	StatisticTypeDailyNotificationCount StatisticType = "daily_notification_count"
	// Daily notification counts, labelled by partner bank code
	StatisticTypeDailyPartnerCount StatisticType = "daily_partner_count"
	// Daily success rate in basis points; value2 is the total, value3 the successes
	StatisticTypeDailySuccessRate StatisticType = "daily_success_rate"

	// Verified amounts, labelled by partner bank code
	StatisticTypeDailyVerifiedAmount StatisticType = "daily_verified_amount"
	StatisticTypeTotalVerifiedAmount StatisticType = "total_verified_amount"
)

var statisticTypes = []StatisticType{
	StatisticTypeDailyNotificationCount,
	StatisticTypeDailyPartnerCount,
	StatisticTypeDailySuccessRate,
	StatisticTypeDailyVerifiedAmount,
	StatisticTypeTotalVerifiedAmount,
}

// Filter types with custom SQL, applicable to a subset of statistics only.
type NotificationStatisticFilterType string

const (
	NotificationStatisticFilterTypeIsSuccess NotificationStatisticFilterType = "is_success"
)

var filterTypes = []NotificationStatisticFilterType{
	NotificationStatisticFilterTypeIsSuccess,
}

var validFilters = map[NotificationStatisticFilterType][]StatisticType{
	NotificationStatisticFilterTypeIsSuccess: {StatisticTypeDailyNotificationCount, StatisticTypeDailyPartnerCount},
}

type NotificationStatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type NotificationStatisticRequest struct {
	Filters   []*types.CommonFilter            `json:"filters"`
	DataItems []*NotificationStatisticDataItem `json:"data_items"`
}

// GetFilters drops the custom filters that do not apply to statisticType.
func (f *NotificationStatisticRequest) GetFilters(statisticType StatisticType) *NotificationStatisticRequest {
	if f == nil || len(f.Filters) == 0 {
		return f
	}
	var result NotificationStatisticRequest
	for _, filter := range f.Filters {
		if filter == nil {
			continue
		}
		if applicable, ok := validFilters[NotificationStatisticFilterType(filter.Field)]; ok {
			if lo.Contains(applicable, statisticType) {
				result.Filters = append(result.Filters, filter)
			}
		} else {
			result.Filters = append(result.Filters, filter)
		}
	}
	return &result
}

// validate rejects requests that cannot be answered. Custom filters take a
// single value; the rest must be audit log filters.
func (f *NotificationStatisticRequest) validate() error {
	if f == nil || len(f.DataItems) == 0 {
		return fmt.Errorf("%w: no data items requested", types.ErrInvalidRequest)
	}
	if lo.Contains(f.DataItems, nil) {
		return fmt.Errorf("%w: null data item", types.ErrInvalidRequest)
	}
	for _, di := range f.DataItems {
		if !lo.Contains(statisticTypes, di.ID) {
			return fmt.Errorf("%w: invalid data item id: %s", types.ErrInvalidRequest, di.ID)
		}
	}
	if lo.Contains(f.Filters, nil) {
		return fmt.Errorf("%w: null filter", types.ErrInvalidRequest)
	}
	var common []*types.CommonFilter
	for _, filter := range f.Filters {
		if lo.Contains(filterTypes, NotificationStatisticFilterType(filter.Field)) {
			if len(filter.Values) != 1 {
				return fmt.Errorf("%w: filter %s takes one value", types.ErrInvalidRequest, filter.Field)
			}
			continue
		}
		common = append(common, filter)
	}
	return notificationlog.FilterFields.Validate(common)
}

// Build composes a WHERE clause based on provided filters, with custom handling for
// is_success.
func (f *NotificationStatisticRequest) Build(builder clause.Builder) {
	var exprs []clause.Expression
	if f != nil {
		for _, filter := range f.Filters {
			if filter == nil || len(filter.Values) == 0 {
				continue
			}
			switch filter.Field {
			case string(NotificationStatisticFilterTypeIsSuccess):
				if fmt.Sprint(filter.Values[0]) == "true" {
					exprs = append(exprs, clause.Eq{Column: "response_code", Value: verification.OutcomeSuccess.Code()})
				} else {
					exprs = append(exprs, clause.Neq{Column: "response_code", Value: verification.OutcomeSuccess.Code()})
				}
			default:
				exprs = append(exprs, filter)
			}
		}
	}
	if len(exprs) == 0 {
		builder.WriteString("1=1")
		return
	}
	clause.And(exprs...).Build(builder)
}

type NotificationStatisticResponseDataItem struct {
	Date   string `json:"date"`
	Label  string `json:"label,omitempty"`
	Value  int64  `json:"value"`
	Value2 int64  `json:"value2,omitempty"`
	Value3 int64  `json:"value3,omitempty"`
}

type NotificationStatisticResponse struct {
	DataItems map[StatisticType][]NotificationStatisticResponseDataItem `json:"data_items"`
}

// Service aggregates the notification audit log.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

var Module = fx.Options(
	fx.Provide(New),
)

const dayExpr = "TO_CHAR(notification_time, 'YYYY-MM-DD')"

func (s *Service) table(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table((models.PaymentNotificationLog{}).TableName())
}

func where(request *NotificationStatisticRequest, typ StatisticType) clause.Where {
	return clause.Where{Exprs: []clause.Expression{request.GetFilters(typ)}}
}

func (s *Service) getDailyNotificationCount(ctx context.Context, request *NotificationStatisticRequest) ([]NotificationStatisticResponseDataItem, error) {
	var results []NotificationStatisticResponseDataItem
	q := s.table(ctx).
		Select(dayExpr + " as date, response_code as label, count(*) as value").
		Where(where(request, StatisticTypeDailyNotificationCount)).
		Group(dayExpr).
		Group("response_code").
		Order("date DESC, label ASC")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailyPartnerCount(ctx context.Context, request *NotificationStatisticRequest) ([]NotificationStatisticResponseDataItem, error) {
	var results []NotificationStatisticResponseDataItem
	q := s.table(ctx).
		Select(dayExpr + " as date, bank_code as label, count(*) as value").
		Where(where(request, StatisticTypeDailyPartnerCount)).
		Group(dayExpr).
		Group("bank_code").
		Order("date DESC, label ASC")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailySuccessRate(ctx context.Context, request *NotificationStatisticRequest) ([]NotificationStatisticResponseDataItem, error) {
	var results []NotificationStatisticResponseDataItem
	q := s.table(ctx).
		Select(dayExpr+` as date,
  CAST(ROUND(COUNT(*) FILTER (WHERE response_code = ?) * 10000.0 / COUNT(*)) AS BIGINT) as value,
  COUNT(*) as value2,
  COUNT(*) FILTER (WHERE response_code = ?) as value3`, verification.OutcomeSuccess.Code(), verification.OutcomeSuccess.Code()).
		Where(where(request, StatisticTypeDailySuccessRate)).
		Group(dayExpr).
		Order("date DESC")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailyVerifiedAmount(ctx context.Context, request *NotificationStatisticRequest) ([]NotificationStatisticResponseDataItem, error) {
	var results []NotificationStatisticResponseDataItem
	q := s.table(ctx).
		Select(dayExpr+" as date, bank_code as label, COALESCE(SUM((data->>'debitAmount')::bigint), 0) as value, count(*) as value2").
		Where("status = ?", models.PaymentNotificationLogStatusStored).
		Where(where(request, StatisticTypeDailyVerifiedAmount)).
		Group(dayExpr).
		Group("bank_code").
		Order("date DESC, label ASC")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getTotalVerifiedAmount(ctx context.Context, request *NotificationStatisticRequest) ([]NotificationStatisticResponseDataItem, error) {
	var results []NotificationStatisticResponseDataItem
	q := s.table(ctx).
		Select("bank_code as label, COALESCE(SUM((data->>'debitAmount')::bigint), 0) as value, count(*) as value2").
		Where("status = ?", models.PaymentNotificationLogStatusStored).
		Where(where(request, StatisticTypeTotalVerifiedAmount)).
		Group("bank_code").
		Order("label ASC")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getNotificationStatistic(ctx context.Context, request *NotificationStatisticRequest, dataItem *NotificationStatisticDataItem) ([]NotificationStatisticResponseDataItem, error) {
	switch dataItem.ID {
	case StatisticTypeDailyNotificationCount:
		return s.getDailyNotificationCount(ctx, request)
	case StatisticTypeDailyPartnerCount:
		return s.getDailyPartnerCount(ctx, request)
	case StatisticTypeDailySuccessRate:
		return s.getDailySuccessRate(ctx, request)
	case StatisticTypeDailyVerifiedAmount:
		return s.getDailyVerifiedAmount(ctx, request)
	case StatisticTypeTotalVerifiedAmount:
		return s.getTotalVerifiedAmount(ctx, request)
	default:
		return nil, fmt.Errorf("invalid data item id: %s", dataItem.ID)
	}
}

// skipped reports whether a custom filter in request excludes the data item.
func (f *NotificationStatisticRequest) skipped(id StatisticType) bool {
	for _, filter := range f.Filters {
		if filter == nil {
			continue
		}
		ft := NotificationStatisticFilterType(filter.Field)
		if lo.Contains(filterTypes, ft) && !lo.Contains(validFilters[ft], id) {
			return true
		}
	}
	return false
}

func (s *Service) GetNotificationStatistic(ctx context.Context, request *NotificationStatisticRequest) (*NotificationStatisticResponse, error) {
	if err := request.validate(); err != nil {
		return nil, err
	}
	var wg sync.WaitGroup
	errChan := make(chan error, len(request.DataItems))
	resChan := make(chan *lo.Entry[StatisticType, []NotificationStatisticResponseDataItem], len(request.DataItems))

	for _, item := range request.DataItems {
		wg.Add(1)
		go func(di *NotificationStatisticDataItem) {
			defer wg.Done()
			// gin.Recovery does not reach this goroutine
			defer func() {
				if r := recover(); r != nil {
					errChan <- fmt.Errorf("statistic %s panicked: %v", di.ID, r)
				}
			}()
			if request.skipped(di.ID) {
				resChan <- &lo.Entry[StatisticType, []NotificationStatisticResponseDataItem]{Key: di.ID, Value: nil}
				return
			}
			res, err := s.getNotificationStatistic(ctx, request, di)
			if err != nil {
				errChan <- err
				return
			}
			resChan <- &lo.Entry[StatisticType, []NotificationStatisticResponseDataItem]{Key: di.ID, Value: res}
		}(item)
	}

	// both channels are buffered for every item, so no sender blocks
	wg.Wait()
	close(errChan)
	close(resChan)
	if err, ok := <-errChan; ok {
		return nil, err
	}

	results := make(map[StatisticType][]NotificationStatisticResponseDataItem, len(request.DataItems))
	for entry := range resChan {
		results[entry.Key] = entry.Value
	}
	return &NotificationStatisticResponse{DataItems: results}, nil
}
