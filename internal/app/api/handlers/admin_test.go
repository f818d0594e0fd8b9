package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	notificationlog "github.com/fatflowers/bankgate/internal/app/service/notification_log"
	"github.com/fatflowers/bankgate/internal/app/service/statistics"
	"github.com/fatflowers/bankgate/internal/app/service/store"
	"github.com/fatflowers/bankgate/internal/models"
	"github.com/fatflowers/bankgate/pkg/types"
)

type stubScanner struct {
	req *notificationlog.ScanRequest
	err error
}

func (s *stubScanner) Scan(_ context.Context, req *notificationlog.ScanRequest) (*notificationlog.ScanResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &notificationlog.ScanResponse{
		Items: []*models.PaymentNotificationLog{{ID: "log-1", BankCode: "VNB", TokenKey: "tok-1", ResponseCode: "00", Status: models.PaymentNotificationLogStatusStored}},
		Total: 1,
	}, nil
}

type stubStats struct{}

func (stubStats) GetNotificationStatistic(_ context.Context, req *statistics.NotificationStatisticRequest) (*statistics.NotificationStatisticResponse, error) {
	if len(req.DataItems) == 0 {
		return nil, fmt.Errorf("%w: no data items requested", types.ErrInvalidRequest)
	}
	return &statistics.NotificationStatisticResponse{DataItems: map[statistics.StatisticType][]statistics.NotificationStatisticResponseDataItem{
		statistics.StatisticTypeDailySuccessRate: {{Date: "2024-01-01", Value: 9950, Value2: 200, Value3: 199}},
	}}, nil
}

type stubReader map[string][]byte

func (s stubReader) Get(_ context.Context, partnerCode, tokenKey string) ([]byte, error) {
	if p, ok := s[partnerCode+"/"+tokenKey]; ok {
		return p, nil
	}
	if partnerCode == "ERR" {
		return nil, errors.New("redis down")
	}
	return nil, store.ErrNotFound
}

func newAdminRouter(scan NotificationLogScanner, st StoredNotificationReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterAdminRoutes(r.Group("/api/v1/admin"), scan, stubStats{}, st)
	return r
}

func TestApiListNotificationLog(t *testing.T) {
	scan := &stubScanner{}
	r := newAdminRouter(scan, stubReader{})

	body := []byte(`{"filters":[{"field":"bank_code","operator":"eq","values":["VNB"]}],"from":0,"size":20,"sort_by":"created_at","sort_order":"desc"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/list_notification_log", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":0`)
	require.Contains(t, w.Body.String(), `"token_key":"tok-1"`)
	require.Contains(t, w.Body.String(), `"total":1`)
	require.Equal(t, 20, scan.req.Size)
	require.Len(t, scan.req.Filters, 1)
}

func TestApiListNotificationLog_Errors(t *testing.T) {
	r := newAdminRouter(&stubScanner{err: fmt.Errorf("%w: unsupported sort_by: secret", types.ErrInvalidRequest)}, stubReader{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/list_notification_log", bytes.NewReader([]byte(`{"sort_by":"secret"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"code":40000`)

	r = newAdminRouter(&stubScanner{err: errors.New("failed to count notification logs: conn refused")}, stubReader{})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/list_notification_log", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Contains(t, w.Body.String(), `"code":50000`)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/list_notification_log", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Contains(t, w.Body.String(), `"code":40000`)
}

func TestApiGetStoredNotification(t *testing.T) {
	r := newAdminRouter(&stubScanner{}, stubReader{"VNB/tok-1": []byte(`{"tokenKey":"tok-1"}`)})

	cases := []struct {
		query string
		want  string
	}{
		{"bank_code=VNB&token_key=tok-1", `"notification":{"tokenKey":"tok-1"}`},
		{"bank_code=VNB&token_key=missing", `"code":40400`},
		{"bank_code=ERR&token_key=tok-1", `"code":50000`},
		{"bank_code=VNB", `"code":40000`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stored_notification?"+tc.query, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), tc.want, tc.query)
	}
}

func TestApiGetNotificationStatistic(t *testing.T) {
	r := newAdminRouter(&stubScanner{}, stubReader{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/get_notification_statistic", bytes.NewReader([]byte(`{"data_items":[{"id":"daily_success_rate"}]}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"daily_success_rate":[{"date":"2024-01-01","value":9950,"value2":200,"value3":199}]`)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/get_notification_statistic", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Contains(t, w.Body.String(), `"code":40000`)
}

func TestAdminQueries_RejectMalformedBodies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterAdminRoutes(r.Group("/api/v1/admin"), notificationlog.New(nil, zap.NewNop().Sugar()), statistics.New(nil), stubReader{})

	cases := []struct {
		path string
		body string
	}{
		{"list_notification_log", `{"filters":[null]}`},
		{"list_notification_log", `{"filters":[{"field":"1=1 OR data->>'x'","operator":"eq","values":["x"]}]}`},
		{"list_notification_log", `{"filters":[{"field":"bank_code","operator":"eq","values":[]}]}`},
		{"get_notification_statistic", `{"data_items":[null]}`},
		{"get_notification_statistic", `{"filters":[null],"data_items":[{"id":"daily_partner_count"}]}`},
		{"get_notification_statistic", `{"filters":[{"field":"1=1 OR data->>'x'","operator":"eq","values":["x"]}],"data_items":[{"id":"daily_partner_count"}]}`},
		{"get_notification_statistic", `{"filters":[{"field":"bank_code","operator":"between","values":["a"]}],"data_items":[{"id":"daily_partner_count"}]}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/"+tc.path, bytes.NewReader([]byte(tc.body)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		require.NotPanics(t, func() { r.ServeHTTP(w, req) }, tc.body)
		require.Equal(t, http.StatusOK, w.Code, tc.body)
		require.Contains(t, w.Body.String(), `"code":40000`, tc.body)
	}
}
