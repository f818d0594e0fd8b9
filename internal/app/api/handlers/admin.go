package handlers

import (
	"context"
	"errors"
	"net/http"

	notificationlog "github.com/fatflowers/bankgate/internal/app/service/notification_log"
	"github.com/fatflowers/bankgate/internal/app/service/statistics"
	"github.com/fatflowers/bankgate/internal/app/service/store"
	"github.com/fatflowers/bankgate/pkg/response"
	"github.com/fatflowers/bankgate/pkg/types"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
)

// NotificationLogScanner lists audit log rows.
type NotificationLogScanner interface {
	Scan(ctx context.Context, req *notificationlog.ScanRequest) (*notificationlog.ScanResponse, error)
}

// NotificationStatistics aggregates the audit log.
type NotificationStatistics interface {
	GetNotificationStatistic(ctx context.Context, req *statistics.NotificationStatisticRequest) (*statistics.NotificationStatisticResponse, error)
}

// StoredNotificationReader reads back a stored notification payload.
type StoredNotificationReader interface {
	Get(ctx context.Context, partnerCode, tokenKey string) ([]byte, error)
}

type GetStoredNotificationRequest struct {
	BankCode string `json:"bank_code" form:"bank_code"`
	TokenKey string `json:"token_key" form:"token_key"`
}

type StoredNotificationResponse struct {
	BankCode     string          `json:"bank_code"`
	TokenKey     string          `json:"token_key"`
	Notification json.RawMessage `json:"notification" swaggertype:"object"`
}

// @Summary      List Payment Notification Log (Admin)
// @Description  Retrieves a paginated and filterable list of processed payment notifications.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body notification_log.ScanRequest true "List request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespListNotificationLog
// @Router       /api/v1/admin/list_notification_log [post]
// ApiListNotificationLog handles POST /api/v1/admin/list_notification_log
func ApiListNotificationLog(svc NotificationLogScanner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req notificationlog.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.Scan(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, queryError(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Get Stored Notification (Admin)
// @Description  Reads the payload recorded for a (bank_code, token_key) pair.
// @Tags         Admin
// @Produce      json
// @Param        bank_code query string true "Partner bank code"
// @Param        token_key query string true "Notification token key"
// @Success      200  {object}  handlers.RespStoredNotification
// @Router       /api/v1/admin/stored_notification [get]
// ApiGetStoredNotification handles GET /api/v1/admin/stored_notification
func ApiGetStoredNotification(st StoredNotificationReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GetStoredNotificationRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.BankCode == "" || req.TokenKey == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "missing bank_code or token_key"))
			return
		}
		payload, err := st.Get(c.Request.Context(), req.BankCode, req.TokenKey)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeNotFound, "notification not found"))
			return
		}
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&StoredNotificationResponse{
			BankCode:     req.BankCode,
			TokenKey:     req.TokenKey,
			Notification: json.RawMessage(payload),
		}))
	}
}

// @Summary      Get Notification Statistics (Admin)
// @Description  Retrieves daily notification statistics from the audit log.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body statistics.NotificationStatisticRequest true "Statistic request parameters"
// @Success      200  {object}  handlers.RespNotificationStatistic
// @Router       /api/v1/admin/get_notification_statistic [post]
// ApiGetNotificationStatistic handles POST /api/v1/admin/get_notification_statistic
func ApiGetNotificationStatistic(svc NotificationStatistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.NotificationStatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.GetNotificationStatistic(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, queryError(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// queryError answers caller mistakes with 40000 and everything else with 50000.
func queryError(err error) *response.APIResponse[any] {
	if errors.Is(err, types.ErrInvalidRequest) {
		return response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error())
	}
	return response.ErrorT[any](response.APIResponseCodeError, err.Error())
}

func RegisterAdminRoutes(r gin.IRouter, logs NotificationLogScanner, stats NotificationStatistics, st StoredNotificationReader) {
	r.POST("/list_notification_log", ApiListNotificationLog(logs))
	r.POST("/get_notification_statistic", ApiGetNotificationStatistic(stats))
	r.GET("/stored_notification", ApiGetStoredNotification(st))
}
