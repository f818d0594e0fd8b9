package handlers

import (
	notificationlog "github.com/fatflowers/bankgate/internal/app/service/notification_log"
	"github.com/fatflowers/bankgate/internal/app/service/statistics"
	"github.com/fatflowers/bankgate/pkg/response"
)

// RespHealth wraps the health status in the standard envelope.
type RespHealth struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    map[string]string        `json:"data"`
}

// RespListNotificationLog wraps notification_log.ScanResponse in the standard envelope.
type RespListNotificationLog struct {
	Code    response.APIResponseCode     `json:"code"`
	Message string                       `json:"message"`
	Data    notificationlog.ScanResponse `json:"data"`
}

// RespStoredNotification wraps StoredNotificationResponse in the standard envelope.
type RespStoredNotification struct {
	Code    response.APIResponseCode   `json:"code"`
	Message string                     `json:"message"`
	Data    StoredNotificationResponse `json:"data"`
}

// RespNotificationStatistic wraps NotificationStatisticResponse in the standard envelope.
type RespNotificationStatistic struct {
	Code    response.APIResponseCode                 `json:"code"`
	Message string                                   `json:"message"`
	Data    statistics.NotificationStatisticResponse `json:"data"`
}
