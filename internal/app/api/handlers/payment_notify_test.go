package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/bankgate/internal/app/service/verification"
)

type stubProcessor struct {
	seen    *verification.PaymentNotification
	bindErr error
	ack     *verification.PaymentAcknowledgement
}

func (s *stubProcessor) HandleNotification(_ context.Context, n *verification.PaymentNotification, bindErr error) *verification.PaymentAcknowledgement {
	s.seen = n
	s.bindErr = bindErr
	return s.ack
}

func newNotifyRouter(h NotificationProcessor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterPaymentNotifyRoutes(r.Group("/api/v1/payment"), h, zap.NewNop().Sugar())
	RegisterLegacyNotifyRoutes(r.Group("/api"), h, zap.NewNop().Sugar())
	return r
}

func TestRegisterNotifyRoutes_RegistersEndpoints(t *testing.T) {
	r := newNotifyRouter(&stubProcessor{})

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	require.True(t, contains("POST /api/v1/payment/notify"))
	require.True(t, contains("POST /api/process"))
}

func TestApiPaymentNotify_ReturnsAcknowledgement(t *testing.T) {
	sum := "abc"
	stub := &stubProcessor{ack: &verification.PaymentAcknowledgement{
		Code: "00", Message: "Success", ResponseID: "resp-1", ResponseTime: "20240101120005", CheckSum: &sum,
	}}
	r := newNotifyRouter(stub)

	body, _ := json.Marshal(map[string]any{"tokenKey": "tok-1", "bankCode": "VNB", "debitAmount": 1000, "realAmount": "1000"})
	for _, path := range []string{"/api/v1/payment/notify", "/api/process"} {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"code":"00","message":"Success","responseId":"resp-1","responseTime":"20240101120005","checkSum":"abc"}`, w.Body.String())
		require.NoError(t, stub.bindErr)
		require.Equal(t, "tok-1", stub.seen.TokenKey)
		require.Equal(t, "VNB", stub.seen.BankCode)
		require.NotNil(t, stub.seen.DebitAmount)
		require.Equal(t, int64(1000), *stub.seen.DebitAmount)
	}
}

func TestApiPaymentNotify_MalformedBodyStillAnswers200(t *testing.T) {
	stub := &stubProcessor{ack: &verification.PaymentAcknowledgement{Code: "01", Message: "Invalid Input Data", ResponseID: "resp-2", ResponseTime: "20240101120005"}}
	r := newNotifyRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/notify", strings.NewReader(`{"tokenKey":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Error(t, stub.bindErr)
	require.JSONEq(t, `{"code":"01","message":"Invalid Input Data","responseId":"resp-2","responseTime":"20240101120005","checkSum":null}`, w.Body.String())
}

func TestApiPaymentNotify_EndToEndInvalidInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/process", ApiPaymentNotify(pipelineProcessor{}, zap.NewNop().Sugar()))

	req := httptest.NewRequest(http.MethodPost, "/api/process", strings.NewReader(`{"debitAmount":"not-a-number"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var ack verification.PaymentAcknowledgement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	require.Equal(t, "01", ack.Code)
	require.Nil(t, ack.CheckSum)
	require.NotEmpty(t, ack.ResponseID)
	require.Len(t, ack.ResponseTime, 14)
}

// pipelineProcessor answers through validation only, the way the real
// handler does for an undecodable body.
type pipelineProcessor struct{}

func (pipelineProcessor) HandleNotification(_ context.Context, n *verification.PaymentNotification, bindErr error) *verification.PaymentAcknowledgement {
	if bindErr != nil || !verification.Valid(n) {
		o := verification.OutcomeInvalidInput
		return &verification.PaymentAcknowledgement{Code: o.Code(), Message: o.Message(), ResponseID: "resp-x", ResponseTime: "20240101120005"}
	}
	return &verification.PaymentAcknowledgement{Code: "00"}
}
