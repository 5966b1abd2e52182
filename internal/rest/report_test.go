//go:build !integration

package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"olistInsights/domain"
	"olistInsights/pkg/apperrors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportService struct {
	groups []string
	err    error
}

func (s *stubReportService) GetReport(ctx context.Context, groups []string) (domain.Report, error) {
	s.groups = groups
	if s.err != nil {
		return domain.Report{}, s.err
	}
	return domain.Report{RunID: "run-42", Engine: "memory", Payment: &domain.PaymentReport{}}, nil
}

func (s *stubReportService) GetReportGroup(ctx context.Context, group string) (interface{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	if !domain.IsGroup(group) {
		return nil, apperrors.ErrUnknownGroup
	}
	return &domain.PaymentReport{}, nil
}

func newTestServer(svc ReportService) *echo.Echo {
	e := echo.New()
	h := NewReportHandler(svc, time.Second)
	e.GET("/health", h.Health)
	e.GET("/api/v1/reports", h.GetReport)
	e.GET("/api/v1/reports/:group", h.GetReportGroup)
	return e
}

func do(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestReportHandler_GetReport(t *testing.T) {
	svc := &stubReportService{}
	rec := do(newTestServer(svc), "/api/v1/reports")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "run-42")
	assert.Nil(t, svc.groups)
}

func TestReportHandler_GetReport_Groups(t *testing.T) {
	svc := &stubReportService{}
	rec := do(newTestServer(svc), "/api/v1/reports?groups=payment,%20revenue,")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"payment", "revenue"}, svc.groups)
}

func TestReportHandler_GetReport_InvalidGroup(t *testing.T) {
	rec := do(newTestServer(&stubReportService{}), "/api/v1/reports?groups=revenue,weather")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid group weather")
}

func TestReportHandler_GetReport_Errors(t *testing.T) {
	cases := map[string]struct {
		err  error
		code int
	}{
		"internal": {errors.New("db down"), http.StatusInternalServerError},
		"timeout":  {context.DeadlineExceeded, http.StatusGatewayTimeout},
		"missing":  {apperrors.ErrNotFound, http.StatusNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(newTestServer(&stubReportService{err: tc.err}), "/api/v1/reports")
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestReportHandler_GetReportGroup(t *testing.T) {
	e := newTestServer(&stubReportService{})

	assert.Equal(t, http.StatusOK, do(e, "/api/v1/reports/payment").Code)
	assert.Equal(t, http.StatusNotFound, do(e, "/api/v1/reports/weather").Code)
}

func TestReportHandler_Health(t *testing.T) {
	rec := do(newTestServer(&stubReportService{}), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
