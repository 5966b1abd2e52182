package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"olistInsights/domain"
	"olistInsights/pkg/apperrors"
	"olistInsights/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	ReportHandler struct {
		reportService ReportService
		validate      *validator.Validate
		timeout       time.Duration
	}

	ReportService interface {
		GetReport(ctx context.Context, groups []string) (domain.Report, error)
		GetReportGroup(ctx context.Context, group string) (interface{}, error)
	}
)

var groupRule = "oneof=" + strings.Join(domain.Groups, " ")

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func NewReportHandler(reportService ReportService, timeout time.Duration) *ReportHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ReportHandler{
		reportService: reportService,
		validate:      validator.New(),
		timeout:       timeout,
	}
}

// GetReport serves the full report. ?groups=revenue,payment narrows it.
func (h *ReportHandler) GetReport(c echo.Context) error {
	var groups []string
	if raw := strings.TrimSpace(c.QueryParam("groups")); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}
			if err := h.validate.Var(g, groupRule); err != nil {
				return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid group " + g})
			}
			groups = append(groups, g)
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.reportService.GetReport(ctx, groups)
	if err != nil {
		return h.fail(c, "Failed to build report", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

func (h *ReportHandler) GetReportGroup(c echo.Context) error {
	group := c.Param("group")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	section, err := h.reportService.GetReportGroup(ctx, group)
	if err != nil {
		return h.fail(c, "Failed to build report group", err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(section))
}

func (h *ReportHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ReportHandler) fail(c echo.Context, msg string, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrUnknownGroup), errors.Is(err, apperrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error(msg, err)
		return c.JSON(http.StatusGatewayTimeout, ResponseError{Message: "report computation timed out"})
	default:
		logger.Error(msg, err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}
