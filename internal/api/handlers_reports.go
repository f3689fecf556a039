package api

import (
	"bytes"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/srimathim2003/Employee-Management/internal/report"
)

// @Summary Выгрузка сотрудников в Excel
// @Tags    Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} errorResponse "Внутренняя ошибка"
// @Router  /reports/employees.xlsx [get]
func (s *Service) exportEmployees(ctx *fasthttp.RequestCtx) {
	rows, err := s.employees.GetAllEmployees(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("employees.GetAllEmployees: %w", err))
		return
	}

	var buf bytes.Buffer
	if err := report.WriteEmployees(&buf, rows); err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("report.WriteEmployees: %w", err))
		return
	}

	ctx.Response.Header.Set("Content-Type", report.ContentType)
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="employees.xlsx"`)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(buf.Bytes())
}
