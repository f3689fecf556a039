package api

import (
	"fmt"

	"github.com/valyala/fasthttp"
)

// @Summary Проверка здоровья сервиса
// @Tags    Admin
// @Success 200 {object} okResponse
// @Router  /health [get]
func (s *Service) healthHandler(ctx *fasthttp.RequestCtx) {
	ok(ctx)
}

// @Summary Обработанные сообщения импорта
// @Tags    Admin
// @Produce json
// @Success 200 {array} dto.KafkaEvent
// @Failure 501 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /imports/events [get]
func (s *Service) listImportEvents(ctx *fasthttp.RequestCtx) {
	if s.events == nil {
		writeError(ctx, fasthttp.StatusNotImplemented, ErrImportsNotAvailable)
		return
	}

	rows, err := s.events.ListEvents(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("events.ListEvents: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Сообщения импорта, попавшие в DLQ
// @Tags    Admin
// @Produce json
// @Success 200 {array} dto.KafkaDLQ
// @Failure 501 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /imports/dlq [get]
func (s *Service) listImportDLQ(ctx *fasthttp.RequestCtx) {
	if s.events == nil {
		writeError(ctx, fasthttp.StatusNotImplemented, ErrImportsNotAvailable)
		return
	}

	rows, err := s.events.ListDLQ(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("events.ListDLQ: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}
