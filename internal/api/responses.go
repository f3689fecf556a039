package api

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"
)

var (
	ErrEmployeeIDInvalid   = errors.New("поле id должно быть положительным целым числом")
	ErrEmailRequired       = errors.New("required field 'email'")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmailAlreadyExists  = errors.New("employee with this email already exists")
	ErrImportsNotAvailable = errors.New("import consumer is not configured")
)

type okResponse struct {
	Status string `json:"status" example:"ok"`
}

type errorResponse struct {
	Code    string `json:"code" example:"Not Found"`
	Message string `json:"message" example:"employee not found with id: 42"`
}

func writeJSON(ctx *fasthttp.RequestCtx, statusCode int, body any) {
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.SetStatusCode(statusCode)

	_ = json.NewEncoder(ctx).Encode(body)
}

func ok(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, okResponse{Status: "ok"})
}

func writeError(ctx *fasthttp.RequestCtx, httpStatus int, err error) {
	writeJSON(ctx, httpStatus, errorResponse{Code: fasthttp.StatusMessage(httpStatus), Message: err.Error()})
}
