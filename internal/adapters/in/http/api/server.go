// Package api holds the HTTP contract of the checkout service: the OpenAPI
// document, its request and response types and the echo routing glue that
// binds path and query parameters before calling a ServerInterface.
package api

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

//go:embed openapi.yaml
var openapiSpec []byte

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Payment gateway notification
	// (POST /payments/webhook)
	ReceivePaymentWebhook(ctx echo.Context) error

	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error

	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error

	// (GET /api/v1/orders/{number})
	GetOrder(ctx echo.Context, number string) error

	// (POST /api/v1/orders/{number}/transitions)
	TransitionOrder(ctx echo.Context, number string) error

	// (POST /api/v1/orders/{number}/payments)
	CreatePayment(ctx echo.Context, number string) error

	// (GET /api/v1/transactions)
	ListTransactions(ctx echo.Context, params ListTransactionsParams) error

	// (GET /api/v1/invoices)
	ListInvoices(ctx echo.Context, params ListInvoicesParams) error

	// (POST /api/v1/invoices/{id}/issue)
	IssueInvoice(ctx echo.Context, id openapi_types.UUID) error

	// (POST /api/v1/invoices/{id}/authority-response)
	RecordAuthorityResponse(ctx echo.Context, id openapi_types.UUID) error

	// (GET /api/v1/invoices/{id}/pdf)
	GetInvoicePdf(ctx echo.Context, id openapi_types.UUID) error

	// (GET /api/v1/reconciliations)
	ListReconciliations(ctx echo.Context, params ListReconciliationsParams) error

	// (POST /api/v1/reconciliations)
	CreateReconciliation(ctx echo.Context) error

	// (POST /api/v1/reconciliations/{id}/reconcile)
	MarkReconciled(ctx echo.Context, id openapi_types.UUID) error

	// (POST /api/v1/reconciliations/{id}/discrepancy)
	MarkDiscrepancy(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ReceivePaymentWebhook(ctx echo.Context) error {
	return w.Handler.ReceivePaymentWebhook(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	var params ListOrdersParams

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "page_size", ctx.QueryParams(), &params.PageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page_size: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	number, err := bindOrderNumber(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetOrder(ctx, number)
}

func (w *ServerInterfaceWrapper) TransitionOrder(ctx echo.Context) error {
	number, err := bindOrderNumber(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.TransitionOrder(ctx, number)
}

func (w *ServerInterfaceWrapper) CreatePayment(ctx echo.Context) error {
	number, err := bindOrderNumber(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CreatePayment(ctx, number)
}

func (w *ServerInterfaceWrapper) ListTransactions(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	var params ListTransactionsParams

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "order_number", ctx.QueryParams(), &params.OrderNumber)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter order_number: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "page_size", ctx.QueryParams(), &params.PageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page_size: %s", err))
	}

	return w.Handler.ListTransactions(ctx, params)
}

func (w *ServerInterfaceWrapper) ListInvoices(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	var params ListInvoicesParams

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "order_number", ctx.QueryParams(), &params.OrderNumber)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter order_number: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "page_size", ctx.QueryParams(), &params.PageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page_size: %s", err))
	}

	return w.Handler.ListInvoices(ctx, params)
}

func (w *ServerInterfaceWrapper) IssueInvoice(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.IssueInvoice(ctx, id)
}

func (w *ServerInterfaceWrapper) RecordAuthorityResponse(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.RecordAuthorityResponse(ctx, id)
}

func (w *ServerInterfaceWrapper) GetInvoicePdf(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetInvoicePdf(ctx, id)
}

func (w *ServerInterfaceWrapper) ListReconciliations(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	var params ListReconciliationsParams

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.ListReconciliations(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateReconciliation(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CreateReconciliation(ctx)
}

func (w *ServerInterfaceWrapper) MarkReconciled(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.MarkReconciled(ctx, id)
}

func (w *ServerInterfaceWrapper) MarkDiscrepancy(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.MarkDiscrepancy(ctx, id)
}

func bindOrderNumber(ctx echo.Context) (string, error) {
	var number string
	err := runtime.BindStyledParameterWithOptions("simple", "number", ctx.Param("number"), &number,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter number: %s", err))
	}
	return number, nil
}

func bindID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is the subset of echo routing used by RegisterHandlers. Both
// *echo.Echo and *echo.Group satisfy it.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL, with the
// path prefix taken from the contract as is.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/payments/webhook", wrapper.ReceivePaymentWebhook)
	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:number", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:number/transitions", wrapper.TransitionOrder)
	router.POST(baseURL+"/api/v1/orders/:number/payments", wrapper.CreatePayment)
	router.GET(baseURL+"/api/v1/transactions", wrapper.ListTransactions)
	router.GET(baseURL+"/api/v1/invoices", wrapper.ListInvoices)
	router.POST(baseURL+"/api/v1/invoices/:id/issue", wrapper.IssueInvoice)
	router.POST(baseURL+"/api/v1/invoices/:id/authority-response", wrapper.RecordAuthorityResponse)
	router.GET(baseURL+"/api/v1/invoices/:id/pdf", wrapper.GetInvoicePdf)
	router.GET(baseURL+"/api/v1/reconciliations", wrapper.ListReconciliations)
	router.POST(baseURL+"/api/v1/reconciliations", wrapper.CreateReconciliation)
	router.POST(baseURL+"/api/v1/reconciliations/:id/reconcile", wrapper.MarkReconciled)
	router.POST(baseURL+"/api/v1/reconciliations/:id/discrepancy", wrapper.MarkDiscrepancy)
}

// GetSwagger returns the parsed and validated OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading openapi document: %w", err)
	}
	if err = swagger.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return swagger, nil
}
