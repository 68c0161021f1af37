package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"checkout/internal/adapters/in/http/api"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/invoice"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/domain/model/reconciliation"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, m *metrics.Metrics, logger *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		metrics:  m,
		logger:   logger.Named("http"),
	}
}

// ReceivePaymentWebhook handles POST /payments/webhook. The gateway only gets
// an error back when the event could not be stored; every stored event is
// acknowledged, whatever its disposition.
func (s *Server) ReceivePaymentWebhook(ctx echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, commands.MaxWebhookBodySize+1))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, api.Error{
			Code:    http.StatusBadRequest,
			Message: "Failed to read request body",
		})
	}

	cmd, err := commands.NewApplyPaymentWebhookCommand(body)
	if err != nil {
		return s.fail(ctx, err)
	}

	disposition, err := s.handlers.ApplyWebhook.Handle(ctx.Request().Context(), cmd)
	if errors.Is(err, commands.ErrWebhookNotRecorded) {
		s.logger.Error("webhook event not recorded", zap.Error(err))
		return ctx.JSON(http.StatusServiceUnavailable, api.Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Notification could not be recorded",
		})
	}

	s.metrics.WebhookDisposition(disposition.String())
	if err != nil {
		s.logger.Warn("webhook event not processed",
			zap.Stringer("disposition", disposition),
			zap.Error(err),
		)
	}

	return ctx.JSON(http.StatusOK, api.WebhookAck{Status: "ok"})
}

// CreateOrder handles POST /api/v1/orders - places an order for the caller.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req api.NewOrder
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, api.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := newCreateOrderCommand(req, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	number, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.CreatedOrder{Number: number})
}

func newCreateOrderCommand(req api.NewOrder, actor kernel.Actor) (commands.CreateOrderCommand, error) {
	deliveryType, err := order.ParseDeliveryType(req.DeliveryType)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	var address order.Address
	if req.Address != nil {
		address = order.Address{
			Street: req.Address.Street,
			City:   req.Address.City,
			Region: req.Address.Region,
		}
	}

	delivery, err := order.NewDeliveryInfo(deliveryType, order.Contact{
		Name:  req.Contact.Name,
		Email: req.Contact.Email,
		Phone: req.Contact.Phone,
	}, address, req.Notes)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		item, itemErr := order.NewItem(line.ProductID, line.ProductName, line.Quantity, line.UnitPrice)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, itemErr
		}
		items = append(items, item)
	}

	shippingCost := decimal.Zero
	if req.ShippingCost != nil {
		shippingCost = *req.ShippingCost
	}

	return commands.NewCreateOrderCommand(kernel.NewUUID(), actor, delivery, items, shippingCost)
}

// ListOrders handles GET /api/v1/orders - pages through the orders visible
// to the caller.
func (s *Server) ListOrders(ctx echo.Context, params api.ListOrdersParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var status *order.Status
	if params.Status != nil {
		parsed, parseErr := order.ParseStatus(*params.Status)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		status = &parsed
	}

	query, err := queries.NewListOrdersQuery(status, deref(params.Page), deref(params.PageSize), actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	page, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := api.OrderPage{
		Items:    make([]api.OrderSummary, len(page.Items)),
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	for i, o := range page.Items {
		response.Items[i] = api.OrderSummary{
			ID:           o.ID.Raw(),
			Number:       o.Number,
			Status:       o.Status,
			DeliveryType: o.DeliveryType,
			ContactName:  o.ContactName,
			Total:        o.Total,
			CreatedAt:    o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListTransactions handles GET /api/v1/transactions - accountants look up the
// transaction ids a reconciliation needs here.
func (s *Server) ListTransactions(ctx echo.Context, params api.ListTransactionsParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var status *payment.Status
	if params.Status != nil {
		parsed, parseErr := payment.ParseStatus(*params.Status)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		status = &parsed
	}

	query, err := queries.NewListTransactionsQuery(status, derefString(params.OrderNumber),
		deref(params.Page), deref(params.PageSize), actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	page, err := s.handlers.ListTransactions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := api.TransactionPage{
		Items:    make([]api.TransactionSummary, len(page.Items)),
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	for i, tx := range page.Items {
		response.Items[i] = api.TransactionSummary{
			ID:            tx.ID.Raw(),
			OrderNumber:   tx.OrderNumber,
			PreferenceID:  tx.PreferenceID,
			PaymentID:     tx.PaymentID,
			Status:        tx.Status,
			Amount:        tx.Amount,
			ChargedAmount: tx.ChargedAmount,
			SettledAt:     tx.SettledAt,
			CreatedAt:     tx.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListInvoices handles GET /api/v1/invoices.
func (s *Server) ListInvoices(ctx echo.Context, params api.ListInvoicesParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var status *invoice.Status
	if params.Status != nil {
		parsed, parseErr := invoice.ParseStatus(*params.Status)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		status = &parsed
	}

	query, err := queries.NewListInvoicesQuery(status, derefString(params.OrderNumber),
		deref(params.Page), deref(params.PageSize), actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	page, err := s.handlers.ListInvoices.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := api.InvoicePage{
		Items:    make([]api.InvoiceSummary, len(page.Items)),
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	for i, inv := range page.Items {
		response.Items[i] = api.InvoiceSummary{
			ID:          inv.ID.Raw(),
			Number:      inv.Number,
			OrderNumber: inv.OrderNumber,
			Status:      inv.Status,
			Net:         inv.Net,
			Tax:         inv.Tax,
			Total:       inv.Total,
			TrackingID:  inv.TrackingID,
			HasPDF:      inv.HasArtifact,
			IssuedAt:    inv.IssuedAt,
			CreatedAt:   inv.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{number}.
func (s *Server) GetOrder(ctx echo.Context, number string) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(number, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(view))
}

func toOrderResponse(view queries.OrderView) api.Order {
	response := api.Order{
		ID:           view.ID.Raw(),
		Number:       view.Number,
		Status:       view.Status,
		DeliveryType: view.DeliveryType,
		Contact: api.Contact{
			Name:  view.ContactName,
			Email: view.ContactEmail,
			Phone: view.ContactPhone,
		},
		Notes:        view.Notes,
		Subtotal:     view.Subtotal,
		ShippingCost: view.ShippingCost,
		Total:        view.Total,
		PaidAt:       view.PaidAt,
		PreparedAt:   view.PreparedAt,
		ReadyAt:      view.ReadyAt,
		ShippedAt:    view.ShippedAt,
		DeliveredAt:  view.DeliveredAt,
		CancelledAt:  view.CancelledAt,
		CreatedAt:    view.CreatedAt,
		Items:        make([]api.OrderItem, len(view.Items)),
		Changes:      make([]api.OrderChange, len(view.Changes)),
	}

	if view.Address != "" {
		response.Address = &api.Address{
			Street: view.Address,
			City:   view.City,
			Region: view.Region,
		}
	}

	for i, item := range view.Items {
		response.Items[i] = api.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
	}

	for i, change := range view.Changes {
		response.Changes[i] = api.OrderChange{
			From:    change.From,
			To:      change.To,
			ActorID: change.ActorID.Raw(),
			Notes:   change.Notes,
			At:      change.At,
		}
	}

	return response
}

// TransitionOrder handles POST /api/v1/orders/{number}/transitions.
func (s *Server) TransitionOrder(ctx echo.Context, number string) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req api.Transition
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, api.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.ParseStatus(req.Target)
	if err != nil {
		return s.fail(ctx, err)
	}

	expected, err := order.ParseStatus(req.Expected)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(number, target, expected, actor, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	err = s.handlers.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	s.metrics.OrderTransition(target.String(), err)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreatePayment handles POST /api/v1/orders/{number}/payments - opens a
// gateway checkout for a pending order.
func (s *Server) CreatePayment(ctx echo.Context, number string) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreatePaymentPreferenceCommand(number, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	tx, err := s.handlers.CreatePayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.Payment{
		TransactionID: tx.ID().Raw(),
		PreferenceID:  tx.PreferenceID(),
		CheckoutURL:   tx.CheckoutURL(),
		Amount:        tx.Amount(),
		Status:        tx.Status().String(),
	})
}

// IssueInvoice handles POST /api/v1/invoices/{id}/issue - runs the pending
// steps of the invoice pipeline right away instead of waiting for the job.
func (s *Server) IssueInvoice(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	if !actor.Can(kernel.Accountant, kernel.Administrator) {
		return s.fail(ctx, errs.NewPermissionError(actor.ID().String(), "issue invoices"))
	}

	invoiceID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewProcessInvoicePipelineCommand(invoiceID)
	if err != nil {
		return s.fail(ctx, err)
	}

	err = s.handlers.ProcessInvoice.Handle(ctx.Request().Context(), cmd)
	s.metrics.InvoicePipeline("api", err)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordAuthorityResponse handles POST /api/v1/invoices/{id}/authority-response.
func (s *Server) RecordAuthorityResponse(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req api.AuthorityResponse
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, api.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	invoiceID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRecordAuthorityResponseCommand(invoiceID, req.Accepted, req.Response, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.RecordAuthorityResponse.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetInvoicePdf handles GET /api/v1/invoices/{id}/pdf.
func (s *Server) GetInvoicePdf(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	invoiceID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetInvoiceArtifactQuery(invoiceID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	artifact, err := s.handlers.GetInvoiceArtifact.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("inline; filename=%q", artifact.FileName()))
	return ctx.Blob(http.StatusOK, "application/pdf", artifact.PDF)
}

// ListReconciliations handles GET /api/v1/reconciliations. Without a status
// filter the pending ones are listed.
func (s *Server) ListReconciliations(ctx echo.Context, params api.ListReconciliationsParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	status := reconciliation.Pending
	if params.Status != nil {
		if status, err = reconciliation.ParseStatus(*params.Status); err != nil {
			return s.fail(ctx, err)
		}
	}

	query, err := queries.NewListReconciliationsQuery(status, deref(params.Limit), actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.handlers.ListReconciliations.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.Reconciliation, len(views))
	for i, v := range views {
		response[i] = api.Reconciliation{
			ID:            v.ID.Raw(),
			Status:        v.Status,
			Notes:         v.Notes,
			OrderNumber:   v.OrderNumber,
			TransactionID: v.TransactionID.Raw(),
			PreferenceID:  v.PreferenceID,
			PaymentID:     v.PaymentID,
			ChargedAmount: v.ChargedAmount,
			InvoiceID:     v.InvoiceID.Raw(),
			InvoiceNumber: v.InvoiceNumber,
			InvoicedTotal: v.InvoicedTotal,
			CreatedAt:     v.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateReconciliation handles POST /api/v1/reconciliations.
func (s *Server) CreateReconciliation(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req api.NewReconciliation
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, api.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	transactionID, txErr := kernel.UUIDFromBytes(req.TransactionID[:])
	invoiceID, invErr := kernel.UUIDFromBytes(req.InvoiceID[:])
	if err = errors.Join(txErr, invErr); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateReconciliationCommand(transactionID, invoiceID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	rec, err := s.handlers.CreateReconciliation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.CreatedReconciliation{
		ID:     rec.ID().Raw(),
		Status: rec.Status().String(),
	})
}

// MarkReconciled handles POST /api/v1/reconciliations/{id}/reconcile.
func (s *Server) MarkReconciled(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	reconciliationID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewMarkReconciledCommand(reconciliationID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.MarkReconciled.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkDiscrepancy handles POST /api/v1/reconciliations/{id}/discrepancy.
func (s *Server) MarkDiscrepancy(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req api.Discrepancy
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, api.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	reconciliationID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewMarkDiscrepancyCommand(reconciliationID, actor, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.MarkDiscrepancy.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// fail writes the JSON error response for err. Internal details are only
// exposed for client errors.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusCode(err)
	message := err.Error()
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("route", ctx.Path()),
			zap.Error(err),
		)
		message = http.StatusText(code)
	}

	return ctx.JSON(code, api.Error{
		Code:    code,
		Message: message,
	})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, errMissingActor):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, errs.ErrUnknownTransaction):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrDuplicateInvoice),
		errors.Is(err, errs.ErrAlreadyReconciled),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, errs.ErrGateway):
		return http.StatusServiceUnavailable
	case errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
