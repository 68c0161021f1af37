package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"
)

// CallbackURLs are the gateway redirect and notification targets sent with
// every preference.
type CallbackURLs struct {
	SuccessURL      string
	FailureURL      string
	PendingURL      string
	NotificationURL string
}

// CreatePaymentPreferenceCommandHandler asks the gateway for a checkout
// preference and records the resulting transaction.
//
// The gateway is called before any transaction is opened. A transaction is
// persisted only once the gateway has confirmed a preference id, so a failed
// or timed out call leaves nothing behind.
type CreatePaymentPreferenceCommandHandler struct {
	uowFactory PaymentUoWFactory
	gateway    ports.PaymentGatewayClient
	urls       CallbackURLs
}

func NewCreatePaymentPreferenceCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.PaymentGatewayClient,
	urls CallbackURLs,
) CreatePaymentPreferenceCommandHandler {
	return CreatePaymentPreferenceCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		urls:       urls,
	}
}

func (h CreatePaymentPreferenceCommandHandler) Handle(
	ctx context.Context,
	cmd CreatePaymentPreferenceCommand,
) (*payment.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().GetByNumber(ctx, cmd.Number())
	if err != nil {
		return nil, err
	}

	if o.Status() != order.Pending {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("order %s is %s, only pending orders accept payments", o.Number(), o.Status()),
		)
	}

	actor := cmd.Actor()
	if !actor.ID().IsEqual(o.OwnerID()) && !actor.Can(kernel.Administrator, kernel.Salesperson) {
		return nil, errs.NewPermissionError(actor.ID().String(), "pay order "+o.Number())
	}

	pref, err := h.gateway.CreatePreference(ctx, h.preferenceRequest(o))
	if err != nil {
		if errors.Is(err, errs.ErrGateway) {
			return nil, err
		}
		return nil, errs.NewGatewayError("create preference", err)
	}
	if strings.TrimSpace(pref.PreferenceID) == "" {
		return nil, errs.NewGatewayError("create preference", errors.New("gateway returned no preference id"))
	}

	tx, err := payment.NewTransaction(kernel.NewUUID(), o.ID(), pref.PreferenceID, pref.CheckoutURL, o.Total(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TransactionRepository().Add(ctx, tx); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (h CreatePaymentPreferenceCommandHandler) preferenceRequest(o *order.Order) ports.PreferenceRequest {
	return ports.PreferenceRequest{
		Items: []ports.PreferenceItem{{
			Title:     "Order #" + o.Number(),
			Quantity:  1,
			UnitPrice: o.Total(),
		}},
		ExternalReference: o.Number(),
		PayerEmail:        o.Delivery().Contact().Email,
		SuccessURL:        h.urls.SuccessURL,
		FailureURL:        h.urls.FailureURL,
		PendingURL:        h.urls.PendingURL,
		NotificationURL:   h.urls.NotificationURL,
	}
}
