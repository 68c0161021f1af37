package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Error is the body of every non-2xx JSON response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type WebhookAck struct {
	Status string `json:"status"`
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type Address struct {
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	Region string `json:"region,omitempty"`
}

type NewOrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type NewOrder struct {
	DeliveryType string           `json:"delivery_type"`
	Contact      Contact          `json:"contact"`
	Address      *Address         `json:"address,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	ShippingCost *decimal.Decimal `json:"shipping_cost,omitempty"`
	Items        []NewOrderItem   `json:"items"`
}

type CreatedOrder struct {
	Number string `json:"number"`
}

type OrderSummary struct {
	ID           openapi_types.UUID `json:"id"`
	Number       string             `json:"number"`
	Status       string             `json:"status"`
	DeliveryType string             `json:"delivery_type"`
	ContactName  string             `json:"contact_name"`
	Total        decimal.Decimal    `json:"total"`
	CreatedAt    time.Time          `json:"created_at"`
}

type OrderPage struct {
	Items    []OrderSummary `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type OrderChange struct {
	From    string             `json:"from"`
	To      string             `json:"to"`
	ActorID openapi_types.UUID `json:"actor_id"`
	Notes   string             `json:"notes,omitempty"`
	At      time.Time          `json:"at"`
}

type Order struct {
	ID           openapi_types.UUID `json:"id"`
	Number       string             `json:"number"`
	Status       string             `json:"status"`
	DeliveryType string             `json:"delivery_type"`
	Contact      Contact            `json:"contact"`
	Address      *Address           `json:"address,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	ShippingCost decimal.Decimal    `json:"shipping_cost"`
	Total        decimal.Decimal    `json:"total"`
	PaidAt       *time.Time         `json:"paid_at,omitempty"`
	PreparedAt   *time.Time         `json:"prepared_at,omitempty"`
	ReadyAt      *time.Time         `json:"ready_at,omitempty"`
	ShippedAt    *time.Time         `json:"shipped_at,omitempty"`
	DeliveredAt  *time.Time         `json:"delivered_at,omitempty"`
	CancelledAt  *time.Time         `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	Items        []OrderItem        `json:"items"`
	Changes      []OrderChange      `json:"changes"`
}

type Transition struct {
	Target   string `json:"target"`
	Expected string `json:"expected"`
	Notes    string `json:"notes,omitempty"`
}

type Payment struct {
	TransactionID openapi_types.UUID `json:"transaction_id"`
	PreferenceID  string             `json:"preference_id"`
	CheckoutURL   string             `json:"checkout_url"`
	Amount        decimal.Decimal    `json:"amount"`
	Status        string             `json:"status"`
}

type AuthorityResponse struct {
	Accepted bool   `json:"accepted"`
	Response string `json:"response,omitempty"`
}

type NewReconciliation struct {
	TransactionID openapi_types.UUID `json:"transaction_id"`
	InvoiceID     openapi_types.UUID `json:"invoice_id"`
}

type CreatedReconciliation struct {
	ID     openapi_types.UUID `json:"id"`
	Status string             `json:"status"`
}

type Reconciliation struct {
	ID            openapi_types.UUID `json:"id"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	OrderNumber   string             `json:"order_number"`
	TransactionID openapi_types.UUID `json:"transaction_id"`
	PreferenceID  string             `json:"preference_id,omitempty"`
	PaymentID     string             `json:"payment_id,omitempty"`
	ChargedAmount *decimal.Decimal   `json:"charged_amount,omitempty"`
	InvoiceID     openapi_types.UUID `json:"invoice_id"`
	InvoiceNumber string             `json:"invoice_number"`
	InvoicedTotal decimal.Decimal    `json:"invoiced_total"`
	CreatedAt     time.Time          `json:"created_at"`
}

type TransactionSummary struct {
	ID            openapi_types.UUID `json:"id"`
	OrderNumber   string             `json:"order_number"`
	PreferenceID  string             `json:"preference_id"`
	PaymentID     string             `json:"payment_id,omitempty"`
	Status        string             `json:"status"`
	Amount        decimal.Decimal    `json:"amount"`
	ChargedAmount *decimal.Decimal   `json:"charged_amount,omitempty"`
	SettledAt     *time.Time         `json:"settled_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

type TransactionPage struct {
	Items    []TransactionSummary `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

type InvoiceSummary struct {
	ID          openapi_types.UUID `json:"id"`
	Number      string             `json:"number"`
	OrderNumber string             `json:"order_number"`
	Status      string             `json:"status"`
	Net         decimal.Decimal    `json:"net"`
	Tax         decimal.Decimal    `json:"tax"`
	Total       decimal.Decimal    `json:"total"`
	TrackingID  string             `json:"tracking_id,omitempty"`
	HasPDF      bool               `json:"has_pdf"`
	IssuedAt    *time.Time         `json:"issued_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type InvoicePage struct {
	Items    []InvoiceSummary `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type Discrepancy struct {
	Notes string `json:"notes"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status   *string `form:"status,omitempty" json:"status,omitempty"`
	Page     *int    `form:"page,omitempty" json:"page,omitempty"`
	PageSize *int    `form:"page_size,omitempty" json:"page_size,omitempty"`
}

// ListReconciliationsParams defines parameters for ListReconciliations.
type ListReconciliationsParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListTransactionsParams defines parameters for ListTransactions.
type ListTransactionsParams struct {
	Status      *string `form:"status,omitempty" json:"status,omitempty"`
	OrderNumber *string `form:"order_number,omitempty" json:"order_number,omitempty"`
	Page        *int    `form:"page,omitempty" json:"page,omitempty"`
	PageSize    *int    `form:"page_size,omitempty" json:"page_size,omitempty"`
}

// ListInvoicesParams defines parameters for ListInvoices.
type ListInvoicesParams struct {
	Status      *string `form:"status,omitempty" json:"status,omitempty"`
	OrderNumber *string `form:"order_number,omitempty" json:"order_number,omitempty"`
	Page        *int    `form:"page,omitempty" json:"page,omitempty"`
	PageSize    *int    `form:"page_size,omitempty" json:"page_size,omitempty"`
}
