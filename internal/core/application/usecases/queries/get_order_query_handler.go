package queries

import (
	"context"
	"database/sql"
	"errors"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// staffCapabilities may read every order; customers only read their own.
var staffCapabilities = []kernel.Capability{
	kernel.Administrator,
	kernel.Salesperson,
	kernel.Warehouse,
	kernel.Accountant,
}

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFound both for a missing order and for an order the
// actor may not see, so order numbers cannot be enumerated.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	db := h.db.WithContext(ctx)

	var (
		view    OrderView
		id      uuid.UUID
		ownerID uuid.UUID
	)
	row := db.Raw(`
		SELECT
			id, number, owner_id, delivery_type,
			contact_name, contact_email, contact_phone,
			address_street, address_city, address_region, delivery_notes,
			status, subtotal, shipping_cost, total,
			paid_at, prepared_at, ready_at, shipped_at, delivered_at, cancelled_at,
			created_at
		FROM orders
		WHERE number = ?
	`, query.Number()).Row()
	err := row.Scan(
		&id, &view.Number, &ownerID, &view.DeliveryType,
		&view.ContactName, &view.ContactEmail, &view.ContactPhone,
		&view.Address, &view.City, &view.Region, &view.Notes,
		&view.Status, &view.Subtotal, &view.ShippingCost, &view.Total,
		&view.PaidAt, &view.PreparedAt, &view.ReadyAt, &view.ShippedAt, &view.DeliveredAt, &view.CancelledAt,
		&view.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderView{}, errs.NewObjectNotFoundError("order", query.Number())
		}
		return OrderView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if view.OwnerID, err = kernel.UUIDFromBytes(ownerID[:]); err != nil {
		return OrderView{}, err
	}

	actor := query.Actor()
	if !actor.Can(staffCapabilities...) && !actor.ID().IsEqual(view.OwnerID) {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.Number())
	}

	if view.Items, err = h.items(db, id); err != nil {
		return OrderView{}, err
	}
	if view.Changes, err = h.changes(db, id); err != nil {
		return OrderView{}, err
	}

	return view, nil
}

func (h GetOrderQueryHandler) items(db *gorm.DB, orderID uuid.UUID) ([]OrderItemView, error) {
	rows, err := db.Raw(`
		SELECT product_id, product_name, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemView, 0)
	for rows.Next() {
		var item OrderItemView
		if err = rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h GetOrderQueryHandler) changes(db *gorm.DB, orderID uuid.UUID) ([]OrderChangeView, error) {
	rows, err := db.Raw(`
		SELECT from_status, to_status, actor_id, notes, changed_at
		FROM order_changes
		WHERE order_id = ?
		ORDER BY changed_at
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := make([]OrderChangeView, 0)
	for rows.Next() {
		var (
			change  OrderChangeView
			actorID uuid.UUID
		)
		if err = rows.Scan(&change.From, &change.To, &actorID, &change.Notes, &change.At); err != nil {
			return nil, err
		}
		if change.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}
	return changes, rows.Err()
}
