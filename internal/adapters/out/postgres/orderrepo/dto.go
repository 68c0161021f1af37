// Package orderrepo persists the order aggregate: the orders row, its item
// snapshot and its append-only change log.
package orderrepo

import (
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO maps an order to the orders table. Items and changes live in their
// own tables and are loaded through preloads.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number       string     `gorm:"uniqueIndex:idx_orders_number;not null"`
	OwnerID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	DeliveryType string     `gorm:"not null"`
	Contact      ContactDTO `gorm:"embedded;embeddedPrefix:contact_"`
	Address      AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	DeliveryNote string     `gorm:"column:delivery_notes"`

	Subtotal     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ShippingCost decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total        decimal.Decimal `gorm:"type:numeric(14,2);not null"`

	Status      string `gorm:"index;not null"`
	PaidAt      *time.Time
	PreparedAt  *time.Time
	ReadyAt     *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Items   []ItemDTO   `gorm:"foreignKey:OrderID"`
	Changes []ChangeDTO `gorm:"foreignKey:OrderID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ContactDTO struct {
	Name  string
	Email string
	Phone string
}

type AddressDTO struct {
	Street string
	City   string
	Region string
}

// ItemDTO is one line of the cart snapshot, keyed by its position.
type ItemDTO struct {
	OrderID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position    int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID   string          `gorm:"not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// ChangeDTO is one change log entry. Entries are only ever inserted.
type ChangeDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null"`
	FromStatus string    `gorm:"not null"`
	ToStatus   string    `gorm:"not null"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	Notes      string
	ChangedAt  time.Time `gorm:"not null"`
}

func (ChangeDTO) TableName() string {
	return "order_changes"
}

func fromDomain(o *order.Order) OrderDTO {
	delivery := o.Delivery()
	contact := delivery.Contact()
	address := delivery.Address()
	ts := o.Timestamps()

	dto := OrderDTO{
		ID:           o.ID().Raw(),
		Number:       o.Number(),
		OwnerID:      o.OwnerID().Raw(),
		DeliveryType: delivery.Type().String(),
		Contact:      ContactDTO{Name: contact.Name, Email: contact.Email, Phone: contact.Phone},
		Address:      AddressDTO{Street: address.Street, City: address.City, Region: address.Region},
		DeliveryNote: delivery.Notes(),
		Subtotal:     o.Subtotal(),
		ShippingCost: o.ShippingCost(),
		Total:        o.Total(),
		Status:       o.Status().String(),
		PaidAt:       ts.PaidAt,
		PreparedAt:   ts.PreparedAt,
		ReadyAt:      ts.ReadyAt,
		ShippedAt:    ts.ShippedAt,
		DeliveredAt:  ts.DeliveredAt,
		CancelledAt:  ts.CancelledAt,
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}

	for i, item := range o.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:     dto.ID,
			Position:    i + 1,
			ProductID:   item.ProductID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
			Subtotal:    item.Subtotal(),
		})
	}
	dto.Changes = changesFromDomain(dto.ID, o.Changes())

	return dto
}

func changesFromDomain(orderID uuid.UUID, changes []order.Change) []ChangeDTO {
	dtos := make([]ChangeDTO, 0, len(changes))
	for _, c := range changes {
		dtos = append(dtos, ChangeDTO{
			ID:         c.ID().Raw(),
			OrderID:    orderID,
			FromStatus: c.From().String(),
			ToStatus:   c.To().String(),
			ActorID:    c.ActorID().Raw(),
			Notes:      c.Notes(),
			ChangedAt:  c.At(),
		})
	}
	return dtos
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	deliveryType, err := order.ParseDeliveryType(dto.DeliveryType)
	if err != nil {
		return nil, err
	}
	delivery, err := order.NewDeliveryInfo(
		deliveryType,
		order.Contact{Name: dto.Contact.Name, Email: dto.Contact.Email, Phone: dto.Contact.Phone},
		order.Address{Street: dto.Address.Street, City: dto.Address.City, Region: dto.Address.Region},
		dto.DeliveryNote,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, i := range dto.Items {
		item, itemErr := order.NewItem(i.ProductID, i.ProductName, i.Quantity, i.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	changes := make([]order.Change, 0, len(dto.Changes))
	for _, c := range dto.Changes {
		change, changeErr := changeToDomain(c)
		if changeErr != nil {
			return nil, changeErr
		}
		changes = append(changes, change)
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:           id,
		Number:       dto.Number,
		OwnerID:      ownerID,
		Delivery:     delivery,
		Items:        items,
		ShippingCost: dto.ShippingCost,
		Status:       status,
		Timestamps: order.Timestamps{
			PaidAt:      dto.PaidAt,
			PreparedAt:  dto.PreparedAt,
			ReadyAt:     dto.ReadyAt,
			ShippedAt:   dto.ShippedAt,
			DeliveredAt: dto.DeliveredAt,
			CancelledAt: dto.CancelledAt,
		},
		Changes:   changes,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}

func changeToDomain(dto ChangeDTO) (order.Change, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Change{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return order.Change{}, err
	}
	from, err := order.ParseStatus(dto.FromStatus)
	if err != nil {
		return order.Change{}, err
	}
	to, err := order.ParseStatus(dto.ToStatus)
	if err != nil {
		return order.Change{}, err
	}
	return order.RestoreChange(id, from, to, actorID, dto.Notes, dto.ChangedAt), nil
}
