package document

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Renderer implements ports.DocumentRenderer.
type Renderer struct {
	location *time.Location
	itemName string
}

type Option func(*Renderer)

// WithLocation sets the time zone used for dates printed on documents.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.location = loc
		}
	}
}

// WithItemName sets the description of the single detail line.
func WithItemName(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.itemName = name
		}
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		location: time.UTC,
		itemName: "Online order",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
