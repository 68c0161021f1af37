// Package idgen issues time-ordered int64 ids backed by snowflake.
package idgen

import (
	"checkout/internal/pkg/errs"

	"github.com/bwmarrin/snowflake"
)

// SnowflakeGenerator implements ports.IDGenerator. Each replica needs its own
// node number.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

func NewSnowflakeGenerator(node int64) (*SnowflakeGenerator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("snowflake node", err)
	}
	return &SnowflakeGenerator{node: n}, nil
}

func (g *SnowflakeGenerator) NextID() int64 {
	return g.node.Generate().Int64()
}
