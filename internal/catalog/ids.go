package catalog

import (
	"fmt"
	"sync/atomic"

	"github.com/bwmarrin/snowflake"
)

// IDSource hands out product identifiers. Implementations must never repeat
// a value, including across calls within the same millisecond.
type IDSource interface {
	NextID() int64
}

// SnowflakeIDs generates time-ordered 63-bit IDs.
type SnowflakeIDs struct {
	node *snowflake.Node
}

// NewSnowflakeIDs creates a generator for the given node number (0-1023).
func NewSnowflakeIDs(node int64) (*SnowflakeIDs, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &SnowflakeIDs{node: n}, nil
}

// NextID implements IDSource.
func (s *SnowflakeIDs) NextID() int64 {
	return s.node.Generate().Int64()
}

// Sequence is a monotonic counter. The zero value starts at 1.
type Sequence struct {
	last atomic.Int64
}

// NewSequence returns a counter whose next value is after+1.
func NewSequence(after int64) *Sequence {
	s := &Sequence{}
	s.last.Store(after)
	return s
}

// NextID implements IDSource.
func (s *Sequence) NextID() int64 {
	return s.last.Add(1)
}

// Observe moves the counter past id so it is never handed out again.
func (s *Sequence) Observe(id int64) {
	for {
		cur := s.last.Load()
		if id <= cur || s.last.CompareAndSwap(cur, id) {
			return
		}
	}
}
