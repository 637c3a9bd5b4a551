package arena

import (
	"fmt"

	"github.com/vovakirdan/blockpong/internal/core"
)

// Category distinguishes how a block reacts to hits.
type Category int

const (
	CategoryDestructible Category = iota
	CategoryIndestructible
	CategoryBonus    // Spawns an item when destroyed
	CategoryMultiHit // Destructible with resistance above one
)

func (c Category) String() string {
	switch c {
	case CategoryIndestructible:
		return "indestructible"
	case CategoryBonus:
		return "bonus"
	case CategoryMultiHit:
		return "multi-hit"
	default:
		return "destructible"
	}
}

// Destructible reports whether blocks of this category count toward
// clearing a level.
func (c Category) Destructible() bool {
	return c != CategoryIndestructible
}

// BlockSpec is the static description of a block inside a level.
type BlockSpec struct {
	X, Y       float64 // Top-left corner in field units
	W, H       float64
	Resistance int
	Category   Category
	Color      core.Color
}

// Block is a rectangular obstacle in the field.
type Block struct {
	X, Y       float64
	W, H       float64
	Resistance int
	Category   Category
	Active     bool
	Color      core.Color
}

// NewBlock builds an active block from its spec.
func NewBlock(spec BlockSpec) (*Block, error) {
	if spec.W <= 0 || spec.H <= 0 {
		return nil, fmt.Errorf("%w: block size must be positive, got %vx%v", ErrInvalidConfig, spec.W, spec.H)
	}
	res := spec.Resistance
	if spec.Category != CategoryIndestructible && res < 1 {
		res = 1
	}
	return &Block{
		X: spec.X, Y: spec.Y, W: spec.W, H: spec.H,
		Resistance: res,
		Category:   spec.Category,
		Active:     true,
		Color:      spec.Color,
	}, nil
}

// Bounds returns the block rectangle.
func (b *Block) Bounds() core.Box {
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

// IsActive reports whether the block is still in play.
func (b *Block) IsActive() bool { return b.Active }

// Hit registers one ball impact and reports whether it destroyed the block.
// Indestructible blocks ignore hits.
func (b *Block) Hit() bool {
	if !b.Active || b.Category == CategoryIndestructible {
		return false
	}
	b.Resistance--
	if b.Resistance > 0 {
		return false
	}
	b.Resistance = 0
	b.Active = false
	return true
}
