package arena

import (
	"fmt"
)

// ItemKind names a power-up.
type ItemKind int

const (
	ItemSpeedBoost ItemKind = iota
	ItemFog
	ItemResize
)

func (k ItemKind) String() string {
	switch k {
	case ItemSpeedBoost:
		return "speed"
	case ItemFog:
		return "fog"
	case ItemResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Item is a timed effect. Lifecycle: Inactive -> Active (Apply) -> Inactive
// (Deactivate or expiry). A spent item is inert until Reset.
type Item interface {
	Kind() ItemKind
	Duration() float64
	Remaining() float64
	IsActive() bool
	// Expired reports whether the item has run its course and can be pruned.
	Expired() bool
	// Target returns the entity the item was applied to, or nil.
	Target() any

	Apply(target any) error
	Tick(dt float64) error
	Deactivate() error
	Reset()
}

// Capabilities an item target may expose. Items check for the one they need
// and refuse anything else.
type (
	SpeedAdjustable interface {
		Speed() float64
		SetSpeed(float64)
	}
	Resizable interface {
		HalfHeight() float64
		SetHalfHeight(float64)
	}
	Foggable interface {
		Fogged() bool
		SetFogged(bool)
	}
)

// itemBase carries the countdown shared by every item.
type itemBase struct {
	duration  float64
	remaining float64
	active    bool
	spent     bool
	target    any
}

func (b *itemBase) Duration() float64  { return b.duration }
func (b *itemBase) Remaining() float64 { return b.remaining }
func (b *itemBase) IsActive() bool     { return b.active }
func (b *itemBase) Expired() bool      { return b.spent }
func (b *itemBase) Target() any        { return b.target }

// begin checks that the item may be applied. ok is false for the
// already-active no-op.
func (b *itemBase) begin(kind ItemKind, target any) (ok bool, err error) {
	if b.active {
		return false, nil
	}
	if b.spent {
		return false, fmt.Errorf("%w: %s item already spent", ErrContractViolation, kind)
	}
	if target == nil {
		return false, fmt.Errorf("%w: %s item applied to nil target", ErrContractViolation, kind)
	}
	return true, nil
}

func (b *itemBase) activate(target any) {
	b.target = target
	b.remaining = b.duration
	b.active = true
}

// tick counts down and returns true once the duration has elapsed.
func (b *itemBase) tick(dt float64) (bool, error) {
	if dt <= 0 {
		return false, fmt.Errorf("%w: non-positive time delta %v", ErrContractViolation, dt)
	}
	if !b.active {
		return false, nil
	}
	b.remaining -= dt
	return b.remaining <= 0, nil
}

func (b *itemBase) finish() {
	b.active = false
	b.spent = true
	b.remaining = 0
	b.target = nil
}

func incompatible(kind ItemKind, target any) error {
	return fmt.Errorf("%w: %s item cannot modify %T", ErrContractViolation, kind, target)
}

// SpeedBoost multiplies the target's speed while active.
type SpeedBoost struct {
	itemBase
	factor   float64
	previous float64
}

// NewSpeedBoost creates an inactive speed boost.
func NewSpeedBoost(factor, duration float64) *SpeedBoost {
	return &SpeedBoost{itemBase: itemBase{duration: duration}, factor: factor}
}

func (s *SpeedBoost) Kind() ItemKind { return ItemSpeedBoost }

func (s *SpeedBoost) Apply(target any) error {
	ok, err := s.begin(ItemSpeedBoost, target)
	if !ok {
		return err
	}
	t, ok := target.(SpeedAdjustable)
	if !ok {
		return incompatible(ItemSpeedBoost, target)
	}
	s.previous = t.Speed()
	t.SetSpeed(s.previous * s.factor)
	s.activate(target)
	return nil
}

func (s *SpeedBoost) Tick(dt float64) error {
	done, err := s.tick(dt)
	if err != nil || !done {
		return err
	}
	return s.Deactivate()
}

func (s *SpeedBoost) Deactivate() error {
	if !s.active {
		return nil
	}
	if t, ok := s.target.(SpeedAdjustable); ok {
		t.SetSpeed(s.previous)
	}
	s.finish()
	return nil
}

func (s *SpeedBoost) Reset() {
	_ = s.Deactivate()
	s.spent = false
}

// Fog marks the target as fogged while active. Purely visual.
type Fog struct {
	itemBase
	previous bool
}

// NewFog creates an inactive fog item.
func NewFog(duration float64) *Fog {
	return &Fog{itemBase: itemBase{duration: duration}}
}

func (f *Fog) Kind() ItemKind { return ItemFog }

func (f *Fog) Apply(target any) error {
	ok, err := f.begin(ItemFog, target)
	if !ok {
		return err
	}
	t, ok := target.(Foggable)
	if !ok {
		return incompatible(ItemFog, target)
	}
	f.previous = t.Fogged()
	t.SetFogged(true)
	f.activate(target)
	return nil
}

func (f *Fog) Tick(dt float64) error {
	done, err := f.tick(dt)
	if err != nil || !done {
		return err
	}
	return f.Deactivate()
}

func (f *Fog) Deactivate() error {
	if !f.active {
		return nil
	}
	if t, ok := f.target.(Foggable); ok {
		t.SetFogged(f.previous)
	}
	f.finish()
	return nil
}

func (f *Fog) Reset() {
	_ = f.Deactivate()
	f.spent = false
}

// Resize scales the target's half-height while active.
type Resize struct {
	itemBase
	factor   float64
	previous float64
}

// NewResize creates an inactive resize item.
func NewResize(factor, duration float64) *Resize {
	return &Resize{itemBase: itemBase{duration: duration}, factor: factor}
}

func (r *Resize) Kind() ItemKind { return ItemResize }

func (r *Resize) Apply(target any) error {
	ok, err := r.begin(ItemResize, target)
	if !ok {
		return err
	}
	t, ok := target.(Resizable)
	if !ok {
		return incompatible(ItemResize, target)
	}
	r.previous = t.HalfHeight()
	t.SetHalfHeight(r.previous * r.factor)
	r.activate(target)
	return nil
}

func (r *Resize) Tick(dt float64) error {
	done, err := r.tick(dt)
	if err != nil || !done {
		return err
	}
	return r.Deactivate()
}

func (r *Resize) Deactivate() error {
	if !r.active {
		return nil
	}
	if t, ok := r.target.(Resizable); ok {
		t.SetHalfHeight(r.previous)
	}
	r.finish()
	return nil
}

func (r *Resize) Reset() {
	_ = r.Deactivate()
	r.spent = false
}

// ItemFactory creates the item dropped by a destroyed bonus block.
// Returning nil means no drop.
type ItemFactory interface {
	NewItem(block *Block) Item
}

// ItemFactoryFunc adapts a function to ItemFactory.
type ItemFactoryFunc func(block *Block) Item

func (f ItemFactoryFunc) NewItem(block *Block) Item { return f(block) }

// WeightedItemFactory picks an item kind by weight.
type WeightedItemFactory struct {
	cfg ItemConfig
	rng *SimpleRNG
}

// NewWeightedItemFactory creates the default factory.
func NewWeightedItemFactory(cfg ItemConfig, rng *SimpleRNG) *WeightedItemFactory {
	return &WeightedItemFactory{cfg: cfg, rng: rng}
}

// NewItem rolls an item kind and builds it.
func (f *WeightedItemFactory) NewItem(_ *Block) Item {
	total := f.cfg.WeightSpeed + f.cfg.WeightFog + f.cfg.WeightResize
	if total <= 0 {
		return nil
	}
	roll := f.rng.Intn(total)
	switch {
	case roll < f.cfg.WeightSpeed:
		return NewSpeedBoost(f.cfg.SpeedFactor, f.cfg.SpeedDuration)
	case roll < f.cfg.WeightSpeed+f.cfg.WeightFog:
		return NewFog(f.cfg.FogDuration)
	default:
		return NewResize(f.cfg.ResizeFactor, f.cfg.ResizeDuration)
	}
}
