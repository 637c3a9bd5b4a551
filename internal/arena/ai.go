package arena

import (
	"fmt"
	"math"

	"github.com/vovakirdan/blockpong/internal/core"
)

const (
	MinAILevel = 1
	MaxAILevel = 10

	maxReactionDelay   = 2.0 // Seconds
	maxErrorAmplitude  = 40  // Pixels
	horizontalVelocity = 1e-9
)

// Difficulty controls how often the CPU paddle re-plans and how far off its
// aim may be.
type Difficulty struct {
	ReactionDelay  float64 // Seconds between decisions
	ErrorAmplitude float64 // Pixels of uniform aim error
}

var difficultyTable = [MaxAILevel]Difficulty{
	{0.800, 35},
	{0.650, 30},
	{0.520, 26},
	{0.420, 22},
	{0.330, 18},
	{0.250, 14},
	{0.180, 10},
	{0.120, 6},
	{0.060, 3},
	{0.020, 1},
}

// DifficultyForLevel looks up levels 1 (easiest) through 10.
func DifficultyForLevel(level int) (Difficulty, error) {
	if level < MinAILevel || level > MaxAILevel {
		return Difficulty{}, fmt.Errorf("%w: ai level %d outside [%d, %d]", ErrInvalidConfig, level, MinAILevel, MaxAILevel)
	}
	return difficultyTable[level-1], nil
}

// NewDifficulty validates a custom difficulty.
func NewDifficulty(reactionDelay, errorAmplitude float64) (Difficulty, error) {
	d := Difficulty{ReactionDelay: reactionDelay, ErrorAmplitude: errorAmplitude}
	return d, d.Validate()
}

// Validate checks delay in (0, 2] and amplitude in [0, 40].
func (d Difficulty) Validate() error {
	if d.ReactionDelay <= 0 || d.ReactionDelay > maxReactionDelay {
		return fmt.Errorf("%w: reaction delay %v outside (0, %v]", ErrInvalidConfig, d.ReactionDelay, maxReactionDelay)
	}
	if d.ErrorAmplitude < 0 || d.ErrorAmplitude > maxErrorAmplitude {
		return fmt.Errorf("%w: error amplitude %v outside [0, %v]", ErrInvalidConfig, d.ErrorAmplitude, maxErrorAmplitude)
	}
	return nil
}

// Controller steers a paddle toward where the ball will cross it.
// Between decisions it emits DirNone.
type Controller struct {
	difficulty  Difficulty
	fieldHeight float64
	rng         *SimpleRNG

	elapsed float64
	target  float64
	planned bool
}

// NewController creates a controller for a field of the given height.
func NewController(d Difficulty, fieldHeight float64, rng *SimpleRNG) *Controller {
	if rng == nil {
		rng = NewSimpleRNG(1)
	}
	return &Controller{difficulty: d, fieldHeight: fieldHeight, rng: rng}
}

// Difficulty returns the current tuning.
func (c *Controller) Difficulty() Difficulty { return c.difficulty }

// SetDifficulty swaps the tuning. The pending delay keeps accumulating.
func (c *Controller) SetDifficulty(d Difficulty) { c.difficulty = d }

// SetFieldHeight updates the reflection period after a level change.
func (c *Controller) SetFieldHeight(h float64) { c.fieldHeight = h }

// Target returns the last aimed y and whether any decision was made yet.
func (c *Controller) Target() (float64, bool) { return c.target, c.planned }

// Reset drops the accumulated delay.
func (c *Controller) Reset() {
	c.elapsed = 0
	c.planned = false
}

// Decide accumulates dt and, once the reaction delay has passed, aims the
// paddle at the predicted crossing plus random error. It emits DirNone
// between decisions.
func (c *Controller) Decide(dt float64, ball *Ball, paddle *Paddle) core.Direction {
	dir, _ := c.decide(dt, ball, paddle)
	return dir
}

func (c *Controller) decide(dt float64, ball *Ball, paddle *Paddle) (core.Direction, bool) {
	c.elapsed += dt
	if c.elapsed < c.difficulty.ReactionDelay {
		return core.DirNone, false
	}
	c.elapsed = 0

	c.target = PredictY(ball, paddle.X(), c.fieldHeight) + c.rng.Symmetric(c.difficulty.ErrorAmplitude)
	c.planned = true

	switch {
	case paddle.Y() > c.target:
		return core.DirUp, true
	case paddle.Y() < c.target:
		return core.DirDown, true
	default:
		return core.DirNone, true
	}
}

// PredictY projects the ball's y at the vertical line x = targetX, folding
// wall bounces with period 2*fieldHeight. A ball moving away or purely
// vertically yields its current y.
func PredictY(ball *Ball, targetX, fieldHeight float64) float64 {
	v := ball.Velocity()
	if math.Abs(v.X()) < horizontalVelocity {
		return ball.Y()
	}
	t := (targetX - ball.X()) / v.X()
	if t < 0 {
		return ball.Y()
	}
	return FoldY(ball.Y()+v.Y()*t, fieldHeight)
}

// FoldY maps an unbounded y into [0, h] as if reflected off both walls.
func FoldY(y, h float64) float64 {
	if h <= 0 {
		return y
	}
	period := 2 * h
	m := math.Mod(y, period)
	if m < 0 {
		m += period
	}
	if m > h {
		m = period - m
	}
	return m
}
