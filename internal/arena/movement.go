package arena

import "github.com/vovakirdan/blockpong/internal/core"

// MovementSource tells who steers a paddle.
type MovementSource int

const (
	SourceHuman MovementSource = iota
	SourceAI
)

func (s MovementSource) String() string {
	if s == SourceAI {
		return "cpu"
	}
	return "human"
}

// MovementStrategy yields the direction a paddle should travel this tick.
type MovementStrategy interface {
	Source() MovementSource
	Direction(dt float64, ball *Ball, paddle *Paddle) core.Direction
}

// HumanInput replays the intent recorded on the paddle.
type HumanInput struct{}

func (HumanInput) Source() MovementSource { return SourceHuman }

func (HumanInput) Direction(_ float64, _ *Ball, paddle *Paddle) core.Direction {
	return paddle.Intent()
}

// AIInput steers with a controller. A decision is held until the paddle
// reaches the aimed y, so direction only changes when the controller
// re-plans.
type AIInput struct {
	controller *Controller
	held       core.Direction
}

// NewAIInput wraps a controller as a movement strategy.
func NewAIInput(c *Controller) *AIInput {
	return &AIInput{controller: c}
}

// Controller returns the underlying controller.
func (a *AIInput) Controller() *Controller { return a.controller }

func (a *AIInput) Source() MovementSource { return SourceAI }

func (a *AIInput) Direction(dt float64, ball *Ball, paddle *Paddle) core.Direction {
	if a.controller == nil {
		return core.DirNone
	}
	if dir, decided := a.controller.decide(dt, ball, paddle); decided {
		a.held = dir
		return dir
	}
	target, _ := a.controller.Target()
	switch {
	case a.held == core.DirUp && paddle.Y() <= target:
		a.held = core.DirNone
	case a.held == core.DirDown && paddle.Y() >= target:
		a.held = core.DirNone
	}
	return a.held
}
