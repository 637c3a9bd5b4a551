package arena

import "github.com/vovakirdan/blockpong/internal/core"

// Event is a discrete notification raised during a tick and delivered to
// listeners once the tick has finished.
type Event interface {
	isEvent()
}

// ScoreChanged is raised when a ball leaves the field.
type ScoreChanged struct {
	Scorer core.PlayerID
	Score1 int
	Score2 int
}

// BlockDestroyed is raised when a block's resistance reaches zero.
type BlockDestroyed struct {
	Category Category
	X, Y     float64
}

// ItemSpawned is raised when a bonus block drops an item. Target is
// NoPlayer when no paddle had struck the ball yet and the item stays idle.
type ItemSpawned struct {
	Kind   ItemKind
	Target core.PlayerID
}

// LevelComplete is raised when the last destructible block falls.
type LevelComplete struct {
	Level string
}

// EndReason tells why a match stopped.
type EndReason int

const (
	EndTimeExpired EndReason = iota
	EndLevelComplete
)

func (r EndReason) String() string {
	if r == EndLevelComplete {
		return "level complete"
	}
	return "time expired"
}

// MatchComplete is raised once when the match deactivates.
type MatchComplete struct {
	Reason  EndReason
	Winner  core.PlayerID // NoPlayer on a tie
	Score1  int
	Score2  int
	Elapsed float64
}

func (ScoreChanged) isEvent()   {}
func (BlockDestroyed) isEvent() {}
func (ItemSpawned) isEvent()    {}
func (LevelComplete) isEvent()  {}
func (MatchComplete) isEvent()  {}

// Listener receives events after each tick.
type Listener func(Event)
