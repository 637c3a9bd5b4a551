package arena

import "fmt"

// Dispatcher runs the collision strategies in their fixed order: walls,
// paddle 1, paddle 2, then every active block. Each pair is checked once
// per tick.
type Dispatcher struct {
	Wall   WallCollision
	Paddle PaddleCollision
	Block  BlockCollision
}

// Run resolves this tick's collisions against s and queues the resulting
// events.
func (d Dispatcher) Run(s *State) error {
	ball := s.ball

	if d.Wall.Verify(ball) {
		// Score before the serve resets the ball.
		if side := d.Wall.Side(ball); side.Exit() {
			scorer := s.paddles[1].Player()
			if side == WallRight {
				scorer = s.paddles[0].Player()
			}
			s.addPoint(scorer)
		}
		d.Wall.Resolve(ball)
	}

	for _, p := range s.paddles {
		if d.Paddle.Verify(ball, p) {
			d.Paddle.Resolve(ball, p)
		}
	}

	for _, blk := range s.blocks {
		if !d.Block.Verify(ball, blk) {
			continue
		}
		hit := d.Block.Resolve(ball, blk)
		if hit.Destroyed {
			s.emit(BlockDestroyed{Category: blk.Category, X: blk.X, Y: blk.Y})
		}
		if hit.Item != nil {
			if err := s.spawnItem(hit.Item, ball.LastStruck()); err != nil {
				return fmt.Errorf("spawn %s item: %w", hit.Item.Kind(), err)
			}
		}
	}
	return nil
}
