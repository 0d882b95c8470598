package pong

import (
	"github.com/vovakirdan/tui-pong/internal/savegame"
)

// Ensure Game can be saved and restored.
var _ savegame.Session = (*Game)(nil)

// Capture copies the session into a snapshot. Validity is left to the store.
func (g *Game) Capture() savegame.Snapshot {
	b := g.arena.Ball
	return savegame.Snapshot{
		BallX:        b.X,
		BallY:        b.Y,
		BallDirX:     b.DirX,
		BallDirY:     b.DirY,
		BallSpeed:    b.Speed,
		Paddle1X:     g.arena.Paddles[0].X,
		Paddle2X:     g.arena.Paddles[1].X,
		State:        g.state,
		Message:      g.message,
		LivesP1:      g.lives[0],
		LivesP2:      g.lives[1],
		Score:        g.score,
		SinglePlayer: g.tun.SinglePlayer,
	}
}

// Apply overwrites the session with a snapshot. Paddle positions are
// clamped to the current paddle sizes.
func (g *Game) Apply(snap savegame.Snapshot) {
	g.arena.Ball.SetDirection(snap.BallDirX, snap.BallDirY)
	g.arena.Ball.SetPosition(snap.BallX, snap.BallY)
	g.arena.Ball.Speed = snap.BallSpeed

	g.arena.MovePaddle(1, snap.Paddle1X)
	g.arena.MovePaddle(2, snap.Paddle2X)

	g.state = snap.State
	g.message = snap.Message
	g.lives = [2]int{snap.LivesP1, snap.LivesP2}
	g.score = snap.Score
	g.cpu.clear()
}
