package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/quoridor/game/engine"
)

func createTestEngine(t *testing.T, p0, p1 engine.Cell, w0, w1 int, horizontal []engine.Cell) *engine.GameEngine {
	t.Helper()
	walls, err := engine.NewWalls(horizontal, nil)
	require.NoError(t, err)
	e, err := engine.New(engine.State{
		Turn: engine.StartingTurn,
		Players: [2]engine.Player{
			{Name: "alice", Walls: w0, Position: p0},
			{Name: "robot", Walls: w1, Position: p1},
		},
		Walls: walls,
	})
	require.NoError(t, err)
	return e
}

func TestAutoAdvancesAlongShortestPath(t *testing.T) {
	e, err := engine.NewGame("alice", "robot")
	require.NoError(t, err)

	m, err := Auto{}.Play(e, "alice")
	require.NoError(t, err)
	assert.Equal(t, engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 5, Y: 2}}, m)
	assert.Equal(t, engine.Cell{X: 5, Y: 2}, e.Snapshot().Players[0].Position)

	m, err = Auto{}.Play(e, "robot")
	require.NoError(t, err)
	assert.Equal(t, engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 5, Y: 8}}, m)
	assert.Equal(t, 2, e.Snapshot().Turn)
}

func TestAutoBlocksOpponentOneStepFromGoal(t *testing.T) {
	e := createTestEngine(t, engine.Cell{X: 3, Y: 8}, engine.Cell{X: 7, Y: 5}, 10, 10, nil)

	m, err := Auto{}.Play(e, "robot")
	require.NoError(t, err)
	assert.Equal(t, engine.Move{Kind: engine.KindWallHorizontal, Target: engine.Cell{X: 3, Y: 8}}, m)

	s := e.Snapshot()
	assert.Equal(t, 9, s.Players[1].Walls)
	assert.Equal(t, engine.Cell{X: 7, Y: 5}, s.Players[1].Position)
	assert.True(t, s.Walls.Has(engine.Horizontal, engine.Cell{X: 3, Y: 8}))
}

func TestAutoBlockAnchorsOnOpponentCellForPlayerOne(t *testing.T) {
	// Player 1 heads for row 1, so a horizontal wall anchored on its cell
	// lands behind the pawn and leaves its path intact.
	e := createTestEngine(t, engine.Cell{X: 7, Y: 5}, engine.Cell{X: 3, Y: 2}, 10, 10, nil)

	m, err := Auto{}.Play(e, "alice")
	require.NoError(t, err)
	assert.Equal(t, engine.Move{Kind: engine.KindWallHorizontal, Target: engine.Cell{X: 3, Y: 2}}, m)
	assert.Equal(t, 9, e.Snapshot().Players[0].Walls)

	path, err := e.ShortestPath("robot")
	require.NoError(t, err)
	assert.Equal(t, 1, stepsToGoal(path))
}

func TestAutoFallsBackToVerticalWall(t *testing.T) {
	e := createTestEngine(t, engine.Cell{X: 3, Y: 8}, engine.Cell{X: 7, Y: 5}, 10, 9, []engine.Cell{{X: 4, Y: 8}})

	m, err := Auto{}.Play(e, "robot")
	require.NoError(t, err)
	assert.Equal(t, engine.Move{Kind: engine.KindWallVertical, Target: engine.Cell{X: 3, Y: 8}}, m)
	assert.Equal(t, 8, e.Snapshot().Players[1].Walls)
}

func TestAutoMovesWhenBlockingIsRejected(t *testing.T) {
	e := createTestEngine(t, engine.Cell{X: 9, Y: 8}, engine.Cell{X: 5, Y: 9}, 10, 10, nil)

	m, err := Auto{}.Play(e, "robot")
	require.NoError(t, err)
	assert.Equal(t, engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 5, Y: 8}}, m)
	assert.Equal(t, 10, e.Snapshot().Players[1].Walls)
	assert.Zero(t, e.Snapshot().Walls.Count())
}

func TestAutoMovesWithoutWalls(t *testing.T) {
	horizontal := []engine.Cell{
		{X: 1, Y: 2}, {X: 3, Y: 2}, {X: 5, Y: 2}, {X: 7, Y: 2},
		{X: 1, Y: 4}, {X: 3, Y: 4}, {X: 5, Y: 4}, {X: 7, Y: 4},
		{X: 2, Y: 6}, {X: 4, Y: 6},
	}
	e := createTestEngine(t, engine.Cell{X: 3, Y: 8}, engine.Cell{X: 5, Y: 9}, 10, 0, horizontal)

	m, err := Auto{}.Play(e, "robot")
	require.NoError(t, err)
	assert.Equal(t, engine.KindMove, m.Kind)
	assert.Equal(t, m.Target, e.Snapshot().Players[1].Position)
	assert.Equal(t, 10, e.Snapshot().Walls.Count())
}

func TestAutoErrors(t *testing.T) {
	e := createTestEngine(t, engine.Cell{X: 3, Y: 9}, engine.Cell{X: 7, Y: 5}, 10, 10, nil)

	_, err := Auto{}.Play(e, "robot")
	assert.ErrorIs(t, err, engine.ErrGameAlreadyOver)
	var over *engine.GameOverError
	require.True(t, errors.As(err, &over))
	assert.Equal(t, "alice", over.Winner)

	e, err = engine.NewGame("alice", "robot")
	require.NoError(t, err)
	_, err = Auto{}.Play(e, "carol")
	assert.ErrorIs(t, err, engine.ErrUnknownPlayer)
}

func TestAutoGameTerminates(t *testing.T) {
	e, err := engine.NewGame("alice", "robot")
	require.NoError(t, err)

	names := []string{"alice", "robot"}
	for i := 0; i < 200; i++ {
		if _, over := e.Winner(); over {
			break
		}
		_, err := Auto{}.Play(e, names[i%2])
		require.NoError(t, err, "move %d", i)
	}

	_, over := e.Winner()
	assert.True(t, over)
}

func TestStepsToGoal(t *testing.T) {
	path := []engine.Cell{{X: 5, Y: 8}, {X: 5, Y: 9}, engine.GoalRow9}
	assert.Equal(t, 1, stepsToGoal(path))
	assert.Equal(t, 0, stepsToGoal([]engine.Cell{{X: 5, Y: 9}, engine.GoalRow9}))
}
