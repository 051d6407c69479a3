package player

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/quoridor/game/engine"
)

func TestCollectValidMove(t *testing.T) {
	e, err := engine.NewGame("alice", "robot")
	require.NoError(t, err)
	var out bytes.Buffer

	m, err := NewPrompter(strings.NewReader("D\n5,2\n"), &out).Collect(e, "alice")
	require.NoError(t, err)
	assert.Equal(t, engine.Move{Kind: engine.KindMove, Target: engine.Cell{X: 5, Y: 2}}, m)
	assert.Contains(t, out.String(), "alice, enter the move kind (D, MH, MV): ")
	assert.Contains(t, out.String(), "alice, enter the position as x,y: ")

	assert.Equal(t, engine.NewState("alice", "robot"), e.Snapshot(), "collect must not apply the move")
}

func TestCollectRepromptsUntilAccepted(t *testing.T) {
	e, err := engine.NewGame("alice", "robot")
	require.NoError(t, err)
	var out bytes.Buffer
	input := strings.Join([]string{
		"D", "five,two",
		"D", "5,3",
		"X", "5,2",
		"MH", "9,9",
		"mh", " 4, 4 ",
	}, "\n") + "\n"

	m, err := NewPrompter(strings.NewReader(input), &out).Collect(e, "alice")
	require.NoError(t, err)
	assert.Equal(t, engine.Move{Kind: engine.KindWallHorizontal, Target: engine.Cell{X: 4, Y: 4}}, m)

	assert.Equal(t, 1, strings.Count(out.String(), "Invalid position"))
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid move"))
	assert.Contains(t, out.String(), engine.ErrIllegalMove.Error())
	assert.Contains(t, out.String(), engine.ErrIllegalMoveKind.Error())
	assert.Contains(t, out.String(), engine.ErrInvalidPosition.Error())
	assert.Zero(t, e.Snapshot().Walls.Count())
}

func TestCollectEndOfInput(t *testing.T) {
	e, err := engine.NewGame("alice", "robot")
	require.NoError(t, err)

	_, err = NewPrompter(strings.NewReader(""), io.Discard).Collect(e, "alice")
	assert.ErrorIs(t, err, io.EOF)

	_, err = NewPrompter(strings.NewReader("D\n5,3\nD\n"), io.Discard).Collect(e, "alice")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPromptPlayApplies(t *testing.T) {
	e, err := engine.NewGame("alice", "robot")
	require.NoError(t, err)

	m, err := NewPrompter(strings.NewReader("MV\n2,2\n"), io.Discard).Play(e, "alice")
	require.NoError(t, err)
	assert.Equal(t, engine.KindWallVertical, m.Kind)
	assert.True(t, e.Snapshot().Walls.Has(engine.Vertical, engine.Cell{X: 2, Y: 2}))
	assert.Equal(t, 9, e.Snapshot().Players[0].Walls)
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		in      string
		want    engine.Cell
		wantErr bool
	}{
		{"5,2", engine.Cell{X: 5, Y: 2}, false},
		{" 1 , 9 ", engine.Cell{X: 1, Y: 9}, false},
		{"-1,0", engine.Cell{X: -1, Y: 0}, false},
		{"5", engine.Cell{}, true},
		{"5,2,1", engine.Cell{}, true},
		{"a,b", engine.Cell{}, true},
		{"", engine.Cell{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCell(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedPosition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
