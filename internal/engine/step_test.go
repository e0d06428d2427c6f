package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustIndex(t *testing.T, defs ...Deflector) *DeflectorIndex {
	t.Helper()
	idx, err := NewDeflectorIndex(defs)
	require.NoError(t, err)
	return idx
}

func TestStepEntityMovesOneCell(t *testing.T) {
	b := Bounds{W: 5, H: 5}
	tests := []struct {
		heading Heading
		want    Pos
	}{
		{HeadingUp, P(2, 1)},
		{HeadingDown, P(2, 3)},
		{HeadingLeft, P(1, 2)},
		{HeadingRight, P(3, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.heading.String(), func(t *testing.T) {
			e := Entity{Pos: P(2, 2), Heading: tc.heading, Role: RoleAutomatic}
			got, err := StepEntity(e, nil, b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Pos)
			assert.Equal(t, tc.heading, got.Heading)
			assert.Equal(t, RoleAutomatic, got.Role)
		})
	}
}

func TestStepEntityReflectionTable(t *testing.T) {
	b := Bounds{W: 5, H: 5}
	mirror := P(2, 2)

	// Each start cell is one step away from the mirror along the heading.
	starts := map[Heading]Pos{
		HeadingUp:    P(2, 3),
		HeadingDown:  P(2, 1),
		HeadingLeft:  P(3, 2),
		HeadingRight: P(1, 2),
	}

	tests := []struct {
		name        string
		orientation Orientation
		heading     Heading
		wantHeading Heading
		wantPos     Pos
	}{
		{"backslash up", Backslash, HeadingUp, HeadingLeft, P(1, 2)},
		{"backslash down", Backslash, HeadingDown, HeadingRight, P(3, 2)},
		{"backslash left", Backslash, HeadingLeft, HeadingUp, P(2, 1)},
		{"backslash right", Backslash, HeadingRight, HeadingDown, P(2, 3)},
		{"slash up", Slash, HeadingUp, HeadingRight, P(3, 2)},
		{"slash down", Slash, HeadingDown, HeadingLeft, P(1, 2)},
		{"slash left", Slash, HeadingLeft, HeadingDown, P(2, 3)},
		{"slash right", Slash, HeadingRight, HeadingUp, P(2, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			idx := mustIndex(t, Deflector{Pos: mirror, Orientation: tc.orientation})
			e := Entity{Pos: starts[tc.heading], Heading: tc.heading, Role: RolePlayer}

			got, err := StepEntity(e, idx, b)
			require.NoError(t, err)
			assert.Equal(t, tc.wantPos, got.Pos)
			assert.Equal(t, tc.wantHeading, got.Heading)
			assert.Equal(t, tc.wantHeading, tc.orientation.Reflect(tc.heading))
		})
	}
}

func TestStepEntityReflectsAtMostOnce(t *testing.T) {
	b := Bounds{W: 6, H: 6}
	// "/" turns Up into Right, which lands on the "\" next door.
	idx := mustIndex(t,
		Deflector{Pos: P(2, 2), Orientation: Slash},
		Deflector{Pos: P(3, 2), Orientation: Backslash},
	)
	e := Entity{Pos: P(2, 3), Heading: HeadingUp, Role: RoleAutomatic}

	got, err := StepEntity(e, idx, b)
	require.NoError(t, err)
	assert.Equal(t, P(3, 2), got.Pos, "entity should rest on the second deflector")
	assert.Equal(t, HeadingRight, got.Heading, "second deflector must not apply in the same tick")

	// Leaving a deflector cell does not reflect either.
	got, err = StepEntity(got, idx, b)
	require.NoError(t, err)
	assert.Equal(t, P(4, 2), got.Pos)
	assert.Equal(t, HeadingRight, got.Heading)
}

func TestStepEntityOutOfBounds(t *testing.T) {
	b := Bounds{W: 4, H: 4}

	t.Run("plain step", func(t *testing.T) {
		e := Entity{Pos: P(0, 0), Heading: HeadingUp, Role: RolePlayer}
		_, err := StepEntity(e, nil, b)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrOutOfBounds))

		var be *BoundsError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, P(0, -1), be.At)
		assert.False(t, be.Deflected)
		assert.Equal(t, e, be.Entity)
	})

	t.Run("after deflection", func(t *testing.T) {
		idx := mustIndex(t, Deflector{Pos: P(0, 1), Orientation: Backslash})
		e := Entity{Pos: P(0, 2), Heading: HeadingUp, Role: RoleAutomatic}
		_, err := StepEntity(e, idx, b)
		require.Error(t, err)

		var be *BoundsError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, P(-1, 1), be.At)
		assert.True(t, be.Deflected)
	})

	t.Run("high edge", func(t *testing.T) {
		e := Entity{Pos: P(3, 3), Heading: HeadingRight, Role: RoleAutomatic}
		_, err := StepEntity(e, nil, b)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestParseHeadingAndOrientation(t *testing.T) {
	for _, h := range []Heading{HeadingUp, HeadingRight, HeadingDown, HeadingLeft} {
		got, ok := ParseHeading(h.String())
		require.True(t, ok)
		assert.Equal(t, h, got)
	}
	got, ok := ParseHeading(" Left ")
	assert.True(t, ok)
	assert.Equal(t, HeadingLeft, got)
	_, ok = ParseHeading("north")
	assert.False(t, ok)

	for _, s := range []string{"/", "slash", "SLASH"} {
		o, ok := ParseOrientation(s)
		require.True(t, ok, s)
		assert.Equal(t, Slash, o)
	}
	for _, s := range []string{"\\", "backslash"} {
		o, ok := ParseOrientation(s)
		require.True(t, ok, s)
		assert.Equal(t, Backslash, o)
	}
	_, ok = ParseOrientation("|")
	assert.False(t, ok)
	assert.Equal(t, '/', Slash.Rune())
	assert.Equal(t, '\\', Backslash.Rune())
}
