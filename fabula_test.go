package fabula_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabulist/fabula"
	"github.com/fabulist/fabula/pkg/domain"
)

const lighthouseScript = `@title: The Cursed Lighthouse
@start: shore
@show-disabled: true
! coins = 5

@chapter one: Arrival
# shore: The Shore
Waves crash against the rocks.
You count __coins__ coins in your pocket.

! coins += 3
* [coins >= 10] Buy a lantern -> lit_climb
* Climb in the dark -> dark_climb

# lit_climb
The lantern throws long shadows up the stairs.

# dark_climb
You feel your way up, step by step.
`

func TestLoad(t *testing.T) {
	doc, err := fabula.Load(lighthouseScript)
	require.NoError(t, err)

	assert.Equal(t, "The Cursed Lighthouse", doc.Title)
	assert.Equal(t, "shore", doc.StartBranch)
	assert.True(t, doc.ShowDisabled)
	assert.Len(t, doc.Branches, 3)
}

func TestLoadError(t *testing.T) {
	_, err := fabula.Load("@title: Empty\n")
	require.Error(t, err)

	var perr *domain.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestRuntimePlaythrough(t *testing.T) {
	doc, err := fabula.Load(lighthouseScript)
	require.NoError(t, err)

	rt, err := fabula.NewRuntime(doc)
	require.NoError(t, err)
	assert.True(t, rt.ShowDisabled())

	view := rt.Render()
	assert.Equal(t, "The Shore", view.Title)
	require.Len(t, view.Paragraphs, 1)
	// The entry action has already bumped coins to 8.
	assert.Contains(t, view.Paragraphs[0], "You count 8 coins")
	require.Len(t, view.Choices, 2)
	assert.False(t, view.Choices[0].Enabled)
	assert.True(t, view.Choices[1].Enabled)

	require.ErrorIs(t, rt.Select(0), domain.ErrDisabledChoice)

	require.NoError(t, rt.Select(1))
	assert.Equal(t, "dark_climb", rt.Current())

	view = rt.Render()
	assert.True(t, view.Ended)
	assert.Equal(t, domain.DefaultEndingText, view.EndingText)
}

func TestRuntimeShowDisabledOverride(t *testing.T) {
	doc, err := fabula.Load(lighthouseScript)
	require.NoError(t, err)

	rt, err := fabula.NewRuntime(doc, fabula.WithShowDisabled(false))
	require.NoError(t, err)
	assert.False(t, rt.ShowDisabled())
}

func TestRuntimeSnapshotRestore(t *testing.T) {
	doc, err := fabula.Load(lighthouseScript)
	require.NoError(t, err)

	rt, err := fabula.NewRuntime(doc)
	require.NoError(t, err)

	snap := rt.Snapshot()
	require.NoError(t, rt.Select(1))
	assert.Equal(t, "dark_climb", rt.Current())

	require.NoError(t, rt.Restore(snap))
	assert.Equal(t, "shore", rt.Current())
	// Entry actions do not replay on restore; coins stays at 8.
	assert.Contains(t, rt.Render().Paragraphs[0], "You count 8 coins")
}
