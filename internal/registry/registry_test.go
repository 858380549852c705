package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/turn-arcade/internal/engine"
)

type stubEngine struct{ engine.Engine }

func (stubEngine) ID() string { return "stub" }

func TestRegisterCreateList(t *testing.T) {
	Register(Info{ID: "zz-stub", Title: "Stub", Kind: KindMarks}, func() engine.Engine {
		return stubEngine{}
	})
	t.Cleanup(func() { unregister("zz-stub") })

	assert.True(t, Exists("zz-stub"))
	info, ok := Lookup("zz-stub")
	require.True(t, ok)
	assert.Equal(t, "Stub", info.Title)

	e, err := Create("zz-stub")
	require.NoError(t, err)
	assert.Equal(t, "stub", e.ID())

	list := List()
	require.NotEmpty(t, list)
	assert.Equal(t, "zz-stub", list[len(list)-1].ID)
}

func TestDuplicatePanics(t *testing.T) {
	Register(Info{ID: "zz-dup"}, func() engine.Engine { return stubEngine{} })
	t.Cleanup(func() { unregister("zz-dup") })

	assert.Panics(t, func() {
		Register(Info{ID: "zz-dup"}, func() engine.Engine { return stubEngine{} })
	})
}

func TestUnknownGame(t *testing.T) {
	_, err := Create("nope")
	assert.Error(t, err)
	assert.False(t, Exists("nope"))
}

func TestVsComputer(t *testing.T) {
	assert.True(t, Info{Defaults: engine.Config{Opponent: engine.OpponentRandom}}.VsComputer())
	assert.False(t, Info{Defaults: engine.Config{Opponent: engine.OpponentNone}}.VsComputer())
}
