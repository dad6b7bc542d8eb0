package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberforge/adventure/internal/item"
)

func newTestGraph(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	g.AddLocation(&Location{ID: "village", Name: "Village", ShortDesc: "The village square.", LongDesc: "A quiet village."})
	g.AddLocation(&Location{ID: "forest", Name: "Forest", ShortDesc: "Dark trees.", LongDesc: "A dark forest."})
	g.AddLocation(&Location{ID: "cave", Name: "Cave", ShortDesc: "Dripping stone.", LongDesc: "A damp cave."})
	require.NoError(t, g.Connect("village", "forest", KindNormal, "north"))
	return g
}

func TestOpposite(t *testing.T) {
	assert.Equal(t, "south", Opposite("north"))
	assert.Equal(t, "north", Opposite("South"))
	assert.Equal(t, "west", Opposite("east"))
	assert.Equal(t, "up", Opposite("down"))
	assert.Equal(t, "back", Opposite("enter tavern"))
}

func TestNormalConnectionIsBidirectional(t *testing.T) {
	g := newTestGraph(t)

	loc, err := g.Move("village", "north")
	require.NoError(t, err)
	assert.Equal(t, "forest", loc.ID)

	loc, err = g.Move("forest", "south")
	require.NoError(t, err)
	assert.Equal(t, "village", loc.ID)
}

func TestConnectIsIdempotent(t *testing.T) {
	g := newTestGraph(t)
	require.NoError(t, g.Connect("village", "forest", KindNormal, "north"))

	village, err := g.Location("village")
	require.NoError(t, err)
	forest, err := g.Location("forest")
	require.NoError(t, err)
	assert.Equal(t, []string{"north"}, village.Exits())
	assert.Equal(t, []string{"south"}, forest.Exits())
}

func TestOneWayHasNoReverse(t *testing.T) {
	g := newTestGraph(t)
	require.NoError(t, g.Connect("forest", "cave", KindOneWay, "down"))

	loc, err := g.Move("forest", "down")
	require.NoError(t, err)
	assert.Equal(t, "cave", loc.ID)

	_, err = g.Move("cave", "up")
	assert.ErrorIs(t, err, ErrNoTransition)
}

func TestTeleportHasNoReverse(t *testing.T) {
	g := newTestGraph(t)
	require.NoError(t, g.Connect("village", "cave", KindTeleport, "teleport"))

	loc, err := g.Move("village", "teleport")
	require.NoError(t, err)
	assert.Equal(t, "cave", loc.ID)

	cave, err := g.Location("cave")
	require.NoError(t, err)
	assert.Empty(t, cave.Exits())
}

func TestMoveUnknownLabel(t *testing.T) {
	g := newTestGraph(t)
	_, err := g.Move("village", "fly")
	assert.ErrorIs(t, err, ErrNoTransition)
}

func TestMoveUnknownLocation(t *testing.T) {
	g := newTestGraph(t)
	_, err := g.Move("atlantis", "north")
	assert.ErrorIs(t, err, ErrNoSuchLocation)
}

func TestMoveBlockedByRequiredItem(t *testing.T) {
	g := newTestGraph(t)
	g.AddLocation(&Location{ID: "vault", Name: "Vault", RequiredItem: "golden_key"})
	require.NoError(t, g.Connect("village", "vault", KindNormal, "east"))

	_, err := g.Move("village", "east")
	require.ErrorIs(t, err, ErrBlocked)
	assert.Contains(t, err.Error(), "golden_key")

	require.NoError(t, g.Unlock("vault"))
	loc, err := g.Move("village", "east")
	require.NoError(t, err)
	assert.Equal(t, "vault", loc.ID)
}

func TestMoveBlockedByGate(t *testing.T) {
	g := newTestGraph(t)
	g.AddLocation(&Location{ID: "armory", Name: "Armory", GateLocked: true})
	require.NoError(t, g.Connect("village", "armory", KindEnter, "enter armory"))

	_, err := g.Move("village", "enter armory")
	assert.ErrorIs(t, err, ErrBlocked)

	require.NoError(t, g.Unlock("armory"))
	_, err = g.Move("village", "enter armory")
	assert.NoError(t, err)
}

func TestMoveMarksVisited(t *testing.T) {
	g := newTestGraph(t)

	forest, err := g.Location("forest")
	require.NoError(t, err)
	assert.False(t, forest.Visited)

	_, err = g.Move("village", "north")
	require.NoError(t, err)
	assert.True(t, forest.Visited)
}

func TestPeekHasNoSideEffects(t *testing.T) {
	g := newTestGraph(t)

	loc, err := g.Peek("village", "north")
	require.NoError(t, err)
	assert.Equal(t, "forest", loc.ID)
	assert.False(t, loc.Visited)
}

func TestDescribe(t *testing.T) {
	g := newTestGraph(t)
	forest, err := g.Location("forest")
	require.NoError(t, err)

	assert.Equal(t, "A dark forest.", g.Describe(forest, true))
	assert.Equal(t, "You are back at Forest. Dark trees.", g.Describe(forest, false))
}

func TestItemPlacement(t *testing.T) {
	g := newTestGraph(t)
	sword := item.Item{ID: "sword", Name: "Sword", Category: item.CategoryWeapon, Power: 5}
	require.NoError(t, g.PlaceItem("forest", sword))

	got, err := g.TakeItem("forest", "Sword")
	require.NoError(t, err)
	assert.Equal(t, "sword", got.ID)

	_, err = g.TakeItem("forest", "sword")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestNPCLookup(t *testing.T) {
	g := newTestGraph(t)
	require.NoError(t, g.PlaceNPC("village", &NPC{Name: "Wise Wizard", Greeting: "Hello."}))

	npc, err := g.NPC("village", "wise wizard")
	require.NoError(t, err)
	assert.Equal(t, "Wise Wizard", npc.Name)

	// Substring match.
	npc, err = g.NPC("village", "wizard")
	require.NoError(t, err)
	assert.Equal(t, "Wise Wizard", npc.Name)

	_, err = g.NPC("village", "dragon")
	assert.ErrorIs(t, err, ErrNPCNotFound)
}

func TestTakeRewardOnlyOnce(t *testing.T) {
	key := item.Item{ID: "key", Category: item.CategoryQuest}
	npc := &NPC{Name: "Guide", Reward: &key}

	got, ok := npc.TakeReward()
	require.True(t, ok)
	assert.Equal(t, "key", got.ID)

	_, ok = npc.TakeReward()
	assert.False(t, ok)

	_, ok = (&NPC{Name: "Empty"}).TakeReward()
	assert.False(t, ok)
}
