package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberforge/adventure/internal/dice"
	"github.com/emberforge/adventure/internal/entity"
	"github.com/emberforge/adventure/internal/item"
)

// midpoint rolls produce zero damage variance, so every number below is
// exact.
func zeroVariance() dice.Source { return &dice.Script{} }

func armedPlayer(t *testing.T, weaponPower int) *entity.Entity {
	t.Helper()
	p := entity.NewPlayer("Hero", 100)
	if weaponPower > 0 {
		w := item.Item{ID: "sword", Name: "Sword", Category: item.CategoryWeapon, Power: weaponPower}
		require.NoError(t, p.AddItem(w))
		require.NoError(t, p.Equip("sword"))
	}
	return p
}

func TestAttackDealsExactDamage(t *testing.T) {
	p := armedPlayer(t, 10)
	enemy := entity.NewEnemy("Dummy", 30, 8, 0)
	r := New(p, enemy, zeroVariance(), false)

	rep, err := r.Round(ActionAttack)
	require.NoError(t, err)

	assert.Equal(t, 10, rep.DamageDealt)
	assert.Equal(t, 20, enemy.Health)
	assert.Equal(t, 8, rep.DamageTaken, "enemy counterattacks")
	assert.Equal(t, 92, p.Health)
	assert.Equal(t, 1, rep.Round)
	assert.False(t, rep.State.Terminal())
}

func TestArmorMitigatesAttack(t *testing.T) {
	p := armedPlayer(t, 10)
	enemy := NewRegularEnemy("Drone")
	r := New(p, enemy, zeroVariance(), false)

	rep, err := r.Round(ActionAttack)
	require.NoError(t, err)
	assert.Equal(t, 10-RegularArmor, rep.DamageDealt)
}

func TestDefendAddsArmorForTheRound(t *testing.T) {
	p := armedPlayer(t, 0)
	enemy := NewRegularEnemy("Drone")
	r := New(p, enemy, zeroVariance(), false)

	rep, err := r.Round(ActionDefend)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.DamageTaken, "8 attack minus 5 defend bonus")
	assert.Equal(t, 0, rep.DamageDealt)

	// The bonus does not persist.
	rep, err = r.Round(ActionAttack)
	require.NoError(t, err)
	assert.Equal(t, 8, rep.DamageTaken)
}

func TestMinimumDamageFloor(t *testing.T) {
	p := armedPlayer(t, 1)
	enemy := entity.NewEnemy("Golem", 30, 8, 100)
	r := New(p, enemy, zeroVariance(), false)

	rep, err := r.Round(ActionAttack)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.DamageDealt, "armor never fully negates a hit")
}

func TestHealConsumesSingleUseItem(t *testing.T) {
	p := armedPlayer(t, 0)
	p.TakeDamage(50)
	kit := item.Item{ID: "med_kit", Name: "Med Kit", Category: item.CategoryHealing, Power: 30, OneTimeUse: true}
	require.NoError(t, p.AddItem(kit))

	enemy := NewRegularEnemy("Drone")
	r := New(p, enemy, zeroVariance(), false)

	_, err := r.Round(ActionHeal)
	require.NoError(t, err)

	// 50 + 30 healed, then the enemy hits for 8.
	assert.Equal(t, 72, p.Health)
	_, ok := p.Item("med_kit")
	assert.False(t, ok, "single-use item is consumed")
}

func TestHealClampsAtMaxHealth(t *testing.T) {
	p := armedPlayer(t, 0)
	p.TakeDamage(10)
	kit := item.Item{ID: "med_kit", Name: "Med Kit", Category: item.CategoryHealing, Power: 30, OneTimeUse: true}
	require.NoError(t, p.AddItem(kit))

	enemy := NewRegularEnemy("Drone")
	r := New(p, enemy, zeroVariance(), false)

	_, err := r.Round(ActionHeal)
	require.NoError(t, err)
	assert.Equal(t, 92, p.Health, "healed to full, then hit for 8")
}

func TestHealWithNothingStillCostsTheRound(t *testing.T) {
	p := armedPlayer(t, 0)
	enemy := NewRegularEnemy("Drone")
	r := New(p, enemy, zeroVariance(), false)

	rep, err := r.Round(ActionHeal)
	assert.ErrorIs(t, err, ErrNoHealingItem)
	assert.Equal(t, 8, rep.DamageTaken, "enemy acts even when the heal fizzles")
	assert.Equal(t, 92, p.Health)
	assert.Equal(t, 1, rep.Round)
}

func TestFleeSuccess(t *testing.T) {
	p := armedPlayer(t, 0)
	enemy := NewRegularEnemy("Drone")
	r := New(p, enemy, &dice.Script{Floats: []float64{0.1}}, false)

	rep, err := r.Round(ActionFlee)
	require.NoError(t, err)
	assert.Equal(t, StateFled, rep.State)
	assert.Equal(t, 100, p.Health, "a clean escape takes no hit")
	assert.True(t, r.State().Terminal())
}

func TestFleeFailure(t *testing.T) {
	p := armedPlayer(t, 0)
	enemy := NewRegularEnemy("Drone")
	r := New(p, enemy, &dice.Script{Floats: []float64{0.99}}, false)

	rep, err := r.Round(ActionFlee)
	require.NoError(t, err)
	assert.False(t, rep.State.Terminal())
	assert.Equal(t, 8, rep.DamageTaken, "failed escape leaves you open")
}

func TestFleeRateConverges(t *testing.T) {
	roll := dice.NewSeeded(1)
	const trials = 10000

	fled := 0
	for i := 0; i < trials; i++ {
		p := armedPlayer(t, 0)
		r := New(p, NewRegularEnemy("Drone"), roll, false)
		rep, err := r.Round(ActionFlee)
		require.NoError(t, err)
		if rep.State == StateFled {
			fled++
		}
	}

	rate := float64(fled) / trials
	assert.InDelta(t, fleeChance, rate, 0.02)
}

func TestVictoryShortCircuitsEnemyAction(t *testing.T) {
	p := armedPlayer(t, 10)
	enemy := entity.NewEnemy("Dummy", 5, 8, 0)
	r := New(p, enemy, zeroVariance(), false)

	rep, err := r.Round(ActionAttack)
	require.NoError(t, err)
	assert.Equal(t, StateVictory, rep.State)
	assert.Equal(t, 0, rep.DamageTaken, "a downed enemy does not strike back")
	assert.Equal(t, 100, p.Health)
}

func TestDefeat(t *testing.T) {
	p := armedPlayer(t, 0)
	p.TakeDamage(95) // 5 HP left
	enemy := NewRegularEnemy("Drone")
	r := New(p, enemy, zeroVariance(), false)

	rep, err := r.Round(ActionAttack)
	require.NoError(t, err)
	assert.Equal(t, StateDefeat, rep.State)
	assert.True(t, p.Defeated())
}

func TestRoundAfterTerminalState(t *testing.T) {
	p := armedPlayer(t, 0)
	enemy := NewRegularEnemy("Drone")
	r := New(p, enemy, &dice.Script{Floats: []float64{0.1}}, false)

	_, err := r.Round(ActionFlee)
	require.NoError(t, err)

	_, err = r.Round(ActionAttack)
	assert.ErrorIs(t, err, ErrCombatOver)
}

func TestUnknownAction(t *testing.T) {
	p := armedPlayer(t, 0)
	r := New(p, NewRegularEnemy("Drone"), zeroVariance(), false)

	_, err := r.Round(Action("dance"))
	assert.Error(t, err)
}

func TestBossStatBlock(t *testing.T) {
	boss := NewBoss("AI Overlord")
	assert.Equal(t, BossHealth, boss.Health)
	assert.Equal(t, BossDamage, boss.Damage)
	assert.Equal(t, BossArmor, boss.Armor)

	regular := NewRegularEnemy("Drone")
	assert.Equal(t, RegularHealth, regular.Health)

	r := New(armedPlayer(t, 0), boss, zeroVariance(), true)
	assert.True(t, r.Boss())
}
