package entity

import (
	"errors"
	"fmt"

	"github.com/emberforge/adventure/internal/item"
)

// Sentinel errors for inventory and equipment operations. Wrap with
// fmt.Errorf("%w: ...") for context.
var (
	ErrInventoryFull = errors.New("inventory is full")
	ErrNotEquippable = errors.New("item cannot be equipped")
	ErrItemNotFound  = errors.New("item not found")
	ErrNotEquipped   = errors.New("nothing equipped in that slot")
)

// Slot names an equipment slot.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
)

// PlayerInventoryCapacity bounds the player's inventory. Enemies are
// constructed unbounded.
const PlayerInventoryCapacity = 10

// Entity is a combatant: the player or an enemy. Health always stays within
// [0, MaxHealth]; zero health means the entity is defeated.
type Entity struct {
	Name      string
	Health    int
	MaxHealth int

	// Innate combat stats. Player templates leave these at zero and get
	// their numbers from equipment; enemy templates carry them directly.
	Damage int
	Armor  int

	weapon    *item.Item
	armor     *item.Item
	inventory []item.Item
	capacity  int // 0 = unbounded
}

// NewPlayer creates the player character with a bounded inventory.
func NewPlayer(name string, maxHealth int) *Entity {
	return &Entity{
		Name:      name,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		capacity:  PlayerInventoryCapacity,
	}
}

// NewEnemy creates an enemy combatant from its stat block.
func NewEnemy(name string, health, damage, armor int) *Entity {
	return &Entity{
		Name:      name,
		Health:    health,
		MaxHealth: health,
		Damage:    damage,
		Armor:     armor,
	}
}

// TakeDamage subtracts amount from health, clamping at zero, and returns the
// new health. Armor mitigation is the combat resolver's job; amount arrives
// already mitigated.
func (e *Entity) TakeDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	e.Health -= amount
	if e.Health < 0 {
		e.Health = 0
	}
	return e.Health
}

// Heal adds amount to health, clamping at MaxHealth, and returns the new
// health.
func (e *Entity) Heal(amount int) int {
	if amount < 0 {
		amount = 0
	}
	e.Health += amount
	if e.Health > e.MaxHealth {
		e.Health = e.MaxHealth
	}
	return e.Health
}

// Defeated reports whether the entity is out of the fight.
func (e *Entity) Defeated() bool {
	return e.Health <= 0
}

// AttackPower is innate damage plus the equipped weapon's bonus.
func (e *Entity) AttackPower() int {
	power := e.Damage
	if e.weapon != nil {
		power += e.weapon.Power
	}
	return power
}

// ArmorValue is innate armor plus the equipped armor's bonus.
func (e *Entity) ArmorValue() int {
	armor := e.Armor
	if e.armor != nil {
		armor += e.armor.Power
	}
	return armor
}

// Weapon returns the equipped weapon, if any.
func (e *Entity) Weapon() *item.Item { return e.weapon }

// EquippedArmor returns the equipped armor, if any.
func (e *Entity) EquippedArmor() *item.Item { return e.armor }

// Inventory returns the items carried, in order.
func (e *Entity) Inventory() []item.Item { return e.inventory }

// AddItem appends to the inventory. At capacity it fails with
// ErrInventoryFull and leaves the inventory unchanged.
func (e *Entity) AddItem(it item.Item) error {
	if e.capacity > 0 && len(e.inventory) >= e.capacity {
		return fmt.Errorf("%w (capacity %d)", ErrInventoryFull, e.capacity)
	}
	e.inventory = append(e.inventory, it)
	return nil
}

// RemoveItem takes the named item out of the inventory and returns it.
func (e *Entity) RemoveItem(token string) (item.Item, error) {
	for i, it := range e.inventory {
		if it.Matches(token) {
			e.inventory = append(e.inventory[:i], e.inventory[i+1:]...)
			return it, nil
		}
	}
	return item.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, token)
}

// Item finds an inventory item without removing it.
func (e *Entity) Item(token string) (item.Item, bool) {
	for _, it := range e.inventory {
		if it.Matches(token) {
			return it, true
		}
	}
	return item.Item{}, false
}

// FindHealing returns the first healing item in the inventory.
func (e *Entity) FindHealing() (item.Item, bool) {
	for _, it := range e.inventory {
		if it.Category == item.CategoryHealing {
			return it, true
		}
	}
	return item.Item{}, false
}

// Equip moves an inventory item into its slot. The previous occupant, if
// any, returns to the inventory; since equipping frees the slot the item
// came from, the swap cannot overflow capacity.
func (e *Entity) Equip(token string) error {
	it, ok := e.Item(token)
	if !ok {
		return fmt.Errorf("%w: %s", ErrItemNotFound, token)
	}
	if !it.Equippable() {
		return fmt.Errorf("%w: %s is %s", ErrNotEquippable, it.Name, it.Category)
	}

	removed, err := e.RemoveItem(token)
	if err != nil {
		return err
	}
	switch removed.Category {
	case item.CategoryWeapon:
		if e.weapon != nil {
			e.inventory = append(e.inventory, *e.weapon)
		}
		w := removed
		e.weapon = &w
	case item.CategoryArmor:
		if e.armor != nil {
			e.inventory = append(e.inventory, *e.armor)
		}
		a := removed
		e.armor = &a
	}
	return nil
}

// Unequip empties a slot, returning the occupant to the inventory. Fails
// with ErrInventoryFull when the inventory cannot reabsorb it; the item
// stays equipped in that case.
func (e *Entity) Unequip(slot Slot) error {
	var occupant *item.Item
	switch slot {
	case SlotWeapon:
		occupant = e.weapon
	case SlotArmor:
		occupant = e.armor
	}
	if occupant == nil {
		return fmt.Errorf("%w: %s", ErrNotEquipped, slot)
	}
	if err := e.AddItem(*occupant); err != nil {
		return err
	}
	switch slot {
	case SlotWeapon:
		e.weapon = nil
	case SlotArmor:
		e.armor = nil
	}
	return nil
}

// UnequipItem resolves the slot from a player-typed token and unequips it.
func (e *Entity) UnequipItem(token string) error {
	if e.weapon != nil && e.weapon.Matches(token) {
		return e.Unequip(SlotWeapon)
	}
	if e.armor != nil && e.armor.Matches(token) {
		return e.Unequip(SlotArmor)
	}
	return fmt.Errorf("%w: %s", ErrNotEquipped, token)
}
