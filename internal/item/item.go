package item

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCategory is returned when an item template names a category the
// engine does not know.
var ErrInvalidCategory = errors.New("invalid item category")

// Category classifies what an item does.
type Category string

const (
	CategoryWeapon  Category = "weapon"
	CategoryArmor   Category = "armor"
	CategoryHealing Category = "healing"
	CategoryQuest   Category = "quest"
)

// ParseCategory maps a template token onto a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryWeapon:
		return CategoryWeapon, nil
	case CategoryArmor:
		return CategoryArmor, nil
	case CategoryHealing:
		return CategoryHealing, nil
	case CategoryQuest:
		return CategoryQuest, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

// Item is a game object that can sit in a location, an inventory, or an
// equipment slot. Items are immutable once created and move by transfer of
// ownership, never by copy.
type Item struct {
	ID          string // stable identifier, e.g. "laser_gun"
	Name        string // display name, e.g. "Laser Gun"
	Description string
	Category    Category
	Power       int // damage bonus, armor bonus, or heal amount per category
	OneTimeUse  bool
}

// New constructs an Item, validating the category token.
func New(id, name, description, category string, power int, oneTimeUse bool) (Item, error) {
	cat, err := ParseCategory(category)
	if err != nil {
		return Item{}, err
	}
	if name == "" {
		name = id
	}
	return Item{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    cat,
		Power:       power,
		OneTimeUse:  oneTimeUse,
	}, nil
}

// Equippable reports whether the item can occupy an equipment slot.
func (i Item) Equippable() bool {
	return i.Category == CategoryWeapon || i.Category == CategoryArmor
}

// Detail renders the item with its mechanical properties, for `inspect` and
// inventory listings.
func (i Item) Detail() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", i.Name, i.Description)
	switch i.Category {
	case CategoryWeapon:
		fmt.Fprintf(&b, " (+%d damage)", i.Power)
	case CategoryArmor:
		fmt.Fprintf(&b, " (+%d armor)", i.Power)
	case CategoryHealing:
		fmt.Fprintf(&b, " (+%d HP)", i.Power)
	}
	if i.OneTimeUse {
		b.WriteString(" [single use]")
	}
	return b.String()
}

// Matches reports whether the player-typed token refers to this item, by ID
// or by case-insensitive display name.
func (i Item) Matches(token string) bool {
	token = strings.TrimSpace(token)
	return strings.EqualFold(i.ID, token) || strings.EqualFold(i.Name, token)
}
