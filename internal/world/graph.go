// Package world holds the location graph: typed directed transitions,
// first-visit descriptions, and item/NPC placement.
package world

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/emberforge/adventure/internal/item"
)

var (
	ErrNoSuchLocation = errors.New("no such location")
	ErrNoTransition   = errors.New("you can't go that way")
	ErrBlocked        = errors.New("the way is blocked")
	ErrItemNotFound   = errors.New("item not found here")
	ErrNPCNotFound    = errors.New("nobody by that name here")
)

// TransitionKind governs reversibility of an edge.
type TransitionKind string

const (
	// KindNormal edges get an automatic reverse edge.
	KindNormal TransitionKind = "normal"
	// KindOneWay edges cannot be retraced.
	KindOneWay TransitionKind = "one_way"
	// KindTeleport edges jump anywhere on the map, one direction.
	KindTeleport TransitionKind = "teleport"
	// KindEnter edges lead into a sub-location ("enter tavern").
	KindEnter TransitionKind = "enter"
)

// Transition is a directed, labeled edge between two locations.
type Transition struct {
	From  string
	To    string
	Label string // direction or trigger, e.g. "north", "enter tavern"
	Kind  TransitionKind
}

// NPC is a character the player can talk to. Dialogue maps topic tokens to
// responses; Reward is handed over on first contact; UnlockLocation names a
// quest-gated location opened by talking.
type NPC struct {
	Name           string
	Description    string
	Greeting       string
	Dialogue       map[string]string
	Reward         *item.Item
	UnlockLocation string
	TalkedTo       bool
	rewardGiven    bool
}

// TakeReward hands the reward over exactly once.
func (n *NPC) TakeReward() (item.Item, bool) {
	if n.Reward == nil || n.rewardGiven {
		return item.Item{}, false
	}
	n.rewardGiven = true
	return *n.Reward, true
}

// Location is a node in the world graph.
type Location struct {
	ID        string
	Name      string
	ShortDesc string // shown on revisit
	LongDesc  string // shown on first arrival
	Visited   bool

	// Lock state. A location with RequiredItem set (or GateLocked true)
	// refuses entry until unlocked.
	RequiredItem string
	GateLocked   bool

	transitions map[string]*Transition
	items       []item.Item
	npcs        map[string]*NPC
}

// Locked reports whether entry is currently refused.
func (l *Location) Locked() bool {
	return l.RequiredItem != "" || l.GateLocked
}

// Exits lists outgoing transition labels, sorted for stable display.
func (l *Location) Exits() []string {
	labels := make([]string, 0, len(l.transitions))
	for label := range l.transitions {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Items lists the items lying here.
func (l *Location) Items() []item.Item { return l.items }

// NPCs lists characters present, sorted by name.
func (l *Location) NPCs() []*NPC {
	names := make([]string, 0, len(l.npcs))
	for name := range l.npcs {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*NPC, 0, len(names))
	for _, name := range names {
		out = append(out, l.npcs[name])
	}
	return out
}

// Graph is the world map.
type Graph struct {
	locations map[string]*Location
}

// NewGraph returns an empty world.
func NewGraph() *Graph {
	return &Graph{locations: make(map[string]*Location)}
}

// AddLocation registers a node. The first location added is conventionally
// the starting point; the session tracks the current position.
func (g *Graph) AddLocation(loc *Location) {
	if loc.transitions == nil {
		loc.transitions = make(map[string]*Transition)
	}
	if loc.npcs == nil {
		loc.npcs = make(map[string]*NPC)
	}
	g.locations[loc.ID] = loc
}

// Location looks a node up by ID.
func (g *Graph) Location(id string) (*Location, error) {
	loc, ok := g.locations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchLocation, id)
	}
	return loc, nil
}

// Opposite maps a cardinal direction to its reverse; non-cardinal labels
// reverse to "back".
func Opposite(direction string) string {
	opposites := map[string]string{
		"north": "south",
		"south": "north",
		"east":  "west",
		"west":  "east",
		"up":    "down",
		"down":  "up",
	}
	if o, ok := opposites[strings.ToLower(direction)]; ok {
		return o
	}
	return "back"
}

// Connect registers a transition. For KindNormal the reverse edge is also
// registered unless one already exists, so calling Connect twice for the
// same pair is idempotent. Other kinds stay one-directional.
func (g *Graph) Connect(from, to string, kind TransitionKind, label string) error {
	src, err := g.Location(from)
	if err != nil {
		return err
	}
	dst, err := g.Location(to)
	if err != nil {
		return err
	}

	label = strings.ToLower(label)
	src.transitions[label] = &Transition{From: from, To: to, Label: label, Kind: kind}

	if kind == KindNormal {
		reverse := Opposite(label)
		if _, exists := dst.transitions[reverse]; !exists {
			dst.transitions[reverse] = &Transition{From: to, To: from, Label: reverse, Kind: kind}
		}
	}
	return nil
}

// Move resolves a transition label from a location and returns the
// destination, marking it visited. ErrNoTransition when no edge matches;
// ErrBlocked when the destination is locked (the error says what is
// missing when the lock names a key item).
func (g *Graph) Move(fromID, label string) (*Location, error) {
	src, err := g.Location(fromID)
	if err != nil {
		return nil, err
	}
	tr, ok := src.transitions[strings.ToLower(label)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTransition, label)
	}
	dst, err := g.Location(tr.To)
	if err != nil {
		return nil, err
	}
	if dst.Locked() {
		if dst.RequiredItem != "" {
			return nil, fmt.Errorf("%w: you need the %s", ErrBlocked, dst.RequiredItem)
		}
		return nil, fmt.Errorf("%w: you are not ready to go there yet", ErrBlocked)
	}
	dst.Visited = true
	return dst, nil
}

// Peek resolves a transition without moving or marking anything. Used by the
// session to unlock destinations the player holds the key for before the
// actual move.
func (g *Graph) Peek(fromID, label string) (*Location, error) {
	src, err := g.Location(fromID)
	if err != nil {
		return nil, err
	}
	tr, ok := src.transitions[strings.ToLower(label)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTransition, label)
	}
	return g.Location(tr.To)
}

// Unlock clears a location's lock.
func (g *Graph) Unlock(id string) error {
	loc, err := g.Location(id)
	if err != nil {
		return err
	}
	loc.RequiredItem = ""
	loc.GateLocked = false
	return nil
}

// Describe renders a location. Move marks Visited as a side effect, so the
// caller captures the flag before moving and passes it here to pick the
// long (first visit) or short (revisit) variant.
func (g *Graph) Describe(loc *Location, firstVisit bool) string {
	if firstVisit {
		return loc.LongDesc
	}
	return fmt.Sprintf("You are back at %s. %s", loc.Name, loc.ShortDesc)
}

// PlaceItem drops an item in a location.
func (g *Graph) PlaceItem(locID string, it item.Item) error {
	loc, err := g.Location(locID)
	if err != nil {
		return err
	}
	loc.items = append(loc.items, it)
	return nil
}

// TakeItem removes an item from a location and returns it.
func (g *Graph) TakeItem(locID, token string) (item.Item, error) {
	loc, err := g.Location(locID)
	if err != nil {
		return item.Item{}, err
	}
	for i, it := range loc.items {
		if it.Matches(token) {
			loc.items = append(loc.items[:i], loc.items[i+1:]...)
			return it, nil
		}
	}
	return item.Item{}, fmt.Errorf("%w: %s", ErrItemNotFound, token)
}

// PlaceNPC stations a character in a location.
func (g *Graph) PlaceNPC(locID string, npc *NPC) error {
	loc, err := g.Location(locID)
	if err != nil {
		return err
	}
	loc.npcs[strings.ToLower(npc.Name)] = npc
	return nil
}

// NPC finds a character in a location by name token.
func (g *Graph) NPC(locID, token string) (*NPC, error) {
	loc, err := g.Location(locID)
	if err != nil {
		return nil, err
	}
	token = strings.ToLower(strings.TrimSpace(token))
	if npc, ok := loc.npcs[token]; ok {
		return npc, nil
	}
	for _, npc := range loc.npcs {
		if strings.Contains(strings.ToLower(npc.Name), token) {
			return npc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNPCNotFound, token)
}
