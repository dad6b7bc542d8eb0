// Package art serves decorative ASCII blocks for locations and creatures.
// Purely presentational: the session displays these and never consults them
// for logic.
package art

import "strings"

var locationArt = map[string]string{
	"forest": `
      \|/
     --*--
      /|\
     / | \
    /  |  \`,
	"temple": `
     ____
    /    \
   | |  | |
   | |  | |
  _|_|__|_|_`,
	"mountain": `
       /\
      /  \
     /    \
    / /\   \
   /_/  \___\`,
	"station": `
    ___________
   |  o  o  o  |
  =|===========|=
   |___________|`,
	"lab": `
    _______
   | [] [] |
   |  ___  |
   |_|___|_|`,
	"street": `
   |  |    |  |
   |  | __ |  |
   |__||  ||__|
   ....|__|....`,
	"graveyard": `
     ___   ___
    | + | | + |
    |   | |   |
  __|___|_|___|__`,
	"mansion": `
      /\  /\
     /__\/__\
     |  __  |
     | |  | |
     |_|__|_|`,
	"cave": `
     ___
   /~   ~\
  |  /|\  |
   \  |  /
     ~|~`,
}

var creatureArt = map[string]string{
	"drone": `
     .---.
    ( o o )
     \_^_/
     // \\`,
	"skeleton": `
     .-.
    (o o)
     |=|
    /| |\
     d b`,
	"spirit": `
     .~~.
    ( oo )
     )  (
    ~~~~~~`,
	"boss": `
    \\\|///
    \\ ~ ~ //
    ( @ @ )
     _)-(_
    /|\=/|\`,
}

// ForLocation returns a decorative block matched by keyword in the location
// name, or an empty string when nothing fits.
func ForLocation(name string) string {
	name = strings.ToLower(name)
	for keyword, block := range locationArt {
		if strings.Contains(name, keyword) {
			return block
		}
	}
	return ""
}

// ForCreature returns a decorative block for an enemy. Bosses get their own
// block; otherwise a keyword match on the name, falling back to nothing.
func ForCreature(name string, boss bool) string {
	if boss {
		return creatureArt["boss"]
	}
	name = strings.ToLower(name)
	for keyword, block := range creatureArt {
		if strings.Contains(name, keyword) {
			return block
		}
	}
	return ""
}
