package archetype

import "strings"

// Key identifies one of the four archetypes
type Key string

const (
	Explorer   Key = "explorer"
	Guardian   Key = "guardian"
	Dreamer    Key = "dreamer"
	Challenger Key = "challenger"
)

// Priority is the declared tie-break order for archetype votes
var Priority = []Key{Explorer, Guardian, Dreamer, Challenger}

// Profile is the display data attached to an archetype
type Profile struct {
	Key           Key
	Name          string
	Tags          []string
	Encouragement string
}

var profiles = map[Key]Profile{
	Explorer: {
		Key:  Explorer,
		Name: "Curious Explorer",
		Tags: []string{"Curious", "Energetic", "Open-minded"},
		Encouragement: "You come alive when something is new. Let that curiosity lead you " +
			"outside today, and remember that a small detour counts as an adventure too.",
	},
	Guardian: {
		Key:  Guardian,
		Name: "Steady Guardian",
		Tags: []string{"Reliable", "Calm", "Caring"},
		Encouragement: "Your steadiness is a gift to the people around you. Keep your " +
			"routines, and save a little of that care for yourself.",
	},
	Dreamer: {
		Key:  Dreamer,
		Name: "Gentle Dreamer",
		Tags: []string{"Imaginative", "Sensitive", "Reflective"},
		Encouragement: "You feel things deeply and see what others miss. Give your ideas " +
			"a small, concrete step today; quiet progress is still progress.",
	},
	Challenger: {
		Key:  Challenger,
		Name: "Bold Challenger",
		Tags: []string{"Driven", "Resilient", "Decisive"},
		Encouragement: "You meet obstacles head on. Aim that drive at one goal at a " +
			"time, and let rest be part of the plan.",
	},
}

// serverAliases maps the backend's labels onto internal keys. Matching is
// case-insensitive; the backend has used both its own type names and the
// display names.
var serverAliases = map[string]Key{
	"adventurer":       Explorer,
	"adventurer_type":  Explorer,
	"protector":        Guardian,
	"protector_type":   Guardian,
	"artist":           Dreamer,
	"artist_type":      Dreamer,
	"achiever":         Challenger,
	"achiever_type":    Challenger,
	"explorer":         Explorer,
	"guardian":         Guardian,
	"dreamer":          Dreamer,
	"challenger":       Challenger,
	"curious explorer": Explorer,
	"steady guardian":  Guardian,
	"gentle dreamer":   Dreamer,
	"bold challenger":  Challenger,
}

// ServerLabels is the backend naming scheme, used by the mock backend
var ServerLabels = map[Key]string{
	Explorer:   "ADVENTURER",
	Guardian:   "PROTECTOR",
	Dreamer:    "ARTIST",
	Challenger: "ACHIEVER",
}

// Lookup returns the profile for a key
func Lookup(k Key) (Profile, bool) {
	p, ok := profiles[k]
	return p, ok
}

// ParseServerLabel maps a backend archetype label to an internal key
func ParseServerLabel(label string) (Key, bool) {
	k, ok := serverAliases[strings.ToLower(strings.TrimSpace(label))]
	return k, ok
}
