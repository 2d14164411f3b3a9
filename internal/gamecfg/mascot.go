package gamecfg

// MascotKind is the closed set of mascot behaviours.
type MascotKind string

const (
	MascotNone   MascotKind = "none"
	MascotFlat   MascotKind = "flat"   // fixed deltas
	MascotScaled MascotKind = "scaled" // deltas are percentages of the stat
)

// Mascot is a configured mascot. Aim, Reaction and Morale are interpreted by
// Kind: absolute points for flat, percent for scaled.
type Mascot struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Kind     MascotKind `yaml:"kind"`
	Aim      int        `yaml:"aim"`
	Reaction int        `yaml:"reaction"`
	Morale   int        `yaml:"morale"`
}

// MascotDeltas are the only three dimensions a mascot may touch.
type MascotDeltas struct {
	Aim      int
	Reaction int
	Morale   int
}

type mascotEffect func(m Mascot, aim, reaction, moraleProxy int) MascotDeltas

var mascotEffects = map[MascotKind]mascotEffect{
	MascotNone: func(Mascot, int, int, int) MascotDeltas {
		return MascotDeltas{}
	},
	MascotFlat: func(m Mascot, _, _, _ int) MascotDeltas {
		return MascotDeltas{Aim: m.Aim, Reaction: m.Reaction, Morale: m.Morale}
	},
	MascotScaled: func(m Mascot, aim, reaction, moraleProxy int) MascotDeltas {
		return MascotDeltas{
			Aim:      aim * m.Aim / 100,
			Reaction: reaction * m.Reaction / 100,
			Morale:   moraleProxy * m.Morale / 100,
		}
	},
}

func (k MascotKind) Valid() bool {
	_, ok := mascotEffects[k]
	return ok
}

// Apply returns the stat deltas for one player. Unknown kinds yield no deltas;
// Validate rejects them at load time.
func (m Mascot) Apply(aim, reaction, moraleProxy int) MascotDeltas {
	fn, ok := mascotEffects[m.Kind]
	if !ok {
		return MascotDeltas{}
	}
	return fn(m, aim, reaction, moraleProxy)
}
