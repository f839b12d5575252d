package lanedodge

import (
	"strings"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
)

// Mode selects how many players and lane groups a round has.
type Mode int

const (
	ModeSolo Mode = iota // One player, one shared lane group
	ModeDuo              // Two players, left and right lane groups
)

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSolo:
		return "SOLO"
	case ModeDuo:
		return "DUO"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m == ModeSolo || m == ModeDuo
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeDuo {
		return ModeSolo
	}
	return ModeDuo
}

// ParseMode converts "solo" or "duo" (any case) to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "solo", "1":
		return ModeSolo, true
	case "duo", "2":
		return ModeDuo, true
	default:
		return ModeSolo, false
	}
}

// LaneGroup identifies the set of lanes a player and its obstacles belong to.
type LaneGroup int

const (
	GroupShared LaneGroup = iota // Solo
	GroupLeft                    // Duo, player 1
	GroupRight                   // Duo, player 2
)

// String returns a short label for the group.
func (g LaneGroup) String() string {
	switch g {
	case GroupShared:
		return "shared"
	case GroupLeft:
		return "left"
	case GroupRight:
		return "right"
	default:
		return "unknown"
	}
}

// Direction is a lane change request.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
)

// GroupLayout is one lane group with its lane centers in field units.
type GroupLayout struct {
	Group LaneGroup
	LaneX []float64
}

// LaneCount returns the number of lanes in the group.
func (g GroupLayout) LaneCount() int {
	return len(g.LaneX)
}

// MiddleLane returns the index players start on.
func (g GroupLayout) MiddleLane() int {
	return len(g.LaneX) / 2
}

// Layout is the active configuration of a round: field geometry, lane
// groups and the player band. It is resolved once per reset so movement,
// spawning, collision and drawing never branch on the mode themselves.
// Group i is owned by player i.
type Layout struct {
	Mode         Mode
	FieldWidth   float64
	FieldHeight  float64
	PlayerWidth  float64
	PlayerHeight float64
	PlayerY      float64 // Top of the player band
	Groups       []GroupLayout
}

// ResolveLayout builds the layout for a mode from the config.
func ResolveLayout(cfg config.LaneDodgeConfig, mode Mode) Layout {
	modeCfg := modeConfig(cfg, mode)

	ids := []LaneGroup{GroupShared}
	if mode == ModeDuo {
		ids = []LaneGroup{GroupLeft, GroupRight}
	}

	groups := make([]GroupLayout, 0, len(ids))
	for i, id := range ids {
		var fractions []float64
		if i < len(modeCfg.Lanes) {
			fractions = modeCfg.Lanes[i]
		}
		lanes := make([]float64, len(fractions))
		for j, f := range fractions {
			lanes[j] = f * cfg.Field.Width
		}
		groups = append(groups, GroupLayout{Group: id, LaneX: lanes})
	}

	return Layout{
		Mode:         mode,
		FieldWidth:   cfg.Field.Width,
		FieldHeight:  cfg.Field.Height,
		PlayerWidth:  cfg.Player.Width,
		PlayerHeight: cfg.Player.Height,
		PlayerY:      cfg.Field.Height - cfg.Player.Height - cfg.Player.BottomMargin,
		Groups:       groups,
	}
}

// Group returns the layout of a lane group and its index.
func (l Layout) Group(id LaneGroup) (GroupLayout, int, bool) {
	for i, g := range l.Groups {
		if g.Group == id {
			return g, i, true
		}
	}
	return GroupLayout{}, -1, false
}

// PlayerRect returns the hitbox of a player in field units.
func (l Layout) PlayerRect(p Player) core.RectF {
	g, _, ok := l.Group(p.Group)
	if !ok || p.Lane < 0 || p.Lane >= g.LaneCount() {
		return core.RectF{}
	}
	return core.CenteredRectF(g.LaneX[p.Lane], l.PlayerY, p.Width, p.Height)
}

// ObstacleRect returns the hitbox of an obstacle in field units.
func (l Layout) ObstacleRect(o Obstacle) core.RectF {
	g, _, ok := l.Group(o.Group)
	if !ok || o.Lane < 0 || o.Lane >= g.LaneCount() {
		return core.RectF{}
	}
	return core.CenteredRectF(g.LaneX[o.Lane], o.Y, o.Size, o.Size)
}

// clone returns a deep copy so callers cannot mutate engine state.
func (l Layout) clone() Layout {
	groups := make([]GroupLayout, len(l.Groups))
	for i, g := range l.Groups {
		groups[i] = GroupLayout{Group: g.Group, LaneX: append([]float64(nil), g.LaneX...)}
	}
	l.Groups = groups
	return l
}

func modeConfig(cfg config.LaneDodgeConfig, mode Mode) config.ModeConfig {
	if mode == ModeDuo {
		return cfg.Duo
	}
	return cfg.Solo
}
