package owlrun

import "sort"

// Tier is a pattern difficulty band.
type Tier int

const (
	TierBase   Tier = 1 // Always available
	TierMedium Tier = 2 // Difficulty >= 2
	TierHard   Tier = 3 // Difficulty >= 4
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierBase:
		return "base"
	case TierMedium:
		return "medium"
	case TierHard:
		return "hard"
	default:
		return "?"
	}
}

// unlockDifficulty returns the minimum difficulty at which a tier is drawn.
func (t Tier) unlockDifficulty() int {
	switch t {
	case TierMedium:
		return 2
	case TierHard:
		return 4
	default:
		return 1
	}
}

// Pattern is a named lane-occupancy template for one obstacle row.
type Pattern struct {
	Name  string
	Tier  Tier
	Type  ObstacleType
	Lanes []int
	Gap   []int // Lanes left clear even if listed in Lanes
}

// Occupied returns the sorted lanes the pattern fills, with gap lanes
// removed and the highest lane freed when every lane would be taken.
func (p Pattern) Occupied() []int {
	gap := make(map[int]bool, len(p.Gap))
	for _, l := range p.Gap {
		gap[l] = true
	}
	seen := make(map[int]bool, len(p.Lanes))
	out := make([]int, 0, len(p.Lanes))
	for _, l := range p.Lanes {
		if l < 0 || l >= Lanes || gap[l] || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	sort.Ints(out)
	return freeSafeLane(out)
}

// freeSafeLane drops the highest lane of a sorted full-width occupancy.
func freeSafeLane(lanes []int) []int {
	if len(lanes) >= Lanes {
		return lanes[:len(lanes)-1]
	}
	return lanes
}

var patternPool = []Pattern{
	{Name: "log_center", Tier: TierBase, Type: ObstacleLog, Lanes: []int{2}},
	{Name: "log_left", Tier: TierBase, Type: ObstacleLog, Lanes: []int{0, 1}},
	{Name: "log_right", Tier: TierBase, Type: ObstacleLog, Lanes: []int{3, 4}},
	{Name: "branch_pair", Tier: TierBase, Type: ObstacleBranch, Lanes: []int{1, 3}},
	{Name: "mound_pair", Tier: TierBase, Type: ObstacleSnowMound, Lanes: []int{1, 2}},
	{Name: "tree_edges", Tier: TierBase, Type: ObstacleTree, Lanes: []int{0, 4}},
	{Name: "lone_figure", Tier: TierBase, Type: ObstacleFigure, Lanes: []int{3}},
	{Name: "ice_patch", Tier: TierBase, Type: ObstacleIcePatch, Lanes: []int{2, 3}},

	{Name: "log_wall", Tier: TierMedium, Type: ObstacleLog, Lanes: []int{0, 1, 2, 3, 4}, Gap: []int{2}},
	{Name: "rolling_ball", Tier: TierMedium, Type: ObstacleBall, Lanes: []int{1}},
	{Name: "thin_ice_band", Tier: TierMedium, Type: ObstacleThinIce, Lanes: []int{0, 1, 2}},
	{Name: "grove", Tier: TierMedium, Type: ObstacleTree, Lanes: []int{1, 2, 3}},
	{Name: "figure_pair", Tier: TierMedium, Type: ObstacleFigure, Lanes: []int{0, 4}},
	{Name: "low_branches", Tier: TierMedium, Type: ObstacleBranch, Lanes: []int{0, 1, 2, 3}},

	{Name: "log_barricade", Tier: TierHard, Type: ObstacleLog, Lanes: []int{0, 1, 2, 3, 4}},
	{Name: "ball_barrage", Tier: TierHard, Type: ObstacleBall, Lanes: []int{0, 2, 4}},
	{Name: "ice_field", Tier: TierHard, Type: ObstacleIcePatch, Lanes: []int{0, 1, 2, 3, 4}},
	{Name: "tree_wall", Tier: TierHard, Type: ObstacleTree, Lanes: []int{0, 1, 2, 3}},
	{Name: "figure_gauntlet", Tier: TierHard, Type: ObstacleFigure, Lanes: []int{0, 1, 3, 4}},
	{Name: "thin_ice_sheet", Tier: TierHard, Type: ObstacleThinIce, Lanes: []int{1, 2, 3, 4}},
}

// Patterns returns a copy of the full pattern pool.
func Patterns() []Pattern {
	out := make([]Pattern, len(patternPool))
	copy(out, patternPool)
	return out
}

// EligiblePatterns returns the patterns that may be drawn at difficulty.
// With restricted set only the base tier is eligible.
func EligiblePatterns(difficulty int, restricted bool) []Pattern {
	out := make([]Pattern, 0, len(patternPool))
	for _, p := range patternPool {
		if restricted && p.Tier > TierBase {
			continue
		}
		if difficulty >= p.Tier.unlockDifficulty() {
			out = append(out, p)
		}
	}
	return out
}
