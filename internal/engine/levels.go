package engine

const (
	// LevelSize is the number of lifetime points per level.
	LevelSize = 1000

	// RitualBonus is awarded once per candle color per day.
	RitualBonus = 50

	// Custom mission point bounds (inclusive).
	CustomPointsMin = -200
	CustomPointsMax = 500

	// MaxTitleLength bounds custom mission titles, in runes.
	MaxTitleLength = 100
)

// LevelForPoints returns floor(max(0, points) / LevelSize) + 1.
func LevelForPoints(points int) int {
	if points < 0 {
		points = 0
	}
	return points/LevelSize + 1
}

// PointsRequiredForLevel returns the lifetime points at which level starts.
// Level 1 (and below) starts at 0.
func PointsRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * LevelSize
}

// PointsToNextLevel is never negative.
func PointsToNextLevel(points int) int {
	next := PointsRequiredForLevel(LevelForPoints(points) + 1)
	if points < 0 {
		points = 0
	}
	return next - points
}

// LevelProgress returns how far points are into the current level.
func LevelProgress(points int) (into int, size int) {
	if points < 0 {
		return 0, LevelSize
	}
	return points % LevelSize, LevelSize
}
