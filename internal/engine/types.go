package engine

import "time"

type Category string

const (
	CategoryPhysical      Category = "physical"
	CategoryEnergetic     Category = "energetic"
	CategoryAstralBody    Category = "astralBody"
	CategoryMental        Category = "mental"
	CategorySpiritual     Category = "spiritual"
	CategoryIntraphysical Category = "intraphysical"
	CategoryPractices     Category = "practices"
	CategoryCandles       Category = "candles"
	CategoryAstral        Category = "astral"
)

// Categories is the closed set, in display order.
var Categories = []Category{
	CategoryPhysical,
	CategoryEnergetic,
	CategoryAstralBody,
	CategoryMental,
	CategorySpiritual,
	CategoryIntraphysical,
	CategoryPractices,
	CategoryCandles,
	CategoryAstral,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryPhysical, CategoryEnergetic, CategoryAstralBody, CategoryMental, CategorySpiritual,
		CategoryIntraphysical, CategoryPractices, CategoryCandles, CategoryAstral:
		return true
	default:
		return false
	}
}

type CandleColor string

const (
	CandleLilac  CandleColor = "lilac"
	CandleBlue   CandleColor = "blue"
	CandleGreen  CandleColor = "green"
	CandleGold   CandleColor = "gold"
	CandleOrange CandleColor = "orange"
	CandleRed    CandleColor = "red"
	CandleWhite  CandleColor = "white"
)

var CandleColors = []CandleColor{CandleLilac, CandleBlue, CandleGreen, CandleGold, CandleOrange, CandleRed, CandleWhite}

func (c CandleColor) IsValid() bool {
	switch c {
	case CandleLilac, CandleBlue, CandleGreen, CandleGold, CandleOrange, CandleRed, CandleWhite:
		return true
	default:
		return false
	}
}

type Practice string

const (
	Practice1 Practice = "practice1"
	Practice2 Practice = "practice2"
	Practice3 Practice = "practice3"
)

// PracticePenalties is the fixed penalty applied when a practice is selected.
var PracticePenalties = map[Practice]int{
	Practice1: -40,
	Practice2: -90,
	Practice3: -150,
}

func (p Practice) IsValid() bool {
	_, ok := PracticePenalties[p]
	return ok
}

// Mission is a catalog entry. Completed is scoped to the current day.
type Mission struct {
	ID        string   `json:"id" validate:"required"`
	Title     string   `json:"title" validate:"required"`
	Points    int      `json:"points"`
	Completed bool     `json:"completed"`
	Category  Category `json:"category" validate:"category"`
	Custom    bool     `json:"custom,omitempty"`
}

// CompletedMission snapshots the mission definition at completion time.
type CompletedMission struct {
	MissionID   string    `json:"missionId" validate:"required"`
	Title       string    `json:"title"`
	Points      int       `json:"points"`
	Category    Category  `json:"category" validate:"category"`
	CompletedAt time.Time `json:"completedAt"`
}

type Ritual struct {
	ID          string      `json:"id" validate:"required"`
	Color       CandleColor `json:"color" validate:"candle"`
	Note        string      `json:"note"`
	CompletedAt time.Time   `json:"completedAt"`
}

type Insight struct {
	ID        string    `json:"id" validate:"required"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DailyLog is the record of one day key.
type DailyLog struct {
	Date              string             `json:"date" validate:"daykey"`
	CompletedMissions []CompletedMission `json:"completedMissions" validate:"dive"`
	TotalPoints       int                `json:"totalPoints"`
	Practice          Practice           `json:"practiceSelected,omitempty" validate:"omitempty,practice"`
	RunningKm         float64            `json:"runningKm"`
	Punches           int                `json:"punches"`
	ClonaDrops        int                `json:"clonaDrops"`
	Rituals           []Ritual           `json:"rituals" validate:"dive"`
	Insights          []Insight          `json:"insights" validate:"dive"`
}

// MonthlyStats is the archived rollup of the bounded counters for a month.
type MonthlyStats struct {
	Month        string  `json:"month" validate:"monthkey"`
	TotalKm      float64 `json:"totalKm"`
	TotalPunches int     `json:"totalPunches"`
	TotalClona   int     `json:"totalClona"`
}

// BottleCompletion is one entry of the clona bottle history.
type BottleCompletion struct {
	ID          string    `json:"id" validate:"required"`
	CompletedAt time.Time `json:"completedAt"`
	DayKey      string    `json:"dateKey" validate:"daykey"`
}

// RitualEntry and InsightEntry pair an entry with the day it belongs to.
type RitualEntry struct {
	Day string
	Ritual
}

type InsightEntry struct {
	Day string
	Insight
}
