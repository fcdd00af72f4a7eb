package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
)

// TodayTool handles asc_today.
type TodayTool struct {
	svc *engine.Service
}

func NewTodayTool(svc *engine.Service) *TodayTool {
	return &TodayTool{svc: svc}
}

func (t *TodayTool) Definition() mcp.Tool {
	return mcp.NewTool("asc_today",
		mcp.WithDescription("Today's log and the mission catalog with today's completion flags."),
		mcp.WithBoolean("pending_only",
			mcp.Description("Only list missions not yet completed today (default: false)"),
		),
	)
}

type todayView struct {
	Day      string           `json:"day"`
	Log      engine.DailyLog  `json:"log"`
	Missions []engine.Mission `json:"missions"`
}

func (t *TodayTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pendingOnly := boolArg(req, "pending_only", false)
	if err := t.svc.Refresh(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	v := todayView{Day: t.svc.CurrentDayKey(), Log: t.svc.Today(), Missions: []engine.Mission{}}
	for _, m := range t.svc.Missions() {
		if pendingOnly && m.Completed {
			continue
		}
		v.Missions = append(v.Missions, m)
	}
	return jsonResult(v)
}

// StatusTool handles asc_status.
type StatusTool struct {
	svc *engine.Service
}

func NewStatusTool(svc *engine.Service) *StatusTool {
	return &StatusTool{svc: svc}
}

func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("asc_status",
		mcp.WithDescription("Level, lifetime points, per-category progress and this month's counter totals."),
	)
}

type categoryView struct {
	Category  engine.Category `json:"category"`
	Title     string          `json:"title"`
	Points    int             `json:"points"`
	Completed int             `json:"completed"`
	Total     int             `json:"total"`
}

type statusView struct {
	Day             string              `json:"day"`
	Lifetime        int                 `json:"lifetime"`
	Level           int                 `json:"level"`
	PointsToNext    int                 `json:"pointsToNextLevel"`
	TodayPoints     int                 `json:"todayPoints"`
	Completed       int                 `json:"completed"`
	Total           int                 `json:"total"`
	Categories      []categoryView      `json:"categories"`
	BottleToday     bool                `json:"bottleToday"`
	NextRollover    string              `json:"nextRollover"`
	CurrentMonth    engine.MonthlyStats `json:"currentMonth"`
	MonthDaysLogged int                 `json:"monthDaysLogged"`
}

func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.svc.Refresh(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	st := t.svc.Status()
	v := statusView{
		Day:             st.Day,
		Lifetime:        st.Lifetime,
		Level:           st.Level,
		PointsToNext:    st.PointsToNext,
		TodayPoints:     st.Today.TotalPoints,
		Completed:       st.Completed,
		Total:           st.Total,
		BottleToday:     st.BottleToday,
		NextRollover:    st.NextRollover.Format("2006-01-02T15:04:05Z07:00"),
		CurrentMonth:    st.CurrentMonth.MonthlyStats,
		MonthDaysLogged: st.CurrentMonth.DaysLogged,
	}
	for _, cs := range st.Categories {
		v.Categories = append(v.Categories, categoryView{
			Category:  cs.Category,
			Title:     cs.Category.Title(),
			Points:    cs.Points,
			Completed: cs.Completed,
			Total:     cs.Total,
		})
	}
	return jsonResult(v)
}
