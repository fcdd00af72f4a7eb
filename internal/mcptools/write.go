package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
)

// CompleteMissionTool handles asc_complete_mission.
type CompleteMissionTool struct {
	svc *engine.Service
}

func NewCompleteMissionTool(svc *engine.Service) *CompleteMissionTool {
	return &CompleteMissionTool{svc: svc}
}

func (t *CompleteMissionTool) Definition() mcp.Tool {
	return mcp.NewTool("asc_complete_mission",
		mcp.WithDescription("Mark a mission done for today and award its points."),
		mcp.WithString("mission_id",
			mcp.Required(),
			mcp.Description("Mission id as listed by asc_today (e.g. 'p1')"),
		),
	)
}

func (t *CompleteMissionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("mission_id", ""))
	if id == "" {
		return mcp.NewToolResultError("'mission_id' is required"), nil
	}
	res, err := t.svc.CompleteMission(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("completing %s: %v", id, err)), nil
	}
	return jsonResult(viewMutation(res))
}

// UncompleteMissionTool handles asc_uncomplete_mission.
type UncompleteMissionTool struct {
	svc *engine.Service
}

func NewUncompleteMissionTool(svc *engine.Service) *UncompleteMissionTool {
	return &UncompleteMissionTool{svc: svc}
}

func (t *UncompleteMissionTool) Definition() mcp.Tool {
	return mcp.NewTool("asc_uncomplete_mission",
		mcp.WithDescription("Reverse today's completion of a mission, removing the points it awarded."),
		mcp.WithString("mission_id",
			mcp.Required(),
			mcp.Description("Mission id completed today"),
		),
	)
}

func (t *UncompleteMissionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("mission_id", ""))
	if id == "" {
		return mcp.NewToolResultError("'mission_id' is required"), nil
	}
	res, err := t.svc.UncompleteMission(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("uncompleting %s: %v", id, err)), nil
	}
	return jsonResult(viewMutation(res))
}

// SelectPracticeTool handles asc_select_practice.
type SelectPracticeTool struct {
	svc *engine.Service
}

func NewSelectPracticeTool(svc *engine.Service) *SelectPracticeTool {
	return &SelectPracticeTool{svc: svc}
}

func (t *SelectPracticeTool) Definition() mcp.Tool {
	return mcp.NewTool("asc_select_practice",
		mcp.WithDescription("Record today's practice and apply its penalty (practice1 -40, practice2 -90, practice3 -150). Once per day, cannot be changed."),
		mcp.WithString("practice",
			mcp.Required(),
			mcp.Enum(string(engine.Practice1), string(engine.Practice2), string(engine.Practice3)),
			mcp.Description("Practice to record"),
		),
	)
}

func (t *SelectPracticeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := engine.ParsePractice(req.GetString("practice", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := t.svc.SelectPractice(ctx, p)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("selecting %s: %v", p, err)), nil
	}
	return jsonResult(viewMutation(res))
}

// SetCounterTool handles asc_set_counter.
type SetCounterTool struct {
	svc *engine.Service
}

func NewSetCounterTool(svc *engine.Service) *SetCounterTool {
	return &SetCounterTool{svc: svc}
}

func (t *SetCounterTool) Definition() mcp.Tool {
	return mcp.NewTool("asc_set_counter",
		mcp.WithDescription("Set one of today's counters. Out of range values are clamped (runningKm 0-5, punches 0-1000, clonaDrops 0-50)."),
		mcp.WithString("counter",
			mcp.Required(),
			mcp.Enum(string(engine.CounterRunningKm), string(engine.CounterPunches), string(engine.CounterClonaDrops)),
			mcp.Description("Counter to set"),
		),
		mcp.WithNumber("value",
			mcp.Required(),
			mcp.Description("New value for today"),
		),
	)
}

type counterView struct {
	Counter engine.Counter `json:"counter"`
	Value   float64        `json:"value"`
	Clamped bool           `json:"clamped"`
}

func (t *SetCounterTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := engine.ParseCounter(req.GetString("counter", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, ok := req.GetArguments()["value"]; !ok {
		return mcp.NewToolResultError("'value' is required"), nil
	}
	v := req.GetFloat("value", 0)
	res, err := t.svc.UpdateCounter(ctx, c, v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("setting %s: %v", c, err)), nil
	}
	return jsonResult(counterView{Counter: res.Counter, Value: res.Value, Clamped: res.Clamped})
}

// AddRitualTool handles asc_add_ritual.
type AddRitualTool struct {
	svc *engine.Service
}

func NewAddRitualTool(svc *engine.Service) *AddRitualTool {
	return &AddRitualTool{svc: svc}
}

func (t *AddRitualTool) Definition() mcp.Tool {
	colors := make([]string, 0, len(engine.CandleColors))
	for _, c := range engine.CandleColors {
		colors = append(colors, string(c))
	}
	return mcp.NewTool("asc_add_ritual",
		mcp.WithDescription(fmt.Sprintf("Record a candle ritual for today (+%d). Each color counts once per day.", engine.RitualBonus)),
		mcp.WithString("color",
			mcp.Required(),
			mcp.Enum(colors...),
			mcp.Description("Candle color"),
		),
		mcp.WithString("note",
			mcp.Description("Optional intention or note"),
		),
	)
}

type ritualView struct {
	Ritual   engine.Ritual `json:"ritual"`
	Mutation mutationView  `json:"result"`
}

func (t *AddRitualTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	color, err := engine.ParseCandleColor(req.GetString("color", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r, res, err := t.svc.AddRitual(ctx, color, req.GetString("note", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("adding %s ritual: %v", color, err)), nil
	}
	return jsonResult(ritualView{Ritual: *r, Mutation: viewMutation(res)})
}

// AddInsightTool handles asc_add_insight.
type AddInsightTool struct {
	svc *engine.Service
}

func NewAddInsightTool(svc *engine.Service) *AddInsightTool {
	return &AddInsightTool{svc: svc}
}

func (t *AddInsightTool) Definition() mcp.Tool {
	return mcp.NewTool("asc_add_insight",
		mcp.WithDescription("Append an astral insight to today's journal."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Insight text"),
		),
	)
}

func (t *AddInsightTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := t.svc.AddInsight(ctx, req.GetString("content", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(in)
}
