package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/engine"
)

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// boolArg reads an optional boolean argument.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// mutationView is the JSON shape of engine.MutationResult.
type mutationView struct {
	Day         string `json:"day"`
	Delta       int    `json:"delta"`
	DayTotal    int    `json:"dayTotal"`
	Lifetime    int    `json:"lifetime"`
	LevelBefore int    `json:"levelBefore"`
	LevelAfter  int    `json:"levelAfter"`
	LevelUp     bool   `json:"levelUp,omitempty"`
	LevelDown   bool   `json:"levelDown,omitempty"`
}

func viewMutation(res *engine.MutationResult) mutationView {
	return mutationView{
		Day:         res.Day,
		Delta:       res.Delta,
		DayTotal:    res.DayTotal,
		Lifetime:    res.Lifetime,
		LevelBefore: res.LevelBefore,
		LevelAfter:  res.LevelAfter,
		LevelUp:     res.LevelUp(),
		LevelDown:   res.LevelDown(),
	}
}
