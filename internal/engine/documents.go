package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/docstore"
)

// Document keys. Each is stored and versioned independently.
const (
	KeyDailyLogs      = "daily-logs"
	KeyMonthlyHistory = "monthly-history"
	KeyLifetimePoints = "lifetime-points"
	KeyMissions       = "missions"
	KeyCustomTasks    = "custom-tasks"
	KeyBottleHistory  = "clona-bottle-history"
	KeyLastReset      = "last-reset"
)

// LegacyKeyPrefix prefixes every key in a browser storage export.
const LegacyKeyPrefix = "ascencao-"

var documentKeys = []string{
	KeyDailyLogs, KeyMonthlyHistory, KeyLifetimePoints, KeyMissions,
	KeyCustomTasks, KeyBottleHistory, KeyLastReset,
}

// RegisterDocuments installs the schema migrations of every document.
func RegisterDocuments(store *docstore.Store) {
	store.Register(KeyDailyLogs, migrateDailyLogsV1)
	store.Register(KeyMissions, migrateMissionsV1(false))
	store.Register(KeyCustomTasks, migrateMissionsV1(true))
}

// state is everything the Service loads at Init.
type state struct {
	logs     map[string]DailyLog
	archive  []MonthlyStats
	lifetime int
	missions []Mission
	custom   []Mission
	bottles  []BottleCompletion
	lastDay  string
}

func loadState(ctx context.Context, store *docstore.Store) state {
	return state{
		logs:     docstore.LoadMap(ctx, store, KeyDailyLogs, ValidateDailyLog),
		archive:  docstore.LoadList(ctx, store, KeyMonthlyHistory, ValidateMonthlyStats),
		lifetime: docstore.LoadScalar(ctx, store, KeyLifetimePoints, 0, nil),
		missions: docstore.LoadList(ctx, store, KeyMissions, ValidateMission),
		custom:   docstore.LoadList(ctx, store, KeyCustomTasks, ValidateMission),
		bottles:  docstore.LoadList(ctx, store, KeyBottleHistory, ValidateBottleCompletion),
		lastDay:  docstore.LoadScalar(ctx, store, KeyLastReset, "", validateDayKey),
	}
}

// migrateDailyLogsV1 moves logs written before rituals and insights had ids:
// candleIntentions become rituals, plain astral insight strings and
// astralBodyInsights merge into insights, and missing counters default to 0.
func migrateDailyLogsV1(body any) (any, error) {
	logs, ok := body.(map[string]any)
	if !ok {
		return nil, errors.New("daily logs: not an object")
	}
	for day, v := range logs {
		log, ok := v.(map[string]any)
		if !ok {
			continue
		}

		if _, ok := log["rituals"]; !ok {
			rituals := []any{}
			if list, ok := log["candleIntentions"].([]any); ok {
				for _, item := range list {
					c, ok := item.(map[string]any)
					if !ok {
						continue
					}
					id, _ := c["id"].(string)
					if id == "" {
						id = uuid.NewString()
					}
					rituals = append(rituals, map[string]any{
						"id":          id,
						"color":       c["color"],
						"note":        c["intention"],
						"completedAt": c["completedAt"],
					})
				}
			}
			log["rituals"] = rituals
		}
		delete(log, "candleIntentions")

		if _, ok := log["insights"]; !ok {
			insights := []any{}
			if list, ok := log["astralBodyInsights"].([]any); ok {
				insights = append(insights, list...)
			}
			if list, ok := log["astralInsights"].([]any); ok {
				at := day + "T12:00:00Z"
				for _, item := range list {
					s, ok := item.(string)
					if !ok || strings.TrimSpace(s) == "" {
						continue
					}
					insights = append(insights, map[string]any{
						"id":        uuid.NewString(),
						"content":   s,
						"createdAt": at,
						"updatedAt": at,
					})
				}
			}
			log["insights"] = insights
		}
		delete(log, "astralBodyInsights")
		delete(log, "astralInsights")

		for _, c := range Counters {
			if _, ok := log[string(c)].(float64); !ok {
				log[string(c)] = 0.0
			}
		}
		if p, ok := log["practiceSelected"]; ok && p == nil {
			delete(log, "practiceSelected")
		}
		if list, ok := log["completedMissions"].([]any); ok {
			for _, item := range list {
				renameLegacyCategory(item)
			}
		}
	}
	return logs, nil
}

// migrateMissionsV1 renames the retired "emotional" category. Custom task
// lists also get their custom flag, which v1 did not store.
func migrateMissionsV1(custom bool) docstore.Migration {
	return func(body any) (any, error) {
		list, ok := body.([]any)
		if !ok {
			return nil, errors.New("missions: not a list")
		}
		for _, item := range list {
			renameLegacyCategory(item)
			if m, ok := item.(map[string]any); ok && custom {
				m["custom"] = true
			}
		}
		return list, nil
	}
}

func renameLegacyCategory(item any) {
	m, ok := item.(map[string]any)
	if !ok {
		return
	}
	if m["category"] == "emotional" {
		m["category"] = string(CategoryAstralBody)
	}
}

// ParseLegacyExport reads a browser storage export (a JSON object of
// "ascencao-*" keys) into document bodies at schema version 1. Values may be
// raw JSON or JSON strings holding JSON, as browser storage keeps strings.
// Unknown keys are ignored.
func ParseLegacyExport(data []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	known := make(map[string]bool, len(documentKeys))
	for _, k := range documentKeys {
		known[k] = true
	}

	out := map[string]json.RawMessage{}
	for k, v := range raw {
		key := strings.TrimPrefix(k, LegacyKeyPrefix)
		if !known[key] {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			if json.Valid([]byte(s)) {
				v = json.RawMessage(s)
			} else {
				// A bare string such as the old last-reset date.
				v, _ = json.Marshal(s)
			}
		}
		out[key] = v
	}
	if len(out) == 0 {
		return nil, errors.New("parse export: no known documents")
	}
	return out, nil
}
