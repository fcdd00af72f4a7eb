package engine

import (
	"fmt"
	"strings"
)

// ParseCategory accepts the wire name case-insensitively, plus a few aliases.
func ParseCategory(input string) (Category, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "astralbody", "astral-body", "astral_body", "body":
		return CategoryAstralBody, nil
	case "emotional":
		// Renamed in catalog v2.
		return CategoryAstralBody, nil
	case "practice":
		return CategoryPractices, nil
	case "candle":
		return CategoryCandles, nil
	}
	c := Category(s)
	if !c.IsValid() {
		return "", ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", input)}
	}
	return c, nil
}

func ParseCandleColor(input string) (CandleColor, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "purple", "lilas", "lilás":
		return CandleLilac, nil
	case "yellow", "golden":
		return CandleGold, nil
	}
	c := CandleColor(s)
	if !c.IsValid() {
		return "", ValidationError{Field: "color", Reason: fmt.Sprintf("unknown candle color %q", input)}
	}
	return c, nil
}

// ParsePractice accepts "practice2" or just "2".
func ParsePractice(input string) (Practice, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if len(s) == 1 {
		s = "practice" + s
	}
	p := Practice(s)
	if !p.IsValid() {
		return "", ValidationError{Field: "practice", Reason: fmt.Sprintf("unknown practice %q", input)}
	}
	return p, nil
}

func ParseCounter(input string) (Counter, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "km", "runningkm", "running", "run":
		return CounterRunningKm, nil
	case "punches", "punch":
		return CounterPunches, nil
	case "clona", "clonadrops", "drops":
		return CounterClonaDrops, nil
	default:
		return "", ValidationError{Field: "counter", Reason: fmt.Sprintf("unknown counter %q", input)}
	}
}
