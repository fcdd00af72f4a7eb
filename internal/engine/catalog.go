package engine

import (
	"fmt"
	"unicode/utf8"
)

// CategoryInfo is display metadata for a category.
type CategoryInfo struct {
	Category    Category
	Title       string
	Description string
}

var CategoryInfos = []CategoryInfo{
	{CategoryPhysical, "Física", "Exercícios e saúde do corpo"},
	{CategoryEnergetic, "Energética", "Vitalidade e energia pessoal"},
	{CategoryAstralBody, "Corpo Astral", "Sentimentos e matéria astral"},
	{CategoryMental, "Mental", "Foco, aprendizado e clareza"},
	{CategorySpiritual, "Espiritual", "Conexão e propósito interior"},
	{CategoryIntraphysical, "Realidade Intrafísica", "Tarefas sociais e profissionais"},
	{CategoryPractices, "Práticas Diárias", "Escolha uma prática por dia"},
	{CategoryCandles, "Rituais com Velas", "Rituais energéticos sagrados"},
	{CategoryAstral, "Realidade Astral", "Experiências extrafísicas"},
}

// Title returns the display title of c, or c itself.
func (c Category) Title() string {
	for _, info := range CategoryInfos {
		if info.Category == c {
			return info.Title
		}
	}
	return string(c)
}

var builtInCatalog = []Mission{
	{ID: "p1", Title: "Musculação Peito", Points: 50, Category: CategoryPhysical},
	{ID: "p2", Title: "Musculação Peito + Abdômen", Points: 75, Category: CategoryPhysical},
	{ID: "p3", Title: "Treino de MMA + Abdômen", Points: 70, Category: CategoryPhysical},
	{ID: "p4", Title: "Musculação Bike + Perna", Points: 80, Category: CategoryPhysical},
	{ID: "p5", Title: "Musculação Costas na Academia", Points: 75, Category: CategoryPhysical},
	{ID: "p6", Title: "Musculação Ombro e Trapézio", Points: 85, Category: CategoryPhysical},
	{ID: "p7", Title: "Musculação Braços Completos", Points: 85, Category: CategoryPhysical},
	{ID: "p8", Title: "Corrida na Rua + Sol", Points: 90, Category: CategoryPhysical},
	{ID: "p9", Title: "MMA", Points: 50, Category: CategoryPhysical},

	{ID: "e1", Title: "OLVEs na Cadeira", Points: 40, Category: CategoryEnergetic},
	{ID: "e2", Title: "OLVEs no Pátio", Points: 60, Category: CategoryEnergetic},
	{ID: "e3", Title: "OLVEs Deitado", Points: 30, Category: CategoryEnergetic},
	{ID: "e4", Title: "10 x 20 OLVEs por Dia", Points: 60, Category: CategoryEnergetic},
	{ID: "e5", Title: "Abstinência Diária", Points: 40, Category: CategoryEnergetic},
	{ID: "e6", Title: "1 Prática (penalidade)", Points: -40, Category: CategoryEnergetic},

	{ID: "ab1", Title: "Registrar insight astral", Points: 40, Category: CategoryAstralBody},
	{ID: "ab2", Title: "Análise de mecanismo astral", Points: 35, Category: CategoryAstralBody},
	{ID: "ab3", Title: "Formas pensamentos de guerreiro", Points: 100, Category: CategoryAstralBody},

	{ID: "m1", Title: "Leitura diária", Points: 45, Category: CategoryMental},
	{ID: "m2", Title: "Aprender algo novo", Points: 50, Category: CategoryMental},
	{ID: "m3", Title: "Curso", Points: 70, Category: CategoryMental},
	{ID: "m4", Title: "Concentração (Dharana) - 10 min", Points: 100, Category: CategoryMental},
	{ID: "m5", Title: "Meditação (Dhyana) - 5 min silêncio", Points: 170, Category: CategoryMental},
	{ID: "m6", Title: "Xadrez", Points: 40, Category: CategoryMental},
	{ID: "m7", Title: "StarCraft", Points: 60, Category: CategoryMental},

	{ID: "s1", Title: "Reiki", Points: 35, Category: CategorySpiritual},
	{ID: "s2", Title: "Reiki para Casa", Points: 10, Category: CategorySpiritual},
	{ID: "s3", Title: "Reiki para Pais ou Alguém Específico", Points: 10, Category: CategorySpiritual},
	{ID: "s4", Title: "Reiki para Comunidade Carente", Points: 20, Category: CategorySpiritual},
	{ID: "s5", Title: "Devocional", Points: 25, Category: CategorySpiritual},
	{ID: "s6", Title: "Asha Music", Points: 25, Category: CategorySpiritual},

	{ID: "i1", Title: "Completar tarefa de trabalho", Points: 60, Category: CategoryIntraphysical},
	{ID: "i2", Title: "Conectar com um amigo", Points: 40, Category: CategoryIntraphysical},

	{ID: "a1", Title: "Lucidez plena em sonho", Points: 130, Category: CategoryAstral},
	{ID: "a2", Title: "Semi-lucidez", Points: 80, Category: CategoryAstral},
	{ID: "a3", Title: "Levitação (em sonho/astral)", Points: 80, Category: CategoryAstral},
	{ID: "a4", Title: "Lutas corporais desnecessárias", Points: -80, Category: CategoryAstral},
}

// BuiltInCatalog returns a fresh copy of the seed missions shipped with this
// release.
func BuiltInCatalog() []Mission {
	return append([]Mission(nil), builtInCatalog...)
}

// Reconcile merges the authoritative definitions (builtIn then custom) with
// the previously persisted list. For each authoritative id the definition
// fields come from the authoritative entry and Completed comes from previous
// (false when absent). Ids that are no longer authoritative are dropped, as
// are entries with an unknown category. On an id collision the built-in
// definition wins. Order follows builtIn then custom.
func Reconcile(builtIn, custom, previous []Mission) []Mission {
	completed := make(map[string]bool, len(previous))
	for _, m := range previous {
		if m.Completed {
			completed[m.ID] = true
		}
	}

	seen := make(map[string]bool, len(builtIn)+len(custom))
	out := make([]Mission, 0, len(builtIn)+len(custom))
	add := func(m Mission, isCustom bool) {
		if m.ID == "" || seen[m.ID] || !m.Category.IsValid() {
			return
		}
		seen[m.ID] = true
		m.Custom = isCustom
		m.Completed = completed[m.ID]
		out = append(out, m)
	}
	for _, m := range builtIn {
		add(m, false)
	}
	for _, m := range custom {
		add(m, true)
	}
	return out
}

// ResetForNewDay clears every completion flag. Calling it again is a no-op.
func ResetForNewDay(catalog []Mission) []Mission {
	out := make([]Mission, len(catalog))
	for i, m := range catalog {
		m.Completed = false
		out[i] = m
	}
	return out
}

// NewCustomMission validates and builds a user-defined mission.
func NewCustomMission(id, title string, points int, category Category) (Mission, error) {
	t, err := normalizeText("title", title)
	if err != nil {
		return Mission{}, err
	}
	if utf8.RuneCountInString(t) > MaxTitleLength {
		return Mission{}, ValidationError{Field: "title", Reason: fmt.Sprintf("longer than %d characters", MaxTitleLength)}
	}
	if points < CustomPointsMin || points > CustomPointsMax {
		return Mission{}, ValidationError{Field: "points", Reason: fmt.Sprintf("must be between %d and %d", CustomPointsMin, CustomPointsMax)}
	}
	if !category.IsValid() {
		return Mission{}, ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", category)}
	}
	return Mission{ID: id, Title: t, Points: points, Category: category, Custom: true}, nil
}

func findMission(catalog []Mission, id string) (int, bool) {
	for i, m := range catalog {
		if m.ID == id {
			return i, true
		}
	}
	return -1, false
}

var candleNames = map[CandleColor]string{
	CandleLilac:  "Vela Lilás",
	CandleBlue:   "Vela Azul",
	CandleGreen:  "Vela Verde",
	CandleGold:   "Vela Dourada",
	CandleOrange: "Vela Laranja",
	CandleRed:    "Vela Vermelha",
	CandleWhite:  "Vela Branca",
}

// Name returns the display name of a candle color.
func (c CandleColor) Name() string {
	if n, ok := candleNames[c]; ok {
		return n
	}
	return string(c)
}
