package holiday

import "strings"

// aliasEntry groups every accepted spelling of one holiday under its
// canonical name. The table is scanned in declared order and the first
// alias hit short-circuits, so at most one holiday matches a query.
type aliasEntry struct {
	Canonical string
	Aliases   []string
}

// aliasTable covers the major holidays with Russian case forms, spelling
// variants and common descriptive names. Read-only after initialization.
var aliasTable = []aliasEntry{
	{"песах", []string{"песах", "пейсах", "пасха", "песаха", "песаху", "песахе"}},
	{"шавуот", []string{"шавуот", "шавуота", "шавуоту", "шавуоте", "шавуотом"}},
	{"рош ха-шана", []string{"рош", "рош хашана", "рош ха шана", "рош а-шана", "рош ашана", "рош гашана", "новый год", "еврейский новый год", "rosh hashana"}},
	{"йом киппур", []string{"йом кипур", "йом-кипур", "йом-киппур", "йом киппур", "судный день", "день искупления", "yom kippur"}},
	{"суккот", []string{"суккот", "суккота", "суккоту", "суккоте", "суккотом", "кущи", "праздник кущей"}},
	{"шмини ацерет", []string{"шмини", "шмини ацерет", "шмини-ацерет"}},
	{"симхат тора", []string{"симхат", "симхат тора", "симхат-тора", "симхат тору", "симхат торе", "симхат торой"}},
	{"ханука", []string{"ханука", "хануке", "хануку", "ханукой", "праздник свечей", "праздник огней"}},
	{"ту би-шват", []string{"ту би-шват", "ту би шват", "ту бишват", "новый год деревьев"}},
	{"пурим", []string{"пурим", "пурима", "пуриму", "пуриме", "пуримом"}},
	{"лаг ба-омер", []string{"лаг ба-омер", "лаг ба омер", "лаг баомер"}},
	{"тиша бе-ав", []string{"тиша бе-ав", "тиша бе ав", "тиша беав", "9 ава"}},
}

// Match finds the holiday a query talks about. Returns the canonical name and
// its alias set; ok is false when no alias occurs in the query.
func Match(query string) (canonical string, aliases []string, ok bool) {
	q := strings.ToLower(query)
	for _, entry := range aliasTable {
		for _, alias := range entry.Aliases {
			if strings.Contains(q, alias) {
				return entry.Canonical, entry.Aliases, true
			}
		}
	}
	return "", nil, false
}
