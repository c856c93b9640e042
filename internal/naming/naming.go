// Package naming provides the building blocks of body and satellite names:
// astronomical letters, Roman numerals and a generator of unique evocative
// names.
package naming

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"starforge/internal/dice"
)

// BodyLetter returns the designation of the i-th body (zero based),
// starting at "b". Past "z" designations continue as "bb", "bc", ...
func BodyLetter(i int) string {
	const first, span = 'b', 'z' - 'b' + 1
	if i < span {
		return string(rune(first + i))
	}
	return BodyLetter(i/span-1) + string(rune(first+i%span))
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman renders n (n >= 1) as a Roman numeral
func Roman(n int) string {
	if n < 1 {
		return strconv.Itoa(n)
	}
	var sb strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	return sb.String()
}

// Moon returns the name of the i-th satellite (one based) of body
func Moon(body string, i int, evocative bool) string {
	if evocative {
		return body + " " + strconv.Itoa(i)
	}
	return body + " " + Roman(i)
}

// Body returns the procedural name of the i-th body (zero based) in system
func Body(system string, i int) string {
	return system + " " + BodyLetter(i)
}

var (
	openings = []string{
		"ae", "al", "an", "ar", "bel", "cal", "cor", "dra", "el", "fen", "gal", "hel",
		"iss", "kal", "kor", "lum", "mor", "nex", "ob", "or", "pra", "quor", "rho",
		"sar", "sol", "tal", "tor", "ul", "var", "vex", "xan", "zar",
	}
	middles = []string{
		"a", "e", "i", "o", "u", "ae", "ia", "io", "an", "en", "ar", "or", "ul", "yr",
	}
	endings = []string{
		"th", "x", "n", "s", "ris", "dos", "gar", "lon", "mar", "nus", "phon", "ros",
		"tis", "vus", "xis", "ium", "ara", "eon", "ikar", "ost",
	}
	epithets = []string{
		"Prime", "Secundus", "Tertius", "Minoris", "Majoris", "Ultima", "Extremis",
	}
)

// Generator produces names that are unique within its scope
type Generator struct {
	title cases.Caser
	used  map[string]bool
}

// NewGenerator returns a generator that will avoid every name in taken
func NewGenerator(taken ...string) *Generator {
	g := &Generator{
		title: cases.Title(language.English),
		used:  make(map[string]bool),
	}
	for _, name := range taken {
		g.Reserve(name)
	}
	return g
}

// Reserve marks name as in use
func (g *Generator) Reserve(name string) {
	if name != "" {
		g.used[strings.ToLower(name)] = true
	}
}

// Taken reports whether name is already in use
func (g *Generator) Taken(name string) bool {
	return g.used[strings.ToLower(name)]
}

// Unique draws a fresh evocative name and reserves it
func (g *Generator) Unique(r *dice.Roller) string {
	for attempt := 0; ; attempt++ {
		name := g.compose(r)
		if attempt >= 20 {
			name += " " + dice.Pick(r, epithets)
		}
		if attempt >= 40 {
			name += " " + Roman(attempt)
		}
		if !g.Taken(name) {
			g.Reserve(name)
			return name
		}
	}
}

func (g *Generator) compose(r *dice.Roller) string {
	var sb strings.Builder
	sb.WriteString(dice.Pick(r, openings))
	if r.Chance(60) {
		sb.WriteString(dice.Pick(r, middles))
	}
	sb.WriteString(dice.Pick(r, endings))
	name := g.title.String(sb.String())
	if r.Chance(10) {
		name += " " + dice.Pick(r, epithets)
	}
	return name
}
