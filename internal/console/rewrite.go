package console

import (
	"regexp"
	"strings"
)

// callPattern matches the dotted call form Type.verb(args).
var callPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\.([A-Za-z0-9_]+)\((.*)\)$`)

// Rewrite turns `Type.verb(args)` into the canonical `verb Type args` form.
// Lines that are not a dotted call are returned unchanged.
//
// Arguments are split on every comma without regard to quoting or nesting,
// except for update, which splits once and then reads the remainder as an
// inline mapping of attribute names to values. When that remainder is not a
// mapping literal, each comma-separated fragment becomes one quoted token;
// names and values are then told apart only by position.
func Rewrite(line string) string {
	m := callPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return line
	}
	class, verb, args := m[1], m[2], m[3]

	if !strings.Contains(args, ",") {
		return strings.Join([]string{verb, class, args}, " ")
	}
	if verb != "update" {
		return strings.Join(append([]string{verb, class}, strings.Split(args, ",")...), " ")
	}

	id, rest, _ := strings.Cut(args, ",")
	tokens := []string{verb, class, id}
	if lit, err := ParseLiteral(strings.TrimSpace(rest)); err == nil && lit.Kind == LitMap {
		for _, pair := range lit.Pairs {
			tokens = append(tokens, Quote(pair.Key.Text()), Quote(pair.Value.Text()))
		}
	} else {
		for _, frag := range strings.Split(rest, ",") {
			tokens = append(tokens, Quote(strings.TrimSpace(frag)))
		}
	}
	return strings.Join(tokens, " ")
}
