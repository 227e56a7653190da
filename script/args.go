package script

import (
	"fmt"
	"strings"
)

// Arg is a single argument from a parenthesized argument list. Positional
// arguments carry the synthetic keys "arg1", "arg2", ... in call order.
type Arg struct {
	Key   string
	Value string
	Named bool
}

// Args holds the parsed argument list of a pragma or shape/subtitle call.
// Lookup always tries named keys (Korean and English synonyms) before
// falling back to a positional slot, so authors may mix both styles.
type Args struct {
	ordered    []Arg
	named      map[string]string
	positional []string
}

// TokenizeArgs splits a comma separated argument string into Args. Commas
// inside quoted strings or nested (), [], {} do not split tokens. Each token
// is split once on its first top-level '='; a non-empty bare key to the left
// makes it a named argument, anything else is positional.
func TokenizeArgs(s string) Args {
	args := Args{named: map[string]string{}}
	for _, tok := range splitTopLevel(s, ',') {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		key, val, ok := splitNamed(tok)
		if ok {
			args.ordered = append(args.ordered, Arg{Key: key, Value: val, Named: true})
			args.named[key] = val
			continue
		}
		args.positional = append(args.positional, tok)
		args.ordered = append(args.ordered, Arg{
			Key:   fmt.Sprintf("arg%d", len(args.positional)),
			Value: tok,
		})
	}
	return args
}

// splitTopLevel splits s on sep, tracking bracket depth and quote state so
// nested calls and string literals stay intact. Backslash escapes inside
// quotes are honoured.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	var quote rune
	escaped := false
	for _, r := range s {
		if escaped {
			cur.WriteRune(r)
			escaped = false
			continue
		}
		switch {
		case quote != 0:
			if r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			cur.WriteRune(r)
		case r == '(' || r == '[' || r == '{':
			depth++
			cur.WriteRune(r)
		case r == ')' || r == ']' || r == '}':
			depth--
			cur.WriteRune(r)
		case r == sep && depth == 0:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 || len(parts) > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

// splitNamed splits a token on its first '=' that sits outside quotes and
// brackets. The key must be a bare word; quoted or bracketed keys mean the
// '=' belongs to the value and the token stays positional.
func splitNamed(tok string) (key, val string, ok bool) {
	depth := 0
	var quote rune
	escaped := false
	for i, r := range tok {
		if escaped {
			escaped = false
			continue
		}
		switch {
		case quote != 0:
			if r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			depth--
		case r == '=' && depth == 0:
			key = strings.TrimSpace(tok[:i])
			val = strings.TrimSpace(tok[i+len("="):])
			if key == "" || strings.ContainsAny(key, `"' `) {
				return "", "", false
			}
			return key, val, true
		}
	}
	return "", "", false
}

// Lookup resolves one logical attribute: named synonyms win, in the order
// given, then the positional slot pos (0-based). This is the contract that
// lets 점(1, 2) and 점(x=1, 세로=2) mean the same thing.
func (a Args) Lookup(pos int, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := a.named[k]; ok {
			return v, true
		}
	}
	if pos >= 0 && pos < len(a.positional) {
		return a.positional[pos], true
	}
	return "", false
}

// LookupOr is Lookup with a default.
func (a Args) LookupOr(def string, pos int, keys ...string) string {
	if v, ok := a.Lookup(pos, keys...); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

// Map returns the arguments as a flat key to value mapping, positional
// entries under their synthetic argN keys.
func (a Args) Map() map[string]string {
	m := make(map[string]string, len(a.ordered))
	for _, arg := range a.ordered {
		m[arg.Key] = arg.Value
	}
	return m
}

// Len returns the number of parsed arguments.
func (a Args) Len() int { return len(a.ordered) }

// Unquote strips one layer of matching single or double quotes.
func Unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			inner := s[1 : len(s)-1]
			inner = strings.ReplaceAll(inner, `\"`, `"`)
			inner = strings.ReplaceAll(inner, `\'`, `'`)
			return inner
		}
	}
	return s
}
