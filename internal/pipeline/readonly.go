package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPlanNotReadOnly rejects a query plan that cannot be proven read-only.
// A plan failing this check never leaves the planning role.
var ErrPlanNotReadOnly = errors.New("plan is not provably read-only")

// Leading keywords of retrieval statements. Anything else is rejected
// outright rather than relied upon to fail at the sink.
var retrievalKeywords = map[string]bool{
	"SELECT":   true,
	"WITH":     true,
	"SHOW":     true,
	"EXPLAIN":  true,
	"DESCRIBE": true,
}

// Keywords that can mutate a sink. Their presence anywhere at statement
// level fails validation, independent of sink-side permissions.
var mutationKeywords = map[string]bool{
	"INSERT":   true,
	"UPDATE":   true,
	"DELETE":   true,
	"DROP":     true,
	"ALTER":    true,
	"CREATE":   true,
	"TRUNCATE": true,
	"GRANT":    true,
	"REVOKE":   true,
	"MERGE":    true,
	"REPLACE":  true,
	"CALL":     true,
	"EXEC":     true,
	"EXECUTE":  true,
	"COPY":     true,
	"INTO":     true, // SELECT INTO writes a new table
	"VACUUM":   true,
}

// ValidateReadOnly checks that plan is a single retrieval statement.
// String literals are blanked before keyword scanning so data values
// cannot trip (or hide) a match.
func ValidateReadOnly(plan string) error {
	stripped := stripLiterals(plan)
	stripped = strings.TrimSpace(stripped)
	stripped = strings.TrimSuffix(stripped, ";")
	if stripped == "" {
		return fmt.Errorf("%w: empty plan", ErrPlanNotReadOnly)
	}
	if strings.Contains(stripped, ";") {
		return fmt.Errorf("%w: multiple statements", ErrPlanNotReadOnly)
	}

	tokens := strings.Fields(strings.ToUpper(stripped))
	if !retrievalKeywords[tokens[0]] {
		return fmt.Errorf("%w: statement starts with %q", ErrPlanNotReadOnly, tokens[0])
	}
	for _, tok := range tokens {
		tok = strings.Trim(tok, "(),")
		if mutationKeywords[tok] {
			return fmt.Errorf("%w: contains %q", ErrPlanNotReadOnly, tok)
		}
	}
	return nil
}

// stripLiterals blanks single- and double-quoted literal contents,
// preserving statement structure.
func stripLiterals(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
				b.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
