// Package filter compiles tokenized command arguments into a boolean SQL
// predicate fragment. It is independent of the store: the database package
// embeds the compiled fragment into its query templates at a single
// designated slot.
//
// The grammar is a token stream, not an expression grammar. The first token
// must be WHERE (case-insensitive); the remaining tokens are scanned left to
// right. Comparison operators pass through verbatim and mark the next token
// as a value; values are quoted with single quotes doubled. Everything else
// (column names, AND/OR, parentheses) passes through verbatim. Only value
// literals are escaped, structural tokens are trusted.
package filter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax wraps every error the compiler can return, so callers can treat
// a bad filter as a recoverable per-invocation failure.
var ErrSyntax = errors.New("filter syntax error")

var operators = []string{"=", "!=", "<", ">", "<=", ">=", "like"}

// Filter is a compiled boolean predicate fragment. Values inside the
// fragment are already escaped; the fragment as a whole is embedded verbatim.
type Filter struct {
	query string
}

// New wraps a raw predicate fragment. Used by tests and by the database
// package for fixed predicates; user input goes through Parse.
func New(query string) *Filter {
	return &Filter{query: query}
}

// Parse compiles filter arguments. The token stream must start with WHERE.
func Parse(args []string) (*Filter, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: filter condition is required", ErrSyntax)
	}
	if strings.ToLower(args[0]) != "where" {
		return nil, fmt.Errorf("%w: filter must begin with WHERE", ErrSyntax)
	}
	args = args[1:]

	var query strings.Builder
	expectValue := false

	for _, arg := range args {
		if isOperator(arg) {
			expectValue = true
			query.WriteString(" ")
			query.WriteString(arg)
			continue
		}

		// column=value shorthand in a single token
		if idx := strings.Index(arg, "="); idx > 0 {
			query.WriteString(" ")
			query.WriteString(arg[:idx])
			query.WriteString(" = ")
			query.WriteString(escape(arg[idx+1:]))
			continue
		}

		if expectValue {
			query.WriteString(" ")
			query.WriteString(escape(arg))
			expectValue = false
		} else {
			query.WriteString(" ")
			query.WriteString(arg)
		}
	}

	return New(query.String()), nil
}

// ParseOptional is like Parse but maps an empty token stream to the
// always-true predicate instead of failing.
func ParseOptional(args []string) (*Filter, error) {
	if len(args) == 0 {
		return New("1"), nil
	}
	return Parse(args)
}

// Query returns the compiled predicate fragment.
func (f *Filter) Query() string {
	return f.query
}

// AndScoped narrows a predicate to in-scope rows, regardless of what the
// user's own filter matches. Read-path commands use this.
func (f *Filter) AndScoped() *Filter {
	return New("(" + f.query + ") AND unscoped=0")
}

func isOperator(arg string) bool {
	lower := strings.ToLower(arg)
	for _, op := range operators {
		if lower == op {
			return true
		}
	}
	return false
}

// escape wraps a value in single quotes, doubling embedded single quotes.
// Nothing else is altered; backslashes pass through literally.
func escape(value string) string {
	var out strings.Builder
	out.WriteByte('\'')
	for _, c := range value {
		if c == '\'' {
			out.WriteString("''")
		} else {
			out.WriteRune(c)
		}
	}
	out.WriteByte('\'')
	return out.String()
}
