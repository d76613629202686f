package specification

import (
	"strings"
	"unicode"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns a literal query into an ILIKE pattern matching it anywhere.
func ContainsPattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

// SearchTerms splits a query on whitespace. Double-quoted phrases stay one
// term, without their quotes.
func SearchTerms(query string) []string {
	var terms []string
	var current strings.Builder
	quoted := false
	flush := func() {
		if current.Len() > 0 {
			terms = append(terms, current.String())
			current.Reset()
		}
	}

	for _, r := range query {
		switch {
		case r == '"':
			if quoted {
				flush()
			}
			quoted = !quoted
		case unicode.IsSpace(r) && !quoted:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return terms
}

// ContainsAny matches rows where every term of Query is contained in at
// least one of the columns, case-insensitively. An empty query matches
// everything.
type ContainsAny struct {
	Columns []string
	Query   string
}

func (s ContainsAny) Apply(db *gorm.DB) *gorm.DB {
	terms := SearchTerms(s.Query)
	if len(terms) == 0 || len(s.Columns) == 0 {
		return db
	}

	clauses := make([]string, len(s.Columns))
	for i, column := range s.Columns {
		clauses[i] = column + " ILIKE ?"
	}
	condition := "(" + strings.Join(clauses, " OR ") + ")"

	for _, term := range terms {
		pattern := ContainsPattern(term)
		args := make([]interface{}, len(s.Columns))
		for i := range args {
			args[i] = pattern
		}
		db = db.Where(condition, args...)
	}
	return db
}

// UserSearch filters users by username, email or full name
type UserSearch struct {
	Query string
}

func (s UserSearch) Apply(db *gorm.DB) *gorm.DB {
	return ContainsAny{Columns: []string{"username", "email", "full_name"}, Query: s.Query}.Apply(db)
}
