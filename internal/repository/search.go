package repository

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a free-text term into a LIKE pattern that matches
// the term literally anywhere in the column.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// whereContains adds a case-insensitive "any of cols contains term" clause.
// An empty term leaves the query untouched. LOWER/LIKE/ESCAPE is portable
// across Postgres and SQLite, unlike ILIKE.
func whereContains(q *gorm.DB, term string, cols ...string) *gorm.DB {
	if term == "" || len(cols) == 0 {
		return q
	}
	pattern := containsPattern(term)
	clauses := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		clauses[i] = "LOWER(COALESCE(" + col + ", '')) LIKE LOWER(?) ESCAPE '\\'"
		args[i] = pattern
	}
	return q.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
