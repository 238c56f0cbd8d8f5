package repositories

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// A column list concatenated against a keyword with no whitespace in
// between ("...last_loginFROM users") is valid Go but invalid SQL.
var gluedKeyword = regexp.MustCompile(`\S(FROM|WHERE|ORDER|AND)\b`)

func TestAssembledQueriesKeepKeywordsSeparated(t *testing.T) {
	queries := map[string]string{
		"user by id":           userByIDQuery,
		"active user by email": activeUserByEmailQuery,
		"contest by id":        contestByIDQuery,
	}

	for name, query := range queries {
		assert.Falsef(t, gluedKeyword.MatchString(query),
			"%s: column list runs into a keyword: %q", name, query)
	}
}

func TestColumnListsAreWhitespaceDelimited(t *testing.T) {
	for name, cols := range map[string]string{
		"users":    userColumns,
		"contests": contestColumns,
	} {
		assert.Truef(t, strings.HasPrefix(cols, "\n"), "%s column list must start with whitespace", name)
		assert.Truef(t, strings.HasSuffix(cols, "\n"), "%s column list must end with whitespace", name)
	}
}
