package sqlite

import (
	"context"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"taskpad/internal/utils"
	"taskpad/store"
)

// SearchTasks returns the user's active tasks whose name matches text under
// the three independent toggles.
//
// Regex patterns are compiled with Go's linear-time engine and evaluated in
// process rather than through a SQL function, so a hostile pattern cannot
// stall the database. Without the regex toggle, candidate rows are narrowed
// with LIKE and, when case sensitivity is requested, re-checked in Go since
// SQLite's LIKE ignores ASCII case.
func (s *Store) SearchTasks(ctx context.Context, userID int64, text string, matchCase, wholeWord, useRegex bool) ([]store.Task, error) {
	if useRegex {
		return s.searchRegex(ctx, userID, text, matchCase, wholeWord)
	}

	q := taskSelect().
		Where(sq.Eq{"t.user_id": userID}).
		Where(sq.Eq{"t.status": store.StatusActive}).
		OrderBy("t.id")

	escaped := escapeLike(text)
	if wholeWord {
		// A word match is an exact name, a leading word, a trailing
		// word, or an interior word.
		q = q.Where(sq.Or{
			sq.Expr("t.name LIKE ? ESCAPE '\\'", escaped),
			sq.Expr("t.name LIKE ? ESCAPE '\\'", escaped+" %"),
			sq.Expr("t.name LIKE ? ESCAPE '\\'", "% "+escaped),
			sq.Expr("t.name LIKE ? ESCAPE '\\'", "% "+escaped+" %"),
		})
	} else {
		q = q.Where(sq.Expr("t.name LIKE ? ESCAPE '\\'", "%"+escaped+"%"))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, utils.ErrStorage("building search query", err)
	}

	tasks, err := s.queryTasks(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if !matchCase {
		return tasks, nil
	}

	matched := []store.Task{}
	for _, t := range tasks {
		if matchesCaseSensitive(t.Name, text, wholeWord) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// searchRegex filters the user's active tasks with a compiled pattern.
func (s *Store) searchRegex(ctx context.Context, userID int64, pattern string, matchCase, wholeWord bool) ([]store.Task, error) {
	if wholeWord {
		pattern = `\b(?:` + pattern + `)\b`
	}
	if !matchCase {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, utils.ErrInvalidRegex(pattern, err)
	}

	tasks, err := s.ListTasks(ctx, userID, store.StatusPtr(store.StatusActive))
	if err != nil {
		return nil, err
	}

	matched := []store.Task{}
	for _, t := range tasks {
		if re.MatchString(t.Name) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// matchesCaseSensitive re-checks a LIKE candidate with exact case.
func matchesCaseSensitive(name, text string, wholeWord bool) bool {
	if !wholeWord {
		return strings.Contains(name, text)
	}
	for _, word := range strings.Fields(name) {
		if word == text {
			return true
		}
	}
	return false
}

// escapeLike escapes the LIKE wildcards in a literal search string.
func escapeLike(text string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	return r.Replace(text)
}
