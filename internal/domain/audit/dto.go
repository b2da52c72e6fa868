package audit

import "strings"

// ListFilter narrows an audit listing. All populated fields combine with AND.
type ListFilter struct {
	// Search matches case-insensitively against description, actor name and
	// entity name.
	Search  string
	Action  Action
	Entity  EntityKind
	Success *bool
	Limit   int
	Offset  int
}

// Matches reports whether an entry satisfies the filter. The SQL listing
// builds the equivalent WHERE clause; this predicate is the reference
// semantics and what in-memory recorders use.
func (f ListFilter) Matches(e Entry) bool {
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if f.Entity != "" && e.Entity != f.Entity {
		return false
	}
	if f.Success != nil && e.Success != *f.Success {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Description), needle) &&
			!strings.Contains(strings.ToLower(e.Actor.Name), needle) &&
			!(e.EntityName != nil && strings.Contains(strings.ToLower(*e.EntityName), needle)) {
			return false
		}
	}
	return true
}

type ListResponse struct {
	Entries []Entry `json:"entries"`
	Total   int64   `json:"total"`
}
