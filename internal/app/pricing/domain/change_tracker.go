package domain

import "sort"

// ChangeTracker records which columns of an aggregate were modified so the
// repository can build an update mutation for those columns only.
type ChangeTracker struct {
	dirty map[string]struct{}
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{dirty: make(map[string]struct{})}
}

func (ct *ChangeTracker) MarkDirty(field string) {
	ct.dirty[field] = struct{}{}
}

func (ct *ChangeTracker) Dirty(field string) bool {
	_, ok := ct.dirty[field]
	return ok
}

func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirty) > 0
}

// DirtyFields returns the modified fields in lexical order.
func (ct *ChangeTracker) DirtyFields() []string {
	fields := make([]string, 0, len(ct.dirty))
	for field := range ct.dirty {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (ct *ChangeTracker) Clear() {
	ct.dirty = make(map[string]struct{})
}
