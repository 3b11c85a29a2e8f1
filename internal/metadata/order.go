package metadata

import "fmt"

// OrderViolation is a lookup column whose target list is not declared before the declaring list.
type OrderViolation struct {
	List       string
	Column     string
	LookupList string
	// Missing is true when the target is not registered at all.
	Missing bool
}

func (v OrderViolation) String() string {
	if v.Missing {
		return fmt.Sprintf("%s.%s looks up %q, which is not registered", v.List, v.Column, v.LookupList)
	}
	return fmt.Sprintf("%s.%s looks up %q, which is declared later", v.List, v.Column, v.LookupList)
}

// CheckOrder reports every lookup that would be unresolved when the lists are
// provisioned in declaration order. A list may look itself up: its id is known
// before any of its columns are created.
func (r *Registry) CheckOrder() []OrderViolation {
	var violations []OrderViolation
	for pos, def := range r.lists {
		for _, col := range def.Lookups() {
			if col.LookupList == def.DisplayName {
				continue
			}
			target, ok := r.index[col.LookupList]
			switch {
			case !ok:
				violations = append(violations, OrderViolation{
					List: def.DisplayName, Column: col.Name, LookupList: col.LookupList, Missing: true,
				})
			case target > pos:
				violations = append(violations, OrderViolation{
					List: def.DisplayName, Column: col.Name, LookupList: col.LookupList,
				})
			}
		}
	}
	return violations
}

// DependsOn returns the distinct lists name looks up, in first-use order.
func (r *Registry) DependsOn(name string) []string {
	i, ok := r.index[name]
	if !ok {
		return nil
	}
	var deps []string
	seen := map[string]bool{name: true}
	for _, col := range r.lists[i].Lookups() {
		if !seen[col.LookupList] {
			seen[col.LookupList] = true
			deps = append(deps, col.LookupList)
		}
	}
	return deps
}
