package activitylog

import "sort"

// Entry is an explicit scope declaration: a model name with an already
// resolved id. ID may be nil (declared but unresolved), boolean true (the
// global sentinel), a string, or an integer.
type Entry struct {
	Model string
	ID    interface{}
}

// Scope is an insertion-ordered mapping from scope model name to scope id.
// Go maps do not keep insertion order, and fan-out row order follows scope
// declaration order, so the key order is tracked explicitly.
type Scope struct {
	order  []string
	values map[string]interface{}
}

// NewScope returns an empty scope map.
func NewScope() *Scope {
	return &Scope{values: map[string]interface{}{}}
}

// Set stores an id for a model, appending the model to the iteration order on
// first sight. Re-setting an existing model keeps its original position.
func (s *Scope) Set(model string, id interface{}) {
	if model == "" {
		return
	}
	if _, ok := s.values[model]; !ok {
		s.order = append(s.order, model)
	}
	s.values[model] = id
}

// Get returns the id stored for a model.
func (s *Scope) Get(model string) (interface{}, bool) {
	id, ok := s.values[model]
	return id, ok
}

// Has reports whether the model is declared in the scope map.
func (s *Scope) Has(model string) bool {
	_, ok := s.values[model]
	return ok
}

// Len returns the number of declared scopes.
func (s *Scope) Len() int {
	return len(s.order)
}

// Models returns the declared model names in iteration order.
func (s *Scope) Models() []string {
	return append([]string(nil), s.order...)
}

// Each calls fn for every scope pair in iteration order.
func (s *Scope) Each(fn func(model string, id interface{})) {
	for _, model := range s.order {
		fn(model, s.values[model])
	}
}

// Clone returns an independent copy preserving iteration order.
func (s *Scope) Clone() *Scope {
	clone := NewScope()
	s.Each(clone.Set)
	return clone
}

// Merge folds another scope map into this one, keeping existing positions.
func (s *Scope) Merge(other *Scope) {
	if other == nil {
		return
	}
	other.Each(s.Set)
}

// NormalizeScope canonicalizes heterogeneous scope declarations into an
// ordered model->id map. Accepted forms:
//
//   - a bare model name string: declared with a nil (unresolved) id
//   - a Subject: resolved to its model name and primary key value
//   - an Entry: kept verbatim
//   - a *Scope: merged as-is, so normalizing is idempotent
//   - a slice of any of the above: flattened in order
//   - a map[string]interface{}: merged with sorted keys (plain Go maps carry
//     no order of their own)
//
// Anything else is silently ignored; malformed declarations are tolerated
// rather than rejected.
func NormalizeScope(declarations ...interface{}) *Scope {
	scope := NewScope()
	for _, item := range declarations {
		normalizeInto(scope, item)
	}
	return scope
}

func normalizeInto(scope *Scope, item interface{}) {
	switch value := item.(type) {
	case nil:
	case string:
		scope.Set(value, nil)
	case Subject:
		scope.Set(value.LogModel(), PrimaryKeyString(value))
	case Entry:
		scope.Set(value.Model, value.ID)
	case *Entry:
		if value != nil {
			scope.Set(value.Model, value.ID)
		}
	case *Scope:
		scope.Merge(value)
	case []interface{}:
		for _, nested := range value {
			normalizeInto(scope, nested)
		}
	case []string:
		for _, nested := range value {
			normalizeInto(scope, nested)
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			scope.Set(key, value[key])
		}
	default:
		// Unrecognized declarations are dropped, not rejected.
	}
}
