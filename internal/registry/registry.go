// Package registry provides read-only lookups over the loaded content catalog.
package registry

import (
	"github.com/KirkDiggler/arpg-core/internal/content"
	"github.com/KirkDiggler/arpg-core/internal/domain/action"
	"github.com/KirkDiggler/arpg-core/internal/domain/class"
	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
)

// Registry maps action and class identifiers to their immutable definitions.
// Built once from the catalog; safe for concurrent reads without locking.
type Registry struct {
	actions map[string]*action.ActionDef
	byKind  map[shared.ActionKind][]*action.ActionDef
	ordered []*action.ActionDef
	classes map[string]*class.ClassDef
}

// New builds a registry from a loaded catalog
func New(catalog *content.Catalog) *Registry {
	r := &Registry{
		actions: make(map[string]*action.ActionDef, len(catalog.Actions)),
		byKind:  make(map[shared.ActionKind][]*action.ActionDef),
		ordered: make([]*action.ActionDef, 0, len(catalog.Actions)),
		classes: make(map[string]*class.ClassDef, len(catalog.Classes)),
	}

	for _, def := range catalog.Actions {
		r.actions[def.ID] = def
		r.byKind[def.Kind] = append(r.byKind[def.Kind], def)
		r.ordered = append(r.ordered, def)
	}
	for _, def := range catalog.Classes {
		r.classes[def.ID] = def
	}

	return r
}

// GetActionByID returns the action definition, or nil when unknown.
// Callers must treat nil as "no such action, ignore".
func (r *Registry) GetActionByID(id string) *action.ActionDef {
	return r.actions[id]
}

// GetActionsByKind returns all actions of the given kind in catalog order
func (r *Registry) GetActionsByKind(kind shared.ActionKind) []*action.ActionDef {
	defs := r.byKind[kind]
	out := make([]*action.ActionDef, len(defs))
	copy(out, defs)
	return out
}

// Actions returns the full catalog in load order, for UI listings
func (r *Registry) Actions() []*action.ActionDef {
	out := make([]*action.ActionDef, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// GetClassByID returns the class definition, or nil when unknown
func (r *Registry) GetClassByID(id string) *class.ClassDef {
	return r.classes[id]
}
