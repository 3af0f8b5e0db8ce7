// Package content loads the static game catalog shipped with the binary.
// The catalog is read once at startup, validated, and immutable afterward.
package content

import (
	"embed"
	"encoding/json"

	"github.com/KirkDiggler/arpg-core/internal/domain/action"
	"github.com/KirkDiggler/arpg-core/internal/domain/class"
	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	coreerr "github.com/KirkDiggler/arpg-core/internal/errors"
)

//go:embed data/*.json
var dataFS embed.FS

// Catalog holds the fully loaded, validated game content
type Catalog struct {
	Actions []*action.ActionDef
	Classes []*class.ClassDef
}

// Load parses and validates the embedded catalog
func Load() (*Catalog, error) {
	actions, err := loadActions()
	if err != nil {
		return nil, err
	}

	classes, err := loadClasses(actions)
	if err != nil {
		return nil, err
	}

	return &Catalog{Actions: actions, Classes: classes}, nil
}

func loadActions() ([]*action.ActionDef, error) {
	raw, err := dataFS.ReadFile("data/actions.json")
	if err != nil {
		return nil, coreerr.Wrap(err, "failed to read action catalog")
	}

	var actions []*action.ActionDef
	if err := json.Unmarshal(raw, &actions); err != nil {
		return nil, coreerr.Wrap(err, "failed to parse action catalog")
	}

	seen := make(map[string]bool, len(actions))
	for _, def := range actions {
		if err := def.Validate(); err != nil {
			return nil, coreerr.Wrap(err, "invalid action definition")
		}
		if seen[def.ID] {
			return nil, coreerr.InvalidArgumentf("duplicate action id %q", def.ID)
		}
		seen[def.ID] = true
	}

	return actions, nil
}

func loadClasses(actions []*action.ActionDef) ([]*class.ClassDef, error) {
	raw, err := dataFS.ReadFile("data/classes.json")
	if err != nil {
		return nil, coreerr.Wrap(err, "failed to read class catalog")
	}

	var classes []*class.ClassDef
	if err := json.Unmarshal(raw, &classes); err != nil {
		return nil, coreerr.Wrap(err, "failed to parse class catalog")
	}

	byID := make(map[string]*action.ActionDef, len(actions))
	for _, def := range actions {
		byID[def.ID] = def
	}

	seen := make(map[string]bool, len(classes))
	for _, def := range classes {
		def.ApplyDefaults()
		if err := def.Validate(); err != nil {
			return nil, coreerr.Wrap(err, "invalid class definition")
		}
		if seen[def.ID] {
			return nil, coreerr.InvalidArgumentf("duplicate class id %q", def.ID)
		}
		seen[def.ID] = true

		// A default loadout must only bind actions that exist, each to a
		// single slot, drop-compatible with that slot.
		used := make(map[string]shared.SlotID, len(def.DefaultLoadout))
		for slotID, actionID := range def.DefaultLoadout {
			bound, ok := byID[actionID]
			if !ok {
				return nil, coreerr.NotFoundf("class %q binds unknown action %q to %s", def.ID, actionID, slotID)
			}
			if _, dup := used[actionID]; dup {
				return nil, coreerr.InvalidArgumentf("class %q binds action %q to more than one slot", def.ID, actionID)
			}
			used[actionID] = slotID
			slotType, ok := shared.SlotTypeOf(slotID)
			if !ok {
				return nil, coreerr.NotFoundf("class %q binds to unknown slot %q", def.ID, slotID)
			}
			if bound.DragType != slotType {
				return nil, coreerr.Incompatiblef("class %q binds %s action %q to %s slot %s",
					def.ID, bound.DragType, actionID, slotType, slotID)
			}
		}
	}

	return classes, nil
}
