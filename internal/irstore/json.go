package irstore

import (
	"encoding/json"
	"fmt"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// ExportJSON encodes the current document as the §6 persisted-snapshot
// format: a tree of objects/arrays/primitives, with each element's class
// set serialized as a sorted, deduplicated array (see irdoc's custom
// Element/Variables marshaling). Of the dirty flags only structure is
// exported; the per-category id sets are not.
func (s *Store) ExportJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s.GetIR(), "", "  ")
	if err != nil {
		return nil, wrapError(StateViolation, "exportJSON", err)
	}
	return data, nil
}

// ImportJSON builds a new Store whose document is decoded from a persisted
// snapshot. The decoded document is the new store's initial history entry,
// so there is nothing to undo until its first commit, and ids minted
// afterwards continue past every id the snapshot carries.
func ImportJSON(data []byte, clock irdoc.Clock) (*Store, error) {
	if clock == nil {
		clock = irdoc.SystemClock{}
	}
	var doc irdoc.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, wrapError(StateViolation, "importJSON", fmt.Errorf("decode snapshot: %w", err))
	}
	if doc.Elements == nil {
		doc.Elements = irdoc.NewElements()
	}
	if doc.Variables == nil {
		doc.Variables = irdoc.NewVariables()
	}
	if doc.Events == nil {
		doc.Events = make(map[string][]*irdoc.Event)
	}
	if doc.ConditionalGroups == nil {
		doc.ConditionalGroups = make(map[string]*irdoc.ConditionalGroup)
	}
	// Only dirtyFlags.structure is persisted; the id sets start out empty.
	flags := irdoc.NewDirtyFlags()
	if doc.DirtyFlags != nil {
		flags.Structure = doc.DirtyFlags.Structure
	}
	doc.DirtyFlags = flags

	minter := irdoc.NewIDMinter(clock)
	advanceMinterPastExistingIDs(minter, &doc)

	return &Store{
		doc:     &doc,
		minter:  minter,
		clock:   clock,
		history: newHistoryRing(historyCapacity, &doc),
	}, nil
}

// advanceMinterPastExistingIDs ensures ids minted after an import never
// collide with ids the imported snapshot already carries.
func advanceMinterPastExistingIDs(minter *irdoc.IDMinter, doc *irdoc.Document) {
	for id, el := range doc.Elements.Nodes {
		minter.EnsurePast(id)
		if el.Control != nil {
			minter.EnsurePast(el.Control.Group)
		}
	}
	for _, v := range doc.Variables.All() {
		minter.EnsurePast(v.ID)
	}
	for _, b := range doc.Bindings {
		minter.EnsurePast(b.ID)
	}
	for _, list := range doc.Events {
		for _, e := range list {
			minter.EnsurePast(e.ID)
		}
	}
	for gid := range doc.ConditionalGroups {
		minter.EnsurePast(gid)
	}
}
