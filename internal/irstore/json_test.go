package irstore

import "testing"

func TestExportImportJSON_RoundTrip(t *testing.T) {
	s := New(nil)
	var root, li string
	withTx(t, s, func() error {
		var err error
		if _, err = s.Var(VariableSpec{Name: "items", Type: "reactive", Init: []any{"a", "b"}}); err != nil {
			return err
		}
		root, err = s.Create(ElementSpec{Kind: "layout", Tag: "div"})
		if err != nil {
			return err
		}
		li, err = s.Create(ElementSpec{Kind: "text", Tag: "li", Parent: root})
		if err != nil {
			return err
		}
		if err := s.Class(li, "row", true); err != nil {
			return err
		}
		return s.SetLoop(li, LoopSpec{Source: "items", Alias: "it"})
	})

	data, err := s.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	restored, err := ImportJSON(data, nil)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	before := s.GetIR()
	after := restored.GetIR()

	if after.Elements.RootID != before.Elements.RootID {
		t.Fatalf("rootId mismatch after round-trip: %q vs %q", after.Elements.RootID, before.Elements.RootID)
	}
	if len(after.Elements.Nodes) != len(before.Elements.Nodes) {
		t.Fatalf("element count mismatch after round-trip")
	}
	liAfter, ok := after.Elements.Nodes[li]
	if !ok {
		t.Fatalf("restored document missing element %q", li)
	}
	if _, ok := liAfter.Classes["row"]; !ok {
		t.Fatalf("restored element lost its class set: %+v", liAfter.Classes)
	}
	if liAfter.Loop == nil || liAfter.Loop.Source != "items" {
		t.Fatalf("restored element lost its loop descriptor: %+v", liAfter.Loop)
	}
	if _, ok := after.Variables.Lookup("items"); !ok {
		t.Fatalf("restored document missing variable %q", "items")
	}
}

func TestImportJSON_MinterAvoidsIDCollisions(t *testing.T) {
	s := New(nil)
	withTx(t, s, func() error {
		_, err := s.Create(ElementSpec{Kind: "layout", Tag: "div"})
		return err
	})
	data, err := s.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	restored, err := ImportJSON(data, nil)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	var newID string
	if err := restored.Tx("t", func() error {
		var err error
		newID, err = restored.Create(ElementSpec{Kind: "layout", Tag: "div"})
		return err
	}); err != nil {
		t.Fatalf("Create after import: %v", err)
	}

	before := s.GetIR()
	for id := range before.Elements.Nodes {
		if id == newID {
			t.Fatalf("newly minted id %q collides with an id from the imported snapshot", newID)
		}
	}
}
