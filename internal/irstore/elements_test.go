package irstore

import (
	"testing"

	"github.com/protongramzk/iridium/internal/irdoc"
)

func withTx(t *testing.T, s *Store, f func() error) {
	t.Helper()
	if err := s.Tx("t", f); err != nil {
		t.Fatalf("tx failed: %v", err)
	}
}

func TestCreate_FirstElementBecomesRoot(t *testing.T) {
	s := New(nil)
	var root string
	withTx(t, s, func() error {
		var err error
		root, err = s.Create(ElementSpec{Kind: "layout", Tag: "div"})
		return err
	})
	if s.GetIR().Elements.RootID != root {
		t.Fatalf("first element without a parent should become root")
	}
}

func TestParentChild_Consistency(t *testing.T) {
	s := New(nil)
	var parent, child string
	withTx(t, s, func() error {
		var err error
		parent, err = s.Create(ElementSpec{Kind: "layout", Tag: "div"})
		if err != nil {
			return err
		}
		child, err = s.Create(ElementSpec{Kind: "text", Tag: "p", Parent: parent})
		return err
	})

	children, err := s.Children(parent)
	if err != nil || len(children) != 1 || children[0] != child {
		t.Fatalf("parent.children should contain child exactly once, got %v (err=%v)", children, err)
	}
	gotParent, err := s.Parent(child)
	if err != nil || gotParent != parent {
		t.Fatalf("child.parent should equal parent id, got %q (err=%v)", gotParent, err)
	}
}

func TestAppend_DetachesFromPreviousParent(t *testing.T) {
	s := New(nil)
	var a, b, child string
	withTx(t, s, func() error {
		var err error
		if a, err = s.Create(ElementSpec{Kind: "layout", Tag: "div"}); err != nil {
			return err
		}
		if b, err = s.Create(ElementSpec{Kind: "layout", Tag: "div", Parent: a}); err != nil {
			return err
		}
		child, err = s.Create(ElementSpec{Kind: "text", Tag: "p", Parent: a})
		return err
	})

	withTx(t, s, func() error { return s.Append(b, child) })

	aChildren, _ := s.Children(a)
	for _, c := range aChildren {
		if c == child {
			t.Fatalf("child should have been detached from its previous parent")
		}
	}
	bChildren, _ := s.Children(b)
	if len(bChildren) != 1 || bChildren[0] != child {
		t.Fatalf("child should now be the sole child of its new parent, got %v", bChildren)
	}
}

func TestTextExclusivity(t *testing.T) {
	s := New(nil)
	var id string
	withTx(t, s, func() error {
		if _, err := s.Var(VariableSpec{Name: "x", Type: "reactive", Init: 0}); err != nil {
			return err
		}
		var err error
		id, err = s.Create(ElementSpec{Kind: "text", Tag: "p"})
		return err
	})

	withTx(t, s, func() error { return s.SetText(id, "hi") })
	if err := s.Tx("t", func() error { return s.BindText(id, "x") }); err == nil {
		t.Fatalf("BindText on a statically-texted element should fail (I3)")
	}

	withTx(t, s, func() error { return s.SetText(id, "") }) // clears static text
	if err := s.Tx("t", func() error { return s.BindText(id, "x") }); err != nil {
		t.Fatalf("BindText should succeed once static text is cleared: %v", err)
	}
	if err := s.Tx("t", func() error { return s.SetText(id, "hi") }); err == nil {
		t.Fatalf("SetText on a bound element should fail (I3)")
	}
}

func TestDelete_CascadesChildrenBindingsAndEvents(t *testing.T) {
	s := New(nil)
	var parent, boundChild, clickChild string
	withTx(t, s, func() error {
		var err error
		if _, err = s.Var(VariableSpec{Name: "v", Type: "reactive", Init: 0}); err != nil {
			return err
		}
		if parent, err = s.Create(ElementSpec{Kind: "layout", Tag: "div"}); err != nil {
			return err
		}
		if boundChild, err = s.Create(ElementSpec{Kind: "text", Tag: "p", Parent: parent}); err != nil {
			return err
		}
		if err = s.BindText(boundChild, "v"); err != nil {
			return err
		}
		if clickChild, err = s.Create(ElementSpec{Kind: "button", Tag: "button", Parent: parent}); err != nil {
			return err
		}
		_, err = s.On(clickChild, "click", irdoc.Action{Tag: irdoc.ActionCall, Function: "doThing"})
		return err
	})

	withTx(t, s, func() error { return s.Delete(parent) })

	ir := s.GetIR()
	for _, id := range []string{parent, boundChild, clickChild} {
		if _, ok := ir.Elements.Nodes[id]; ok {
			t.Fatalf("element %q should have been cascade-deleted", id)
		}
	}
	for _, b := range ir.Bindings {
		if b.ElementID == boundChild {
			t.Fatalf("binding on deleted element should have been removed")
		}
	}
	for _, e := range ir.Events["click"] {
		if e.Target == clickChild {
			t.Fatalf("event on deleted element should have been removed")
		}
	}
	if ir.Elements.RootID != "" {
		t.Fatalf("deleting the root should clear RootID, got %q", ir.Elements.RootID)
	}
}
