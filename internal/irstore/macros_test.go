package irstore

import (
	"testing"

	"github.com/protongramzk/iridium/internal/irdoc"
)

func TestDuplicate_StripsControlAndLoopInsertsAfterOriginal(t *testing.T) {
	s := New(nil)
	var root, gid, ifEl string
	withTx(t, s, func() error {
		var err error
		root, err = s.Create(ElementSpec{Kind: "layout", Tag: "div"})
		if err != nil {
			return err
		}
		gid, ifEl, err = s.CreateIfGroup(root, "x", BranchSpec{Kind: "text", Tag: "p", Text: strPtr("hi")})
		return err
	})
	_ = gid

	copyID, err := s.Duplicate(ifEl)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}

	ir := s.GetIR()
	copied := ir.Elements.Nodes[copyID]
	if copied.Control != nil {
		t.Fatalf("a duplicated conditional branch should have its control stripped, got %+v", copied.Control)
	}
	if *copied.Text != "hi" {
		t.Fatalf("duplicate should preserve static text")
	}

	rootChildren := ir.Elements.Nodes[root].Children
	if len(rootChildren) != 2 || rootChildren[0] != ifEl || rootChildren[1] != copyID {
		t.Fatalf("duplicate should be inserted immediately after the original, got %v", rootChildren)
	}
}

func TestDuplicate_ClonesBindingsAndEventsIndependently(t *testing.T) {
	s := New(nil)
	var el string
	withTx(t, s, func() error {
		if _, err := s.Var(VariableSpec{Name: "v", Type: "reactive", Init: 0}); err != nil {
			return err
		}
		var err error
		el, err = s.Create(ElementSpec{Kind: "button", Tag: "button"})
		if err != nil {
			return err
		}
		if err := s.BindText(el, "v"); err != nil {
			return err
		}
		_, err = s.On(el, "click", irdoc.Action{Tag: irdoc.ActionCall, Function: "f"})
		return err
	})

	copyID, err := s.Duplicate(el)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}

	ir := s.GetIR()
	foundBinding := false
	for _, b := range ir.Bindings {
		if b.ElementID == copyID {
			foundBinding = true
		}
	}
	if !foundBinding {
		t.Fatalf("duplicate should carry a copy of the original's bindings")
	}
	foundEvent := false
	for _, e := range ir.Events["click"] {
		if e.Target == copyID {
			foundEvent = true
		}
	}
	if !foundEvent {
		t.Fatalf("duplicate should carry a copy of the original's events")
	}
}

func TestWrap_SplicesContainerAndReparents(t *testing.T) {
	s := New(nil)
	var root, target string
	withTx(t, s, func() error {
		var err error
		root, err = s.Create(ElementSpec{Kind: "layout", Tag: "div"})
		if err != nil {
			return err
		}
		target, err = s.Create(ElementSpec{Kind: "text", Tag: "p", Parent: root})
		return err
	})

	containerID, err := s.Wrap(target)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}

	ir := s.GetIR()
	rootChildren := ir.Elements.Nodes[root].Children
	if len(rootChildren) != 1 || rootChildren[0] != containerID {
		t.Fatalf("container should take the original's position under root, got %v", rootChildren)
	}
	container := ir.Elements.Nodes[containerID]
	if len(container.Children) != 1 || container.Children[0] != target {
		t.Fatalf("original should be re-parented into the container, got %+v", container.Children)
	}
	if ir.Elements.Nodes[target].Parent != containerID {
		t.Fatalf("original's parent should now be the container")
	}
}

func TestWrap_Root(t *testing.T) {
	s := New(nil)
	var root string
	withTx(t, s, func() error {
		var err error
		root, err = s.Create(ElementSpec{Kind: "layout", Tag: "div"})
		return err
	})

	containerID, err := s.Wrap(root)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	ir := s.GetIR()
	if ir.Elements.RootID != containerID {
		t.Fatalf("wrapping the root should install the container as the new root")
	}
}

func TestConvert_MutatesOnlyKind(t *testing.T) {
	s := New(nil)
	var id string
	withTx(t, s, func() error {
		var err error
		id, err = s.Create(ElementSpec{Kind: "button", Tag: "button"})
		return err
	})

	if err := s.Convert(id, "link"); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	el, err := s.Get(id)
	if err != nil || el.Kind != "link" || el.Tag != "button" {
		t.Fatalf("Convert should change kind only, got %+v (err=%v)", el, err)
	}
}

func strPtr(s string) *string { return &s }
