package irstore

import "testing"

func TestConditionalGroup_IfElifElse(t *testing.T) {
	s := New(nil)
	var root, gid, ifEl, elifEl, elseEl string
	withTx(t, s, func() error {
		var err error
		root, err = s.Create(ElementSpec{Kind: "layout", Tag: "div"})
		if err != nil {
			return err
		}
		gid, ifEl, err = s.CreateIfGroup(root, "count.value === 0", BranchSpec{Kind: "text", Tag: "p"})
		if err != nil {
			return err
		}
		elifEl, err = s.AddElif(gid, "count.value === 1", BranchSpec{Kind: "text", Tag: "p"})
		if err != nil {
			return err
		}
		elseEl, err = s.AddElse(gid, BranchSpec{Kind: "text", Tag: "p"})
		return err
	})

	result := s.ValidateConditionalGroups()
	if !result.Valid {
		t.Fatalf("expected a valid group, got violations: %+v", result.Errors)
	}

	ir := s.GetIR()
	g := ir.ConditionalGroups[gid]
	if g.If != ifEl || len(g.Elif) != 1 || g.Elif[0] != elifEl || g.Else != elseEl {
		t.Fatalf("group shape incorrect: %+v", g)
	}
	for _, id := range []string{ifEl, elifEl, elseEl} {
		if ir.Elements.Nodes[id].Parent != root {
			t.Fatalf("branch element %q should share the if's parent (I5)", id)
		}
	}

	if err := s.Tx("t", func() error { _, err := s.AddElse(gid, BranchSpec{Kind: "text", Tag: "p"}); return err }); err == nil {
		t.Fatalf("a second else should be rejected")
	}
	if err := s.Tx("t", func() error { return s.UpdateCondition(elseEl, "true") }); err == nil {
		t.Fatalf("updating an else branch's condition should fail")
	}
}

func TestRemoveConditional_IfDissolvesGroupAndScrubsControl(t *testing.T) {
	s := New(nil)
	var root, gid, ifEl, elifEl string
	withTx(t, s, func() error {
		var err error
		root, err = s.Create(ElementSpec{Kind: "layout", Tag: "div"})
		if err != nil {
			return err
		}
		gid, ifEl, err = s.CreateIfGroup(root, "a", BranchSpec{Kind: "text", Tag: "p"})
		if err != nil {
			return err
		}
		elifEl, err = s.AddElif(gid, "b", BranchSpec{Kind: "text", Tag: "p"})
		return err
	})

	withTx(t, s, func() error { return s.RemoveConditional(ifEl) })

	ir := s.GetIR()
	if _, ok := ir.ConditionalGroups[gid]; ok {
		t.Fatalf("removing the if element should dissolve the group")
	}
	if _, ok := ir.Elements.Nodes[ifEl]; ok {
		t.Fatalf("the if element itself should be deleted")
	}
	elif, ok := ir.Elements.Nodes[elifEl]
	if !ok {
		t.Fatalf("the elif element should survive as a plain element")
	}
	if elif.Control != nil {
		t.Fatalf("surviving elif's control should be scrubbed to nil, got %+v", elif.Control)
	}
}
