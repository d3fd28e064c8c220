package irstore

import "testing"

func TestLoop_SetUpdateRemove(t *testing.T) {
	s := New(nil)
	var li string
	withTx(t, s, func() error {
		if _, err := s.Var(VariableSpec{Name: "items", Type: "reactive", Init: []any{"x", "y"}}); err != nil {
			return err
		}
		var err error
		li, err = s.Create(ElementSpec{Kind: "text", Tag: "li"})
		if err != nil {
			return err
		}
		return s.SetLoop(li, LoopSpec{Source: "items", Alias: "it"})
	})

	loop, err := s.GetLoop(li)
	if err != nil || loop == nil || loop.Source != "items" || loop.Alias != "it" {
		t.Fatalf("SetLoop did not attach the expected descriptor: %+v (err=%v)", loop, err)
	}

	if err := s.Tx("t", func() error { return s.UpdateLoop(li, LoopSpec{Index: "idx"}) }); err != nil {
		t.Fatalf("UpdateLoop: %v", err)
	}
	loop, _ = s.GetLoop(li)
	if loop.Index != "idx" || loop.Alias != "it" {
		t.Fatalf("UpdateLoop should merge fields, got %+v", loop)
	}

	if err := s.Tx("t", func() error { return s.RemoveLoop(li) }); err != nil {
		t.Fatalf("RemoveLoop: %v", err)
	}
	loop, _ = s.GetLoop(li)
	if loop != nil {
		t.Fatalf("RemoveLoop should clear the descriptor, got %+v", loop)
	}
}

func TestValidateLoops_UnknownSourceAndBadIdentifier(t *testing.T) {
	s := New(nil)
	var li string
	withTx(t, s, func() error {
		if _, err := s.Var(VariableSpec{Name: "items", Type: "reactive", Init: []any{}}); err != nil {
			return err
		}
		var err error
		li, err = s.Create(ElementSpec{Kind: "text", Tag: "li"})
		if err != nil {
			return err
		}
		return s.SetLoop(li, LoopSpec{Source: "items", Alias: "1bad"})
	})

	result := s.ValidateLoops()
	if result.Valid {
		t.Fatalf("a non-identifier alias should be flagged")
	}

	withTx(t, s, func() error { return s.UpdateLoop(li, LoopSpec{Source: "items", Alias: "it"}) })
	withTx(t, s, func() error { return s.DeleteVar("items") })

	result = s.ValidateLoops()
	if result.Valid {
		t.Fatalf("a loop whose source was deleted should be flagged")
	}
}
