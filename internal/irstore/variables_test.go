package irstore

import "testing"

func TestVar_RejectsDuplicateName(t *testing.T) {
	s := New(nil)
	withTx(t, s, func() error {
		_, err := s.Var(VariableSpec{Name: "count", Type: "reactive", Init: 0})
		return err
	})
	if err := s.Tx("t", func() error {
		_, err := s.Var(VariableSpec{Name: "count", Type: "static", Init: 1})
		return err
	}); err == nil {
		t.Fatalf("a duplicate variable name should be rejected (I2)")
	}
}

func TestUpdateVar_RejectsStatic(t *testing.T) {
	s := New(nil)
	withTx(t, s, func() error {
		_, err := s.Var(VariableSpec{Name: "pi", Type: "static", Init: 3.14})
		return err
	})
	if err := s.Tx("t", func() error { return s.UpdateVar("pi", 3.0) }); err == nil {
		t.Fatalf("updating a static variable should fail")
	}
}

func TestDeleteVar_CascadesBindings(t *testing.T) {
	s := New(nil)
	var el string
	withTx(t, s, func() error {
		if _, err := s.Var(VariableSpec{Name: "count", Type: "reactive", Init: 0}); err != nil {
			return err
		}
		var err error
		el, err = s.Create(ElementSpec{Kind: "text", Tag: "p"})
		if err != nil {
			return err
		}
		return s.BindText(el, "count")
	})

	withTx(t, s, func() error { return s.DeleteVar("count") })

	ir := s.GetIR()
	for _, b := range ir.Bindings {
		if b.Variable == "count" {
			t.Fatalf("bindings referencing a deleted variable should be removed")
		}
	}
}
