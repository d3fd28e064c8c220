package ircompiler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/protongramzk/iridium/internal/ircompiler"
	"github.com/protongramzk/iridium/internal/irdoc"
	"github.com/protongramzk/iridium/internal/irstore"
)

func strPtr(s string) *string { return &s }

func fixedClock() func() string {
	return func() string { return "2026-01-01T00:00:00Z" }
}

// buildCounter reproduces §8 scenario 1, the reactive counter.
func buildCounter(t *testing.T) *irstore.Store {
	t.Helper()
	s := irstore.New(nil)
	err := s.Tx("build", func() error {
		if _, err := s.Var(irstore.VariableSpec{Name: "count", Type: irdoc.VariableReactive, Init: float64(0)}); err != nil {
			return err
		}
		root, err := s.Create(irstore.ElementSpec{Kind: "layout", Tag: "div"})
		if err != nil {
			return err
		}
		h1, err := s.Create(irstore.ElementSpec{Kind: "text", Tag: "h1", Parent: root})
		if err != nil {
			return err
		}
		if err := s.BindText(h1, "count"); err != nil {
			return err
		}
		btn, err := s.Create(irstore.ElementSpec{Kind: "button", Tag: "button", Parent: root, Text: strPtr("+")})
		if err != nil {
			return err
		}
		_, err = s.On(btn, "click", irdoc.Action{Tag: irdoc.ActionUpdate, Target: "count", Op: "+=", Value: float64(1)})
		return err
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return s
}

func TestCompile_ReactiveCounter(t *testing.T) {
	s := buildCounter(t)

	out, err := ircompiler.Compile(s.GetIR(), ircompiler.Options{Now: fixedClock()})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	for _, want := range []string{
		"let _count = 0;",
		"const count = {",
		"get value() { return _count; },",
		"if (_count !== v) {",
		"_count = v;",
		"_u_count();",
		"function _u_count() {",
		".textContent = count.value;",
		"count.value += 1;",
		"export function mount(target) {",
		"destroy() {",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q\n--- output ---\n%s", want, out)
		}
	}
}

func TestCompile_DeterministicModuloTimestamp(t *testing.T) {
	s := buildCounter(t)
	doc := s.GetIR()

	first, err := ircompiler.Compile(doc, ircompiler.Options{Now: func() string { return "t1" }})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	second, err := ircompiler.Compile(doc, ircompiler.Options{Now: func() string { return "t2" }})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	firstBody := strings.SplitN(first, "\n", 2)[1]
	secondBody := strings.SplitN(second, "\n", 2)[1]
	if firstBody != secondBody {
		t.Fatalf("compile output differs beyond the timestamp comment:\n%s\n---\n%s", firstBody, secondBody)
	}
}

// buildIfElse reproduces §8 scenario 2, continuing scenario 1.
func buildIfElse(t *testing.T) *irstore.Store {
	t.Helper()
	s := buildCounter(t)
	root, err := firstRoot(s)
	if err != nil {
		t.Fatalf("firstRoot: %v", err)
	}
	err = s.Tx("cond", func() error {
		gid, _, err := s.CreateIfGroup(root, "count.value === 0", irstore.BranchSpec{Kind: "text", Tag: "p", Text: strPtr("Zero!")})
		if err != nil {
			return err
		}
		_, err = s.AddElse(gid, irstore.BranchSpec{Kind: "text", Tag: "p", Text: strPtr("Not zero!")})
		return err
	})
	if err != nil {
		t.Fatalf("build conditional: %v", err)
	}
	return s
}

func firstRoot(s *irstore.Store) (string, error) {
	ir := s.GetIR()
	if ir.Elements.RootID == "" {
		return "", nil
	}
	return ir.Elements.RootID, nil
}

func TestCompile_IfElse(t *testing.T) {
	s := buildIfElse(t)

	out, err := ircompiler.Compile(s.GetIR(), ircompiler.Options{Now: fixedClock()})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if !strings.Contains(out, "if (count.value === 0) {") {
		t.Fatalf("expected the if branch's verbatim expr in output:\n%s", out)
	}
	if !strings.Contains(out, "} else {") {
		t.Fatalf("expected an else branch in output:\n%s", out)
	}
	if !strings.Contains(out, "document.createComment(\"\");") {
		t.Fatalf("expected an anchor comment node in output:\n%s", out)
	}

	debug, err := ircompiler.Debug(s.GetIR())
	if err != nil {
		t.Fatalf("Debug: %v", err)
	}
	subs := debug.Deps.Subs["count"]
	found := false
	for gid := range debug.Nodes.Conditionals {
		for _, sub := range subs {
			if sub == gid {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected count's dependents to include the conditional group, got %v", subs)
	}
}

// buildLoop reproduces §8 scenario 4.
func buildLoop(t *testing.T) *irstore.Store {
	t.Helper()
	s := irstore.New(nil)
	err := s.Tx("build", func() error {
		if _, err := s.Var(irstore.VariableSpec{Name: "items", Type: irdoc.VariableReactive, Init: []any{"x", "y"}}); err != nil {
			return err
		}
		li, err := s.Create(irstore.ElementSpec{Kind: "text", Tag: "li"})
		if err != nil {
			return err
		}
		return s.SetLoop(li, irstore.LoopSpec{Source: "items", Alias: "it"})
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return s
}

func TestCompile_Loop(t *testing.T) {
	s := buildLoop(t)

	out, err := ircompiler.Compile(s.GetIR(), ircompiler.Options{Now: fixedClock()})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if !strings.Contains(out, "items.value.forEach((it) => {") {
		t.Fatalf("expected a forEach over items.value aliased as it:\n%s", out)
	}
	if !strings.Contains(out, "document.createDocumentFragment();") {
		t.Fatalf("expected a DocumentFragment in the loop body:\n%s", out)
	}
}

func TestCompile_EmptyDocument(t *testing.T) {
	s := irstore.New(nil)
	out, err := ircompiler.Compile(s.GetIR(), ircompiler.Options{Now: fixedClock()})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(out, "function _create() {\n  return null;\n}") {
		t.Fatalf("expected an empty _create() for a rootless document:\n%s", out)
	}
}

func TestCompile_DanglingReferenceIsStructureError(t *testing.T) {
	s := irstore.New(nil)
	if err := s.Tx("build", func() error {
		_, err := s.Create(irstore.ElementSpec{Kind: "layout", Tag: "div"})
		return err
	}); err != nil {
		t.Fatalf("build: %v", err)
	}

	doc := s.GetIR()
	// Hand-corrupt a binding the store would never produce, per §7's
	// "Compilation failure" category.
	doc.Bindings = append(doc.Bindings, &irdoc.Binding{
		ID: "binding_corrupt", ElementID: "element_missing_0", Variable: "ghost", Kind: irdoc.BindingText,
	})
	el := doc.Elements.Nodes[doc.Elements.RootID]
	el.Control = &irdoc.Control{Type: irdoc.ControlIf, Expr: "true", Group: "group_missing"}

	if _, err := ircompiler.Compile(doc, ircompiler.Options{}); err == nil {
		t.Fatalf("expected a structural CompileError for a dangling group reference")
	}
}

// buildMultiSubscriber gives "count" two conditional groups and two loops
// subscribing to it, so a shuffled map-iteration order would show up as a
// shuffled _update<gid>()/_loop<lid>() call order in the setter body.
func buildMultiSubscriber(t *testing.T) *irstore.Store {
	t.Helper()
	s := irstore.New(nil)
	require.NoError(t, s.Tx("build", func() error {
		if _, err := s.Var(irstore.VariableSpec{Name: "count", Type: irdoc.VariableReactive, Init: float64(0)}); err != nil {
			return err
		}
		root, err := s.Create(irstore.ElementSpec{Kind: "layout", Tag: "div"})
		if err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			if _, _, err := s.CreateIfGroup(root, "count.value > 0", irstore.BranchSpec{Kind: "text", Tag: "p", Text: strPtr("pos")}); err != nil {
				return err
			}
		}
		for i := 0; i < 3; i++ {
			li, err := s.Create(irstore.ElementSpec{Kind: "text", Tag: "li", Parent: root})
			if err != nil {
				return err
			}
			if err := s.SetLoop(li, irstore.LoopSpec{Source: "count", Alias: "it"}); err != nil {
				return err
			}
		}
		return nil
	}))
	return s
}

// TestCompile_SubscriberOrderIsDeterministic exercises the sorted-key fix in
// buildDeps: compiling the same snapshot repeatedly must produce the exact
// same _update<gid>()/_loop<lid>() call ordering every time, per §5/§8's
// byte-identical-modulo-timestamp guarantee.
func TestCompile_SubscriberOrderIsDeterministic(t *testing.T) {
	s := buildMultiSubscriber(t)
	doc := s.GetIR()

	first, err := ircompiler.Compile(doc, ircompiler.Options{Now: fixedClock()})
	require.NoError(t, err)

	for i := 0; i < 9; i++ {
		again, err := ircompiler.Compile(doc, ircompiler.Options{Now: fixedClock()})
		require.NoError(t, err)
		require.Equal(t, first, again, "Compile() of an identical snapshot must be byte-identical run to run")
	}
}
