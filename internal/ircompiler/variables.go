package ircompiler

import (
	"fmt"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// access spells how a variable's current value is read in generated code:
// reactive and fetch variables are "name.value", static ones are the bare
// name — the §4.2 "Accessor rule".
func (e *emitter) access(name string) string {
	switch e.varKind[name] {
	case irdoc.VariableReactive, irdoc.VariableFetch:
		return name + ".value"
	default:
		return name
	}
}

func (e *emitter) hasBindings(name string) bool {
	for _, b := range e.doc.Bindings {
		if b.Variable == name {
			return true
		}
	}
	return false
}

// emitVariables fills the state bucket with every variable's backing
// field(s) and accessor, and — per the Open Question 1 resolution — wires
// reactive setters to invoke the update functions of every conditional
// group and loop that subscribes to it, in addition to _u_<name>().
func (e *emitter) emitVariables() {
	for _, vn := range e.graph.Vars {
		switch vn.Variable.Type {
		case irdoc.VariableStatic:
			e.emitStaticVar(vn)
		case irdoc.VariableReactive:
			e.emitReactiveVar(vn)
		case irdoc.VariableFetch:
			e.emitFetchVar(vn)
		}
	}
}

func (e *emitter) emitStaticVar(vn *VarNode) {
	e.state = append(e.state, fmt.Sprintf("let %s = %s;", vn.Name, literal(vn.Variable.Init)))
}

func (e *emitter) emitReactiveVar(vn *VarNode) {
	name := vn.Name
	backing := "_" + name
	e.state = append(e.state, fmt.Sprintf("let %s = %s;", backing, literal(vn.Variable.Init)))

	var setterBody []string
	setterBody = append(setterBody, fmt.Sprintf("if (%s !== v) {", backing))
	setterBody = append(setterBody, fmt.Sprintf("  %s = v;", backing))
	if e.hasBindings(name) {
		setterBody = append(setterBody, fmt.Sprintf("  _u_%s();", name))
	}
	groups, loops := e.graph.groupAndLoopSubscribers(e.deps.Subs[name])
	for _, gid := range groups {
		setterBody = append(setterBody, fmt.Sprintf("  _update%s();", safeIdent(gid)))
	}
	for _, lid := range loops {
		setterBody = append(setterBody, fmt.Sprintf("  _loop%s();", safeIdent(lid)))
	}
	setterBody = append(setterBody, "}")

	e.state = append(e.state,
		fmt.Sprintf("const %s = {", name),
		fmt.Sprintf("  get value() { return %s; },", backing),
		"  set value(v) {",
	)
	for _, line := range setterBody {
		e.state = append(e.state, "    "+line)
	}
	e.state = append(e.state, "  },", "};")
}

func (e *emitter) emitFetchVar(vn *VarNode) {
	name := vn.Name
	e.state = append(e.state,
		fmt.Sprintf("let _%s = null;", name),
		fmt.Sprintf("let _%s_loading = true;", name),
		fmt.Sprintf("let _%s_error = null;", name),
		fmt.Sprintf("const %s = {", name),
		fmt.Sprintf("  get value() { return _%s; },", name),
		fmt.Sprintf("  get loading() { return _%s_loading; },", name),
		fmt.Sprintf("  get error() { return _%s_error; },", name),
		"};",
	)

	groups, loops := e.graph.groupAndLoopSubscribers(e.deps.Subs[name])
	var refresh []string
	refresh = append(refresh, fmt.Sprintf("_%s_loading = true;", name))
	refresh = append(refresh, fmt.Sprintf("_%s_error = null;", name))
	if e.hasBindings(name) {
		refresh = append(refresh, fmt.Sprintf("_u_%s();", name))
	}
	refresh = append(refresh, fmt.Sprintf("Promise.resolve(%s).then((v) => {", vn.Variable.Source))
	refresh = append(refresh, fmt.Sprintf("  _%s = v;", name))
	refresh = append(refresh, fmt.Sprintf("  _%s_loading = false;", name))
	if e.hasBindings(name) {
		refresh = append(refresh, fmt.Sprintf("  _u_%s();", name))
	}
	for _, gid := range groups {
		refresh = append(refresh, fmt.Sprintf("  _update%s();", safeIdent(gid)))
	}
	for _, lid := range loops {
		refresh = append(refresh, fmt.Sprintf("  _loop%s();", safeIdent(lid)))
	}
	refresh = append(refresh, "}).catch((err) => {")
	refresh = append(refresh, fmt.Sprintf("  _%s_error = err;", name))
	refresh = append(refresh, fmt.Sprintf("  _%s_loading = false;", name))
	if e.hasBindings(name) {
		refresh = append(refresh, fmt.Sprintf("  _u_%s();", name))
	}
	refresh = append(refresh, "});")

	e.functions = append(e.functions, fmt.Sprintf("function _fetch_%s() {", name))
	for _, line := range refresh {
		e.functions = append(e.functions, "  "+line)
	}
	e.functions = append(e.functions, "}")

	if vn.Variable.Lifecycle != "lazy" {
		e.lifecycle = append(e.lifecycle, fmt.Sprintf("_fetch_%s();", name))
	}
}
