// Package ircompiler reads a frozen IR snapshot and emits a self-contained
// JS source string exporting one function mount(target) -> { destroy() }.
// It performs no mutation and holds no state across calls: every Compile
// call builds its own node graph, dependency graph, and emitter from
// scratch, per §4.2's "pure function of the frozen snapshot" guarantee.
package ircompiler

import (
	"strings"
	"time"

	esbuild "github.com/evanw/esbuild/pkg/api"

	"github.com/protongramzk/iridium/internal/irdoc"
)

// Options configures one Compile call. The zero value performs no
// validation pass and emits unminified, human-readable source — matching
// the teacher's convention of small explicit option structs (the dom
// package's various *Options types) rather than a package-level config
// singleton.
type Options struct {
	// Validate pipes the assembled source through esbuild's Transform API
	// in parse-only mode; a parse failure (almost always an unparseable
	// expr/value string embedded verbatim per §9) is surfaced as a
	// CompileError of kind CompileErrorSyntax instead of shipping broken JS.
	Validate bool
	// Minify additionally asks esbuild to minify the validated source.
	// Implies Validate.
	Minify bool
	// Now supplies the leading timestamp comment's clock; nil defaults to
	// time.Now. Injectable so tests can assert output modulo nothing at all.
	Now func() string
}

func (o Options) now() string {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// emitter accumulates generated code into the five ordered buckets §4.2
// describes (declarations, state, functions, lifecycle, cleanup) while
// walking the node graph. One emitter is used per Compile call.
type emitter struct {
	doc     *irdoc.Document
	graph   *Graph
	deps    *DepGraph
	names   *namer
	varKind map[string]irdoc.VariableType

	declarations []string
	state        []string
	functions    []string
	lifecycle    []string
	cleanup      []string
}

func newEmitter(doc *irdoc.Document, graph *Graph, deps *DepGraph) *emitter {
	varKind := make(map[string]irdoc.VariableType, len(graph.Vars))
	for _, v := range graph.Vars {
		varKind[v.Name] = v.Variable.Type
	}
	return &emitter{
		doc:     doc,
		graph:   graph,
		deps:    deps,
		names:   newNamer(),
		varKind: varKind,
	}
}

// Compile turns a frozen IR document into JS source, per the §6 "Compiler
// facade" contract. doc is typically the result of a Store's GetIR() call;
// Compile never mutates it.
func Compile(doc *irdoc.Document, opts Options) (string, error) {
	graph, err := buildGraph(doc)
	if err != nil {
		return "", err
	}
	deps := buildDeps(graph)

	e := newEmitter(doc, graph, deps)
	e.emitTree()
	e.emitBindings()
	e.emitVariables()
	e.emitEvents()

	source := e.assemble(opts.now())

	if opts.Validate || opts.Minify {
		result := esbuild.Transform(source, esbuild.TransformOptions{
			Loader:            esbuild.LoaderJS,
			Target:            esbuild.ESNext,
			MinifyWhitespace:  opts.Minify,
			MinifyIdentifiers: opts.Minify,
			MinifySyntax:      opts.Minify,
		})
		if len(result.Errors) > 0 {
			msgs := make([]string, len(result.Errors))
			for i, m := range result.Errors {
				msgs[i] = m.Text
			}
			return "", newSyntaxError("validate", strings.Join(msgs, "; "))
		}
		if opts.Minify {
			source = string(result.Code)
		}
	}

	return source, nil
}

// DebugInfo is the §6 compiler facade's debug() -> {nodes, deps, bindings,
// events} contract: the node graph, dependency graph, and the raw IR
// collections the graph was built from, for editor-side introspection.
type DebugInfo struct {
	Nodes    *Graph
	Deps     *DepGraph
	Bindings []*irdoc.Binding
	Events   map[string][]*irdoc.Event
}

// Debug builds the node graph and dependency graph without emitting any
// code, for callers that want to inspect the compiler's view of the IR
// (e.g. an editor's "show me what depends on this variable" panel).
func Debug(doc *irdoc.Document) (*DebugInfo, error) {
	graph, err := buildGraph(doc)
	if err != nil {
		return nil, err
	}
	deps := buildDeps(graph)
	return &DebugInfo{
		Nodes:    graph,
		Deps:     deps,
		Bindings: doc.Bindings,
		Events:   doc.Events,
	}, nil
}
