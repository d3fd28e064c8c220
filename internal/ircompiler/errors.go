package ircompiler

import "fmt"

// Kind distinguishes the two ways compilation can fail, per §7's
// "Compilation failure" category: a structural problem found while walking
// the IR itself, or a syntax problem esbuild reports about the assembled
// JS text.
type Kind string

const (
	// CompileErrorStructure is a dangling reference or malformed group that
	// the store itself would never produce — it only arises from a
	// hand-constructed snapshot fed straight to the compiler.
	CompileErrorStructure Kind = "structure"
	// CompileErrorSyntax is a parse failure reported by esbuild against the
	// assembled source, almost always caused by an unparseable verbatim
	// expr/value string (see §9, "Expression strings").
	CompileErrorSyntax Kind = "syntax"
)

// CompileError is the single error type this package returns.
type CompileError struct {
	Kind Kind
	Op   string
	msg  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %s", e.Op, e.msg)
}

func newStructureError(op, format string, args ...any) *CompileError {
	return &CompileError{Kind: CompileErrorStructure, Op: op, msg: fmt.Sprintf(format, args...)}
}

func newSyntaxError(op, detail string) *CompileError {
	return &CompileError{Kind: CompileErrorSyntax, Op: op, msg: detail}
}
