// Package irstore is the transactional mutator over the passive irdoc
// document: nested transactions with snapshot rollback, bounded undo
// history, and the per-domain mutators (elements, variables, bindings,
// events, conditional groups, loops) that enforce the structural
// invariants the editor layer depends on.
package irstore

import (
	"github.com/protongramzk/iridium/internal/irdoc"
	"github.com/protongramzk/iridium/logutil"
)

const historyCapacity = 50

// txFrame is one entry of the nested-transaction stack (Store.txStack).
// Opening a frame captures a deep clone of the document, which is
// everything needed to undo it in one step, and frames nest without the
// inner ones knowing about the outer ones' contents.
type txFrame struct {
	label    string
	snapshot *irdoc.Document
}

// Store is the single authoritative mutator for one IR document. It is not
// safe for concurrent use — per the single-threaded cooperative execution
// model, all mutators are synchronous and run to completion on one
// goroutine.
type Store struct {
	doc     *irdoc.Document
	minter  *irdoc.IDMinter
	clock   irdoc.Clock
	txStack []*txFrame
	history *historyRing
}

// New returns a Store over a freshly created, empty document. A nil clock
// defaults to irdoc.SystemClock{}.
func New(clock irdoc.Clock) *Store {
	if clock == nil {
		clock = irdoc.SystemClock{}
	}
	minter := irdoc.NewIDMinter(clock)
	doc := irdoc.NewDocument(minter.Now())
	return &Store{
		doc:     doc,
		minter:  minter,
		clock:   clock,
		history: newHistoryRing(historyCapacity, doc),
	}
}

func (s *Store) inTx() bool { return len(s.txStack) > 0 }

func (s *Store) touch() {
	s.doc.Meta.Modified = s.clock.Now()
}

// requireTx is called by every mutator; per §4.1, all mutators fail unless
// at least one transaction is open.
func (s *Store) requireTx(op string) error {
	if !s.inTx() {
		return newError(TransactionMisuse, op, "no transaction is open")
	}
	return nil
}

// BeginTx pushes a new frame carrying a deep clone of the current document.
func (s *Store) BeginTx(label string) {
	s.txStack = append(s.txStack, &txFrame{
		label:    label,
		snapshot: irdoc.CloneDocument(s.doc),
	})
}

// Commit pops the innermost frame. Only the outermost commit (stack becomes
// empty) pushes the committed document into history; inner commits simply
// collapse their frame, discarding its snapshot.
func (s *Store) Commit() error {
	if !s.inTx() {
		return newError(TransactionMisuse, "commit", "no transaction is open")
	}
	s.txStack = s.txStack[:len(s.txStack)-1]
	if !s.inTx() {
		s.history.commit(s.doc)
	}
	return nil
}

// Rollback pops the innermost frame and restores its snapshot, discarding
// every change made since that frame was opened.
func (s *Store) Rollback() error {
	if !s.inTx() {
		return newError(TransactionMisuse, "rollback", "no transaction is open")
	}
	top := s.txStack[len(s.txStack)-1]
	s.txStack = s.txStack[:len(s.txStack)-1]
	s.doc = top.snapshot
	return nil
}

// Tx is the scoped transaction form: open, run f, commit; on error from f,
// roll back and propagate the same error.
func (s *Store) Tx(label string, f func() error) error {
	s.BeginTx(label)
	if err := f(); err != nil {
		logutil.Logf("irstore: rolling back tx %q: %v\n", label, err)
		_ = s.Rollback()
		return err
	}
	return s.Commit()
}

// autoTx runs a macro body inside its own transaction, named for the macro
// itself, so primitives composed inside it participate in exactly one
// history entry.
func (s *Store) autoTx(label string, f func() error) error {
	return s.Tx(label, f)
}

// CanUndo reports whether Undo would move the document. Per §4.1, undo/redo
// reject while any transaction is open.
func (s *Store) CanUndo() bool {
	return !s.inTx() && s.history.canUndo()
}

// CanRedo reports whether Redo would move the document.
func (s *Store) CanRedo() bool {
	return !s.inTx() && s.history.canRedo()
}

// Undo restores the snapshot preceding the current one and steps the
// history cursor back. It returns false (and makes no change) if a
// transaction is open or there is nothing to undo.
func (s *Store) Undo() bool {
	if s.inTx() {
		return false
	}
	doc, ok := s.history.undo()
	if !ok {
		return false
	}
	s.doc = doc
	return true
}

// Redo steps the history cursor forward and restores that snapshot. It
// returns false if a transaction is open or there is nothing to redo.
func (s *Store) Redo() bool {
	if s.inTx() {
		return false
	}
	doc, ok := s.history.redo()
	if !ok {
		return false
	}
	s.doc = doc
	return true
}

// GetIR returns a deep clone of the current document. Every nested record
// is freshly allocated, so the caller — normally the compiler — can hold
// and traverse it without any risk of observing or causing a mutation to
// live store state; this clone-on-read is this module's realization of the
// specification's "deep-frozen" snapshot contract; see DESIGN.md.
func (s *Store) GetIR() *irdoc.Document {
	return irdoc.CloneDocument(s.doc)
}
