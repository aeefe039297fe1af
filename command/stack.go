package command

import (
	"errors"

	"github.com/Chris91ss/Proper-Trench-Coats-App/store"
)

var (
	// ErrNothingToUndo and ErrNothingToRedo are benign: the respective
	// stack is simply empty.
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrIrreversibleState means the backend no longer holds the state a
	// command's Apply left behind, so its inverse cannot run safely.
	ErrIrreversibleState = errors.New("backend state diverged from command history")
)

// Stack owns the undo and redo history for one backend. It is the sole
// owner of both sequences; nothing it hands out can mutate them.
type Stack struct {
	backend store.Store
	history []Command // applied, undoable; newest last
	future  []Command // undone, redoable; next redo last
}

func NewStack(backend store.Store) *Stack {
	return &Stack{backend: backend}
}

// Execute applies cmd and records it. Any successful forward mutation
// invalidates the redo chain: branching history is not supported.
func (st *Stack) Execute(cmd Command) error {
	if err := cmd.Apply(st.backend); err != nil {
		return err
	}
	st.history = append(st.history, cmd)
	st.future = nil
	return nil
}

// Undo reverses the most recent command. When the revert fails, backend
// state and both stacks are left exactly as they were.
func (st *Stack) Undo() error {
	if len(st.history) == 0 {
		return ErrNothingToUndo
	}
	cmd := st.history[len(st.history)-1]
	if err := cmd.Revert(st.backend); err != nil {
		return err
	}
	st.history = st.history[:len(st.history)-1]
	st.future = append(st.future, cmd)
	return nil
}

// Redo re-applies the most recently undone command.
func (st *Stack) Redo() error {
	if len(st.future) == 0 {
		return ErrNothingToRedo
	}
	cmd := st.future[len(st.future)-1]
	if err := cmd.Reapply(st.backend); err != nil {
		return err
	}
	st.future = st.future[:len(st.future)-1]
	st.history = append(st.history, cmd)
	return nil
}

// CanUndo reports whether Undo has anything to reverse.
func (st *Stack) CanUndo() bool { return len(st.history) > 0 }

// CanRedo reports whether Redo has anything to replay.
func (st *Stack) CanRedo() bool { return len(st.future) > 0 }
