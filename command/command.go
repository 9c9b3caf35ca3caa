// Copyright (c) 2026, The OpenRDL Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package command implements the undo / redo stack for document
// mutations. Every mutation of a document is a [Command] that has
// already been validated before it reaches the stack: [Stack.Do]
// applies it and records it for undo. The stack keeps linear
// history: doing a new command after one or more undos discards the
// redo tail. It also tracks the save point, from which the owning
// document derives its dirty flag.
//
// The stack is document-scoped and assumes a single writer; callers
// must serialize access externally if needed.
package command

// Command is one atomic, reversible unit of mutation. Validation
// happens before a Command reaches the stack, so Apply cannot fail;
// Undo restores the exact prior state and Apply after Undo (redo)
// reproduces the exact applied state.
type Command interface {

	// Label is a short description of the command, for user
	// presentation of the undo / redo history.
	Label() string

	// Apply performs the mutation. It is called once by [Stack.Do]
	// and again on each redo.
	Apply()

	// Undo restores the state from before Apply.
	Undo()
}

// Stack is the undo manager for one document, holding committed
// commands. The zero value is an empty, clean stack.
type Stack struct {
	// done holds committed commands, oldest first. The last entry
	// is the one that [Stack.Undo] will undo.
	done []Command

	// undone holds undone commands available for redo, most
	// recently undone last.
	undone []Command

	// savePoint is the length of done at the last save, or -1 if
	// the saved state is no longer reachable through undo / redo
	// (history diverged past it).
	savePoint int
}

// Do applies the given command and pushes it onto the undo stack,
// discarding any redo history. If the save point was inside the
// discarded redo tail it becomes unreachable.
func (s *Stack) Do(c Command) {
	c.Apply()
	if len(s.undone) > 0 && s.savePoint > len(s.done) {
		s.savePoint = -1
	}
	s.undone = nil
	s.done = append(s.done, c)
}

// CanUndo returns whether there is at least one command to undo.
func (s *Stack) CanUndo() bool {
	return len(s.done) > 0
}

// CanRedo returns whether there is at least one command to redo.
func (s *Stack) CanRedo() bool {
	return len(s.undone) > 0
}

// Undo undoes the most recent command, returning it, or nil if
// there is nothing to undo.
func (s *Stack) Undo() Command {
	n := len(s.done)
	if n == 0 {
		return nil
	}
	c := s.done[n-1]
	s.done = s.done[:n-1]
	c.Undo()
	s.undone = append(s.undone, c)
	return c
}

// Redo re-applies the most recently undone command, returning it,
// or nil if there is nothing to redo.
func (s *Stack) Redo() Command {
	n := len(s.undone)
	if n == 0 {
		return nil
	}
	c := s.undone[n-1]
	s.undone = s.undone[:n-1]
	c.Apply()
	s.done = append(s.done, c)
	return c
}

// UndoLabel returns the label of the command that [Stack.Undo]
// would undo, or "" if there is none.
func (s *Stack) UndoLabel() string {
	if n := len(s.done); n > 0 {
		return s.done[n-1].Label()
	}
	return ""
}

// RedoLabel returns the label of the command that [Stack.Redo]
// would redo, or "" if there is none.
func (s *Stack) RedoLabel() string {
	if n := len(s.undone); n > 0 {
		return s.undone[n-1].Label()
	}
	return ""
}

// MarkSaved records the current position as the save point,
// making the stack clean.
func (s *Stack) MarkSaved() {
	s.savePoint = len(s.done)
}

// IsDirty returns whether the stack has mutations relative to the
// save point, i.e. whether undoing or doing commands has moved the
// state away from the last saved one.
func (s *Stack) IsDirty() bool {
	return s.savePoint != len(s.done)
}

// Flush discards all undo and redo history. The save point is
// preserved only if it is the current position.
func (s *Stack) Flush() {
	if s.savePoint != len(s.done) {
		s.savePoint = -1
	}
	s.done = nil
	s.undone = nil
	if s.savePoint != -1 {
		s.savePoint = 0
	}
}
