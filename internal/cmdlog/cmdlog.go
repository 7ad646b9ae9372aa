// Package cmdlog keeps reversible commands on an applied stack and an undone
// stack. The log never executes anything itself; it only hands commands back
// to whoever replays them.
package cmdlog

// Command names a forward operation, its parameters and the operation that
// reverses it. Forward and inverse share the same Data.
type Command struct {
	Type string
	Data any
	Undo string
}

// Log is an undo/redo stack pair bounded only by memory.
type Log struct {
	applied []Command
	undone  []Command
}

func New() *Log {
	return &Log{}
}

// Record pushes cmd onto the applied stack and invalidates the redo stack.
func (l *Log) Record(cmd Command) {
	l.applied = append(l.applied, cmd)
	l.undone = l.undone[:0]
}

// Undo moves the most recent applied command to the undone stack and returns
// it. The caller runs the inverse.
func (l *Log) Undo() (Command, bool) {
	if len(l.applied) == 0 {
		return Command{}, false
	}
	last := len(l.applied) - 1
	cmd := l.applied[last]
	l.applied = l.applied[:last]
	l.undone = append(l.undone, cmd)
	return cmd, true
}

// Redo moves the most recent undone command back to the applied stack and
// returns it. The caller re-applies it.
func (l *Log) Redo() (Command, bool) {
	if len(l.undone) == 0 {
		return Command{}, false
	}
	last := len(l.undone) - 1
	cmd := l.undone[last]
	l.undone = l.undone[:last]
	l.applied = append(l.applied, cmd)
	return cmd, true
}

func (l *Log) Len() int       { return len(l.applied) }
func (l *Log) UndoneLen() int { return len(l.undone) }
func (l *Log) CanUndo() bool  { return len(l.applied) > 0 }
func (l *Log) CanRedo() bool  { return len(l.undone) > 0 }
