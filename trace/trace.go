// Package trace implements the execution trace sink: a mirror of the
// per-instruction standard-output trace (spec §6) to a file, plus an
// in-memory log for later inspection. Ground: teacher's
// vm.ExecutionTrace, generalized from ARM disassembly entries to the
// RV32I (PC, instruction word) pairs this spec requires.
package trace

import (
	"fmt"
	"io"
)

// Entry is a single recorded fetch: the sequence number, program
// counter and raw instruction word.
type Entry struct {
	Sequence uint64
	PC       uint32
	Word     uint32
}

// ExecutionTrace mirrors every fetched instruction to Writer as one
// hex line, and retains entries in memory up to MaxEntries.
type ExecutionTrace struct {
	Writer     io.Writer
	MaxEntries int

	entries []Entry
}

// New returns a trace that writes to w with no entry cap.
func New(w io.Writer) *ExecutionTrace {
	return &ExecutionTrace{
		Writer:     w,
		MaxEntries: 0,
		entries:    make([]Entry, 0, 1024),
	}
}

// RecordInstruction appends and writes one trace line: "PC=0x... INSTR=0x...".
func (t *ExecutionTrace) RecordInstruction(seq uint64, pc, word uint32) {
	fmt.Fprintf(t.Writer, "PC=0x%08X INSTR=0x%08X\n", pc, word)
	if t.MaxEntries > 0 && len(t.entries) >= t.MaxEntries {
		return
	}
	t.entries = append(t.entries, Entry{Sequence: seq, PC: pc, Word: word})
}

// GetEntries returns the entries recorded so far.
func (t *ExecutionTrace) GetEntries() []Entry {
	return t.entries
}

// Flush is a no-op for a plain io.Writer sink; it exists so callers
// that wrap Writer in a buffered file can rely on a consistent
// shutdown call, matching the teacher's trace lifecycle.
func (t *ExecutionTrace) Flush() error {
	if f, ok := t.Writer.(interface{ Sync() error }); ok {
		return f.Sync()
	}
	return nil
}
