// Package core implements the fetch-decode-execute loop: the
// instruction executor and run loop described in spec §4.4-§4.6.
package core

import (
	"fmt"
	"io"
	"os"

	"github.com/lookbusy-dev/rv32emu/cpu"
	"github.com/lookbusy-dev/rv32emu/memory"
	"github.com/lookbusy-dev/rv32emu/stats"
	"github.com/lookbusy-dev/rv32emu/trace"
)

// InitialSP names the two source-variant conventions for seeding the
// stack pointer register (x2) at startup.
type InitialSP int

const (
	// SPZero seeds x2 with 0 (original_source/RISC-V.c, the default).
	SPZero InitialSP = iota
	// SPTop seeds x2 with the top of memory.
	SPTop
)

// Config configures a Machine at construction time.
type Config struct {
	InitialSP       InitialSP
	AlignmentStrict bool
	MaxSteps        uint64 // 0 disables the cap
}

// DefaultConfig returns the spec's documented defaults: stack pointer
// seeded to 0, misaligned access allowed, no step cap.
func DefaultConfig() Config {
	return Config{
		InitialSP:       SPZero,
		AlignmentStrict: false,
		MaxSteps:        0,
	}
}

// Machine bundles the register file, linear memory, and execution
// state for a single fetch-decode-execute run.
type Machine struct {
	Registers *cpu.Registers
	Memory    *memory.Memory

	MaxSteps  uint64
	StepCount uint64
	Halted    bool
	ExitCode  int

	// Output receives the mandatory per-instruction "PC, instruction
	// word in hex" trace line (spec §6), unconditionally, regardless
	// of whether a file-backed Trace sink is also attached. Defaults
	// to os.Stdout.
	Output io.Writer

	// Trace and Stats are optional diagnostic sinks; both nil by
	// default and checked at every call site, so attaching neither
	// costs nothing on the hot path.
	Trace *trace.ExecutionTrace
	Stats *stats.Counters
}

// NewMachine initializes registers and memory per spec §4.6: zeroed
// registers and memory, PC = 0, x2 seeded per cfg.InitialSP.
func NewMachine(cfg Config) *Machine {
	m := &Machine{
		Registers: cpu.NewRegisters(),
		Memory:    memory.New(),
		MaxSteps:  cfg.MaxSteps,
		Output:    os.Stdout,
	}
	m.Memory.AlignmentStrict = cfg.AlignmentStrict
	if cfg.InitialSP == SPTop {
		m.Registers.Set(2, int32(memory.Capacity))
	} else {
		m.Registers.Set(2, 0)
	}
	return m
}

// Step fetches, decodes and executes a single instruction, updating
// the program counter per the per-opcode rule in spec §4.4/§9.
func (m *Machine) Step() error {
	pc := m.Registers.PC
	word, err := m.Memory.ReadWord(pc)
	if err != nil {
		return fmt.Errorf("fetch failed at PC=0x%08X: %w", pc, err)
	}

	fmt.Fprintf(m.Output, "PC=0x%08X INSTR=0x%08X\n", pc, word)
	if m.Trace != nil {
		m.Trace.RecordInstruction(m.StepCount, pc, word)
	}

	if err := m.execute(word); err != nil {
		return err
	}

	m.StepCount++
	if m.Stats != nil {
		f := decodeFields(word)
		m.Stats.RecordInstruction(mnemonicFor(f, word))
	}
	// Register 0 is written back to zero after every instruction. The
	// write goes through Registers.Set, which discards writes to index
	// 0, so x0 stays zero through Set's guard alone.
	m.Registers.Set(0, 0)
	return nil
}

// Run loops Step until a SYSTEM trap halts the machine or the program
// counter runs past the end of memory (spec §4.5) — the latter is a
// normal, successful termination, not an error (spec §9 point 6).
func (m *Machine) Run() error {
	for !m.Halted {
		if uint64(m.Registers.PC)+4 > memory.Capacity {
			m.Halted = true
			break
		}
		if m.MaxSteps > 0 && m.StepCount >= m.MaxSteps {
			return fmt.Errorf("step limit exceeded (%d steps)", m.MaxSteps)
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}
