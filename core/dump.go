package core

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// WriteRegisterDump writes the binary register dump: 32 little-endian
// int32 registers (128 bytes total), register 0 first, per spec §6.
func (m *Machine) WriteRegisterDump(path string) error {
	f, err := os.Create(path) // #nosec G304 -- user-configured dump path
	if err != nil {
		return fmt.Errorf("failed to open register dump file: %w", err)
	}
	defer f.Close()

	snap := m.Registers.Snapshot()
	for _, v := range snap {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("failed to write register dump: %w", err)
		}
	}
	return nil
}

// PrintRegisters writes a human-readable register dump to w: a header
// line, 32 lines, one per register, with decimal and hex
// representations, and a closing separator line.
func (m *Machine) PrintRegisters(w io.Writer) {
	fmt.Fprintln(w, "--- Register Contents ---")
	snap := m.Registers.Snapshot()
	for i, v := range snap {
		fmt.Fprintf(w, "x%02d = %d (0x%08X)\n", i, v, uint32(v))
	}
	fmt.Fprintln(w, "--------------------------")
}

// Terminate is the single "terminate with dump" entry point: every
// exit path (SYSTEM trap, fatal error, normal fall-through) calls
// through here so the register dump is emitted regardless of why
// execution stopped (spec §9; ground: original_source/RISC-V.c
// variant B's atexit(dump_registers_res) hook, reproduced here as an
// explicit call since Go has no process-wide atexit hook).
func (m *Machine) Terminate(w io.Writer, dumpPath string) error {
	m.PrintRegisters(w)

	if m.Trace != nil {
		if err := m.Trace.Flush(); err != nil {
			fmt.Fprintf(w, "warning: failed to flush execution trace: %v\n", err)
		}
	}
	if m.Stats != nil {
		m.Stats.Finish()
	}

	return m.WriteRegisterDump(dumpPath)
}
