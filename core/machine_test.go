package core_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookbusy-dev/rv32emu/core"
	"github.com/lookbusy-dev/rv32emu/memory"
)

func newQuietMachine(t *testing.T) *core.Machine {
	t.Helper()
	m := core.NewMachine(core.DefaultConfig())
	m.Output = io.Discard
	return m
}

func loadWords(t *testing.T, m *core.Machine, words ...uint32) {
	t.Helper()
	for i, w := range words {
		if err := m.Memory.WriteWord(uint32(i*4), w); err != nil {
			t.Fatalf("failed to load word %d: %v", i, err)
		}
	}
}

// Scenario 1: addi x5, x0, 7; ecall -> x5 = 7, success halt.
func TestScenarioAddiThenEcall(t *testing.T) {
	m := newQuietMachine(t)
	loadWords(t, m, 0x00700293, 0x00000073)

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !m.Halted {
		t.Fatal("expected machine to halt on ECALL")
	}
	if got := m.Registers.Get(5); got != 7 {
		t.Errorf("expected x5=7, got %d", got)
	}
}

func TestEcallPrintsLabeledDiagnostic(t *testing.T) {
	m := core.NewMachine(core.DefaultConfig())
	var buf bytes.Buffer
	m.Output = &buf

	require.NoError(t, m.Memory.WriteWord(4, 0x00000073)) // ecall at PC=4
	m.Registers.PC = 4

	require.NoError(t, m.Run())
	assert.Contains(t, buf.String(), "ECALL encountered at PC: 0x00000004")
}

func TestEbreakPrintsLabeledDiagnostic(t *testing.T) {
	m := core.NewMachine(core.DefaultConfig())
	var buf bytes.Buffer
	m.Output = &buf

	require.NoError(t, m.Memory.WriteWord(0, 0x00100073)) // ebreak
	require.NoError(t, m.Run())
	assert.Contains(t, buf.String(), "EBREAK encountered at PC: 0x00000000")
}

// Scenario 2: lui x6, 0x12345; addi x6, x6, -1; ecall -> x6 = 0x12344FFF.
func TestScenarioLuiThenAddi(t *testing.T) {
	m := newQuietMachine(t)
	loadWords(t, m, 0x12345337, 0xFFF30313, 0x00000073)

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := m.Registers.Get(6); uint32(got) != 0x12344FFF {
		t.Errorf("expected x6=0x12344FFF, got 0x%08X", uint32(got))
	}
}

// Scenario 3: register-register arithmetic and signed/unsigned compares.
func TestScenarioRegisterArithmetic(t *testing.T) {
	m := newQuietMachine(t)
	// slt  x5, x2, x1  -> rs1=x2, rs2=x1 (is -3 < 5 signed? yes)
	// sltu x6, x2, x1  -> is 0xFFFFFFFD < 5 unsigned? no
	encodeR := func(funct7, rs2, rs1, funct3, rd, opcode uint32) uint32 {
		return (funct7 << 25) | (rs2 << 20) | (rs1 << 15) | (funct3 << 12) | (rd << 7) | opcode
	}
	loadWords(t, m,
		0x00500093,                    // addi x1, x0, 5
		0xFFD00113,                    // addi x2, x0, -3
		0x002081b3,                    // add x3, x1, x2
		0x40208233,                    // sub x4, x1, x2
		encodeR(0, 1, 2, 0x2, 5, 0x33), // slt x5, x2, x1
		encodeR(0, 1, 2, 0x3, 6, 0x33), // sltu x6, x2, x1
		0x00000073,                    // ecall
	)

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := m.Registers.Get(3); got != 2 {
		t.Errorf("expected x3=2, got %d", got)
	}
	if got := m.Registers.Get(4); got != 8 {
		t.Errorf("expected x4=8, got %d", got)
	}
	if got := m.Registers.Get(5); got != 1 {
		t.Errorf("expected x5=1 (slt x2<x1 signed), got %d", got)
	}
	if got := m.Registers.Get(6); got != 0 {
		t.Errorf("expected x6=0 (sltu -3<5 is false unsigned), got %d", got)
	}
}

// Scenario 4: jal x1, +8 at PC=0; any instruction at 4; ecall at 8.
func TestScenarioJAL(t *testing.T) {
	m := newQuietMachine(t)
	loadWords(t, m,
		0x008000EF, // jal x1, +8
		0x00000013, // nop (addi x0,x0,0)
		0x00000073, // ecall
	)

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := m.Registers.Get(1); got != 4 {
		t.Errorf("expected x1=4 (return address), got %d", got)
	}
	if m.Registers.PC != 8 {
		t.Errorf("expected final PC=8, got %d", m.Registers.PC)
	}
}

// Scenario 5: loop summing 1..10 into x10.
func TestScenarioSumLoop(t *testing.T) {
	m := newQuietMachine(t)
	// x1 = sum, x2 = i, x10 = limit/result.
	prog := []uint32{
		0x00000093, // 0:  addi x1, x0, 0      sum = 0
		0x00100113, // 4:  addi x2, x0, 1      i = 1
		0x00b00513, // 8:  addi x10, x0, 11    limit = 11
		0x002080b3, // 12: add  x1, x1, x2
		0x00110113, // 16: addi x2, x2, 1
		// 20: bne x10, x2, -8 (back to address 12): imm = -8
		encodeB(0x1, 10, 2, -8),
		0x00008533, // 24: add x10, x1, x0   -> x10 = sum
		0x00000073, // 28: ecall
	}
	for i, w := range prog {
		if err := m.Memory.WriteWord(uint32(i*4), w); err != nil {
			t.Fatalf("failed to write instruction %d: %v", i, err)
		}
	}

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := m.Registers.Get(10); got != 55 {
		t.Errorf("expected x10=55, got %d", got)
	}
}

// encodeB builds a B-type instruction word for funct3 at (rs1, rs2) with
// the given byte displacement (must be even, within +/-4KiB).
func encodeB(funct3, rs1, rs2 uint32, imm int32) uint32 {
	u := uint32(imm)
	bit12 := (u >> 12) & 0x1
	bit11 := (u >> 11) & 0x1
	bits10_5 := (u >> 5) & 0x3F
	bits4_1 := (u >> 1) & 0xF
	return (bit12 << 31) | (bits10_5 << 25) | (rs2 << 20) | (rs1 << 15) |
		(funct3 << 12) | (bits4_1 << 8) | (bit11 << 7) | 0x63
}

// Scenario 6: store-then-load round trip.
func TestScenarioStoreThenLoad(t *testing.T) {
	m := newQuietMachine(t)
	loadWords(t, m,
		0x05500093, // addi x1, x0, 0x55
		0x00102023, // sw x1, 0(x0)
		0x00002103, // lw x2, 0(x0)
		0x00104183, // lbu x3, 1(x0)
		0x00000073, // ecall
	)

	if err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := m.Registers.Get(2); uint32(got) != 0x55 {
		t.Errorf("expected x2=0x55, got 0x%08X", uint32(got))
	}
	if got := m.Registers.Get(3); got != 0 {
		t.Errorf("expected x3=0, got %d", got)
	}
}

func TestRegisterZeroAlwaysReadsZero(t *testing.T) {
	m := newQuietMachine(t)
	m.Registers.Set(0, 42)
	assert.Equal(t, int32(0), m.Registers.Get(0), "x0 must always read zero")
}

func TestNormalFallThroughIsSuccess(t *testing.T) {
	m := newQuietMachine(t)
	// Place a single instruction at the very end of memory so the run
	// loop falls off the end without ever hitting a SYSTEM trap.
	addr := uint32(memory.Capacity - 4)
	require.NoError(t, m.Memory.WriteWord(addr, 0x00000013)) // nop
	m.Registers.PC = addr

	err := m.Run()
	require.NoError(t, err, "falling off the end of memory is a normal, successful termination")
	assert.True(t, m.Halted)
}

func TestUnsupportedOpcodeIsFatal(t *testing.T) {
	m := newQuietMachine(t)
	require.NoError(t, m.Memory.WriteWord(0, 0x0000007F)) // opcode 0x7F: undefined

	err := m.Run()
	require.Error(t, err, "an unsupported opcode must be a fatal error")
}

func TestOutOfBoundsLoadIsFatal(t *testing.T) {
	m := newQuietMachine(t)
	// lw x1, 0(x1) with x1 two bytes before the end of memory, so the
	// word straddles the end.
	m.Registers.Set(1, int32(memory.Capacity)-2)
	require.NoError(t, m.Memory.WriteWord(0, 0x0000a083)) // lw x1, 0(x1)

	err := m.Run()
	require.Error(t, err, "an out-of-bounds load must be a fatal error")
}

func TestRegisterDumpRoundTrip(t *testing.T) {
	m := newQuietMachine(t)
	m.Registers.Set(5, 0x12345678)

	path := t.TempDir() + "/register_dump.res"
	require.NoError(t, m.WriteRegisterDump(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 128)

	// Register 5 occupies bytes [20:24), little-endian.
	got := uint32(data[20]) | uint32(data[21])<<8 | uint32(data[22])<<16 | uint32(data[23])<<24
	assert.Equal(t, uint32(0x12345678), got)
}

func TestPrintRegistersWritesThirtyTwoLines(t *testing.T) {
	m := newQuietMachine(t)
	var buf bytes.Buffer
	m.PrintRegisters(&buf)

	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	if lines < 32 {
		t.Errorf("expected at least 32 lines of register output, got %d", lines)
	}
}
