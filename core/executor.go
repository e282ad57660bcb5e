package core

import (
	"fmt"

	"github.com/lookbusy-dev/rv32emu/alu"
	"github.com/lookbusy-dev/rv32emu/immediate"
)

// execute dispatches a single decoded instruction word and applies its
// effect on registers, memory and the program counter. Every opcode
// not listed here is a fatal decode error, per spec §4.4.
func (m *Machine) execute(w uint32) error {
	f := decodeFields(w)
	pc := m.Registers.PC

	switch f.Opcode {
	case OpcodeLUI:
		m.Registers.Set(f.Rd, immediate.UImm(w))
		m.Registers.PC = pc + 4

	case OpcodeAUIPC:
		m.Registers.Set(f.Rd, int32(pc)+immediate.UImm(w))
		m.Registers.PC = pc + 4

	case OpcodeJAL:
		m.Registers.Set(f.Rd, int32(pc+4))
		m.Registers.PC = uint32(int32(pc) + immediate.JImm(w))

	case OpcodeJALR:
		target := (uint32(m.Registers.Get(f.Rs1)+immediate.IImm(w))) &^ 1
		m.Registers.Set(f.Rd, int32(pc+4))
		m.Registers.PC = target

	case OpcodeBranch:
		return m.executeBranch(f, w, pc)

	case OpcodeLoad:
		return m.executeLoad(f, w, pc)

	case OpcodeStore:
		return m.executeStore(f, w, pc)

	case OpcodeOpImm:
		return m.executeOpImm(f, w, pc)

	case OpcodeOp:
		return m.executeOp(f, w, pc)

	case OpcodeSystem:
		return m.executeSystem(w, pc)

	default:
		return &DecodeError{PC: pc, Word: w, Message: "unsupported opcode"}
	}

	return nil
}

func (m *Machine) executeBranch(f fields, w uint32, pc uint32) error {
	a, b := m.Registers.Get(f.Rs1), m.Registers.Get(f.Rs2)
	var taken bool
	switch f.Funct3 {
	case funct3BEQ:
		taken = a == b
	case funct3BNE:
		taken = a != b
	case funct3BLT:
		taken = a < b
	case funct3BGE:
		taken = a >= b
	case funct3BLTU:
		taken = uint32(a) < uint32(b)
	case funct3BGEU:
		taken = uint32(a) >= uint32(b)
	default:
		return &DecodeError{PC: pc, Word: w, Message: "undefined BRANCH funct3"}
	}

	if taken {
		m.Registers.PC = uint32(int32(pc) + immediate.BImm(w))
	} else {
		m.Registers.PC = pc + 4
	}
	return nil
}

func (m *Machine) executeLoad(f fields, w uint32, pc uint32) error {
	addr := uint32(m.Registers.Get(f.Rs1) + immediate.IImm(w))

	var value int32
	var err error
	switch f.Funct3 {
	case funct3LB:
		value, err = m.Memory.ReadByteSigned(addr)
	case funct3LBU:
		var u uint32
		u, err = m.Memory.ReadByteUnsigned(addr)
		value = int32(u)
	case funct3LH:
		value, err = m.Memory.ReadHalfSigned(addr)
	case funct3LHU:
		var u uint32
		u, err = m.Memory.ReadHalfUnsigned(addr)
		value = int32(u)
	case funct3LW:
		var u uint32
		u, err = m.Memory.ReadWord(addr)
		value = int32(u)
	default:
		return &DecodeError{PC: pc, Word: w, Message: "undefined LOAD funct3"}
	}
	if err != nil {
		return err
	}

	m.Registers.Set(f.Rd, value)
	m.Registers.PC = pc + 4
	return nil
}

func (m *Machine) executeStore(f fields, w uint32, pc uint32) error {
	addr := uint32(m.Registers.Get(f.Rs1) + immediate.SImm(w))
	value := m.Registers.GetUnsigned(f.Rs2)

	var err error
	switch f.Funct3 {
	case funct3SB:
		err = m.Memory.WriteByte(addr, byte(value))
	case funct3SH:
		err = m.Memory.WriteHalf(addr, uint16(value))
	case funct3SW:
		err = m.Memory.WriteWord(addr, value)
	default:
		return &DecodeError{PC: pc, Word: w, Message: "undefined STORE funct3"}
	}
	if err != nil {
		return err
	}

	m.Registers.PC = pc + 4
	return nil
}

func (m *Machine) executeOpImm(f fields, w uint32, pc uint32) error {
	var operand int32
	if f.Funct3 == funct3SLLI || f.Funct3 == funct3SRLISRA {
		operand = int32(immediate.Shamt(w))
	} else {
		operand = immediate.IImm(w)
	}

	op, err := alu.Decode(f.Funct3, f.Funct7, true)
	if err != nil {
		return &DecodeError{PC: pc, Word: w, Message: err.Error()}
	}

	result := alu.Exec(op, m.Registers.Get(f.Rs1), operand)
	m.Registers.Set(f.Rd, result)
	m.Registers.PC = pc + 4
	return nil
}

func (m *Machine) executeOp(f fields, w uint32, pc uint32) error {
	op, err := alu.Decode(f.Funct3, f.Funct7, false)
	if err != nil {
		return &DecodeError{PC: pc, Word: w, Message: err.Error()}
	}

	result := alu.Exec(op, m.Registers.Get(f.Rs1), m.Registers.Get(f.Rs2))
	m.Registers.Set(f.Rd, result)
	m.Registers.PC = pc + 4
	return nil
}

func (m *Machine) executeSystem(w uint32, pc uint32) error {
	sub := (w >> 20) & 0xFFF
	switch sub {
	case systemECALL:
		fmt.Fprintf(m.Output, "ECALL encountered at PC: 0x%08X\n", pc)
		m.Halted = true
		m.ExitCode = 0
		return nil
	case systemEBREAK:
		fmt.Fprintf(m.Output, "EBREAK encountered at PC: 0x%08X\n", pc)
		m.Halted = true
		m.ExitCode = 0
		return nil
	default:
		return &DecodeError{PC: pc, Word: w, Message: "unsupported SYSTEM sub-encoding"}
	}
}
