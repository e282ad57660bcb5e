package core

import "fmt"

// mnemonicFor returns a short opcode-family label for an instruction,
// used only to key the per-opcode counts in stats.Counters — it is
// not a full disassembly.
func mnemonicFor(f fields, w uint32) string {
	switch f.Opcode {
	case OpcodeLUI:
		return "LUI"
	case OpcodeAUIPC:
		return "AUIPC"
	case OpcodeJAL:
		return "JAL"
	case OpcodeJALR:
		return "JALR"
	case OpcodeBranch:
		return fmt.Sprintf("BRANCH(f3=%d)", f.Funct3)
	case OpcodeLoad:
		return fmt.Sprintf("LOAD(f3=%d)", f.Funct3)
	case OpcodeStore:
		return fmt.Sprintf("STORE(f3=%d)", f.Funct3)
	case OpcodeOpImm:
		return fmt.Sprintf("OP-IMM(f3=%d)", f.Funct3)
	case OpcodeOp:
		return fmt.Sprintf("OP(f3=%d,f7=%d)", f.Funct3, f.Funct7)
	case OpcodeSystem:
		return "SYSTEM"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", f.Opcode)
	}
}
