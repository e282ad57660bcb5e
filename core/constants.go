package core

// Opcodes (instruction word bits 6:0).
const (
	OpcodeLoad   = 0x03
	OpcodeOpImm  = 0x13
	OpcodeAUIPC  = 0x17
	OpcodeStore  = 0x23
	OpcodeOp     = 0x33
	OpcodeLUI    = 0x37
	OpcodeBranch = 0x63
	OpcodeJALR   = 0x67
	OpcodeJAL    = 0x6F
	OpcodeSystem = 0x73
)

// BRANCH funct3 values.
const (
	funct3BEQ  = 0x0
	funct3BNE  = 0x1
	funct3BLT  = 0x4
	funct3BGE  = 0x5
	funct3BLTU = 0x6
	funct3BGEU = 0x7
)

// LOAD funct3 values.
const (
	funct3LB  = 0x0
	funct3LH  = 0x1
	funct3LW  = 0x2
	funct3LBU = 0x4
	funct3LHU = 0x5
)

// STORE funct3 values.
const (
	funct3SB = 0x0
	funct3SH = 0x1
	funct3SW = 0x2
)

// OP-IMM shift funct3 values (need the shamt form of the I-immediate).
const (
	funct3SLLI    = 0x1
	funct3SRLISRA = 0x5
)

// SYSTEM sub-encodings (instruction bits 31:20).
const (
	systemECALL  = 0x000
	systemEBREAK = 0x001
)
