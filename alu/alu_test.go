package alu

import "testing"

func TestDecodeAddSub(t *testing.T) {
	if op, err := Decode(0x0, 0x00, false); err != nil || op != Add {
		t.Errorf("expected Add, got %v, %v", op, err)
	}
	if op, err := Decode(0x0, 0x20, false); err != nil || op != Sub {
		t.Errorf("expected Sub, got %v, %v", op, err)
	}
	if _, err := Decode(0x0, 0x7F, false); err == nil {
		t.Error("expected an error for undefined funct7 on ADD/SUB")
	}
}

func TestDecodeAddImmIgnoresFunct7(t *testing.T) {
	if op, err := Decode(0x0, 0x20, true); err != nil || op != Add {
		t.Errorf("ADDI must decode to Add regardless of funct7, got %v, %v", op, err)
	}
}

func TestDecodeShiftsRejectInvalidFunct7(t *testing.T) {
	if _, err := Decode(0x1, 0x01, false); err == nil {
		t.Error("expected an error for undefined funct7 on SLL")
	}
	if _, err := Decode(0x5, 0x01, false); err == nil {
		t.Error("expected an error for undefined funct7 on SRL/SRA")
	}
}

func TestDecodeUnknownFunct3(t *testing.T) {
	if _, err := Decode(0xFF, 0x00, false); err == nil {
		t.Error("expected an error for an unknown funct3")
	}
}

func TestExecArithmetic(t *testing.T) {
	if got := Exec(Add, 5, -3); got != 2 {
		t.Errorf("Add: expected 2, got %d", got)
	}
	if got := Exec(Sub, 5, -3); got != 8 {
		t.Errorf("Sub: expected 8, got %d", got)
	}
	if got := Exec(Add, int32(-2147483648), int32(-2147483648)); got != 0 {
		t.Errorf("Add: expected wraparound to 0, got %d", got)
	}
}

func TestExecShiftsOnlyUseLow5Bits(t *testing.T) {
	if got := Exec(Sll, 1, 32); got != 1 {
		t.Errorf("Sll by 32 should behave as shift by 0, got %d", got)
	}
	if got := Exec(Sll, 1, 33); got != 2 {
		t.Errorf("Sll by 33 should behave as shift by 1, got %d", got)
	}
}

func TestExecSrlIsLogical(t *testing.T) {
	// 0x80000000 >> 1 logically is 0x40000000, not sign-extended.
	if got := Exec(Srl, int32(-2147483648), 1); uint32(got) != 0x40000000 {
		t.Errorf("Srl: expected 0x40000000, got 0x%08X", uint32(got))
	}
}

func TestExecSraIsArithmetic(t *testing.T) {
	// 0x80000000 >> 1 arithmetically sign-extends: 0xC0000000.
	if got := Exec(Sra, int32(-2147483648), 1); uint32(got) != 0xC0000000 {
		t.Errorf("Sra: expected 0xC0000000, got 0x%08X", uint32(got))
	}
}

func TestExecSltSigned(t *testing.T) {
	if got := Exec(Slt, -3, 5); got != 1 {
		t.Errorf("Slt: expected 1 (-3 < 5 signed), got %d", got)
	}
}

func TestExecSltuUnsigned(t *testing.T) {
	// -3 as an unsigned bit pattern is huge, so it is NOT less than 5.
	if got := Exec(Sltu, -3, 5); got != 0 {
		t.Errorf("Sltu: expected 0 (-3 as unsigned is not < 5), got %d", got)
	}
}

func TestExecBitwise(t *testing.T) {
	if got := Exec(And, 0xFF, 0x0F); got != 0x0F {
		t.Errorf("And: expected 0x0F, got 0x%X", got)
	}
	if got := Exec(Or, 0xF0, 0x0F); got != 0xFF {
		t.Errorf("Or: expected 0xFF, got 0x%X", got)
	}
	if got := Exec(Xor, 0xFF, 0x0F); got != 0xF0 {
		t.Errorf("Xor: expected 0xF0, got 0x%X", got)
	}
}
