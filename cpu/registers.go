// Package cpu holds the RV32I architectural register state: the
// 32-entry general purpose register file and the program counter.
package cpu

// NumRegisters is the size of the RV32I integer register file.
const NumRegisters = 32

// Registers is the RV32I register file plus the program counter.
// Register 0 is hardwired to zero: Get always returns 0 for index 0,
// and Set silently discards writes to index 0.
type Registers struct {
	x  [NumRegisters]int32
	PC uint32
}

// NewRegisters returns a zeroed register file with PC = 0.
func NewRegisters() *Registers {
	return &Registers{}
}

// Get returns the signed value of register i.
func (r *Registers) Get(i int) int32 {
	if i == 0 {
		return 0
	}
	return r.x[i]
}

// GetUnsigned returns the unsigned bit pattern of register i.
func (r *Registers) GetUnsigned(i int) uint32 {
	return uint32(r.Get(i))
}

// Set writes v to register i. Writes to register 0 are discarded.
func (r *Registers) Set(i int, v int32) {
	if i == 0 {
		return
	}
	r.x[i] = v
}

// SetUnsigned writes the bit pattern of v to register i.
func (r *Registers) SetUnsigned(i int, v uint32) {
	r.Set(i, int32(v))
}

// Reset reinitializes all registers and the program counter to zero.
func (r *Registers) Reset() {
	for i := range r.x {
		r.x[i] = 0
	}
	r.PC = 0
}

// Snapshot returns a copy of the 32 register values, for the register
// dumps.
func (r *Registers) Snapshot() [NumRegisters]int32 {
	snap := r.x
	snap[0] = 0
	return snap
}
