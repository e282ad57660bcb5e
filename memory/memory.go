// Package memory implements the bounds-checked, little-endian linear
// memory the simulator executes and loads/stores against.
package memory

import "fmt"

// Capacity is the fixed size of the linear memory: 1 MiB.
const Capacity = 1 << 20 // 1,048,576 bytes

// AccessError is returned for out-of-bounds or misaligned accesses —
// both are fatal per the error taxonomy.
type AccessError struct {
	Address uint32
	Size    int
	Reason  string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("memory access error at 0x%08X (size %d): %s", e.Address, e.Size, e.Reason)
}

// Memory is a fixed-capacity byte-addressable linear memory. It is not
// partitioned into code/data segments: fetch and data accesses share
// the same bytes.
type Memory struct {
	data []byte

	// AlignmentStrict enables natural-alignment enforcement on
	// halfword and word accesses. Byte accesses are never checked.
	// Default false: misaligned accesses are accepted.
	AlignmentStrict bool

	AccessCount uint64
	ReadCount   uint64
	WriteCount  uint64
}

// New returns a zero-initialized Memory of Capacity bytes.
func New() *Memory {
	return &Memory{data: make([]byte, Capacity)}
}

// Reset zeroes all memory and access counters.
func (m *Memory) Reset() {
	for i := range m.data {
		m.data[i] = 0
	}
	m.AccessCount = 0
	m.ReadCount = 0
	m.WriteCount = 0
}

func (m *Memory) checkBounds(address uint32, size int) error {
	if address >= Capacity || uint64(address)+uint64(size) > Capacity {
		return &AccessError{Address: address, Size: size, Reason: "out of bounds"}
	}
	return nil
}

func (m *Memory) checkAlignment(address uint32, size int) error {
	if !m.AlignmentStrict || size == 1 {
		return nil
	}
	if address%uint32(size) != 0 {
		return &AccessError{Address: address, Size: size, Reason: "misaligned access"}
	}
	return nil
}

// ReadByteUnsigned reads a single byte, zero-extended to 32 bits.
func (m *Memory) ReadByteUnsigned(address uint32) (uint32, error) {
	if err := m.checkBounds(address, 1); err != nil {
		return 0, err
	}
	m.AccessCount++
	m.ReadCount++
	return uint32(m.data[address]), nil
}

// ReadByteSigned reads a single byte, sign-extended to 32 bits.
func (m *Memory) ReadByteSigned(address uint32) (int32, error) {
	v, err := m.ReadByteUnsigned(address)
	if err != nil {
		return 0, err
	}
	return int32(int8(v)), nil
}

// WriteByte writes the low 8 bits of value at address.
func (m *Memory) WriteByte(address uint32, value byte) error {
	if err := m.checkBounds(address, 1); err != nil {
		return err
	}
	m.AccessCount++
	m.WriteCount++
	m.data[address] = value
	return nil
}

// ReadHalfUnsigned reads a little-endian 16-bit halfword, zero-extended.
func (m *Memory) ReadHalfUnsigned(address uint32) (uint32, error) {
	if err := m.checkBounds(address, 2); err != nil {
		return 0, err
	}
	if err := m.checkAlignment(address, 2); err != nil {
		return 0, err
	}
	m.AccessCount++
	m.ReadCount++
	v := uint32(m.data[address]) | uint32(m.data[address+1])<<8
	return v, nil
}

// ReadHalfSigned reads a little-endian 16-bit halfword, sign-extended.
func (m *Memory) ReadHalfSigned(address uint32) (int32, error) {
	v, err := m.ReadHalfUnsigned(address)
	if err != nil {
		return 0, err
	}
	return int32(int16(v)), nil
}

// WriteHalf writes the low 16 bits of value, little-endian, at address.
func (m *Memory) WriteHalf(address uint32, value uint16) error {
	if err := m.checkBounds(address, 2); err != nil {
		return err
	}
	if err := m.checkAlignment(address, 2); err != nil {
		return err
	}
	m.AccessCount++
	m.WriteCount++
	m.data[address] = byte(value)
	m.data[address+1] = byte(value >> 8)
	return nil
}

// ReadWord reads a little-endian 32-bit word.
func (m *Memory) ReadWord(address uint32) (uint32, error) {
	if err := m.checkBounds(address, 4); err != nil {
		return 0, err
	}
	if err := m.checkAlignment(address, 4); err != nil {
		return 0, err
	}
	m.AccessCount++
	m.ReadCount++
	v := uint32(m.data[address]) |
		uint32(m.data[address+1])<<8 |
		uint32(m.data[address+2])<<16 |
		uint32(m.data[address+3])<<24
	return v, nil
}

// WriteWord writes a little-endian 32-bit word at address.
func (m *Memory) WriteWord(address uint32, value uint32) error {
	if err := m.checkBounds(address, 4); err != nil {
		return err
	}
	if err := m.checkAlignment(address, 4); err != nil {
		return err
	}
	m.AccessCount++
	m.WriteCount++
	m.data[address] = byte(value)
	m.data[address+1] = byte(value >> 8)
	m.data[address+2] = byte(value >> 16)
	m.data[address+3] = byte(value >> 24)
	return nil
}

// LoadBytes bulk-loads data at address, bypassing access counters —
// used once at startup by the image loader.
func (m *Memory) LoadBytes(address uint32, data []byte) error {
	if err := m.checkBounds(address, len(data)); err != nil {
		return err
	}
	copy(m.data[address:], data)
	return nil
}
