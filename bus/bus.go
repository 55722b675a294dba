// Package bus implements the ARM60 memory bus: a flat, byte-addressable
// memory array with word/byte accessors and the SWP lock flag.
package bus

import "fmt"

// Bus is a flat, byte-addressable memory region backing the ARM60 core.
// Word accesses are performed at addr &^ 3; callers (the CPU) are
// responsible for any rotation needed for unaligned word reads.
type Bus struct {
	data []byte

	// locked marks the window opened by an atomic swap (SWP/SWPB).
	// Only the CPU may set it; it is advisory for in-process use.
	locked bool

	// BigEndian is not consulted by any Bus accessor: byte and word
	// accesses always use little-endian lane order. Endianness-dependent
	// byte-lane selection and rotation are done by the CPU layer.
	BigEndian bool

	AccessCount uint64
	ReadCount   uint64
	WriteCount  uint64
}

// DefaultSize is used by New when no explicit size is requested.
const DefaultSize = 1 << 24 // 16MB, enough for a toy 3DO code+data image

// New creates a Bus with the given size in bytes.
func New(size uint32) *Bus {
	if size == 0 {
		size = DefaultSize
	}
	return &Bus{data: make([]byte, size)}
}

// Size returns the configured memory size in bytes.
func (b *Bus) Size() uint32 {
	return uint32(len(b.data))
}

// inRange reports whether the given byte address is mapped.
func (b *Bus) inRange(addr uint32) bool {
	return int(addr) < len(b.data)
}

// ReadByte returns the byte at addr, or zero if addr is out of range.
func (b *Bus) ReadByte(addr uint32) uint8 {
	b.AccessCount++
	b.ReadCount++
	if !b.inRange(addr) {
		return 0
	}
	return b.data[addr]
}

// WriteByte stores value at addr. Out-of-range writes are discarded.
func (b *Bus) WriteByte(addr uint32, value uint8) {
	b.AccessCount++
	b.WriteCount++
	if !b.inRange(addr) {
		return
	}
	b.data[addr] = value
}

// ReadWord reads the 32-bit little-endian word at addr &^ 3.
func (b *Bus) ReadWord(addr uint32) uint32 {
	addr &^= 3
	b.AccessCount++
	b.ReadCount++
	if !b.inRange(addr + 3) {
		var v uint32
		for i := uint32(0); i < 4; i++ {
			if b.inRange(addr + i) {
				v |= uint32(b.data[addr+i]) << (8 * i)
			}
		}
		return v
	}
	return uint32(b.data[addr]) |
		uint32(b.data[addr+1])<<8 |
		uint32(b.data[addr+2])<<16 |
		uint32(b.data[addr+3])<<24
}

// WriteWord stores a 32-bit little-endian word at addr &^ 3.
func (b *Bus) WriteWord(addr uint32, value uint32) {
	addr &^= 3
	b.AccessCount++
	b.WriteCount++
	for i := uint32(0); i < 4; i++ {
		if b.inRange(addr + i) {
			b.data[addr+i] = byte(value >> (8 * i))
		}
	}
}

// SetLock sets or clears the atomic-swap lock flag. Only the CPU should
// call this, during SWP/SWPB.
func (b *Bus) SetLock(locked bool) {
	b.locked = locked
}

// IsLocked reports the current state of the swap lock.
func (b *Bus) IsLocked() bool {
	return b.locked
}

// LoadBytes copies data into the bus starting at addr.
func (b *Bus) LoadBytes(addr uint32, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("bus: refusing to load empty image")
	}
	if uint64(addr)+uint64(len(data)) > uint64(len(b.data)) {
		return fmt.Errorf("bus: image of %d bytes at 0x%08X exceeds bus size %d", len(data), addr, len(b.data))
	}
	copy(b.data[addr:], data)
	return nil
}

// Reset zeroes all memory and clears the lock flag.
func (b *Bus) Reset() {
	for i := range b.data {
		b.data[i] = 0
	}
	b.locked = false
}
