package ringfifo

import "encoding/binary"

// copyEntry moves one fixed-size entry between a slot and caller memory.
// Common word widths take a direct load/store path; every other size falls
// back to the builtin copy. Both paths move exactly len(dst) bytes.
func copyEntry(dst, src []byte) {
	switch len(dst) {
	case 1:
		dst[0] = src[0]
	case 2:
		binary.LittleEndian.PutUint16(dst, binary.LittleEndian.Uint16(src))
	case 4:
		binary.LittleEndian.PutUint32(dst, binary.LittleEndian.Uint32(src))
	case 8:
		binary.LittleEndian.PutUint64(dst, binary.LittleEndian.Uint64(src))
	default:
		copy(dst, src)
	}
}
