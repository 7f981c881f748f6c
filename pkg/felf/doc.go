// Package felf implements the FELF container: a minimal executable image
// identified only by an absolute load base and an entry address.
//
// A container is a fixed 24 byte header followed by the code body:
//
//	offset  size  field
//	0       8     magic "FELF0001"
//	8       4+4   entry (low, high)
//	16      4+4   base  (low, high)
//	24      N-24  body, placed at virtual address base
//
// There are no sections, symbols or relocations. Only 32-bit addresses are
// accepted; a non-zero high word is rejected rather than truncated.
//
// # Usage
//
// Validate a received payload and slice out its body:
//
//	hdr, off, err := felf.Parse(payload)
//	if err != nil {
//	    return err
//	}
//	body := payload[off:]
//
// Build a container:
//
//	b := felf.Encode(felf.Header{Entry: 0x400000, Base: 0x400000}, code)
//
// # Byte order
//
// Header words and the wire length prefix use [ByteOrder], the host's native
// order. Peers exchanging containers must share byte order.
//
// [Version] is reported by the felfship commands alongside their build version.
package felf
