// Package endian provides byte order utilities for the dictionary wire
// formats.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface, satisfied by
// binary.BigEndian and binary.LittleEndian.
//
// The forest wire format (header and partition bodies) is big-endian; the
// snapshot container header is little-endian. Use the matching engine:
//
//	engine := endian.GetBigEndianEngine()
//	engine.PutUint32(buf, uint32(count))
//
// The returned engines are immutable and stateless, safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine used by the dictionary
// wire format.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine used by the
// snapshot container header.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
