// Package shmframe implements a self-describing shared-memory array layout
// for transporting rendered frames between processes without a second
// control channel.
//
// # Layout
//
// A block is a byte buffer divided into a fixed-layout header followed by
// the raw payload:
//
//	[u32 rank]
//	[rank × u32 shape dims]
//	[16-byte ASCII dtype name, NUL-padded]
//	[1-byte ASCII endianness marker: '<', '>', '=' or '|']
//	[payload bytes]
//
// The payload begins at offset 4 + rank*4 + 16 + 1 and holds exactly
// product(shape) × itemsize(dtype) bytes. The header is written once by the
// block's creator and only read afterwards; producers mutate nothing but
// the payload region.
//
// Header integers (rank and dims) are stored in the machine's native byte
// order: a shared-memory block never crosses machines, only processes. The
// endianness marker describes the payload elements, matching the dtype
// convention of array libraries on the consumer side.
//
// # Ownership and synchronization
//
// The block's lifetime belongs to whoever allocated it. This package never
// locks: a producer and consumer sharing a block across processes must
// supply their own synchronization (a semaphore, a generation counter) to
// avoid reading a half-written payload.
package shmframe
