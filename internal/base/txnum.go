package base

// TxNum is the opaque, positive transaction identifier a higher-level
// transaction manager attaches to a dirty Buffer so that BufferPool.FlushAll
// can flush exactly the buffers a given transaction modified. This package
// does not interpret the value beyond equality.
type TxNum int64

// LSN is a monotonically increasing log sequence number. It starts at 0,
// is never reused, and never decreases within a single log.
type LSN uint64
