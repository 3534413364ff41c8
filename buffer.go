package wirehttp

// minBufferCap is the smallest storage a buffer allocates.
const minBufferCap = 32

// Buffer accumulates the unconsumed bytes of one connection. It keeps a
// logical head offset into its storage so consuming from the front is O(1),
// and copies the live window back to offset 0 once the dead prefix grows
// past half of capacity. Capacity never shrinks.
//
// The zero value is an empty buffer ready for use.
type Buffer struct {
	store []byte // full storage, len(store) is the capacity
	head  int    // offset of the first live byte
	n     int    // number of live bytes
}

// Append copies p onto the end of the live window. When the window would
// overflow current capacity, storage grows to the next power of two that
// fits (minimum 32) and the live window moves to offset 0.
func (b *Buffer) Append(p []byte) {
	need := b.n + len(p)
	if b.head+need > len(b.store) {
		if need > len(b.store) {
			grown := make([]byte, nextPow2(need))
			copy(grown, b.store[b.head:b.head+b.n])
			b.store = grown
		} else {
			// total capacity suffices, reclaim the dead prefix
			copy(b.store, b.store[b.head:b.head+b.n])
		}
		b.head = 0
	}
	copy(b.store[b.head+b.n:], p)
	b.n += len(p)
}

// Consume discards the first n live bytes. It panics when n exceeds the
// live length. If the head offset ends up past half of capacity the
// remaining window is compacted to offset 0, bounding the dead prefix for
// long-lived connections that read many small messages.
func (b *Buffer) Consume(n int) {
	if n > b.n {
		panic("wirehttp: consume past live window")
	}
	b.head += n
	b.n -= n
	if b.head > len(b.store)/2 {
		copy(b.store, b.store[b.head:b.head+b.n])
		b.head = 0
	}
}

// View returns the live window without transferring ownership. The slice
// aliases internal storage and is only valid until the next Append or
// Consume.
func (b *Buffer) View() []byte {
	return b.store[b.head : b.head+b.n]
}

// Len returns the number of live bytes.
func (b *Buffer) Len() int {
	return b.n
}

func nextPow2(n int) int {
	c := minBufferCap
	for c < n {
		c <<= 1
	}
	return c
}
