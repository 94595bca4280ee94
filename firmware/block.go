package firmware

import "slices"

// Block is one contiguous run of firmware bytes.
type Block struct {
	// StartAddress is the address of the first byte in Data
	StartAddress uint32

	// Data holds the block contents
	Data []byte
}

// Size returns the number of bytes in the block.
func (b Block) Size() uint32 {
	return uint32(len(b.Data))
}

// EndAddress returns the address just past the last byte of the block.
// It wraps at 2^32.
func (b Block) EndAddress() uint32 {
	return b.StartAddress + b.Size()
}

func (b Block) clone() Block {
	return Block{StartAddress: b.StartAddress, Data: slices.Clone(b.Data)}
}

// setDataAtOffset splices data into the block at offset, relative to StartAddress.
// The inserted region must overlap or touch the current data region. A negative
// offset moves StartAddress backward.
func (b *Block) setDataAtOffset(offset int64, data []byte) error {
	size := int64(len(b.Data))
	endOffset := offset + int64(len(data))

	switch {
	case offset >= 0 && offset <= size:
		if endOffset < size {
			copy(b.Data[offset:], data)
		} else {
			b.Data = append(b.Data[:offset], data...)
		}
	case offset < 0 && endOffset >= 0:
		b.StartAddress -= uint32(-offset)

		var rest []byte
		if endOffset < size {
			rest = b.Data[endOffset:]
		}
		merged := make([]byte, 0, len(data)+len(rest))
		merged = append(merged, data...)
		b.Data = append(merged, rest...)
	default:
		return ErrNoOverlap
	}

	return nil
}

func (b *Block) appendData(data []byte) {
	b.Data = append(b.Data, data...)
}

// eraseAfterAddress drops every byte at or beyond address.
func (b *Block) eraseAfterAddress(address uint32) {
	var offset uint32
	if address > b.StartAddress {
		offset = address - b.StartAddress
	}
	b.eraseAfterOffset(offset)
}

// eraseBeforeAddress drops every byte below address.
func (b *Block) eraseBeforeAddress(address uint32) {
	var offset uint32
	if address > b.StartAddress {
		offset = address - b.StartAddress
	}
	b.eraseBeforeOffset(offset)
}

func (b *Block) eraseAfterOffset(offset uint32) {
	if offset < b.Size() {
		b.Data = b.Data[:offset]
	}
}

// eraseBeforeOffset trims offset bytes from the head. Trimming the whole block
// leaves it empty with StartAddress unchanged.
func (b *Block) eraseBeforeOffset(offset uint32) {
	if offset < b.Size() {
		b.Data = b.Data[offset:]
		b.StartAddress += offset
	} else {
		b.Data = b.Data[:0]
	}
}
