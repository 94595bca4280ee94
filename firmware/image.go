package firmware

import (
	"cmp"
	"fmt"
	"slices"
)

// Image is a sparse firmware memory image made of non-overlapping, non-adjacent blocks.
//
// Image is not safe for concurrent use.
type Image struct {
	hasExplicitAddresses bool

	// blocks are kept sorted by StartAddress
	blocks []Block
}

// NewImage creates an empty image. hasExplicitAddresses records whether the source
// format carries real memory addresses (Intel HEX, S-record) or not (raw binary).
func NewImage(hasExplicitAddresses bool) *Image {
	return &Image{hasExplicitAddresses: hasExplicitAddresses}
}

// HasExplicitAddresses reports whether the block addresses came from the source file.
func (img *Image) HasExplicitAddresses() bool {
	return img.hasExplicitAddresses
}

// Blocks returns a copy of the image blocks in ascending address order.
func (img *Image) Blocks() []Block {
	blocks := make([]Block, len(img.blocks))
	for i, b := range img.blocks {
		blocks[i] = b.clone()
	}
	return blocks
}

// Len returns the number of blocks.
func (img *Image) Len() int {
	return len(img.blocks)
}

// Size returns the total number of defined bytes across all blocks.
func (img *Image) Size() uint64 {
	var total uint64
	for _, b := range img.blocks {
		total += uint64(b.Size())
	}
	return total
}

// SetData writes data at startAddress, overwriting existing bytes and merging with
// every block it overlaps or touches. Writing empty data is a no-op.
func (img *Image) SetData(startAddress uint32, data []byte) {
	if len(data) == 0 {
		return
	}

	endAddress := startAddress + uint32(len(data))

	img.removeOverwrittenBlocks(startAddress, endAddress)

	startIdx, endIdx := -1, -1
	for i, b := range img.blocks {
		if b.StartAddress <= startAddress && b.EndAddress() >= startAddress {
			if startIdx >= 0 {
				panic(fmt.Sprintf("firmware: internal error: blocks overlapping at 0x%08X", startAddress))
			}
			startIdx = i
		}
		if b.StartAddress <= endAddress && b.EndAddress() >= endAddress {
			if endIdx >= 0 {
				panic(fmt.Sprintf("firmware: internal error: blocks overlapping at 0x%08X", endAddress))
			}
			endIdx = i
		}
	}

	if endIdx == startIdx {
		endIdx = -1
	}

	switch {
	case startIdx >= 0 && endIdx >= 0:
		// Data bridges two blocks: extend the start block and absorb the end block's tail
		startBlock := &img.blocks[startIdx]
		mustSplice(startBlock, int64(startAddress-startBlock.StartAddress), data)

		endBlock := img.blocks[endIdx]
		startBlock.appendData(endBlock.Data[endAddress-endBlock.StartAddress:])

		img.blocks = slices.Delete(img.blocks, endIdx, endIdx+1)
	case startIdx >= 0:
		// Data lands on the middle or tail of a block
		startBlock := &img.blocks[startIdx]
		mustSplice(startBlock, int64(startAddress-startBlock.StartAddress), data)
	case endIdx >= 0:
		// Data lands on the head of a block
		endBlock := &img.blocks[endIdx]
		mustSplice(endBlock, -int64(endBlock.StartAddress-startAddress), data)
	default:
		img.blocks = append(img.blocks, Block{StartAddress: startAddress, Data: slices.Clone(data)})
	}

	img.sortBlocks()
}

// addressSpaceSize is the size of the 32-bit address space.
const addressSpaceSize = 1 << 32

// EraseData removes size bytes starting at startAddress. Blocks are trimmed, split or
// dropped as needed. Erasing zero bytes is a no-op. A range running past the top of the
// address space continues at address 0.
func (img *Image) EraseData(startAddress uint32, size uint32) {
	if size == 0 {
		return
	}

	start := uint64(startAddress)
	end := start + uint64(size)

	if end > addressSpaceSize {
		img.eraseRange(start, addressSpaceSize)
		img.eraseRange(0, end-addressSpaceSize)
		return
	}

	img.eraseRange(start, end)
}

// eraseRange erases [start, end), with end <= addressSpaceSize.
func (img *Image) eraseRange(start, end uint64) {
	blocks := make([]Block, 0, len(img.blocks)+1)
	for _, b := range img.blocks {
		blockStart := uint64(b.StartAddress)
		blockEnd := blockStart + uint64(b.Size())

		switch {
		case blockStart < start && blockEnd > end:
			// Range lies in the middle of the block: split it
			tail := Block{
				StartAddress: uint32(end),
				Data:         slices.Clone(b.Data[end-blockStart:]),
			}
			b.eraseAfterOffset(uint32(start - blockStart))
			blocks = append(blocks, b, tail)
		case blockStart >= start && blockEnd <= end:
			// Range covers the whole block: drop it
		case blockStart >= start && blockStart < end:
			b.eraseBeforeAddress(uint32(end))
			blocks = append(blocks, b)
		case blockEnd > start && blockEnd <= end:
			b.eraseAfterAddress(uint32(start))
			blocks = append(blocks, b)
		default:
			blocks = append(blocks, b)
		}
	}

	img.blocks = slices.DeleteFunc(blocks, func(b Block) bool { return len(b.Data) == 0 })
	img.sortBlocks()
}

// GetData returns a copy of size bytes starting at startAddress. The second result is
// false unless a single block holds the whole range.
func (img *Image) GetData(startAddress uint32, size uint32) ([]byte, bool) {
	endAddress := startAddress + size

	for _, b := range img.blocks {
		if b.StartAddress <= startAddress && b.EndAddress() >= endAddress {
			offset := startAddress - b.StartAddress
			if uint64(offset)+uint64(size) > uint64(len(b.Data)) {
				// range wrapped past 2^32
				continue
			}
			return slices.Clone(b.Data[offset : offset+size]), true
		}
	}

	return nil, false
}

func (img *Image) removeOverwrittenBlocks(startAddress, endAddress uint32) {
	img.blocks = slices.DeleteFunc(img.blocks, func(b Block) bool {
		return b.StartAddress >= startAddress && b.EndAddress() <= endAddress
	})
}

func (img *Image) sortBlocks() {
	slices.SortStableFunc(img.blocks, func(a, b Block) int {
		return cmp.Compare(a.StartAddress, b.StartAddress)
	})
}

// mustSplice treats a failed splice as a broken container invariant.
func mustSplice(b *Block, offset int64, data []byte) {
	if err := b.setDataAtOffset(offset, data); err != nil {
		panic(fmt.Sprintf("firmware: internal error: block 0x%08X: %v", b.StartAddress, err))
	}
}
