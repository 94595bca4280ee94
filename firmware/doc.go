// Package firmware provides a sparse, byte-addressable model of a device firmware image.
//
// # Image Model
//
// An Image is a set of contiguous memory blocks over a 32-bit address space.
// Writes may overlap or touch existing blocks; the image always keeps a minimal
// set of blocks:
//   - No two blocks overlap
//   - No two blocks are adjacent (a write that touches a block is merged into it)
//   - No block is empty
//
// Blocks are enumerated in ascending start address order.
//
// Address arithmetic is unsigned 32-bit and wraps at 2^32.
//
// # Usage
//
// Images are normally produced by one of the loaders (binfile, ihex, srec), but can
// also be built directly:
//
//	img := firmware.NewImage(true)
//	img.SetData(0x1000, []byte{0x01, 0x02, 0x03, 0x04})
//	img.SetData(0x1004, []byte{0x05, 0x06}) // merged into the first block
//	img.EraseData(0x1001, 2)                // splits it in two
//
//	for _, b := range img.Blocks() {
//	    fmt.Printf("0x%08X-0x%08X (%d bytes)\n", b.StartAddress, b.EndAddress(), b.Size())
//	}
//
//	if data, ok := img.GetData(0x1003, 3); ok {
//	    fmt.Printf("% X\n", data)
//	}
//
// # Errors
//
// The loaders report malformed input as *FormatError (carrying the 1-based line
// number) and stream failures as *ReadError. The cause of a FormatError can be
// matched with errors.Is against the Err* sentinels, or with errors.As against
// *ChecksumError.
package firmware
