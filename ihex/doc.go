// Package ihex loads Intel HEX firmware files into a firmware.Image.
//
// # Intel HEX Format
//
// Every record is one line of hex digits prefixed with a colon:
//
//	:[ByteCount(2)][Address(4)][RecordType(2)][Data(2*ByteCount)][Checksum(2)]
//
// Example record:
//
//	:10010000214601360121470136007EFE09D2190140
//	  10 = Byte Count (16 data bytes)
//	  0100 = Address (0x0100)
//	  00 = Record Type (Data)
//	  214601...D21901 = Data
//	  40 = Checksum
//
// The checksum is the 2's complement of the 8-bit sum of the byte count, both address
// bytes, the record type and every data byte.
//
// Supported record types:
//   - 00 Data: written to the image at the current extended linear address + Address
//   - 01 End Of File: no record may follow it
//   - 04 Extended Linear Address: 2 data bytes, the upper 16 bits of subsequent addresses
//   - 05 Start Linear Address: validated and ignored
//
// # Usage
//
//	img, err := ihex.Load("app.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, b := range img.Blocks() {
//	    fmt.Printf("0x%08X: %d bytes\n", b.StartAddress, b.Size())
//	}
//
// Errors in the file are reported as *firmware.FormatError with the offending line number.
package ihex
