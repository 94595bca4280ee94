// Package srec loads Motorola S-record firmware files into a firmware.Image.
//
// Record format:
//
//	[Type(2)][ByteCount(2)][Address(4, 6 or 8)][Data(variable)][Checksum(2)]
//
// ByteCount counts the address, data and checksum bytes. The address width depends
// on the record type: 24 bits for S2, 32 bits for S3 and 16 bits for every other type.
// The checksum is the 1's complement of the 8-bit sum of the byte count, address and
// data bytes.
//
// Only the data records S1, S2 and S3 are written to the image. S0 and S4-S9 are
// validated and otherwise ignored.
package srec
