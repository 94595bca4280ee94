package linerec

// Sum returns the 8-bit sum of every byte in each of parts.
func Sum(parts ...[]byte) byte {
	var sum byte
	for _, part := range parts {
		for _, b := range part {
			sum += b
		}
	}
	return sum
}

// TwosComplementChecksum is the Intel HEX record checksum: the 2's complement of
// the 8-bit sum of all record bytes before the checksum field.
func TwosComplementChecksum(parts ...[]byte) byte {
	return ^Sum(parts...) + 1
}

// OnesComplementChecksum is the Motorola S-record checksum: the 1's complement of
// the 8-bit sum of the byte count, address and data bytes.
func OnesComplementChecksum(parts ...[]byte) byte {
	return ^Sum(parts...)
}
