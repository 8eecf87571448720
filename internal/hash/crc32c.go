package hash

import "hash/crc32"

// Castagnoli table, computed once. Go's crc32 package uses hardware CRC
// instructions for this polynomial where available.
var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// CRC32C returns the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}
