// Package hash holds the checksum shared by snapshot block frames and
// archive uploads.
//
// Everything uses CRC32-Castagnoli: it is hardware accelerated on amd64
// and arm64, and its burst-error detection fits framed block payloads.
// The polynomial is part of the snapshot wire format, so it must never
// change for existing files to stay readable.
package hash
