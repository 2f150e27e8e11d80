package snowflakeid

// When we serialise ids for propagation outside the process we use a fixed 8
// byte big endian form, so that byte wise comparison preserves id order. This
// file contains utilities for dealing safely with that and its hex and text
// renderings.

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// IDBytes returns the id as an 8 byte big endian value
func IDBytes(id uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, id)
	return b
}

// ParseIDBytes accepts the serialization produced by IDBytes
func ParseIDBytes(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("%d bytes: %w", len(b), ErrIDBytesLength)
	}
	return binary.BigEndian.Uint64(b), nil
}

// IDToHex returns the 16 character hex encoding of IDBytes
func IDToHex(id uint64) string {
	return hex.EncodeToString(IDBytes(id))
}

// ParseIDHex accepts a hex encoded id, with or without a 0x or 0X prefix. It
// must encode exactly 8 bytes.
func ParseIDHex(id string) (uint64, error) {

	id = trimHexPrefix(id)

	b, err := hex.DecodeString(id)
	if err != nil {
		return 0, err
	}
	return ParseIDBytes(b)
}

// ParseID accepts the decimal form of an id, or the hex form when it carries a
// 0x or 0X prefix.
func ParseID(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if hasHexPrefix(s) {
		return ParseIDHex(s)
	}
	return strconv.ParseUint(s, 10, 64)
}

func hasHexPrefix(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

func trimHexPrefix(s string) string {
	if hasHexPrefix(s) {
		return s[2:]
	}
	return s
}
