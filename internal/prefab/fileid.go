package prefab

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// IDSource yields candidate file ids. The Builder rejects repeats, so a
// source only needs to be unique with high probability.
type IDSource interface {
	NextID() string
}

// UUIDSource produces random v4 UUIDs in the 22-character compressed form
// the editor writes into fileId fields.
type UUIDSource struct{}

// NextID implements IDSource.
func (UUIDSource) NextID() string {
	return CompressUUID(uuid.New())
}

// IDSourceFunc adapts a function to IDSource.
type IDSourceFunc func() string

// NextID implements IDSource.
func (f IDSourceFunc) NextID() string { return f() }

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// CompressUUID keeps the first two hex digits and packs each following group
// of three hex digits into two base64 characters.
func CompressUUID(u uuid.UUID) string {
	h := hex.EncodeToString(u[:])
	var sb strings.Builder
	sb.Grow(22)
	sb.WriteString(h[:2])
	for i := 2; i < len(h); i += 3 {
		v := hexVal(h[i])<<8 | hexVal(h[i+1])<<4 | hexVal(h[i+2])
		sb.WriteByte(base64Alphabet[v>>6])
		sb.WriteByte(base64Alphabet[v&0x3f])
	}
	return sb.String()
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
