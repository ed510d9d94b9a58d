package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// FullHexLen is the length of an untruncated digest: 64 bits as hex.
const FullHexLen = 16

// Digest computes the xxHash64 of data as a hex string truncated to
// hexLen characters (0 or anything >= FullHexLen keeps the full digest).
// 64 bits is collision-safe for the file counts a conversion run sees.
func Digest(data []byte, hexLen int) string {
	sum := binary.BigEndian.AppendUint64(nil, xxhash.Sum64(data))
	return truncate(hex.EncodeToString(sum), hexLen)
}

// DigestReader computes the same digest from a reader, streaming, without
// buffering the whole input.
func DigestReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	sum := binary.BigEndian.AppendUint64(nil, h.Sum64())
	return truncate(hex.EncodeToString(sum), hexLen), nil
}

func truncate(digest string, hexLen int) string {
	if hexLen > 0 && hexLen < len(digest) {
		return digest[:hexLen]
	}
	return digest
}
