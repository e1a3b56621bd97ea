package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/candorlabs/qanswer/core"
)

// Key prefixes for different data types
const (
	entryPrefix            = "knwent"
	entryFingerprintPrefix = "knwfpr"
	entryIDSeq             = "knwentseq"
)

// makeEntryKey generates a key for a knowledge entry by ID.
// The ID is BigEndian so lexicographic iteration yields ID order.
func makeEntryKey(id core.ID) []byte {
	prefix := entryPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeFingerprintKey generates a key for the content fingerprint index.
func makeFingerprintKey(fp core.Fingerprint) []byte {
	return []byte(fmt.Sprintf("%s:%d", entryFingerprintPrefix, fp))
}
