package treecodec

import (
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode/utf16"
)

// MaxIDLength is the longest id stored verbatim in the compact format.
const MaxIDLength = 8

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// ShortID returns MaxIDLength random base-36 characters. Successive calls
// are independent; nothing about the result is derived from any input.
func ShortID() string {
	var b [MaxIDLength]byte
	for i := range b {
		b[i] = base36[rand.IntN(len(base36))]
	}
	return string(b[:])
}

// DeterministicShortID derives a stable MaxIDLength token from id, so that
// re-serializing the same design keeps the same short ids. It is not the
// default shortener; install it with WithShortID.
func DeterministicShortID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	s := strconv.FormatUint(h.Sum64(), 36)
	if len(s) < MaxIDLength {
		s = strings.Repeat("0", MaxIDLength-len(s)) + s
	}
	return s[:MaxIDLength]
}

// needsShortening measures id in UTF-16 code units, the length browser
// clients compare against MaxIDLength.
func needsShortening(id string) bool {
	n := 0
	for _, r := range id {
		n += utf16.RuneLen(r)
	}
	return n > MaxIDLength
}
