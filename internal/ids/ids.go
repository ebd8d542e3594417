// Package ids provides the clock and identifier primitives shared by the
// registries and the ingress queue: monotonic second/millisecond
// timestamps and unique, 36-character client/room identifiers.
package ids

import (
	"time"

	"github.com/google/uuid"
)

// NowSeconds returns the current time as a Unix second count, the unit
// every timestamp field in the registries is stored in.
func NowSeconds() int64 {
	return time.Now().Unix()
}

// NowMillis returns the current time as a Unix millisecond count, used
// only for ingress enqueue timestamps.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// New generates a 36-character hyphenated hexadecimal identifier with
// the version nibble fixed at 4 and the variant nibble in {8,9,a,b}.
// Used for both client and room identifiers; uniqueness is statistical.
func New() string {
	return uuid.NewString()
}
