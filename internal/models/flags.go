package models

import "strings"

// PositionFlag is a bit set of data-quality flags attached to a cleaned
// position record. Flags are informational: a flagged row is still kept.
type PositionFlag uint8

const (
	// FlagZeroPosition marks a report at exactly (0, 0), a common
	// placeholder emitted by misconfigured transponders.
	FlagZeroPosition PositionFlag = 1 << iota
	// FlagMissingNonCritical marks a row whose source schema carried a
	// descriptive column that is empty for this row.
	FlagMissingNonCritical
	// FlagSameTimeDuplicate marks every row that shares (MMSI, timestamp)
	// with at least one other row in the same ingestion batch.
	FlagSameTimeDuplicate
)

// Has reports whether flag is set.
func (f PositionFlag) Has(flag PositionFlag) bool {
	return f&flag != 0
}

func (f PositionFlag) String() string {
	var names []string
	if f.Has(FlagZeroPosition) {
		names = append(names, "zero_position")
	}
	if f.Has(FlagMissingNonCritical) {
		names = append(names, "missing_non_critical")
	}
	if f.Has(FlagSameTimeDuplicate) {
		names = append(names, "same_time_duplicate")
	}
	return strings.Join(names, ",")
}
