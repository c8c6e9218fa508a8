// Package vocab implements the nine indexed vocabulary tables spec §3 and
// §4.7 describe: prefix names, namespace names, local names, element names,
// attribute names, attribute values, content character chunks, other
// NCNames, and other strings. Every table is 1-based, insertion-ordered,
// and capped at 2^20 entries (spec §3's "Invariants").
//
// Lookup is hash-assisted rather than a plain map[string]int32: candidates
// are bucketed by xxHash64, with an equality check on lookup to resolve the
// (rare) bucket collision rather than trusting the hash alone.
package vocab

import (
	"github.com/LiquidTechnologies/fast-infoset/errs"
	"github.com/LiquidTechnologies/fast-infoset/internal/hash"
)

// MaxEntries is the per-table capacity spec §3 imposes (2^20 entries).
const MaxEntries = 1 << 20

// StringTable is an insertion-ordered, 1-based dictionary of strings, used
// for the seven string-keyed vocabulary tables (prefix names, namespace
// names, local names, attribute values, content character chunks, other
// NCNames, other strings).
type StringTable struct {
	values  []string
	buckets map[uint64][]int32 // hash -> candidate 1-based indices
}

// NewStringTable creates an empty table, optionally pre-seeded with
// entries already assigned index 1, 2, ... in order (used to pre-load the
// "xml" prefix and the XML 1998 namespace at index 1, spec §3).
func NewStringTable(seed ...string) *StringTable {
	t := &StringTable{
		values:  make([]string, 0, len(seed)),
		buckets: make(map[uint64][]int32),
	}

	for _, s := range seed {
		t.add(s)
	}

	return t
}

// Lookup returns the 1-based index of s if already present.
func (t *StringTable) Lookup(s string) (int32, bool) {
	h := hash.ID(s)
	for _, idx := range t.buckets[h] {
		if t.values[idx-1] == s {
			return idx, true
		}
	}

	return 0, false
}

// Intern returns the existing index for s, or inserts it and returns the
// new index. The added return reports whether an insertion happened, which
// callers use to decide whether to emit a literal or an index reference on
// the wire (spec §3: "new tokens are added to the end"). Once the table is
// at MaxEntries capacity, further inserts are silently dropped (added=false,
// idx=0): the caller still has the string and emits it literally, it is
// just never added to the dictionary (spec §3).
func (t *StringTable) Intern(s string) (idx int32, added bool) {
	if existing, ok := t.Lookup(s); ok {
		return existing, false
	}

	if len(t.values) >= MaxEntries {
		return 0, false
	}

	return t.add(s), true
}

func (t *StringTable) add(s string) int32 {
	t.values = append(t.values, s)
	idx := int32(len(t.values))

	h := hash.ID(s)
	t.buckets[h] = append(t.buckets[h], idx)

	return idx
}

// Get returns the string at the given 1-based index.
func (t *StringTable) Get(idx int32) (string, error) {
	if idx < 1 || int(idx) > len(t.values) {
		return "", errs.ErrVocabularyIndexOutOfBounds
	}

	return t.values[idx-1], nil
}

// Len returns the number of entries currently in the table.
func (t *StringTable) Len() int { return len(t.values) }

// Entries returns the table contents in insertion order, for serializing an
// initial vocabulary (spec §4.5 item 2).
func (t *StringTable) Entries() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)

	return out
}
