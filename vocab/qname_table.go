package vocab

import (
	"github.com/LiquidTechnologies/fast-infoset/errs"
	"github.com/LiquidTechnologies/fast-infoset/internal/hash"
	"github.com/LiquidTechnologies/fast-infoset/qname"
)

// QNameTable is an insertion-ordered, 1-based dictionary of qualified
// names, used for the element-name and attribute-name vocabulary tables.
// Entries are deduplicated on all three QName components (spec §3: "Two
// QNames are equal iff all three components compare equal"): two names
// differing only in prefix are distinct entries, each tracked under its
// own index.
type QNameTable struct {
	values  []qname.QName
	buckets map[uint64][]int32
}

// NewQNameTable creates an empty qualified-name table.
func NewQNameTable() *QNameTable {
	return &QNameTable{buckets: make(map[uint64][]int32)}
}

func dedupHash(q qname.QName) uint64 {
	return hash.ID(q.Prefix + "\x00" + q.NamespaceURI + "\x00" + q.LocalName)
}

// Lookup returns the 1-based index of an entry equal to q.
func (t *QNameTable) Lookup(q qname.QName) (int32, bool) {
	h := dedupHash(q)
	for _, idx := range t.buckets[h] {
		if t.values[idx-1].Equal(q) {
			return idx, true
		}
	}

	return 0, false
}

// Intern returns the existing index for a name equal to q, or inserts q
// and returns the new index. Once the table is at MaxEntries capacity,
// further inserts are silently dropped (added=false, idx=0), matching
// StringTable.Intern and spec §3.
func (t *QNameTable) Intern(q qname.QName) (idx int32, added bool) {
	if existing, ok := t.Lookup(q); ok {
		return existing, false
	}

	if len(t.values) >= MaxEntries {
		return 0, false
	}

	t.values = append(t.values, q)
	idx = int32(len(t.values))
	h := dedupHash(q)
	t.buckets[h] = append(t.buckets[h], idx)

	return idx, true
}

// Get returns the qualified name at the given 1-based index.
func (t *QNameTable) Get(idx int32) (qname.QName, error) {
	if idx < 1 || int(idx) > len(t.values) {
		return qname.QName{}, errs.ErrVocabularyIndexOutOfBounds
	}

	return t.values[idx-1], nil
}

// Len returns the number of entries currently in the table.
func (t *QNameTable) Len() int { return len(t.values) }

// Entries returns the table contents in insertion order.
func (t *QNameTable) Entries() []qname.QName {
	out := make([]qname.QName, len(t.values))
	copy(out, t.values)

	return out
}
