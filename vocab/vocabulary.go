package vocab

// XMLNamespaceURI is the reserved namespace bound to the "xml" prefix,
// pre-seeded at index 1 of both the prefix-names and namespace-names
// tables (spec §3).
const XMLNamespaceURI = "http://www.w3.org/XML/1998/namespace"

// XMLPrefix is the reserved prefix bound to XMLNamespaceURI.
const XMLPrefix = "xml"

// Vocabulary bundles the nine tables a Fast Infoset document's parser and
// encoder share for the lifetime of one document: prefix names, namespace
// names, local names, element names, attribute names, attribute values,
// content character chunks, other NCNames, and other strings.
//
// A Vocabulary may be seeded from a document's "initial vocabulary"
// component (spec §4.5 item 2) before parsing or encoding begins, and its
// final contents may be serialized back out as that component when an
// encoder wants to share a vocabulary across documents.
type Vocabulary struct {
	PrefixNames     *StringTable
	NamespaceNames  *StringTable
	LocalNames      *StringTable
	ElementNames    *QNameTable
	AttributeNames  *QNameTable
	AttributeValues *StringTable
	ContentChunks   *StringTable
	OtherNCNames    *StringTable
	OtherStrings    *StringTable
}

// New creates a Vocabulary with the "xml" prefix and the XML 1998
// namespace pre-seeded at index 1 of their respective tables, as spec §3
// requires.
func New() *Vocabulary {
	return &Vocabulary{
		PrefixNames:     NewStringTable(XMLPrefix),
		NamespaceNames:  NewStringTable(XMLNamespaceURI),
		LocalNames:      NewStringTable(),
		ElementNames:    NewQNameTable(),
		AttributeNames:  NewQNameTable(),
		AttributeValues: NewStringTable(),
		ContentChunks:   NewStringTable(),
		OtherNCNames:    NewStringTable(),
		OtherStrings:    NewStringTable(),
	}
}
