// Package qname defines the qualified-name value type shared by the
// vocabulary, parser, encoder, and namespace manager packages.
package qname

// QName is a qualified name: prefix, namespace URI, and local name. All
// three components may be empty. Two QNames are equal iff all three
// components compare equal (spec §3) — note this means two entries that
// share a localName but differ in prefix or namespace are distinct.
type QName struct {
	Prefix       string
	NamespaceURI string
	LocalName    string
}

// New builds a QName from its three components.
func New(prefix, namespaceURI, localName string) QName {
	return QName{Prefix: prefix, NamespaceURI: namespaceURI, LocalName: localName}
}

// Equal reports whether q and o have identical prefix, namespace, and
// local name.
func (q QName) Equal(o QName) bool {
	return q.Prefix == o.Prefix && q.NamespaceURI == o.NamespaceURI && q.LocalName == o.LocalName
}

// IsZero reports whether q is the zero-value QName (all components empty).
func (q QName) IsZero() bool {
	return q.Prefix == "" && q.NamespaceURI == "" && q.LocalName == ""
}

// String renders the QName in "prefix:local" form for diagnostics, omitting
// the prefix and colon when empty. It is not used for wire encoding.
func (q QName) String() string {
	if q.Prefix == "" {
		return q.LocalName
	}

	return q.Prefix + ":" + q.LocalName
}
