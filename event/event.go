// Package event defines the node-event data model spec §3 describes and
// the read-side cursor primitives spec §4.8 lists for the external XML
// reader/writer adapter: depth, node type, name, value, and positional
// attribute navigation, all as deterministic functions of the current
// event that never consume input.
//
// The dispatch-over-event-type shape and the "current position" cursor
// are grounded on sderkacs-exi-go/sax-decoder.go's EXIBodyDecoder.Next()
// loop (switch over event type, decode, then query accessors against
// decoder state) and on shapestone/shape-xml's encoder.go/render.go for
// the write-side event vocabulary naming (StartElement/EndElement/
// Comment/ProcessingInstruction/CData).
package event

import "github.com/LiquidTechnologies/fast-infoset/qname"

// NodeType enumerates the kinds of node event the parser yields and the
// encoder accepts.
type NodeType int

const (
	// None is the zero value, meaning no event is current yet.
	None NodeType = iota
	StartDocument
	EndDocument
	Element
	EndElement
	Text
	CDATA
	Comment
	ProcessingInstruction
	EntityRef
	DocTypeDecl
)

// String renders t for diagnostics.
func (t NodeType) String() string {
	switch t {
	case StartDocument:
		return "StartDocument"
	case EndDocument:
		return "EndDocument"
	case Element:
		return "Element"
	case EndElement:
		return "EndElement"
	case Text:
		return "Text"
	case CDATA:
		return "CDATA"
	case Comment:
		return "Comment"
	case ProcessingInstruction:
		return "ProcessingInstruction"
	case EntityRef:
		return "EntityRef"
	case DocTypeDecl:
		return "DocTypeDecl"
	default:
		return "None"
	}
}

// Attribute is one {qname, value} pair attached to an Element node. A
// namespace declaration is represented as an Attribute whose Name has
// prefix "xmlns" (spec §3).
type Attribute struct {
	Name  qname.QName
	Value string
}

// Node is the parser's output / the encoder's input: nodeType, depth,
// qname, value, and attributes, exactly as spec §3 defines it. Value
// holds character data for Text/CDATA/Comment/ProcessingInstruction/
// EntityRef nodes and is empty for Element/EndElement nodes (whose data
// lives in Name and Attributes instead). PublicID/SystemID are populated
// only for DocTypeDecl nodes.
type Node struct {
	Type       NodeType
	Depth      int
	Name       qname.QName
	Value      string
	Attributes []Attribute
	PublicID   string
	SystemID   string
}

// ReadState mirrors the adapter-facing readState() primitive spec §4.8
// names.
type ReadState int

const (
	ReadStateInitial ReadState = iota
	ReadStateInteractive
	ReadStateEndOfFile
	ReadStateClosed
	ReadStateError
)

// Cursor holds the parser's "current event" position, including whether
// the caller has navigated onto one of the current element's attributes,
// and answers the deterministic accessor queries spec §4.8 lists. It does
// not itself decode; parser.Parser calls Set after decoding each node.
type Cursor struct {
	node    Node
	attrIdx int // -1 when positioned on the node itself, not an attribute
	state   ReadState
}

// NewCursor creates a cursor with no current event.
func NewCursor() *Cursor {
	return &Cursor{attrIdx: -1, state: ReadStateInitial}
}

// Set installs n as the current event, resetting attribute position to
// "on the node itself" and marking the cursor interactive.
func (c *Cursor) Set(n Node) {
	c.node = n
	c.attrIdx = -1
	c.state = ReadStateInteractive
}

// SetState overrides the read state directly, for EndOfFile/Closed/Error
// transitions that don't carry a new node.
func (c *Cursor) SetState(s ReadState) { c.state = s }

// ReadState returns the cursor's current read state.
func (c *Cursor) ReadState() ReadState { return c.state }

// Node returns the current event in full.
func (c *Cursor) Node() Node { return c.node }

// Depth returns the current event's nesting depth.
func (c *Cursor) Depth() int { return c.node.Depth }

// NodeType returns the current event's type.
func (c *Cursor) NodeType() NodeType { return c.node.Type }

// LocalName returns the local name of the current position: the element's
// local name, or the current attribute's local name when positioned on one.
func (c *Cursor) LocalName() string {
	if c.attrIdx >= 0 {
		return c.node.Attributes[c.attrIdx].Name.LocalName
	}

	return c.node.Name.LocalName
}

// NamespaceURI returns the namespace URI of the current position.
func (c *Cursor) NamespaceURI() string {
	if c.attrIdx >= 0 {
		return c.node.Attributes[c.attrIdx].Name.NamespaceURI
	}

	return c.node.Name.NamespaceURI
}

// Prefix returns the prefix of the current position.
func (c *Cursor) Prefix() string {
	if c.attrIdx >= 0 {
		return c.node.Attributes[c.attrIdx].Name.Prefix
	}

	return c.node.Name.Prefix
}

// Value returns the character value of the current position: the
// attribute's value when positioned on one, otherwise the node's own
// value (meaningful for Text/CDATA/Comment/ProcessingInstruction/EntityRef).
func (c *Cursor) Value() string {
	if c.attrIdx >= 0 {
		return c.node.Attributes[c.attrIdx].Value
	}

	return c.node.Value
}

// AttributeCount returns the number of attributes on the current element
// node (zero for any other node type).
func (c *Cursor) AttributeCount() int { return len(c.node.Attributes) }

// GetAttributeByIndex returns the attribute at i without moving the
// cursor's position.
func (c *Cursor) GetAttributeByIndex(i int) (Attribute, bool) {
	if i < 0 || i >= len(c.node.Attributes) {
		return Attribute{}, false
	}

	return c.node.Attributes[i], true
}

// GetAttributeByName returns the first attribute whose local name matches,
// without moving the cursor's position.
func (c *Cursor) GetAttributeByName(localName string) (Attribute, bool) {
	for _, a := range c.node.Attributes {
		if a.Name.LocalName == localName {
			return a, true
		}
	}

	return Attribute{}, false
}

// GetAttributeByNameNS returns the first attribute whose local name and
// namespace URI both match, without moving the cursor's position.
func (c *Cursor) GetAttributeByNameNS(localName, namespaceURI string) (Attribute, bool) {
	for _, a := range c.node.Attributes {
		if a.Name.LocalName == localName && a.Name.NamespaceURI == namespaceURI {
			return a, true
		}
	}

	return Attribute{}, false
}

// MoveToAttributeByIndex positions the cursor on the attribute at i.
func (c *Cursor) MoveToAttributeByIndex(i int) bool {
	if i < 0 || i >= len(c.node.Attributes) {
		return false
	}

	c.attrIdx = i

	return true
}

// MoveToAttributeByName positions the cursor on the first attribute whose
// local name matches.
func (c *Cursor) MoveToAttributeByName(localName string) bool {
	for i, a := range c.node.Attributes {
		if a.Name.LocalName == localName {
			c.attrIdx = i
			return true
		}
	}

	return false
}

// MoveToAttributeByNameNS positions the cursor on the first attribute
// whose local name and namespace URI both match.
func (c *Cursor) MoveToAttributeByNameNS(localName, namespaceURI string) bool {
	for i, a := range c.node.Attributes {
		if a.Name.LocalName == localName && a.Name.NamespaceURI == namespaceURI {
			c.attrIdx = i
			return true
		}
	}

	return false
}

// MoveToNextAttribute advances the cursor to the next attribute in
// document order, returning false (and leaving position unchanged) once
// the last attribute is passed.
func (c *Cursor) MoveToNextAttribute() bool {
	next := c.attrIdx + 1
	if next >= len(c.node.Attributes) {
		return false
	}

	c.attrIdx = next

	return true
}

// MoveToElement returns the cursor's position to the element node itself,
// leaving any attribute position behind.
func (c *Cursor) MoveToElement() { c.attrIdx = -1 }

// ReadAttributeValue returns the value of the attribute the cursor is
// currently positioned on, failing if the cursor is positioned on the
// element rather than one of its attributes.
func (c *Cursor) ReadAttributeValue() (string, bool) {
	if c.attrIdx < 0 {
		return "", false
	}

	return c.node.Attributes[c.attrIdx].Value, true
}
