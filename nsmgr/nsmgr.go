// Package nsmgr implements the encoder-only namespace manager spec §4.7
// describes: a flat, growable namespace-binding stack plus one frame per
// open element, used to resolve writeStartElement/writeStartAttribute
// namespace arguments into the prefix that actually goes on the wire.
//
// The stack shape is grounded on the pack's XML canonicalization namespace
// stack (ucarion-c14n/internal/stack.Stack): a flat slice of bindings with
// an index-into-slice snapshot per scope, rather than a map-of-maps. That
// package tracks "used" attributes for c14n's own purposes; this one instead
// needs ordered, shallowest-wins prefix lookup, so the snapshot marks where
// to truncate on scope exit rather than which entries were read.
package nsmgr

import (
	"fmt"

	"github.com/LiquidTechnologies/fast-infoset/errs"
)

// ReservedXmlnsURI is the namespace XML reserves for the xmlns prefix
// itself. Binding the "xmlns" prefix to any other URI is an error.
const ReservedXmlnsURI = "http://www.w3.org/2000/xmlns/"

type binding struct {
	prefix string
	uri    string
}

type frame struct {
	nsTop      int // length of the binding stack when this element opened
	defaultURI string
	counter    int // auto-generated attribute-prefix counter for this element
}

// Manager tracks namespace bindings across nested element scopes for a
// single encoder instance. It is not safe for concurrent use (spec §5).
type Manager struct {
	bindings []binding
	frames   []frame
}

// New creates an empty namespace manager.
func New() *Manager {
	return &Manager{}
}

// Depth returns the number of currently open elements.
func (m *Manager) Depth() int { return len(m.frames) }

// OpenElement pushes a new element frame, snapshotting the current binding
// stack depth and the default namespace currently in scope.
func (m *Manager) OpenElement() {
	defaultURI, _ := m.lookupURI("")
	m.frames = append(m.frames, frame{nsTop: len(m.bindings), defaultURI: defaultURI})
}

// CloseElement pops the innermost element frame, discarding any bindings
// declared within it.
func (m *Manager) CloseElement() {
	f := m.frames[len(m.frames)-1]
	m.frames = m.frames[:len(m.frames)-1]
	m.bindings = m.bindings[:f.nsTop]
}

func (m *Manager) push(prefix, uri string) {
	m.bindings = append(m.bindings, binding{prefix: prefix, uri: uri})
}

// lookupURI returns the URI currently bound to prefix, scanning from the
// top of the stack (most deeply nested declaration wins).
func (m *Manager) lookupURI(prefix string) (string, bool) {
	for i := len(m.bindings) - 1; i >= 0; i-- {
		if m.bindings[i].prefix == prefix {
			return m.bindings[i].uri, true
		}
	}

	return "", false
}

// LookupPrefix scans the namespace stack from top, returning the shallowest
// prefix whose entry is still the current (non-shadowed) binding for that
// prefix and whose URI equals uri. Returns ("", true) if uri matches the
// current default namespace.
func (m *Manager) LookupPrefix(uri string) (string, bool) {
	seen := make(map[string]bool)
	for i := len(m.bindings) - 1; i >= 0; i-- {
		b := m.bindings[i]
		if seen[b.prefix] {
			continue
		}
		seen[b.prefix] = true

		if b.uri == uri {
			return b.prefix, true
		}
	}

	return "", false
}

// Declare resolves the namespace binding an element-open call needs, per
// spec §4.7. prefix == nil means the caller did not specify a prefix and
// the manager may reuse or auto-generate one; a non-nil pointer to ""
// means the caller explicitly asked for the default namespace. ns == ""
// is the null-namespace case.
//
// It returns the prefix to use on the wire and whether a new binding was
// pushed onto the stack (the caller only emits a namespace-attribute for
// pushed == true).
func (m *Manager) Declare(prefix *string, ns string) (resolved string, pushed bool, err error) {
	if ns == "" {
		if prefix == nil || *prefix == "" {
			return "", false, nil
		}

		if _, ok := m.lookupURI(*prefix); !ok {
			return "", false, errs.ErrUndefinedNamespaceForPrefix
		}

		return *prefix, false, nil
	}

	if prefix == nil {
		if p, ok := m.LookupPrefix(ns); ok {
			return p, false, nil
		}

		m.push("", ns)

		return "", true, nil
	}

	if *prefix == "" {
		m.push("", ns)
		return "", true, nil
	}

	if *prefix == "xmlns" && ns != ReservedXmlnsURI {
		return "", false, errs.ErrReservedNamespace
	}

	if uri, ok := m.lookupURI(*prefix); ok && uri == ns {
		return *prefix, false, nil
	}

	m.push(*prefix, ns)

	return *prefix, true, nil
}

// ResolveAttributePrefix resolves the prefix an attribute with namespace ns
// and no caller-supplied prefix should use: an existing non-default prefix
// bound to ns if one is in scope, otherwise a freshly auto-generated
// "d{depth}p{counter}" prefix (spec §4.7), pushed as a new binding.
func (m *Manager) ResolveAttributePrefix(ns string) (prefix string, pushed bool, err error) {
	if len(m.frames) == 0 {
		return "", false, errs.ErrUndefinedNamespaceForPrefix
	}

	if p, ok := m.LookupPrefix(ns); ok && p != "" {
		return p, false, nil
	}

	f := &m.frames[len(m.frames)-1]
	f.counter++
	prefix = fmt.Sprintf("d%dp%d", len(m.frames), f.counter)
	m.push(prefix, ns)

	return prefix, true, nil
}
