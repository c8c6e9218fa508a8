// Package algorithm implements the encoding-algorithm registry from spec
// §4.4: ten built-in algorithms at table indices 1..10, plus extended
// algorithms registered by URI at indices 32..255 in insertion order.
//
// Each algorithm converts between a value's "wire form" (the bytes stored
// in an encoded-character-string event) and its "string form" (how the
// same value reads as plain XML text), mirroring the Compressor/
// Decompressor/Codec interface split in the compress package.
package algorithm

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/LiquidTechnologies/fast-infoset/endian"
	"github.com/LiquidTechnologies/fast-infoset/errs"
)

// Algorithm converts a value between its wire bytes and its XML text form.
type Algorithm interface {
	// ToWire converts the text form (as it would appear between XML tags)
	// into the algorithm's binary wire form.
	ToWire(s string) ([]byte, error)
	// ToString converts wire bytes back into text form.
	ToString(data []byte) (string, error)
}

// Built-in table indices, spec §4.4.
const (
	IndexHex     = 1
	IndexBase64  = 2
	IndexShort   = 3
	IndexInt     = 4
	IndexLong    = 5
	IndexBoolean = 6
	IndexFloat   = 7
	IndexDouble  = 8
	IndexUUID    = 9
	IndexCDATA   = 10

	// FirstExtendedIndex is the first table index available to
	// URI-registered extended algorithms.
	FirstExtendedIndex = 32
	// LastExtendedIndex is the last table index available to extended
	// algorithms.
	LastExtendedIndex = 255
)

var be = endian.GetBigEndianEngine()

var builtins = map[int]Algorithm{
	IndexHex:     hexAlgorithm{},
	IndexBase64:  base64Algorithm{},
	IndexShort:   fixedIntAlgorithm{width: 2},
	IndexInt:     fixedIntAlgorithm{width: 4},
	IndexLong:    fixedIntAlgorithm{width: 8},
	IndexBoolean: booleanAlgorithm{},
	IndexFloat:   floatAlgorithm{},
	IndexDouble:  doubleAlgorithm{},
	IndexUUID:    uuidAlgorithm{},
	IndexCDATA:   cdataAlgorithm{},
}

// Builtin returns the built-in algorithm registered at index (1..10).
func Builtin(index int) (Algorithm, error) {
	a, ok := builtins[index]
	if !ok {
		return nil, errs.ErrUnknownEncodingAlgorithm
	}

	return a, nil
}

// Registry tracks extended algorithms registered by URI, assigned table
// indices 32..255 in insertion order (spec §4.4).
type Registry struct {
	byURI   map[string]int
	byIndex map[int]string
	impls   map[string]Algorithm
	next    int
}

// NewRegistry creates an empty extended-algorithm registry.
func NewRegistry() *Registry {
	return &Registry{
		byURI:   make(map[string]int),
		byIndex: make(map[int]string),
		impls:   make(map[string]Algorithm),
		next:    FirstExtendedIndex,
	}
}

// Register assigns the next available extended index to uri, associating
// it with impl. Re-registering the same uri returns its existing index.
func (r *Registry) Register(uri string, impl Algorithm) (int, error) {
	if idx, ok := r.byURI[uri]; ok {
		return idx, nil
	}

	if r.next > LastExtendedIndex {
		return 0, errs.ErrUnknownEncodingAlgorithm
	}

	idx := r.next
	r.next++
	r.byURI[uri] = idx
	r.byIndex[idx] = uri
	r.impls[uri] = impl

	return idx, nil
}

// Lookup resolves a table index (1..255) to an Algorithm, checking
// built-ins first and then the extended registry.
func (r *Registry) Lookup(index int) (Algorithm, error) {
	if index >= 1 && index <= 10 {
		return Builtin(index)
	}

	uri, ok := r.byIndex[index]
	if !ok {
		return nil, errs.ErrUnknownEncodingAlgorithm
	}

	return r.impls[uri], nil
}

// URIForIndex returns the URI registered at an extended index.
func (r *Registry) URIForIndex(index int) (string, bool) {
	uri, ok := r.byIndex[index]
	return uri, ok
}

type hexAlgorithm struct{}

func (hexAlgorithm) ToWire(s string) ([]byte, error) { return hex.DecodeString(strings.ToLower(s)) }
func (hexAlgorithm) ToString(data []byte) (string, error) {
	return strings.ToUpper(hex.EncodeToString(data)), nil
}

type base64Algorithm struct{}

func (base64Algorithm) ToWire(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
func (base64Algorithm) ToString(data []byte) (string, error) {
	return base64.StdEncoding.EncodeToString(data), nil
}

// fixedIntAlgorithm implements the short/int/long built-ins: width bytes
// big-endian per value, space-separated signed decimals as text.
type fixedIntAlgorithm struct{ width int }

func (a fixedIntAlgorithm) ToWire(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	fields := strings.Fields(s)
	out := make([]byte, 0, len(fields)*a.width)
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, a.width*8)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidIntegerEncoding, err)
		}

		switch a.width {
		case 2:
			out = be.AppendUint16(out, uint16(v))
		case 4:
			out = be.AppendUint32(out, uint32(v))
		case 8:
			out = be.AppendUint64(out, uint64(v))
		}
	}

	return out, nil
}

func (a fixedIntAlgorithm) ToString(data []byte) (string, error) {
	if len(data)%a.width != 0 {
		return "", errs.ErrInvalidIntegerEncoding
	}

	parts := make([]string, 0, len(data)/a.width)
	for i := 0; i < len(data); i += a.width {
		chunk := data[i : i+a.width]
		switch a.width {
		case 2:
			parts = append(parts, strconv.FormatInt(int64(int16(be.Uint16(chunk))), 10))
		case 4:
			parts = append(parts, strconv.FormatInt(int64(int32(be.Uint32(chunk))), 10))
		case 8:
			parts = append(parts, strconv.FormatInt(int64(be.Uint64(chunk)), 10))
		}
	}

	return strings.Join(parts, " "), nil
}

type floatAlgorithm struct{}

func (floatAlgorithm) ToWire(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	var out []byte
	for _, f := range strings.Fields(s) {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidIntegerEncoding, err)
		}

		out = be.AppendUint32(out, math.Float32bits(float32(v)))
	}

	return out, nil
}

func (floatAlgorithm) ToString(data []byte) (string, error) {
	if len(data)%4 != 0 {
		return "", errs.ErrInvalidIntegerEncoding
	}

	parts := make([]string, 0, len(data)/4)
	for i := 0; i < len(data); i += 4 {
		bits := be.Uint32(data[i : i+4])
		parts = append(parts, strconv.FormatFloat(float64(math.Float32frombits(bits)), 'g', -1, 32))
	}

	return strings.Join(parts, " "), nil
}

type doubleAlgorithm struct{}

func (doubleAlgorithm) ToWire(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	var out []byte
	for _, f := range strings.Fields(s) {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidIntegerEncoding, err)
		}

		out = be.AppendUint64(out, math.Float64bits(v))
	}

	return out, nil
}

func (doubleAlgorithm) ToString(data []byte) (string, error) {
	if len(data)%8 != 0 {
		return "", errs.ErrInvalidIntegerEncoding
	}

	parts := make([]string, 0, len(data)/8)
	for i := 0; i < len(data); i += 8 {
		bits := be.Uint64(data[i : i+8])
		parts = append(parts, strconv.FormatFloat(math.Float64frombits(bits), 'g', -1, 64))
	}

	return strings.Join(parts, " "), nil
}

// booleanAlgorithm packs values MSB-first behind a leading 4-bit pad
// count (spec §4.4): the wire form is one byte whose low nibble records
// how many trailing bits of the last payload byte are padding (its high
// nibble is zero), followed by the packed bits themselves.
type booleanAlgorithm struct{}

func (booleanAlgorithm) ToWire(s string) ([]byte, error) {
	if s == "" {
		return []byte{0x00}, nil
	}

	fields := strings.Fields(s)
	var pending byte
	var nbits int
	payload := make([]byte, 0, (len(fields)+7)/8)

	for _, f := range fields {
		var bit byte
		switch f {
		case "true":
			bit = 1
		case "false":
			bit = 0
		default:
			return nil, errs.ErrInvalidIntegerEncoding
		}

		pending = pending<<1 | bit
		nbits++
		if nbits == 8 {
			payload = append(payload, pending)
			pending, nbits = 0, 0
		}
	}

	pad := 0
	if nbits > 0 {
		pad = 8 - nbits
		payload = append(payload, pending<<uint(pad))
	}

	out := make([]byte, 0, 1+len(payload))
	out = append(out, byte(pad))
	out = append(out, payload...)

	return out, nil
}

func (booleanAlgorithm) ToString(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errs.ErrInvalidIntegerEncoding
	}

	pad := int(data[0] & 0x0F)
	payload := data[1:]
	totalBits := len(payload)*8 - pad
	if totalBits < 0 {
		return "", errs.ErrInvalidIntegerEncoding
	}

	parts := make([]string, 0, totalBits)
	for i := 0; i < totalBits; i++ {
		byteIdx := i / 8
		bitIdx := 7 - (i % 8)
		bit := (payload[byteIdx] >> uint(bitIdx)) & 1
		if bit == 1 {
			parts = append(parts, "true")
		} else {
			parts = append(parts, "false")
		}
	}

	return strings.Join(parts, " "), nil
}

type uuidAlgorithm struct{}

func (uuidAlgorithm) ToWire(s string) ([]byte, error) {
	var out []byte
	for _, f := range strings.Fields(s) {
		u, err := uuid.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidIdentifier, err)
		}

		out = append(out, u[:]...)
	}

	return out, nil
}

func (uuidAlgorithm) ToString(data []byte) (string, error) {
	if len(data)%16 != 0 {
		return "", errs.ErrInvalidIdentifier
	}

	parts := make([]string, 0, len(data)/16)
	for i := 0; i < len(data); i += 16 {
		u, err := uuid.FromBytes(data[i : i+16])
		if err != nil {
			return "", err
		}

		parts = append(parts, u.String())
	}

	return strings.Join(parts, " "), nil
}

// cdataAlgorithm is the identity UTF-8 mapping; the encoder is responsible
// for marking the resulting text node as a CDATA section on the wire
// (spec §4.4's "marked as CDATA section" is a framing concern, not a byte
// transform).
type cdataAlgorithm struct{}

func (cdataAlgorithm) ToWire(s string) ([]byte, error)      { return []byte(s), nil }
func (cdataAlgorithm) ToString(data []byte) (string, error) { return string(data), nil }
