// Package primitive implements the six variable-width integer and
// octet-length encodings from spec §4.2, plus the Int0 variant used for
// "may be absent" counts. Each encoding is identified by the bit position
// (1-indexed from the MSB) at which its field starts within the octet that
// also carries other flag bits; callers own those leading flag bits and
// pass them in as `prefix` (already shifted into position, low bits zero).
//
// The two integer families use different packing strategies, both chosen
// to reproduce the exact range boundaries spec §4.2 tabulates:
//
//   - Int1-2^20 (bit2/bit3/bit4): each size class beyond the first
//     accumulates bits — the unused low bits of octet1 left over after the
//     escape flag and class selector become the high bits of the value,
//     continued by full subsequent octets. This matches the spec's "13+1
//     bits over 2 bytes" phrasing: bits, not whole bytes, carry forward.
//   - OctetLen (bit2/bit5/bit7): each class beyond the first is a literal,
//     byte-aligned big-endian integer (1 byte, then 4 bytes) appended after
//     the selector — matching the spec's "+1 byte"/"+4 bytes" phrasing.
//
// Functions operate over a caller-supplied first octet (already read, with
// flag bits still in place) and a bitio.Reader for any continuation bytes,
// mirroring how the parser dispatches on a leading identifier byte before
// deciding which primitive to decode (spec §4.5).
package primitive

import (
	"math/bits"

	"github.com/LiquidTechnologies/fast-infoset/bitio"
	"github.com/LiquidTechnologies/fast-infoset/errs"
)

// intLayout describes one of the three Int1-2^20 bit positions.
type intLayout struct {
	p          int // identifier bit position, 1-indexed from MSB
	numClasses int // total size classes, including the 1-octet class
}

var (
	layoutIntBit2 = intLayout{p: 2, numClasses: 3}
	layoutIntBit3 = intLayout{p: 3, numClasses: 4}
	layoutIntBit4 = intLayout{p: 4, numClasses: 4}
)

func (l intLayout) w1() int { return 9 - l.p }

// selectorWidth returns the number of bits needed to pick among the
// numClasses-1 classes reachable once the escape bit is set.
func selectorWidth(numClasses int) int {
	if numClasses <= 2 {
		return 0
	}

	return bits.Len(uint(numClasses - 2))
}

// classBases returns, for each class i in 1..numClasses, bases[i]: the
// largest value classes 1..i together can represent (capped at ceiling).
// A class-i raw value is decoded as bases[i-1] + 1 + raw; bases[0] is 0.
func (l intLayout) classBases(ceiling int64) []int64 {
	w1 := l.w1()
	sel := selectorWidth(l.numClasses)
	leftover := w1 - 1 - sel

	bases := make([]int64, l.numClasses+1)
	bases[1] = int64(1) << uint(w1-1)
	for i := 2; i <= l.numClasses; i++ {
		regBits := leftover + (i-1)*8
		size := int64(1) << uint(regBits)
		top := bases[i-1] + size
		if i == l.numClasses || top > ceiling {
			top = ceiling
		}
		bases[i] = top
	}

	return bases
}

// EncodeInt encodes value (1..2^20) using the accumulating layout at bit
// position p (2, 3, or 4). prefix carries the already-positioned flag bits
// preceding this field, with all other bits zero.
func EncodeInt(prefix byte, p int, value int64) ([]byte, error) {
	l, err := intLayoutFor(p)
	if err != nil {
		return nil, err
	}

	const ceiling = 1 << 20
	if value < 1 || value > ceiling {
		return nil, errs.ErrInvalidIntegerEncoding
	}

	w1 := l.w1()
	class1Size := int64(1) << uint(w1-1)
	if value <= class1Size {
		return []byte{prefix | byte(value-1)}, nil
	}

	sel := selectorWidth(l.numClasses)
	leftover := w1 - 1 - sel
	bases := l.classBases(ceiling)

	for classIdx := 2; classIdx <= l.numClasses; classIdx++ {
		if value > bases[classIdx] {
			continue
		}

		raw := value - bases[classIdx-1] - 1
		extraBytes := classIdx - 1
		selector := int64(classIdx - 2)

		leftoverPart := raw >> uint(extraBytes*8)
		bytesPart := raw & ((int64(1) << uint(extraBytes*8)) - 1)

		octet1 := prefix | (1 << uint(w1-1)) | byte(selector<<uint(leftover)) | byte(leftoverPart)

		out := make([]byte, 1+extraBytes)
		out[0] = octet1
		for i := 0; i < extraBytes; i++ {
			shift := uint(8 * (extraBytes - 1 - i))
			out[1+i] = byte(bytesPart >> shift)
		}

		return out, nil
	}

	return nil, errs.ErrInvalidIntegerEncoding
}

// DecodeInt decodes a value encoded by EncodeInt. first is the already-read
// leading octet (flag bits included); r supplies any continuation octets.
func DecodeInt(first byte, p int, r *bitio.Reader) (int64, error) {
	l, err := intLayoutFor(p)
	if err != nil {
		return 0, err
	}

	w1 := l.w1()
	field := int64(first) & ((int64(1) << uint(w1)) - 1)

	class1Size := int64(1) << uint(w1-1)
	if field>>uint(w1-1) == 0 {
		return field + 1, nil
	}

	remaining := field & (class1Size - 1)
	sel := selectorWidth(l.numClasses)
	leftover := w1 - 1 - sel

	selector := remaining >> uint(leftover)
	classIdx := int(selector) + 2
	if classIdx > l.numClasses {
		return 0, errs.ErrInvalidIntegerEncoding
	}

	leftoverVal := remaining & ((int64(1) << uint(leftover)) - 1)

	extraBytes := classIdx - 1
	tail, err := r.ReadBytes(extraBytes)
	if err != nil {
		return 0, err
	}

	raw := leftoverVal
	for _, b := range tail {
		raw = (raw << 8) | int64(b)
	}

	const ceiling = 1 << 20
	bases := l.classBases(ceiling)

	return bases[classIdx-1] + 1 + raw, nil
}

func intLayoutFor(p int) (intLayout, error) {
	switch p {
	case 2:
		return layoutIntBit2, nil
	case 3:
		return layoutIntBit3, nil
	case 4:
		return layoutIntBit4, nil
	default:
		return intLayout{}, errs.ErrInvalidIntegerEncoding
	}
}

// EncodeInt0 encodes value (0..2^20) for the "may be zero" variant at bit2.
// Zero is encoded as the single reserved octet 0x7F layered over prefix;
// any other value delegates to EncodeInt.
func EncodeInt0(prefix byte, value int64) ([]byte, error) {
	if value == 0 {
		return []byte{prefix | 0x7F}, nil
	}

	return EncodeInt(prefix, 2, value)
}

// DecodeInt0 decodes a value encoded by EncodeInt0.
func DecodeInt0(first byte, r *bitio.Reader) (int64, error) {
	if first&0x7F == 0x7F {
		return 0, nil
	}

	return DecodeInt(first, 2, r)
}

// lenLayout describes one of the three OctetLen bit positions. All three
// have exactly three classes: 1-octet direct, +1 literal byte, +4 literal
// bytes.
type lenLayout struct {
	p int
}

func (l lenLayout) w1() int { return 9 - l.p }

// EncodeLen encodes value (1..2^32) using the literal-byte layout at bit
// position p (2, 5, or 7).
func EncodeLen(prefix byte, p int, value int64) ([]byte, error) {
	if p != 2 && p != 5 && p != 7 {
		return nil, errs.ErrInvalidLengthEncoding
	}

	const ceiling = int64(1) << 32
	if value < 1 || value > ceiling {
		return nil, errs.ErrInvalidLengthEncoding
	}

	l := lenLayout{p: p}
	w1 := l.w1()
	class1Size := int64(1) << uint(w1-1)
	if value <= class1Size {
		return []byte{prefix | byte(value-1)}, nil
	}

	sel := selectorWidth(3) // always 1 bit: choose between the two escaped classes
	leftover := w1 - 1 - sel

	class2Size := int64(1) << 8
	base2 := class1Size
	base3 := base2 + class2Size

	if value <= base3 {
		raw := value - base2 - 1
		octet1 := prefix | (1 << uint(w1-1)) | byte(0<<uint(leftover))
		return []byte{octet1, byte(raw)}, nil
	}

	raw := uint32(value - base3 - 1)
	octet1 := prefix | (1 << uint(w1-1)) | byte(1<<uint(leftover))

	return []byte{
		octet1,
		byte(raw >> 24), byte(raw >> 16), byte(raw >> 8), byte(raw),
	}, nil
}

// DecodeLen decodes a value encoded by EncodeLen.
func DecodeLen(first byte, p int, r *bitio.Reader) (int64, error) {
	if p != 2 && p != 5 && p != 7 {
		return 0, errs.ErrInvalidLengthEncoding
	}

	l := lenLayout{p: p}
	w1 := l.w1()
	field := int64(first) & ((int64(1) << uint(w1)) - 1)

	class1Size := int64(1) << uint(w1-1)
	if field>>uint(w1-1) == 0 {
		return field + 1, nil
	}

	remaining := field & (class1Size - 1)
	sel := selectorWidth(3)
	leftover := w1 - 1 - sel
	selector := remaining >> uint(leftover)

	base2 := class1Size
	base3 := base2 + (int64(1) << 8)

	if selector == 0 {
		tail, err := r.ReadBytes(1)
		if err != nil {
			return 0, err
		}

		return base2 + 1 + int64(tail[0]), nil
	}

	tail, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	raw := int64(tail[0])<<24 | int64(tail[1])<<16 | int64(tail[2])<<8 | int64(tail[3])

	return base3 + 1 + raw, nil
}
