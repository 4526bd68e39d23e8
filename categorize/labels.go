package categorize

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/arco/buffer"
	"github.com/arloliu/arco/dtype"
	"github.com/arloliu/arco/errs"
)

// labelSet holds the category labels in exactly one representation, chosen
// once from the decoded element kind:
//
//   - byte string elements compare against NUL-stripped byte labels
//   - text elements compare against string labels
//   - bool elements compare logically, any nonzero byte counting as true
//   - integer elements compare at 64-bit width, so a label outside the
//     element range never matches anything
//   - float elements compare by value, so NaN labels never match
//
// Label order is significant: the code of a label is its position plus one.
// A label whose value cannot be represented at comparison width at all is
// marked dead and skipped during encoding.
type labelSet struct {
	bytes  [][]byte
	texts  []string
	sints  []int64
	uints  []uint64
	floats []float64
	dead   []bool
	n      int
}

func (ls *labelSet) markDead(i int) {
	if ls.dead == nil {
		ls.dead = make([]bool, ls.n)
	}
	ls.dead[i] = true
}

func (ls *labelSet) isDead(i int) bool {
	return ls.dead != nil && ls.dead[i]
}

func labelsFromStrings(vals []string, dt dtype.DType) (labelSet, error) {
	anyVals := make([]any, len(vals))
	for i, v := range vals {
		anyVals[i] = v
	}

	return labelsFromValues(anyVals, dt)
}

// labelsFromValues builds a label set from loosely typed values, as found in
// configuration records. Numeric labels additionally accept their decimal
// text form. A label of the wrong type for the element kind is an error;
// a label of the right type whose value falls outside the element range is
// kept but will never match.
func labelsFromValues(vals []any, dt dtype.DType) (labelSet, error) {
	ls := labelSet{n: len(vals)}

	switch dt.Kind() {
	case dtype.KindBytes:
		ls.bytes = make([][]byte, len(vals))
		for i, v := range vals {
			b, err := bytesLabel(v)
			if err != nil {
				return labelSet{}, labelErr(i, err)
			}
			ls.bytes[i] = b
		}
	case dtype.KindText:
		ls.texts = make([]string, len(vals))
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				return labelSet{}, labelErr(i, fmt.Errorf("%w: want text, got %T", errs.ErrInvalidLabel, v))
			}
			ls.texts[i] = strings.TrimRight(s, "\x00")
		}
	case dtype.KindBool:
		ls.uints = make([]uint64, len(vals))
		for i, v := range vals {
			b, err := boolLabel(v)
			if err != nil {
				return labelSet{}, labelErr(i, err)
			}
			if b {
				ls.uints[i] = 1
			}
		}
	case dtype.KindInt:
		ls.sints = make([]int64, len(vals))
		for i, v := range vals {
			n, dead, err := intLabel(v)
			if err != nil {
				return labelSet{}, labelErr(i, err)
			}
			ls.sints[i] = n
			if dead {
				ls.markDead(i)
			}
		}
	case dtype.KindUint:
		ls.uints = make([]uint64, len(vals))
		for i, v := range vals {
			n, dead, err := uintLabel(v)
			if err != nil {
				return labelSet{}, labelErr(i, err)
			}
			ls.uints[i] = n
			if dead {
				ls.markDead(i)
			}
		}
	case dtype.KindFloat:
		ls.floats = make([]float64, len(vals))
		for i, v := range vals {
			f, err := floatLabel(v)
			if err != nil {
				return labelSet{}, labelErr(i, err)
			}
			if dt.Size() == 4 {
				// Match the precision the array stores.
				f = float64(float32(f))
			}
			ls.floats[i] = f
		}
	default:
		return labelSet{}, fmt.Errorf("%w: unsupported element kind", errs.ErrInvalidTypeSpec)
	}

	return ls, nil
}

// labelsFromRaw builds a label set from fixed-width element images. Every
// image must be exactly one element of the decoded type.
func labelsFromRaw(vals [][]byte, dt dtype.DType) (labelSet, error) {
	item := dt.ItemSize()
	if item <= 0 {
		return labelSet{}, fmt.Errorf("%w: zero element type", errs.ErrInvalidTypeSpec)
	}

	ls := labelSet{n: len(vals)}

	switch dt.Kind() {
	case dtype.KindBytes:
		ls.bytes = make([][]byte, len(vals))
	case dtype.KindText:
		ls.texts = make([]string, len(vals))
	case dtype.KindBool, dtype.KindUint:
		ls.uints = make([]uint64, len(vals))
	case dtype.KindInt:
		ls.sints = make([]int64, len(vals))
	case dtype.KindFloat:
		ls.floats = make([]float64, len(vals))
	default:
		return labelSet{}, fmt.Errorf("%w: unsupported element kind", errs.ErrInvalidTypeSpec)
	}

	for i, img := range vals {
		if len(img) != item {
			return labelSet{}, labelErr(i, fmt.Errorf("%w: image is %d bytes, element type takes %d",
				errs.ErrInvalidLabel, len(img), item))
		}

		switch dt.Kind() {
		case dtype.KindBytes:
			ls.bytes[i] = bytes.TrimRight(img, "\x00")
		case dtype.KindText:
			view, err := buffer.ViewText(img, dt)
			if err != nil {
				return labelSet{}, labelErr(i, err)
			}
			ls.texts[i] = view.At(0)
		case dtype.KindBool, dtype.KindUint:
			view, err := buffer.ViewInts(img, dt)
			if err != nil {
				return labelSet{}, labelErr(i, err)
			}
			ls.uints[i] = view.Uint(0)
		case dtype.KindInt:
			view, err := buffer.ViewInts(img, dt)
			if err != nil {
				return labelSet{}, labelErr(i, err)
			}
			ls.sints[i] = view.Int(0)
		case dtype.KindFloat:
			view, err := buffer.ViewFloats(img, dt)
			if err != nil {
				return labelSet{}, labelErr(i, err)
			}
			ls.floats[i] = view.Float(0)
		}
	}

	return ls, nil
}

func labelErr(i int, err error) error {
	return fmt.Errorf("label %d: %w", i, err)
}

func bytesLabel(v any) ([]byte, error) {
	switch val := v.(type) {
	case string:
		return bytes.TrimRight([]byte(val), "\x00"), nil
	case []byte:
		return bytes.TrimRight(val, "\x00"), nil
	default:
		return nil, fmt.Errorf("%w: want byte string, got %T", errs.ErrInvalidLabel, v)
	}
}

func boolLabel(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a bool", errs.ErrInvalidLabel, val)
		}

		return b, nil
	default:
		return false, fmt.Errorf("%w: want bool, got %T", errs.ErrInvalidLabel, v)
	}
}

func intLabel(v any) (val int64, dead bool, err error) {
	switch l := v.(type) {
	case int:
		return int64(l), false, nil
	case int64:
		return l, false, nil
	case gojson.Number:
		return intFromText(l.String())
	case string:
		return intFromText(l)
	case float64:
		val, dead = intFromFloat(l)
		return val, dead, nil
	default:
		return 0, false, fmt.Errorf("%w: want integer, got %T", errs.ErrInvalidLabel, v)
	}
}

func intFromText(s string) (int64, bool, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return n, false, nil
	}

	if errors.Is(err, strconv.ErrRange) {
		// Beyond 64-bit range, so beyond every element range.
		return 0, true, nil
	}

	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return 0, false, fmt.Errorf("%w: %q is not an integer", errs.ErrInvalidLabel, s)
	}

	n, dead := intFromFloat(f)

	return n, dead, nil
}

// intFromFloat maps a float label onto the signed comparison domain.
// Non-integral and out-of-range values can never match an integer element;
// their truncation is kept so decoding still has a value to materialize.
func intFromFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, true
	}

	n := int64(f)
	if float64(n) != f {
		return n, true
	}

	return n, false
}

func uintLabel(v any) (val uint64, dead bool, err error) {
	switch l := v.(type) {
	case int:
		if l < 0 {
			return uint64(int64(l)), true, nil
		}

		return uint64(l), false, nil
	case int64:
		if l < 0 {
			return uint64(l), true, nil
		}

		return uint64(l), false, nil
	case uint64:
		return l, false, nil
	case gojson.Number:
		return uintFromText(l.String())
	case string:
		return uintFromText(l)
	case float64:
		val, dead = uintFromFloat(l)
		return val, dead, nil
	default:
		return 0, false, fmt.Errorf("%w: want unsigned integer, got %T", errs.ErrInvalidLabel, v)
	}
}

func uintFromText(s string) (uint64, bool, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err == nil {
		return n, false, nil
	}

	if errors.Is(err, strconv.ErrRange) {
		return 0, true, nil
	}

	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return 0, false, fmt.Errorf("%w: %q is not an unsigned integer", errs.ErrInvalidLabel, s)
	}

	n, dead := uintFromFloat(f)

	return n, dead, nil
}

// uintFromFloat maps a float label onto the unsigned comparison domain.
// Negative values keep their two's-complement pattern so decoding wraps the
// way a fixed-width store does.
func uintFromFloat(f float64) (uint64, bool) {
	if math.IsNaN(f) || f >= math.MaxUint64 {
		return 0, true
	}

	if f < 0 {
		if f < math.MinInt64 {
			return 0, true
		}

		return uint64(int64(f)), true
	}

	n := uint64(f)
	if float64(n) != f {
		return n, true
	}

	return n, false
}

func floatLabel(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case gojson.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a float", errs.ErrInvalidLabel, val.String())
		}

		return f, nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a float", errs.ErrInvalidLabel, val)
		}

		return f, nil
	default:
		return 0, fmt.Errorf("%w: want float, got %T", errs.ErrInvalidLabel, v)
	}
}
