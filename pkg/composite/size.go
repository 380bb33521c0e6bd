package composite

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/screengod/pkg/errors"
)

// Unit specifies how a Size value is interpreted against the container.
type Unit uint8

const (
	// UnitWeight is a share count relative to the siblings' total weight.
	UnitWeight Unit = iota
	// UnitPercent is a percentage of the container's main-axis extent.
	// Sums above 100 are allowed and overflow the container.
	UnitPercent
	// UnitPixel is an absolute extent independent of the container.
	UnitPixel
)

var unitNames = [...]string{
	UnitWeight:  "weight",
	UnitPercent: "percent",
	UnitPixel:   "pixel",
}

// String returns the lowercase unit name.
func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("unit(%d)", u)
}

// Size is a non-negative extent along a container's main axis.
type Size struct {
	Value int
	Unit  Unit
}

// DefaultSize is the size of a node created without an explicit size.
var DefaultSize = Weight(1)

// Weight returns a proportional share size.
func Weight(n int) Size { return Size{Value: n, Unit: UnitWeight} }

// Percent returns a percentage-of-container size.
func Percent(n int) Size { return Size{Value: n, Unit: UnitPercent} }

// Pixel returns a fixed size.
func Pixel(n int) Size { return Size{Value: n, Unit: UnitPixel} }

// String formats s the way ParseSize accepts it: "3", "50%" or "150px".
func (s Size) String() string {
	switch s.Unit {
	case UnitPercent:
		return strconv.Itoa(s.Value) + "%"
	case UnitPixel:
		return strconv.Itoa(s.Value) + "px"
	default:
		return strconv.Itoa(s.Value)
	}
}

// ParseSize converts a raw size into a Size.
//
// Integers become weights. Strings must end in "%" or "px" with a
// non-negative integer prefix. Anything else fails with INVALID_UNIT.
func ParseSize(raw any) (Size, error) {
	switch v := raw.(type) {
	case Size:
		return v, v.validate()
	case int:
		return intSize(int64(v))
	case int8:
		return intSize(int64(v))
	case int16:
		return intSize(int64(v))
	case int32:
		return intSize(int64(v))
	case int64:
		return intSize(v)
	case uint:
		return uintSize(uint64(v))
	case uint8:
		return uintSize(uint64(v))
	case uint16:
		return uintSize(uint64(v))
	case uint32:
		return uintSize(uint64(v))
	case uint64:
		return uintSize(v)
	case string:
		return parseSizeString(v)
	}
	return Size{}, errors.New(errors.ErrCodeInvalidUnit, "unknown unit %v (%T)", raw, raw)
}

// MustParseSize is like ParseSize but panics on error.
// It is intended for tests and package-level defaults.
func MustParseSize(raw any) Size {
	s, err := ParseSize(raw)
	if err != nil {
		panic(err)
	}
	return s
}

func intSize(v int64) (Size, error) {
	if v < 0 || v > int64(maxValue) {
		return Size{}, errors.New(errors.ErrCodeInvalidUnit, "size must be a non-negative integer, got %d", v)
	}
	return Weight(int(v)), nil
}

func uintSize(v uint64) (Size, error) {
	if v > uint64(maxValue) {
		return Size{}, errors.New(errors.ErrCodeInvalidUnit, "size %d out of range", v)
	}
	return Weight(int(v)), nil
}

// maxValue bounds size values. Explicit extents share the bound
// (errors.MaxGeometry), so value*extent stays below 2^60.
const maxValue = errors.MaxGeometry

func parseSizeString(raw string) (Size, error) {
	var (
		digits string
		unit   Unit
	)
	switch {
	case strings.HasSuffix(raw, "%"):
		digits, unit = strings.TrimSuffix(raw, "%"), UnitPercent
	case strings.HasSuffix(raw, "px"):
		digits, unit = strings.TrimSuffix(raw, "px"), UnitPixel
	default:
		return Size{}, errors.New(errors.ErrCodeInvalidUnit, "unknown unit %q", raw)
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n > maxValue || digits[0] == '+' || digits[0] == '-' {
		return Size{}, errors.New(errors.ErrCodeInvalidUnit, "invalid size value %q", raw)
	}
	return Size{Value: n, Unit: unit}, nil
}

func (s Size) validate() error {
	if s.Unit > UnitPixel {
		return errors.New(errors.ErrCodeInvalidUnit, "unknown unit %s", s.Unit)
	}
	if s.Value < 0 || s.Value > maxValue {
		return errors.New(errors.ErrCodeInvalidUnit, "size must be a non-negative integer, got %d", s.Value)
	}
	return nil
}

// extent resolves s against the container's main-axis extent.
// total is the container's total weight and is only read for UnitWeight.
func (s Size) extent(base, total int) int {
	switch s.Unit {
	case UnitPercent:
		return s.Value * base / 100
	case UnitPixel:
		return s.Value
	default:
		if total == 0 {
			return 0
		}
		return s.Value * base / total
	}
}

// MarshalText encodes s in its string form.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes "3", "50%" or "150px".
// A bare number is a weight, as it would be in an expression.
func (s *Size) UnmarshalText(text []byte) error {
	raw := string(text)
	if n, err := strconv.Atoi(raw); err == nil {
		v, err := intSize(int64(n))
		if err != nil {
			return err
		}
		*s = v
		return nil
	}
	v, err := parseSizeString(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON encodes weights as JSON numbers and other units as strings.
func (s Size) MarshalJSON() ([]byte, error) {
	if s.Unit == UnitWeight {
		return []byte(strconv.Itoa(s.Value)), nil
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a JSON number (weight) or a "<n>%" / "<n>px" string.
func (s *Size) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidUnit, err, "decode size")
	}

	var (
		v   Size
		err error
	)
	switch r := raw.(type) {
	case json.Number:
		n, convErr := r.Int64()
		if convErr != nil {
			return errors.New(errors.ErrCodeInvalidUnit, "size must be an integer, got %s", r)
		}
		v, err = intSize(n)
	default:
		v, err = ParseSize(raw)
	}
	if err != nil {
		return err
	}
	*s = v
	return nil
}
