package layout

import (
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for lengths used by markup and config.

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
	UnitPX               // device pixels, resolved with a DPI
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	case UnitPX:
		return "px"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// String formats the length back into its source form.
func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// To converts this length to target unit (UnitMM or UnitPT). Pixels are
// interpreted at dpi; a non-positive dpi means 72.
func (l Length) To(target Unit, dpi float64) float64 {
	if dpi <= 0 {
		dpi = defaultResolution
	}
	var mm float64
	switch l.Unit {
	case UnitMM:
		mm = l.Value
	case UnitCM:
		mm = l.Value * 10
	case UnitIN:
		mm = l.Value * 25.4
	case UnitPT:
		if target == UnitPT {
			return l.Value
		}
		mm = l.Value * PtToMm
	case UnitPX:
		mm = l.Value / dpi * 25.4
	default:
		// unit-less values are returned as-is
		return l.Value
	}
	if target == UnitPT {
		return mm * MmToPt
	}
	return mm
}

func (l Length) ToMM() float64 { return l.To(UnitMM, 0) }
func (l Length) ToPT() float64 { return l.To(UnitPT, 0) }

// ParseLength parses a length string such as "12pt", "4.5mm" or "1in" preserving its unit.
// Invalid input yields a zero Length.
func ParseLength(value string) Length {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" {
		return Length{}
	}
	unit := UnitNone
	num := lower
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}, {"px", UnitPX}} {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}

// ParseLineHeight turns "1.5x", "1.5" or an absolute "18pt" into a line-height multiple
// relative to fontSizePt. Unparseable or non-positive values yield 1.
func ParseLineHeight(value string, fontSizePt float64) float64 {
	v := strings.TrimSpace(value)
	if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "x"), 64); err == nil {
		if f > 0 {
			return f
		}
		return 1
	}
	l := ParseLength(v)
	if l.Unit == UnitNone || l.Value <= 0 || fontSizePt <= 0 {
		return 1
	}
	return l.ToPT() / fontSizePt
}
