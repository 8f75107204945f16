package rule

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
)

const (
	// MaxWords is the word limit for free-text fields.
	MaxWords = 3

	// TemperatureMin and TemperatureMax bound the accepted temperature, inclusive.
	TemperatureMin = 0.0
	TemperatureMax = 80.0
)

var (
	reIdentifier = regexp.MustCompile(`^\d{5}$`)
	reDecimal    = regexp.MustCompile(`^\d+(\.\d+)?$`)
	reWords      = wordsPattern(MaxWords)
)

// wordsPattern matches 1..max alphabetic words joined by single whitespace.
func wordsPattern(max int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^[a-zA-Z]+(\s[a-zA-Z]+){0,%d}$`, max-1))
}

// trimControl strips leading and trailing characters at or below U+0020,
// spaces and ASCII control characters alike. U+00A0 and other Unicode
// spaces are kept.
func trimControl(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

func isBlank(s string) bool {
	return trimControl(s) == ""
}

func emptyVerdict(f entity.Field) Verdict {
	return invalid(f, KindEmptyField, f.Label()+" cannot be empty.")
}

// Validate dispatches raw to the rule of the given field.
func Validate(f entity.Field, raw string) Verdict {
	switch f {
	case entity.FieldIdentifier:
		return Identifier(raw)
	case entity.FieldName, entity.FieldLocation, entity.FieldWaterType,
		entity.FieldMaintenance, entity.FieldFeeding:
		return words(f, raw, reWords, MaxWords)
	case entity.FieldTankSize:
		return TankSize(raw)
	case entity.FieldTemperature:
		return Temperature(raw)
	default:
		return invalid(f, KindFormatMismatch, "unknown field")
	}
}

// ValidateKey is Validate keyed by the field's wire name.
func ValidateKey(key, raw string) Verdict {
	return Validate(entity.ParseField(key), raw)
}

// Identifier accepts exactly five decimal digits.
func Identifier(raw string) Verdict {
	f := entity.FieldIdentifier
	if isBlank(raw) {
		return emptyVerdict(f)
	}
	if !reIdentifier.MatchString(raw) {
		return invalid(f, KindFormatMismatch, f.Label()+" must be exactly 5 digits.")
	}
	return valid(f)
}

// Name, Location, WaterType, Maintenance and Feeding accept one to MaxWords
// alphabetic words separated by single whitespace.
func Name(raw string) Verdict        { return words(entity.FieldName, raw, reWords, MaxWords) }
func Location(raw string) Verdict    { return words(entity.FieldLocation, raw, reWords, MaxWords) }
func WaterType(raw string) Verdict   { return words(entity.FieldWaterType, raw, reWords, MaxWords) }
func Maintenance(raw string) Verdict { return words(entity.FieldMaintenance, raw, reWords, MaxWords) }
func Feeding(raw string) Verdict     { return words(entity.FieldFeeding, raw, reWords, MaxWords) }

// words is the shared "alphabetic, bounded word count" rule. The pattern must
// have been built by wordsPattern(max).
func words(f entity.Field, raw string, re *regexp.Regexp, max int) Verdict {
	if isBlank(raw) {
		return emptyVerdict(f)
	}
	if !re.MatchString(raw) {
		return invalid(f, KindFormatMismatch,
			fmt.Sprintf("%s must contain only alphabets and up to %d words.", f.Label(), max))
	}
	return valid(f)
}

// TankSize accepts a non-negative decimal with an optional fractional part.
// No upper bound is enforced.
func TankSize(raw string) Verdict {
	f := entity.FieldTankSize
	if isBlank(raw) {
		return emptyVerdict(f)
	}
	if !reDecimal.MatchString(raw) {
		return invalid(f, KindFormatMismatch, f.Label()+" must be a numeric value.")
	}
	return valid(f)
}

// Temperature parses raw and then checks it against
// [TemperatureMin, TemperatureMax].
func Temperature(raw string) Verdict {
	f := entity.FieldTemperature
	if isBlank(raw) {
		return emptyVerdict(f)
	}
	v, ok := ParseTemperature(raw)
	if !ok {
		return invalid(f, KindParseFailure, f.Label()+" must be a valid numeric value.")
	}
	return CheckTemperatureRange(v)
}

// ParseTemperature converts raw to a float after trimControl. NaN is
// rejected. Overflowing literals such as "1e400" and the spelled out
// "Infinity" yield ±Inf and are left to CheckTemperatureRange.
func ParseTemperature(raw string) (float64, bool) {
	s := trimControl(raw)
	v, err := strconv.ParseFloat(s, 64)
	switch {
	case errors.Is(err, strconv.ErrRange):
		return v, true
	case err != nil, math.IsNaN(v):
		return 0, false
	case math.IsInf(v, 0) && strings.TrimLeft(s, "+-") != "Infinity":
		// "inf" and other spellings strconv tolerates are not numbers here.
		return 0, false
	}
	return v, true
}

// CheckTemperatureRange applies the temperature bounds to a parsed value.
func CheckTemperatureRange(v float64) Verdict {
	f := entity.FieldTemperature
	if v < TemperatureMin || v > TemperatureMax {
		return invalid(f, KindRangeViolation,
			fmt.Sprintf("%s must be between %g and %g degrees.", f.Label(), TemperatureMin, TemperatureMax))
	}
	return valid(f)
}

// ParseTankSize converts a tank size that already passed TankSize.
func ParseTankSize(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}
