package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/runeutil"
	"github.com/spf13/cast"
)

// MaxDescriptionLines is the most lines a description can hold; the form's
// textarea drops anything past it.
const MaxDescriptionLines = 10000

var (
	lineSanitizer = runeutil.NewSanitizer(runeutil.ReplaceTabs(" "), runeutil.ReplaceNewlines(" "))
	textSanitizer = runeutil.NewSanitizer()
)

// CleanLine normalizes a single-line field the way a text input stores it:
// tabs and line breaks become spaces, other control runes are dropped and the
// result is trimmed.
func CleanLine(s string) string {
	return strings.TrimSpace(string(lineSanitizer.Sanitize([]rune(s))))
}

// CleanText normalizes a description the way the description textarea stores
// it: CRLF becomes LF, tabs become four spaces and control runes are dropped.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return string(textSanitizer.Sanitize([]rune(s)))
}

// Form field names, used as FieldErrors keys and for form focus.
const (
	FieldTitle       = "title"
	FieldPrice       = "price"
	FieldQuantity    = "quantity"
	FieldCategory    = "category"
	FieldDescription = "description"
)

// FieldOrder lists form fields in display order.
var FieldOrder = []string{FieldTitle, FieldPrice, FieldQuantity, FieldCategory, FieldDescription}

// FormBuffer is the scratch copy of a product's editable fields while an add
// or edit is being composed. Numbers stay raw strings until ParseForm.
type FormBuffer struct {
	Title       string
	Price       string
	Quantity    string
	Category    string
	Description string
}

// Get returns the raw value of the named field.
func (b FormBuffer) Get(field string) string {
	switch field {
	case FieldTitle:
		return b.Title
	case FieldPrice:
		return b.Price
	case FieldQuantity:
		return b.Quantity
	case FieldCategory:
		return b.Category
	case FieldDescription:
		return b.Description
	}
	return ""
}

// Set returns a copy of the buffer with the named field replaced.
func (b FormBuffer) Set(field, value string) FormBuffer {
	switch field {
	case FieldTitle:
		b.Title = value
	case FieldPrice:
		b.Price = value
	case FieldQuantity:
		b.Quantity = value
	case FieldCategory:
		b.Category = value
	case FieldDescription:
		b.Description = value
	}
	return b
}

// IsZero reports whether every field is empty.
func (b FormBuffer) IsZero() bool {
	return b == FormBuffer{}
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "invalid product"
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return fieldRank(keys[i]) < fieldRank(keys[j]) })
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e[k]))
	}
	return "invalid product: " + strings.Join(parts, "; ")
}

func fieldRank(field string) int {
	for i, f := range FieldOrder {
		if f == field {
			return i
		}
	}
	return len(FieldOrder)
}

// ParseForm coerces the buffer into typed fields. All field problems are
// reported together as FieldErrors; no partially valid Fields are returned.
func ParseForm(buf FormBuffer) (Fields, error) {
	errs := FieldErrors{}
	fields := Fields{
		Title:       CleanLine(buf.Title),
		Category:    CleanLine(buf.Category),
		Description: CleanText(buf.Description),
	}
	if fields.Title == "" {
		errs[FieldTitle] = "title is required"
	}
	if msg := checkDescription(fields.Description); msg != "" {
		errs[FieldDescription] = msg
	}
	price, msg := parsePrice(buf.Price)
	if msg != "" {
		errs[FieldPrice] = msg
	}
	fields.Price = price
	qty, msg := parseQuantity(buf.Quantity)
	if msg != "" {
		errs[FieldQuantity] = msg
	}
	fields.Quantity = qty
	if len(errs) > 0 {
		return Fields{}, errs
	}
	return fields, nil
}

// ValidateFields applies the same constraints as ParseForm to typed values,
// for records that did not arrive through a form (seed files). Text fields are
// expected to be cleaned already.
func ValidateFields(f Fields) error {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Title) == "" {
		errs[FieldTitle] = "title is required"
	}
	if msg := checkDescription(f.Description); msg != "" {
		errs[FieldDescription] = msg
	}
	if math.IsNaN(f.Price) || math.IsInf(f.Price, 0) {
		errs[FieldPrice] = "price must be a number"
	} else if f.Price < 0 {
		errs[FieldPrice] = "price must be >= 0"
	}
	if f.Quantity < 0 {
		errs[FieldQuantity] = "quantity must be >= 0"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkDescription(desc string) string {
	if strings.Count(desc, "\n") >= MaxDescriptionLines {
		return fmt.Sprintf("description is limited to %d lines", MaxDescriptionLines)
	}
	return ""
}

func parsePrice(raw string) (float64, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, "price is required"
	}
	v, err := cast.ToFloat64E(trimmed)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, "price must be a number"
	}
	if v < 0 {
		return 0, "price must be >= 0"
	}
	return v, ""
}

func parseQuantity(raw string) (int, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, "quantity is required"
	}
	digits := strings.TrimPrefix(trimmed, "-")
	if digits == "" || strings.TrimFunc(digits, isDigit) != "" {
		return 0, "quantity must be a whole number"
	}
	if strings.HasPrefix(trimmed, "-") {
		return 0, "quantity must be >= 0"
	}
	// cast parses with base prefixes, so "010" would read as octal.
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	v, err := cast.ToIntE(digits)
	if err != nil {
		return 0, "quantity is too large"
	}
	return v, ""
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
