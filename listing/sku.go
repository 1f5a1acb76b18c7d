package listing

import (
	"regexp"
	"strings"

	"github.com/sevigo/listingkit/hanconv"
)

// variantSeparator splits a variant code from its colour or style name, as in
// "CP365-01#蔷薇烟".
const variantSeparator = "#"

var weightSuffix = regexp.MustCompile(`(?i)-?[0-9]+(?:\.[0-9]+)?\s*(?:kg|g|ml|l)\s*$`)

// NormalizeSKU drops a trailing weight or volume from a variant SKU and puts
// parent in front of it. Values without a variant separator, and calls with an
// empty parent, leave value untouched.
func NormalizeSKU(parent, value string) string {
	parent = strings.TrimSpace(parent)
	val := strings.TrimSpace(value)
	if parent == "" || val == "" || !strings.Contains(val, variantSeparator) {
		return value
	}

	val = strings.TrimSpace(weightSuffix.ReplaceAllString(val, ""))
	if !strings.HasPrefix(val, parent) {
		val = parent + "-" + val
	}
	return val
}

// NormalizeSKUs applies NormalizeSKU to every value.
func NormalizeSKUs(parent string, values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = NormalizeSKU(parent, v)
	}
	return out
}

// SimplifyVariantName keeps only the part of the variant code after its first
// dash: "CP365-01#蔷薇烟" becomes "01#蔷薇烟".
func SimplifyVariantName(name string) string {
	name = strings.TrimSpace(name)
	code, label, ok := strings.Cut(name, variantSeparator)
	if !ok {
		return name
	}
	if _, rest, found := strings.Cut(code, "-"); found {
		code = rest
	}
	return code + variantSeparator + label
}

// VariantEditor rewrites variant option names for a traditional-Chinese
// storefront.
type VariantEditor struct {
	converter *hanconv.Converter
}

// NewVariantEditor creates an editor. A nil converter uses the built-in table.
func NewVariantEditor(converter *hanconv.Converter) *VariantEditor {
	if converter == nil {
		converter = hanconv.New()
	}
	return &VariantEditor{converter: converter}
}

// Edit simplifies the variant code and converts the name to traditional
// characters. The second result reports whether the name changed; names
// without a variant separator are skipped.
func (e *VariantEditor) Edit(name string) (string, bool) {
	orig := strings.TrimSpace(name)
	if !strings.Contains(orig, variantSeparator) {
		return name, false
	}

	converted := e.converter.Convert(SimplifyVariantName(orig))
	if converted == "" || converted == orig {
		return name, false
	}
	return converted, true
}
