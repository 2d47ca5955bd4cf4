package settings

import "strings"

// Required placeholders every top-level message template must carry.
const (
	PlaceholderAddress   = "{address}"
	PlaceholderMagicLink = "{magic_link}"
)

// Bindings supply values for the recognized template placeholders.
type Bindings struct {
	SellerName string
	NoOfViews  string
	Address    string
	MagicLink  string
}

// RenderTemplate substitutes the recognized placeholders into the template.
// Each placeholder is replaced at its first occurrence only, matching the
// single-pass behavior the notification engine applies on send. Missing
// bindings render as empty strings; unrecognized tokens pass through intact.
func RenderTemplate(template string, b Bindings) string {
	rendered := template
	rendered = strings.Replace(rendered, "{seller_name}", b.SellerName, 1)
	rendered = strings.Replace(rendered, "{no_of_views}", b.NoOfViews, 1)
	rendered = strings.Replace(rendered, PlaceholderAddress, b.Address, 1)
	rendered = strings.Replace(rendered, PlaceholderMagicLink, b.MagicLink, 1)
	return rendered
}

// MissingPlaceholders returns the required placeholders absent from the
// template, in canonical order.
func MissingPlaceholders(template string) []string {
	var missing []string
	for _, placeholder := range []string{PlaceholderAddress, PlaceholderMagicLink} {
		if !strings.Contains(template, placeholder) {
			missing = append(missing, placeholder)
		}
	}
	return missing
}
