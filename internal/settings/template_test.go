package settings

import (
	"strings"
	"testing"
)

func TestRenderTemplateReplacesAllBindings(t *testing.T) {
	rendered := RenderTemplate(defaultMessageTemplate, Bindings{
		SellerName: "Jordan",
		NoOfViews:  "3",
		Address:    "44 Pine Ave",
		MagicLink:  "https://deelmap.com/s/abc",
	})

	if strings.Contains(rendered, "{") {
		t.Fatalf("expected no placeholders left, got %q", rendered)
	}
	if !strings.Contains(rendered, "Jordan") || !strings.Contains(rendered, "44 Pine Ave") {
		t.Fatalf("unexpected render: %q", rendered)
	}
}

func TestRenderTemplateReplacesFirstOccurrenceOnly(t *testing.T) {
	rendered := RenderTemplate("{address} and again {address}", Bindings{Address: "1 Elm"})
	if rendered != "1 Elm and again {address}" {
		t.Fatalf("expected single replacement, got %q", rendered)
	}
}

func TestRenderTemplateMissingBindingsRenderEmpty(t *testing.T) {
	rendered := RenderTemplate("Hi {seller_name}, see {magic_link}", Bindings{})
	if rendered != "Hi , see " {
		t.Fatalf("expected empty substitutions, got %q", rendered)
	}
}

func TestRenderTemplatePassesUnknownTokensThrough(t *testing.T) {
	rendered := RenderTemplate("{unknown} at {address}", Bindings{Address: "9 Birch"})
	if rendered != "{unknown} at 9 Birch" {
		t.Fatalf("expected unknown token intact, got %q", rendered)
	}
}

func TestMissingPlaceholdersCanonicalOrder(t *testing.T) {
	missing := MissingPlaceholders("hello")
	if len(missing) != 2 || missing[0] != PlaceholderAddress || missing[1] != PlaceholderMagicLink {
		t.Fatalf("expected both placeholders in order, got %v", missing)
	}

	missing = MissingPlaceholders("go to {address}")
	if len(missing) != 1 || missing[0] != PlaceholderMagicLink {
		t.Fatalf("expected only magic link missing, got %v", missing)
	}

	if missing = MissingPlaceholders(defaultMessageTemplate); missing != nil {
		t.Fatalf("expected default template complete, got %v", missing)
	}
}
