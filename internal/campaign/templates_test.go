package campaign

import (
	"errors"
	"testing"

	"github.com/fpang/marketing-campaign-mcp/internal/platform"
)

func TestLookupTemplateKnownTypes(t *testing.T) {
	for _, campaignType := range TemplateTypes() {
		tpl, err := LookupTemplate(campaignType)
		if err != nil {
			t.Fatalf("LookupTemplate(%q): %v", campaignType, err)
		}
		if tpl.CampaignType == "" {
			t.Errorf("%s: empty campaign type", campaignType)
		}
		if len(tpl.RecommendedPlatforms) == 0 {
			t.Errorf("%s: no recommended platforms", campaignType)
		}
		if len(tpl.OptimalTimes) == 0 {
			t.Errorf("%s: no optimal times", campaignType)
		}
		if tpl.CTAPattern == "" {
			t.Errorf("%s: empty CTA pattern", campaignType)
		}
	}
}

func TestLookupTemplateUnknown(t *testing.T) {
	_, err := LookupTemplate("guerrilla_marketing")
	if err == nil {
		t.Fatal("expected error for unknown campaign type")
	}
	var unknownErr *UnknownTemplateError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownTemplateError, got %T", err)
	}
	if len(unknownErr.Available) == 0 {
		t.Error("error should list available types")
	}
}

func TestTemplateTypesComplete(t *testing.T) {
	want := []string{
		"content_marketing",
		"event_promotion",
		"job_recruitment",
		"product_launch",
		"recruitment_agency",
		"service_marketing",
	}
	got := TemplateTypes()
	if len(got) != len(want) {
		t.Fatalf("TemplateTypes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TemplateTypes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// Recommended platforms must be valid registry IDs so a template can feed
// batch generation directly.
func TestTemplatePlatformsResolveInRegistry(t *testing.T) {
	registry := platform.NewRegistry()
	for _, campaignType := range TemplateTypes() {
		tpl, _ := LookupTemplate(campaignType)
		for _, id := range tpl.RecommendedPlatforms {
			if _, err := registry.Lookup(id); err != nil {
				t.Errorf("%s recommends unknown platform %q", campaignType, id)
			}
		}
	}
}
