package email

import (
	"strings"
	"testing"
)

func TestProspectConfirmationTemplateRenders(t *testing.T) {
	html, err := renderEmailTemplate("prospect_confirmation.html", prospectConfirmationEmailData{
		baseEmailData: baseEmailData{Title: "Submission received", Heading: "Thanks for reaching out"},
		FirstName:     "Jane",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "Jane") {
		t.Fatal("expected rendered email to greet the prospect by name")
	}
}

func TestReviewerAlertTemplateRenders(t *testing.T) {
	html, err := renderEmailTemplate("reviewer_alert.html", reviewerAlertEmailData{
		baseEmailData: baseEmailData{Title: "New lead", Heading: "A new lead is waiting"},
		LeadID:        "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		FirstName:     "Jane",
		LastName:      "Doe",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, fragment := range []string{"Jane", "Doe", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected rendered email to contain %q", fragment)
		}
	}
}

func TestTemplatesEscapeUserContent(t *testing.T) {
	html, err := renderEmailTemplate("prospect_confirmation.html", prospectConfirmationEmailData{
		baseEmailData: baseEmailData{Title: "Submission received", Heading: "Thanks"},
		FirstName:     "<script>alert(1)</script>",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatal("expected user-supplied content to be escaped")
	}
}
