package styles

import (
	"strings"
	"testing"
)

func mustRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	return r
}

func TestImagePromptComposition(t *testing.T) {
	r := mustRegistry(t)

	got := r.ImagePrompt("Vintage")
	if !strings.HasPrefix(got, "Create a high-end commercial advertisement photography") {
		t.Errorf("prompt missing base prefix: %q", got)
	}
	if !strings.Contains(got, "Vintage") {
		t.Errorf("prompt missing the selected style: %q", got)
	}
}

func TestImagePromptUnknownIDFallsBackToDefault(t *testing.T) {
	r := mustRegistry(t)

	if got, want := r.ImagePrompt("does-not-exist"), r.ImagePrompt("Modern"); got != want {
		t.Errorf("unknown style prompt = %q, want the Modern default %q", got, want)
	}
}

func TestCaptionPromptComposition(t *testing.T) {
	r := mustRegistry(t)

	got := r.CaptionPrompt("Urgent")
	if !strings.Contains(got, "FOMO") {
		t.Errorf("prompt missing the selected style: %q", got)
	}
	if !strings.HasSuffix(got, "Buat caption dalam Bahasa Indonesia yang natural dan menarik.") {
		t.Errorf("prompt missing caption suffix: %q", got)
	}

	if got, want := r.CaptionPrompt(""), r.CaptionPrompt("Friendly"); got != want {
		t.Errorf("empty style prompt = %q, want the Friendly default %q", got, want)
	}
}

func TestStyleIDsSorted(t *testing.T) {
	r := mustRegistry(t)

	images := r.ImageStyleIDs()
	if len(images) != 6 {
		t.Errorf("got %d image styles, want 6", len(images))
	}
	for i := 1; i < len(images); i++ {
		if images[i-1] >= images[i] {
			t.Errorf("image style ids not sorted: %v", images)
			break
		}
	}

	captions := r.CaptionStyleIDs()
	if len(captions) != 6 {
		t.Errorf("got %d caption styles, want 6", len(captions))
	}
}
