package app

import (
	"strings"
	"testing"
)

func TestDatasetGroundedPrompt(t *testing.T) {
	prompt := datasetGroundedPrompt("Row 1: city: Jakarta", "Which city?")

	if !strings.Contains(prompt, "Row 1: city: Jakarta") {
		t.Errorf("prompt missing search summary: %q", prompt)
	}
	if !strings.Contains(prompt, `"Which city?"`) {
		t.Errorf("prompt missing quoted question: %q", prompt)
	}
	if !strings.Contains(prompt, "search the internet on the next turn") {
		t.Errorf("prompt missing escalation hint: %q", prompt)
	}
}

func TestInternetFallbackPrompt(t *testing.T) {
	prompt := internetFallbackPrompt("placeholder result", "weather today")

	if !strings.Contains(prompt, "placeholder result") {
		t.Errorf("prompt missing search summary: %q", prompt)
	}
	if !strings.Contains(prompt, `"weather today"`) {
		t.Errorf("prompt missing quoted question: %q", prompt)
	}
}

func TestGeneralPrompt(t *testing.T) {
	prompt := generalPrompt("what is Go?")

	if !strings.Contains(prompt, `"what is Go?"`) {
		t.Errorf("prompt missing quoted question: %q", prompt)
	}
	if strings.Contains(prompt, "%!") {
		t.Errorf("prompt has a formatting artifact: %q", prompt)
	}
}
