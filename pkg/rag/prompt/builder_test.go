package prompt

import (
	"strings"
	"testing"
)

func TestBuildSystemEmbedsContext(t *testing.T) {
	b := NewBuilder("The warranty lasts two years.", "How long is the warranty?", true)
	system := b.BuildSystem()

	if !strings.Contains(system, "Context: The warranty lasts two years.") {
		t.Error("system prompt must embed the retrieved context")
	}
	if !strings.Contains(system, "your uploaded document") {
		t.Error("uploaded mode should mention the uploaded document")
	}
	if !strings.Contains(system, NotFoundPhrase) {
		t.Error("system prompt must carry the not-found fallback phrase")
	}
}

func TestBuildSystemDefaultCorpusWording(t *testing.T) {
	b := NewBuilder("ctx", "q", false)
	if !strings.Contains(b.BuildSystem(), "the available documents") {
		t.Error("default mode should mention the available documents")
	}
}

func TestBuildUserRestatesQuestion(t *testing.T) {
	b := NewBuilder("", "What is the refund policy?", false)
	user := b.BuildUser()
	if !strings.HasSuffix(user, "What is the refund policy?") {
		t.Errorf("user prompt should end with the question, got %q", user)
	}
}
