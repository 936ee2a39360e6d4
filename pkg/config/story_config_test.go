package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/stay/pkg/embedded"
	"github.com/decker502/stay/pkg/types"
)

const minimalStoryYAML = `recipient: "Sam"
entry:
  greeting: "Hey {name}..."
progression:
  messages: ["one", "two"]
question1:
  prompt: "Do you know?"
  rebuttals: ["r0", "r1"]
endGame:
  steps:
    - prompt: "p"
      primary: "ok"
cards:
  notice:
    items:
      - id: pres
        title: "Your presence"
        content: "c"
phase2:
  assurance:
    bands:
      - min: 60
        text: "high"
      - min: 0
        text: "low"
`

func writeStory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "story.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

// TestLoadStoryConfig 测试叙事配置文件加载
func TestLoadStoryConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		story, err := LoadStoryConfig(writeStory(t, minimalStoryYAML))
		if err != nil {
			t.Fatalf("LoadStoryConfig() failed: %v", err)
		}

		if got := story.Personalize(story.Entry.Greeting); got != "Hey Sam..." {
			t.Errorf("Personalize greeting = %q, want %q", got, "Hey Sam...")
		}
		if len(story.Progression.Messages) != 2 {
			t.Errorf("Expected 2 progression messages, got %d", len(story.Progression.Messages))
		}
		if !story.HasCard(types.CardGroupNotice, "pres") {
			t.Error("Expected notice card 'pres'")
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		story, err := LoadStoryConfig(writeStory(t, minimalStoryYAML))
		if err != nil {
			t.Fatalf("LoadStoryConfig() failed: %v", err)
		}
		if story.Entry.ContinueLabel != "Continue" {
			t.Errorf("ContinueLabel default = %q", story.Entry.ContinueLabel)
		}
		if story.Question1.NoLabelAfter != "No" {
			t.Errorf("NoLabelAfter should fall back to NoLabel, got %q", story.Question1.NoLabelAfter)
		}
		if story.Phase2.Closing.OneLastThingLabel != "One last thing" {
			t.Errorf("OneLastThingLabel default = %q", story.Phase2.Closing.OneLastThingLabel)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadStoryConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}

// TestValidateStoryConfig 测试验证规则
func TestValidateStoryConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "no progression messages",
			mutate:  func(s string) string { return strings.Replace(s, `messages: ["one", "two"]`, `messages: []`, 1) },
			wantErr: "progression.messages",
		},
		{
			name:    "no rebuttals",
			mutate:  func(s string) string { return strings.Replace(s, `rebuttals: ["r0", "r1"]`, `rebuttals: []`, 1) },
			wantErr: "question1.rebuttals",
		},
		{
			name:    "unknown card group",
			mutate:  func(s string) string { return strings.Replace(s, "  notice:", "  wishes:", 1) },
			wantErr: "unknown group",
		},
		{
			name: "duplicate card id",
			mutate: func(s string) string {
				return strings.Replace(s, `        content: "c"`, "        content: \"c\"\n      - id: pres\n        title: \"again\"", 1)
			},
			wantErr: "duplicate id",
		},
		{
			name:    "band out of range",
			mutate:  func(s string) string { return strings.Replace(s, "min: 60", "min: 160", 1) },
			wantErr: "phase2.assurance.bands",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStoryConfig([]byte(tt.mutate(minimalStoryYAML)))
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestAssuranceText(t *testing.T) {
	story, err := ParseStoryConfig([]byte(minimalStoryYAML))
	if err != nil {
		t.Fatalf("ParseStoryConfig failed: %v", err)
	}

	tests := []struct {
		value int
		want  string
	}{
		{-20, "low"},
		{0, "low"},
		{59, "low"},
		{60, "high"},
		{100, "high"},
		{250, "high"},
	}
	for _, tt := range tests {
		if got := story.AssuranceText(tt.value); got != tt.want {
			t.Errorf("AssuranceText(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestWithRecipient(t *testing.T) {
	story, err := ParseStoryConfig([]byte(minimalStoryYAML))
	if err != nil {
		t.Fatalf("ParseStoryConfig failed: %v", err)
	}

	if story.WithRecipient("  ") != story {
		t.Error("blank override should return the same config")
	}
	renamed := story.WithRecipient("Alex")
	if renamed.Recipient != "Alex" || story.Recipient != "Sam" {
		t.Errorf("WithRecipient should copy: got %q / original %q", renamed.Recipient, story.Recipient)
	}
}

// TestShippedStory 验证内置的 assets/story.yaml
func TestShippedStory(t *testing.T) {
	embedded.Init(os.DirFS(filepath.Join("..", "..", "assets")))
	t.Cleanup(func() { embedded.Init(nil) })

	story, err := LoadStoryConfig(DefaultStoryPath)
	if err != nil {
		t.Fatalf("shipped story failed to load: %v", err)
	}

	if len(story.Progression.Messages) != 3 {
		t.Errorf("Expected 3 progression messages, got %d", len(story.Progression.Messages))
	}
	if len(story.Question1.Rebuttals) != 4 {
		t.Errorf("Expected 4 rebuttals, got %d", len(story.Question1.Rebuttals))
	}
	for _, want := range []struct {
		group types.CardGroup
		id    string
	}{
		{types.CardGroupNotice, "pres"},
		{types.CardGroupPromise, "listen"},
		{types.CardGroupClarification, "meant"},
	} {
		if !story.HasCard(want.group, want.id) {
			t.Errorf("shipped story is missing card %s/%s", want.group, want.id)
		}
	}
	for _, g := range types.AllCardGroups() {
		if _, ok := story.CardGroup(g); !ok {
			t.Errorf("shipped story has no %s group", g)
		}
	}
}
