package preferences

import (
	"reflect"
	"testing"

	"github.com/mohammad-safakhou/newsagent/models"
)

func TestUpdateCasualTone(t *testing.T) {
	got := NewTracker().Update(models.Preferences{}, "I prefer a casual tone")
	if !reflect.DeepEqual(got, models.Preferences{"tone_of_voice": "casual"}) {
		t.Fatalf("unexpected snapshot %v", got)
	}
	done := Completion(got)
	if !done["tone_of_voice"] {
		t.Fatalf("tone_of_voice should be complete")
	}
	for _, s := range []string{"response_format", "language_preference", "interaction_style", "news_topics"} {
		if done[s] {
			t.Fatalf("%s should be incomplete", s)
		}
	}
}

func TestUpdateCumulativeTopics(t *testing.T) {
	tr := NewTracker()
	first := tr.Update(models.Preferences{}, "I mostly read about technology")
	second := tr.Update(first, "and Sports too, plus more technology")
	if second["news_topics"] != "technology, sports" {
		t.Fatalf("unexpected topics %q", second["news_topics"])
	}
	if first["news_topics"] != "technology" {
		t.Fatalf("first snapshot must not change, got %q", first["news_topics"])
	}
}

func TestUpdateLastRuleWins(t *testing.T) {
	got := NewTracker().Update(models.Preferences{}, "paragraph or bullet, either works")
	if got["response_format"] != "paragraphs" {
		t.Fatalf("expected the later rule to win, got %q", got["response_format"])
	}
}

func TestUpdateWordBoundary(t *testing.T) {
	tr := NewTracker()
	got := tr.Update(models.Preferences{}, "keep it informal, use bullets")
	if _, ok := got["tone_of_voice"]; ok {
		t.Fatalf("informal must not match formal: %v", got)
	}
	if got["response_format"] != "bullet points" {
		t.Fatalf("bullets should match bullet: %v", got)
	}
	if got := tr.Update(nil, "FRENCH please, DETAILED answers"); got["language_preference"] != "French" || got["interaction_style"] != "detailed" {
		t.Fatalf("matching must be case-insensitive: %v", got)
	}
}

func TestUpdateNeverClears(t *testing.T) {
	in := models.Preferences{"tone_of_voice": "formal", "news_topics": "politics", "theme": "dark"}
	got := NewTracker().Update(in, "what's happening today?")
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("snapshot changed without keywords: %v", got)
	}
	got["tone_of_voice"] = "casual"
	if in["tone_of_voice"] != "formal" {
		t.Fatalf("input snapshot was mutated")
	}
}

func TestCompletion(t *testing.T) {
	done := Completion(models.Preferences{
		"tone_of_voice":       "",
		"response_format":     nil,
		"language_preference": "English",
		"unknown":             "x",
	})
	want := map[string]bool{
		"tone_of_voice":       false,
		"response_format":     false,
		"language_preference": true,
		"interaction_style":   false,
		"news_topics":         false,
	}
	if !reflect.DeepEqual(done, want) {
		t.Fatalf("unexpected completion %v", done)
	}
}

func TestSlotModesCoverEverySlot(t *testing.T) {
	for _, r := range Rules {
		if _, ok := SlotModes[r.Slot]; !ok {
			t.Fatalf("rule %q targets slot %s without a mode", r.Keyword, r.Slot)
		}
	}
}
