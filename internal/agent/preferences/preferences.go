// Package preferences fills the five personalization slots from keywords in
// user messages.
package preferences

import (
	"regexp"
	"strings"

	"github.com/mohammad-safakhou/newsagent/models"
	"github.com/mohammad-safakhou/newsagent/utils"
)

type Slot string

const (
	ToneOfVoice        Slot = "tone_of_voice"
	ResponseFormat     Slot = "response_format"
	LanguagePreference Slot = "language_preference"
	InteractionStyle   Slot = "interaction_style"
	NewsTopics         Slot = "news_topics"
)

// Slots lists the tracked slots in reporting order.
var Slots = []Slot{ToneOfVoice, ResponseFormat, LanguagePreference, InteractionStyle, NewsTopics}

type Mode int

const (
	// Overwrite replaces the slot value; with several matches the last rule wins.
	Overwrite Mode = iota
	// Cumulative unions every match with the values already in the slot.
	Cumulative
)

// SlotModes states how each slot folds in new matches.
var SlotModes = map[Slot]Mode{
	ToneOfVoice:        Overwrite,
	ResponseFormat:     Overwrite,
	LanguagePreference: Overwrite,
	InteractionStyle:   Overwrite,
	NewsTopics:         Cumulative,
}

type Rule struct {
	Keyword string
	Slot    Slot
	Value   string
}

// Rules is evaluated top to bottom. Order matters for overwrite slots.
var Rules = []Rule{
	{"formal", ToneOfVoice, "formal"},
	{"casual", ToneOfVoice, "casual"},
	{"enthusiastic", ToneOfVoice, "enthusiastic"},
	{"professional", ToneOfVoice, "professional"},

	{"bullet", ResponseFormat, "bullet points"},
	{"paragraph", ResponseFormat, "paragraphs"},
	{"numbered", ResponseFormat, "numbered lists"},

	{"english", LanguagePreference, "English"},
	{"spanish", LanguagePreference, "Spanish"},
	{"french", LanguagePreference, "French"},

	{"concise", InteractionStyle, "concise"},
	{"detailed", InteractionStyle, "detailed"},
	{"comprehensive", InteractionStyle, "comprehensive"},

	{"technology", NewsTopics, "technology"},
	{"sports", NewsTopics, "sports"},
	{"politics", NewsTopics, "politics"},
	{"business", NewsTopics, "business"},
	{"entertainment", NewsTopics, "entertainment"},
}

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Tracker applies Rules to messages. The zero value is not usable; use NewTracker.
type Tracker struct {
	rules []compiledRule
}

func NewTracker() *Tracker { return NewTrackerWithRules(Rules) }

func NewTrackerWithRules(rules []Rule) *Tracker {
	t := &Tracker{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		// leading word boundary only: "bullets" matches, "informal" does not
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(r.Keyword))
		t.rules = append(t.rules, compiledRule{Rule: r, re: re})
	}
	return t
}

// Update returns a new snapshot with message's keywords folded into existing.
// Slots are only ever set, never cleared, and existing is left untouched.
func (t *Tracker) Update(existing models.Preferences, message string) models.Preferences {
	out := existing.Clone()
	added := map[Slot][]string{}
	for _, r := range t.rules {
		if !r.re.MatchString(message) {
			continue
		}
		switch SlotModes[r.Slot] {
		case Cumulative:
			added[r.Slot] = append(added[r.Slot], r.Value)
		default:
			out[string(r.Slot)] = r.Value
		}
	}
	for slot, values := range added {
		out[string(slot)] = union(utils.Str(out[string(slot)]), values)
	}
	return out
}

func union(current string, values []string) string {
	seen := map[string]bool{}
	var merged []string
	for _, v := range strings.Split(current, ",") {
		v = strings.TrimSpace(v)
		if v == "" || seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		merged = append(merged, v)
	}
	for _, v := range values {
		if seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		merged = append(merged, v)
	}
	return strings.Join(merged, ", ")
}

// Completion reports, per tracked slot, whether it holds a non-empty value.
func Completion(prefs models.Preferences) map[string]bool {
	out := make(map[string]bool, len(Slots))
	for _, s := range Slots {
		v, ok := prefs[string(s)]
		out[string(s)] = ok && v != nil && v != ""
	}
	return out
}
