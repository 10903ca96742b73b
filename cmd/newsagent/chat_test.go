package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mohammad-safakhou/newsagent/models"
	"github.com/spf13/cobra"
)

type echoAgent struct {
	reqs []models.ChatRequest
}

func (a *echoAgent) Chat(_ context.Context, req models.ChatRequest) (models.ChatResult, error) {
	a.reqs = append(a.reqs, req)
	prefs := req.UserPreferences.Clone()
	prefs["turns"] = len(a.reqs)
	return models.ChatResult{Response: "echo: " + req.Message, UserPreferences: prefs}, nil
}

func TestSessionKeepsHistoryAndPreferences(t *testing.T) {
	agent := &echoAgent{}
	s := session{agent: agent, prefs: models.Preferences{}}
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	var out bytes.Buffer
	if err := s.loop(cmd, strings.NewReader("casual tone\n\nwhat's new in tech?\n/quit\nignored\n"), &out); err != nil {
		t.Fatalf("loop: %v", err)
	}
	if len(agent.reqs) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(agent.reqs))
	}
	if len(agent.reqs[0].ConversationHistory) != 0 {
		t.Fatalf("first turn must start without history")
	}
	last := agent.reqs[2]
	if len(last.ConversationHistory) != 4 || last.ConversationHistory[3].Content != "echo: casual tone" {
		t.Fatalf("unexpected history %+v", last.ConversationHistory)
	}
	if last.UserPreferences["turns"] != 2 {
		t.Fatalf("preferences must be resubmitted, got %v", last.UserPreferences)
	}
	if !strings.Contains(out.String(), "agent> echo: what's new in tech?") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
