package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mohammad-safakhou/newsagent/config"
	"github.com/mohammad-safakhou/newsagent/internal/logging"
	srv "github.com/mohammad-safakhou/newsagent/internal/server"
	"github.com/mohammad-safakhou/newsagent/models"
	"github.com/spf13/cobra"
)

// chatCMD runs the agent in-process. History and preferences live in this
// client and are resubmitted every turn, exactly as an HTTP caller would.
func chatCMD(cfgPath *string) *cobra.Command {
	var showTools bool
	var chat = &cobra.Command{
		Use:   "chat",
		Short: "Talk to the news agent from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*cfgPath)
			if err != nil {
				return err
			}
			if cfg.General.LogFile == "" {
				// keep the terminal for the conversation
				cfg.General.LogLevel = "error"
			}
			logger, err := logging.Init(cfg.General)
			if err != nil {
				return err
			}
			agent, err := srv.NewAgent(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer agent.Close()

			s := session{agent: agent.Controller, prefs: models.Preferences{}, showTools: showTools}
			return s.loop(cmd, os.Stdin, cmd.OutOrStdout())
		},
	}
	chat.Flags().BoolVar(&showTools, "show-tools", false, "print raw tool results")
	return chat
}

type session struct {
	agent     srv.Chatter
	history   []models.Message
	prefs     models.Preferences
	showTools bool
}

func (s *session) loop(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	// the first turn always elicits preferences
	if err := s.turn(cmd, out, "hello"); err != nil {
		return err
	}
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nyou> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/prefs":
			for k, v := range s.prefs {
				fmt.Fprintf(out, "  %s: %v\n", k, v)
			}
			continue
		}
		if err := s.turn(cmd, out, line); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
}

func (s *session) turn(cmd *cobra.Command, out io.Writer, msg string) error {
	res, err := s.agent.Chat(cmd.Context(), models.ChatRequest{
		Message:             msg,
		ConversationHistory: s.history,
		UserPreferences:     s.prefs,
	})
	if err != nil {
		return err
	}
	if s.showTools && res.ToolUsed != "" {
		fmt.Fprintf(out, "\n[%s]\n%s\n", res.ToolUsed, res.ToolResult)
	}
	fmt.Fprintf(out, "\nagent> %s\n", res.Response)

	s.history = append(s.history,
		models.Message{Role: models.RoleUser, Content: msg},
		models.Message{Role: models.RoleAssistant, Content: res.Response},
	)
	s.prefs = res.UserPreferences
	return nil
}
