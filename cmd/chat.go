package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/availops/availagent/internal/agent"
	"github.com/availops/availagent/internal/llm"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive availability chat session",
	Long: `Starts an interactive session with the availability agent. The
conversation is kept for the duration of the session so follow-up questions
can refer to earlier answers. Type "exit" or "quit" to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	loop, err := buildLoop(cfg, st)
	if err != nil {
		return err
	}

	fmt.Printf("availagent chat (%s via %s) — type exit to leave\n", cfg.Model, cfg.Provider)

	conversation := agent.SeedConversation()
	prompt := promptui.Prompt{Label: "you"}

	for {
		question, err := prompt.Run()
		if err != nil {
			// Ctrl-C / Ctrl-D end the session.
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		question = strings.TrimSpace(question)
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}

		conversation = append(conversation, llm.Message{Role: llm.RoleUser, Content: question})

		answer, transcript, err := loop.Run(context.Background(), conversation)
		if err != nil {
			if errors.Is(err, agent.ErrLoopLimit) {
				fmt.Printf("agent: I could not finish within the tool budget for that one. Try narrowing the question.\n")
				conversation = transcript
				continue
			}
			return err
		}

		conversation = transcript
		fmt.Printf("agent: %s\n", answer)
	}
}
