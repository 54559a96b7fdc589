package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brewkit/brewkit/internal/api"
	"github.com/brewkit/brewkit/internal/catalog"
)

// --- chat ---

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the coffee shop assistant",
	Long: `Talk to the coffee shop assistant.

With a message argument, sends a single message and prints the reply.
Without arguments, starts an interactive session that keeps conversation
history on the server until you exit.

Examples:
  brewkit chat "what hot drinks do you have?"
  brewkit chat`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		if len(args) > 0 {
			reply, _, err := sendChat(cmd.Context(), client, "", strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		}

		fmt.Fprintln(os.Stderr, "brewkit assistant. Type your order or question; 'exit' to quit.")
		scanner := bufio.NewScanner(os.Stdin)
		sessionID := ""
		for {
			fmt.Fprint(os.Stderr, colorize(colorBold, "you> "))
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				break
			}

			reply, sid, err := sendChat(cmd.Context(), client, sessionID, line)
			if err != nil {
				printError("%v", err)
				continue
			}
			sessionID = sid
			fmt.Printf("%s %s\n", colorize(colorCyan, "barista>"), reply)
		}
		return scanner.Err()
	},
}

func sendChat(ctx context.Context, client *apiClient, sessionID, message string) (reply, sid string, err error) {
	resp, err := client.post(ctx, "/v1/chat", api.ChatRequest{
		SessionID: sessionID,
		Message:   message,
	})
	if err != nil {
		return "", "", err
	}

	var result api.ChatResponse
	if err := decodeJSON(resp, &result); err != nil {
		return "", "", err
	}
	return result.Reply, result.SessionID, nil
}

// --- menu ---

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/v1/menu")
		if err != nil {
			return err
		}

		var result struct {
			Items []catalog.Item `json:"items"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		if len(result.Items) == 0 {
			fmt.Println("The menu is empty.")
			return nil
		}

		category := ""
		for _, item := range result.Items {
			if item.Category != category {
				category = item.Category
				fmt.Printf("\n%s\n", colorize(colorBold, category))
			}
			fmt.Printf("  %-14s $%.2f  %s\n", item.Name, item.Price, item.Description)
			if len(item.AddOns) > 0 {
				fmt.Printf("  %-14s add-ons: %s\n", "", strings.Join(item.AddOns, ", "))
			}
		}
		return nil
	},
}
