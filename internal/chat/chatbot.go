// Package chat provides an interactive chatbot service over the generation
// gateway, with a bounded conversation memory so replies can refer back to
// recent turns.
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/chirp/internal/generation"
	"github.com/phrazzld/chirp/internal/memory"
)

const (
	promptWithContext = `You are a helpful AI assistant having a conversation. Here's our conversation history:

%s

User: %s

Please provide a natural, helpful response that takes into account our conversation history. Keep your response concise and engaging.`

	promptWithoutContext = `You are a helpful AI assistant. The user said: %s

Please provide a natural, helpful response. Keep it concise and engaging.`
)

// Bot is an interactive chatbot reading user input line by line, generating
// replies through the gateway, and remembering recent turns.
type Bot struct {
	logger  *slog.Logger
	gateway generation.Gateway
	window  *memory.Window
	in      io.Reader
	out     io.Writer
}

// NewBot creates a chatbot with the provided collaborators.
func NewBot(logger *slog.Logger, gateway generation.Gateway, window *memory.Window, in io.Reader, out io.Writer) (*Bot, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if gateway == nil {
		return nil, errors.New("gateway cannot be nil")
	}
	if window == nil {
		return nil, errors.New("memory window cannot be nil")
	}
	if in == nil || out == nil {
		return nil, errors.New("input and output streams cannot be nil")
	}

	return &Bot{
		logger:  logger,
		gateway: gateway,
		window:  window,
		in:      in,
		out:     out,
	}, nil
}

// buildPrompt wraps the user's input in a conversational prompt, including
// the buffered transcript when one exists.
func (b *Bot) buildPrompt(input string) string {
	if context := b.window.Context(); context != "" {
		return fmt.Sprintf(promptWithContext, context, input)
	}
	return fmt.Sprintf(promptWithoutContext, input)
}

// Reply generates a response to one user input and records the exchange in
// memory. Gateway failures are returned to the caller; the user message is
// still recorded so the user can retry without losing context.
func (b *Bot) Reply(ctx context.Context, input string) (string, error) {
	prompt := b.buildPrompt(input)
	b.window.AddUserMessage(input)

	b.logger.InfoContext(ctx, "generating chat reply",
		"input_length", len(input),
		"turn", b.window.CurrentTurn())

	reply, err := b.gateway.Send(ctx, prompt)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to generate reply", "error", err)
		return "", err
	}

	b.window.AddAssistantMessage(reply)
	return reply, nil
}

// Run starts the interactive loop and blocks until the user quits, input
// reaches EOF, or the context is cancelled. Reply failures are reported to
// the user and the loop continues.
func (b *Bot) Run(ctx context.Context) error {
	b.printWelcome()

	scanner := bufio.NewScanner(b.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(b.out, "\n[Turn %d] You: ", b.window.CurrentTurn()+1)
		if !scanner.Scan() {
			fmt.Fprintln(b.out, "\nGoodbye!")
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if handled, quit := b.handleCommand(input); handled {
			if quit {
				return nil
			}
			continue
		}

		reply, err := b.Reply(ctx, input)
		if err != nil {
			fmt.Fprintf(b.out, "\nSorry, I encountered an error: %v\n", err)
			continue
		}
		fmt.Fprintf(b.out, "\nAI: %s\n", reply)
	}
}

// handleCommand processes control commands. It reports whether the input was
// a command and whether the loop should exit.
func (b *Bot) handleCommand(input string) (handled, quit bool) {
	switch strings.ToLower(input) {
	case "quit", "exit":
		fmt.Fprintln(b.out, "\nGoodbye! Thanks for chatting!")
		return true, true
	case "clear":
		b.window.Clear()
		fmt.Fprintln(b.out, "\nConversation history cleared!")
		return true, false
	case "history":
		b.printHistory()
		return true, false
	case "status":
		b.printStatus()
		return true, false
	}
	return false, false
}

func (b *Bot) printWelcome() {
	status := b.window.Status()
	fmt.Fprintln(b.out, strings.Repeat("=", 60))
	fmt.Fprintln(b.out, "AI CHATBOT WITH MEMORY")
	fmt.Fprintln(b.out, strings.Repeat("=", 60))
	fmt.Fprintf(b.out, "I can remember our last %d conversation turns!\n", status.WindowSize)
	fmt.Fprintln(b.out, "\nAvailable commands:")
	fmt.Fprintln(b.out, "  quit / exit - end the conversation")
	fmt.Fprintln(b.out, "  clear       - clear conversation history")
	fmt.Fprintln(b.out, "  history     - show conversation history")
	fmt.Fprintln(b.out, "  status      - show memory buffer status")
	fmt.Fprintln(b.out, strings.Repeat("=", 60))
}

func (b *Bot) printHistory() {
	history := b.window.History()
	if len(history) == 0 {
		fmt.Fprintln(b.out, "\nNo conversation history yet.")
		return
	}

	fmt.Fprintln(b.out, "\nConversation History:")
	currentTurn := 0
	for _, msg := range history {
		if msg.Turn != currentTurn {
			currentTurn = msg.Turn
			fmt.Fprintf(b.out, "\nTurn %d:\n", currentTurn)
		}
		name := "You"
		if msg.Role == memory.RoleAssistant {
			name = "AI"
		}
		fmt.Fprintf(b.out, "  %s: %s\n", name, msg.Content)
	}
}

func (b *Bot) printStatus() {
	status := b.window.Status()
	fmt.Fprintln(b.out, "\nMemory Status:")
	fmt.Fprintf(b.out, "  Current turn:       %d\n", status.CurrentTurn)
	fmt.Fprintf(b.out, "  Messages in buffer: %d\n", status.Messages)
	fmt.Fprintf(b.out, "  Conversation turns: %d\n", status.Turns)
	fmt.Fprintf(b.out, "  Memory window:      %d turns\n", status.WindowSize)
	fmt.Fprintf(b.out, "  Buffer full:        %v\n", status.Full)
}
