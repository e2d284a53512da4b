package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// askCmd runs a scripted conversation without the TUI: each argument is
// one user turn and the assistant's reply is printed to stdout. With no
// arguments, turns are read line by line from stdin until EOF or an exit
// phrase. Useful for piping transcripts and for shell scripting.
var askCmd = &cobra.Command{
	Use:   "ask [utterance]...",
	Short: "Run one or more turns non-interactively",
	Example: `  linguacart ask "I want to learn Italian" "A2" "add 1" "checkout"
  echo "german b1 grammar under 25 euro" | linguacart ask`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.close()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, s.engine.Greeting())

		turn := func(text string) {
			fmt.Fprintf(out, "\n> %s\n%s\n", text, s.engine.HandleTurn(text))
		}

		if len(args) > 0 {
			for _, text := range args {
				turn(text)
			}
			return nil
		}

		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			text := strings.TrimSpace(sc.Text())
			if text == "" {
				continue
			}
			if exitPhrases[strings.ToLower(text)] {
				break
			}
			turn(text)
		}
		return sc.Err()
	},
}
