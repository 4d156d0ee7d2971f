package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword resolves a password for a command: the --password flag when
// given, a hidden terminal prompt when stdin is a TTY, otherwise one plain
// line from stdin (piped input in tests and scripts).
func readPassword(cmd *cobra.Command, a *app, prompt string) (string, error) {
	if cmd.Flags().Changed("password") {
		password, _ := cmd.Flags().GetString("password")
		return password, nil
	}

	_, _ = fmt.Fprint(a.stdout, prompt)

	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(a.stdout)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// addPasswordFlag registers the --password flag for non-interactive use.
func addPasswordFlag(cmd *cobra.Command) {
	cmd.Flags().String("password", "", "Password (omit to be prompted)")
}
