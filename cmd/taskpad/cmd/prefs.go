package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newPrefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change per-user settings",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show all settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}

			prefs, err := s.GetPreferences(ctx, userID)
			if err != nil {
				return err
			}
			if len(prefs) == 0 {
				_, _ = fmt.Fprintln(a.stdout, "No settings saved")
				return nil
			}

			keys := make([]string, 0, len(prefs))
			for k := range prefs {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				_, _ = fmt.Fprintf(a.stdout, "%s = %s\n", k, prefs[k])
			}
			return nil
		},
	}
	addUserFlag(get)

	set := &cobra.Command{
		Use:   "set <key=value>...",
		Short: "Save settings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, userID, err := a.resolveUser(ctx, cmd)
			if err != nil {
				return err
			}

			prefs := make(map[string]string, len(args))
			for _, arg := range args {
				key, value, ok := strings.Cut(arg, "=")
				if !ok || key == "" {
					return fmt.Errorf("expected key=value, got %q", arg)
				}
				prefs[key] = value
			}

			if err := s.SavePreferences(ctx, userID, prefs); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.stdout, "Saved %d setting(s)\n", len(prefs))
			return nil
		},
	}
	addUserFlag(set)

	cmd.AddCommand(get, set)
	return cmd
}
