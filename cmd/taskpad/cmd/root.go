// Package cmd implements the taskpad command line interface.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"taskpad/internal/config"
	"taskpad/internal/utils"
	"taskpad/store"
	"taskpad/store/sqlite"
)

// Version is set at build time.
var Version = "dev"

// app carries the shared state of one CLI invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	dbPath     string

	cfg   *config.Config
	store *sqlite.Store
}

// Execute runs the CLI with the given arguments and IO streams. It returns
// the process exit code.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	rootCmd := newRoot(a)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	a.close()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// newRoot creates the root command with all subcommands attached.
func newRoot(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "taskpad",
		Short:   "A multi-user to-do manager",
		Long:    "taskpad manages per-user tasks, catalogs, and preferences in a local SQLite database,\nwith due-task notifications deduped by a frequency policy.",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file")
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "Path to database file (overrides config)")
	cmd.PersistentFlags().BoolP("verbose", "V", false, "Enable verbose output")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		utils.SetVerboseMode(verbose)
	}

	cmd.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newPasswdCmd(a),
		newProfileCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newUpdateCmd(a),
		newDoneCmd(a),
		newRemoveCmd(a),
		newSearchCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newStatsCmd(a),
		newDueCmd(a),
		newPrefsCmd(a),
		newPriorityCmd(a),
		newCategoryCmd(a),
		newTrackCmd(a),
		newCredentialsCmd(a),
	)
	return cmd
}

// openStore lazily loads configuration, opens the database, and seeds the
// admin account. Subsequent calls reuse the same store.
func (a *app) openStore(ctx context.Context) (*sqlite.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s, err := sqlite.New(cfg.GetDatabasePath(),
		sqlite.WithMaxConnections(cfg.Database.MaxConnections),
		sqlite.WithDefaults(cfg.Defaults.Priorities, cfg.Defaults.Categories),
	)
	if err != nil {
		return nil, utils.ErrStorage("opening database", err)
	}

	if err := s.EnsureDefaultUser(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		_ = s.Close()
		return nil, err
	}

	a.cfg = cfg
	a.store = s
	return s, nil
}

// close releases the store if one was opened.
func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
		a.store = nil
	}
}

// resolveUser turns the --user flag into a user ID.
func (a *app) resolveUser(ctx context.Context, cmd *cobra.Command) (*sqlite.Store, int64, error) {
	username, _ := cmd.Flags().GetString("user")
	if username == "" {
		return nil, 0, fmt.Errorf("--user is required")
	}

	s, err := a.openStore(ctx)
	if err != nil {
		return nil, 0, err
	}
	userID, err := s.LookupUserID(ctx, username)
	if err != nil {
		return nil, 0, fmt.Errorf("unknown user %q", username)
	}
	return s, userID, nil
}

// addUserFlag registers the --user flag used by per-user commands.
func addUserFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("user", "u", "", "Username the command acts for")
}

// printTasks renders a task table to the writer.
func printTasks(w io.Writer, tasks []store.Task) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks found")
		return
	}
	_, _ = fmt.Fprintf(w, "%-5s %-30s %-12s %-10s %-12s %s\n", "ID", "NAME", "DUE", "PRIORITY", "CATEGORY", "STATUS")
	for _, t := range tasks {
		_, _ = fmt.Fprintf(w, "%-5d %-30s %-12s %-10s %-12s %s\n",
			t.ID, t.Name, t.DueDate, t.Priority, t.Category, t.Status)
	}
}
