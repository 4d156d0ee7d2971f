package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskpad/internal/credentials"
)

func newCredentialsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the SMTP password used for email notifications",
	}

	set := &cobra.Command{
		Use:   "set <account>",
		Short: "Store the SMTP password in the system keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, a, "SMTP password: ")
			if err != nil {
				return err
			}
			if err := credentials.NewManager().Set(args[0], password); err != nil {
				return fmt.Errorf("%w\n\nIf no keyring is available, set TASKPAD_SMTP_PASSWORD instead", err)
			}
			_, _ = fmt.Fprintln(a.stdout, "Credential stored in system keyring")
			return nil
		},
	}
	addPasswordFlag(set)

	del := &cobra.Command{
		Use:   "delete <account>",
		Short: "Remove the stored SMTP password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credentials.NewManager().Delete(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.stdout, "Credential removed")
			return nil
		},
	}

	cmd.AddCommand(set, del)
	return cmd
}
