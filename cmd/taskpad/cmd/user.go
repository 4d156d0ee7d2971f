package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			password, err := readPassword(cmd, a, "Password: ")
			if err != nil {
				return err
			}
			if err := s.CreateUser(ctx, args[0], password); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.stdout, "User %q registered\n", args[0])
			return nil
		},
	}
	addPasswordFlag(cmd)
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Verify credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}

			password, err := readPassword(cmd, a, "Password: ")
			if err != nil {
				return err
			}
			ok, userID := s.VerifyUser(ctx, args[0], password)
			if !ok {
				return fmt.Errorf("invalid username or password")
			}
			_, _ = fmt.Fprintf(a.stdout, "Welcome back, %s (user %d)\n", args[0], userID)
			return nil
		},
	}
	addPasswordFlag(cmd)
	return cmd
}

func newPasswdCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passwd <username>",
		Short: "Change an account password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			userID, err := s.LookupUserID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("unknown user %q", args[0])
			}

			password, err := readPassword(cmd, a, "New password: ")
			if err != nil {
				return err
			}
			if !s.UpdatePassword(ctx, userID, password) {
				return fmt.Errorf("password not changed; check the strength policy")
			}
			_, _ = fmt.Fprintln(a.stdout, "Password updated")
			return nil
		},
	}
	addPasswordFlag(cmd)
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	var name, newUsername, email string

	cmd := &cobra.Command{
		Use:   "profile <username>",
		Short: "Show or update a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			userID, err := s.LookupUserID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("unknown user %q", args[0])
			}

			user, err := s.GetUserData(ctx, userID)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("username") && !cmd.Flags().Changed("email") {
				_, _ = fmt.Fprintf(a.stdout, "Username: %s\nName: %s\nEmail: %s\nJoined: %s\n",
					user.Username, user.Name, user.Email, user.CreatedAt)
				return nil
			}

			if !cmd.Flags().Changed("name") {
				name = user.Name
			}
			if !cmd.Flags().Changed("username") {
				newUsername = user.Username
			}
			if !cmd.Flags().Changed("email") {
				email = user.Email
			}

			if !s.UpdateProfile(ctx, userID, name, newUsername, email) {
				return fmt.Errorf("profile not updated; check username length and email format")
			}
			_, _ = fmt.Fprintln(a.stdout, "Profile updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&newUsername, "username", "", "New username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	return cmd
}
