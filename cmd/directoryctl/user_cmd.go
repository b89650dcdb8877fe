package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KJohnson82/MMPD/internal/model"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage admin user accounts",
	}
	cmd.AddCommand(newUserCreateCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var (
		username string
		password string
		roleID   int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account with a bcrypt-hashed password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			account, err := a.services().Account.CreateUser(cmd.Context(), username, password, roleID)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "created user %s (id=%d, role=%d)\n", account.Username, account.ID, account.RoleID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password, at least 8 characters (required)")
	cmd.Flags().IntVar(&roleID, "role-id", model.RoleViewer, "Role: 1=Admin 2=Editor 3=Viewer")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
