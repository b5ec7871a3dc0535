package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ideaforge/internal/types"
)

var (
	userName  string
	userEmail string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage idea owners",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user to own ideas",
	RunE: func(cmd *cobra.Command, args []string) error {
		if userName == "" || userEmail == "" {
			return fmt.Errorf("--name and --email are required")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		user := &types.User{Name: userName, Email: userEmail}
		if err := st.CreateUser(cmd.Context(), user); err != nil {
			return err
		}

		fmt.Printf("Created user %s (%s)\n", user.ID, user.Email)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userName, "name", "", "user name")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "user email")
	userCmd.AddCommand(userCreateCmd)
}
