package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wayfarer-labs/wayfarer/internal/config"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage the static credential list",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Add a login credential to the config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		email := strings.TrimSpace(args[0])
		if email == "" {
			return fmt.Errorf("email is required")
		}

		for _, cred := range globalConfig.Credentials {
			if cred.Email == email {
				return fmt.Errorf("credential for %s already exists", email)
			}
		}

		fmt.Fprintf(os.Stderr, "Password for %s: ", email)
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if len(password) == 0 {
			return fmt.Errorf("password must not be empty")
		}

		globalConfig.Credentials = append(globalConfig.Credentials, config.Credential{
			Email:    email,
			Password: string(password),
		})

		path := flagConfig
		if path == "" {
			path, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}
		if err := config.Save(path, globalConfig); err != nil {
			return err
		}

		fmt.Printf("Added credential for %s to %s\n", email, path)
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersAddCmd)
	rootCmd.AddCommand(usersCmd)
}
