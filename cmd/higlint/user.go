package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sh4d0w/ios-mobile-designer/internal/security"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
	}
	cmd.AddCommand(newUserCreateCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "create <username> <password>",
		Short: "Create an API user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, password := args[0], args[1]
			if len(password) < security.MinPasswordLen {
				return errors.Errorf("password must be at least %d characters", security.MinPasswordLen)
			}
			if role != "admin" && role != "viewer" {
				return errors.Errorf("unknown role %q (admin|viewer)", role)
			}

			db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			hash, err := security.HashPassword(password)
			if err != nil {
				return errors.Wrap(err, "hash password")
			}
			id, err := db.CreateUser(username, hash, role)
			if err != nil {
				return errors.Wrap(err, "create user")
			}
			log.WithField("user", username).WithField("id", id).WithField("role", role).Info("user created")
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "viewer", "user role: admin|viewer")
	return cmd
}
