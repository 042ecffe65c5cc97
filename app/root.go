// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goauthz-admin",
	Short: "GoAuthZ-Admin is a management tool for multi-tenant authorization data",
	Long: `GoAuthZ-Admin is a management tool for multi-tenant authorization data
that stores users, roles and tenants and keeps the user list synchronized
with an external authentication directory.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
