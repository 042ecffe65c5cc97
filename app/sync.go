package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/config"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/daemon"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/logger"
	"github.com/GoAuthZ-Admin/GoAuthZ-Admin/internal/sync"
)

func init() { //nolint: gochecknoinits
	syncCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")
	syncCmd.Flags().BoolVar(&applyChanges, "apply", false, "Apply the computed change-set with all classifications confirmed")

	rootCmd.AddCommand(syncCmd)
}

var (
	applyChanges bool

	syncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the authorization store against the authentication directory",
		Long: `Sync fetches the active users from the authentication directory, diffs
them against the locally stored authorization users and prints the resulting
change-set. With --apply every computed classification is confirmed as-is and
the change-set is applied in a single transaction.`,
		PreRun: func(_ *cobra.Command, _ []string) {
			if cfg, err = config.ReadConfig(configPath); err != nil {
				panic(err)
			}

			if err = logger.Init(cfg.Log); err != nil {
				panic(err)
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := daemon.OpenDB(&cfg)
			if err != nil {
				return err
			}

			reader, err := sync.NewLDAPReader(&cfg.LDAP)
			if err != nil {
				return err
			}

			service := sync.NewService(db, reader, cfg.Tenant.Enabled)

			changes, err := service.ComputeChanges()
			if err != nil {
				return err
			}

			if len(changes) == 0 {
				fmt.Println("authorization store is in sync, nothing to do")
				return nil
			}

			printChanges(changes)

			if !applyChanges {
				return nil
			}

			st, err := service.ApplyChanges(changes)
			if err != nil {
				return err
			}

			if !st.IsValid() {
				for _, applyErr := range st.Errors() {
					fmt.Fprintln(os.Stderr, "error:", applyErr)
				}

				return ErrSyncApplyFailed
			}

			fmt.Println(st.Message())

			return nil
		},
	}
)

// printChanges writes the change-set as a table for operator review.
func printChanges(changes []*sync.UserChange) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHANGE\tUSER ID\tEMAIL\tUSERNAME")

	for _, change := range changes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			change.ProviderChange,
			change.UserID(),
			change.Email(),
			change.UserName(),
		)
	}

	_ = w.Flush()
}
