package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spyglass-osint/spyglass/internal/database"
	"github.com/spyglass-osint/spyglass/internal/filter"
	"github.com/spyglass-osint/spyglass/internal/models"
)

// NewScopeCommand creates the scope command: mark rows matching a filter
// as in-scope again.
func NewScopeCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scope",
		Short: "Include rows matching a filter in scope",
	}
	addScopeSubcommands(cmd, opts, false)
	return cmd
}

// NewNoscopeCommand creates the noscope command: exclude rows matching a
// filter from scope. Excluded rows stay excluded even when re-discovered.
func NewNoscopeCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "noscope",
		Short: "Exclude rows matching a filter from scope",
	}
	addScopeSubcommands(cmd, opts, true)
	return cmd
}

func addScopeSubcommands(parent *cobra.Command, opts *RootOptions, noscope bool) {
	parent.AddCommand(
		newScopeSubcommand[models.Domain](opts, "domains", noscope),
		newScopeSubcommand[models.Subdomain](opts, "subdomains", noscope),
		newScopeSubcommand[models.IpAddr](opts, "ipaddrs", noscope),
		newScopeSubcommand[models.Url](opts, "urls", noscope),
		newScopeSubcommand[models.Email](opts, "emails", noscope),
		newScopeSubcommand[models.PhoneNumber](opts, "phonenumbers", noscope),
	)
}

func newScopeSubcommand[M interface {
	models.Model[M]
	models.ScopedRow
	models.Detailed
}](opts *RootOptions, use string, noscope bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " where <filter>",
		Short: "Toggle the scope flag on " + use,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filter.Parse(args)
			if err != nil {
				return err
			}

			db, _, err := opts.openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			var rows int64
			if noscope {
				rows, err = database.Noscope[M](db, f)
			} else {
				rows, err = database.Scope[M](db, f)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d rows\n", rows)
			return nil
		},
	}
}
