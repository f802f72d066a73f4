package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spyglass-osint/spyglass/internal/database"
	"github.com/spyglass-osint/spyglass/internal/filter"
	"github.com/spyglass-osint/spyglass/internal/models"
)

// NewSelectCommand creates the select command: print rows of one family,
// optionally narrowed by a filter. Read paths only ever see in-scope rows,
// regardless of the user's own filter.
func NewSelectCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "select <family> [where <filter>]",
		Short: "Print rows of a family, optionally filtered",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := models.ParseFamily(args[0])
			if err != nil {
				return err
			}
			f, err := filter.ParseOptional(args[1:])
			if err != nil {
				return err
			}

			db, _, err := opts.openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			return selectRows(cmd, opts, db, family, f)
		},
	}
}

func selectRows(cmd *cobra.Command, opts *RootOptions, db *database.Database, family models.Family, f *filter.Filter) error {
	switch family {
	case models.FamilyDomain:
		return printRows[models.Domain](cmd, opts, db, f)
	case models.FamilySubdomain:
		return printRows[models.Subdomain](cmd, opts, db, f)
	case models.FamilyIpAddr:
		return printRows[models.IpAddr](cmd, opts, db, f)
	case models.FamilyUrl:
		return printRows[models.Url](cmd, opts, db, f)
	case models.FamilyEmail:
		return printRows[models.Email](cmd, opts, db, f)
	case models.FamilyPhoneNumber:
		return printRows[models.PhoneNumber](cmd, opts, db, f)
	case models.FamilyDevice:
		return printRows[models.Device](cmd, opts, db, f)
	case models.FamilyNetwork:
		return printRows[models.Network](cmd, opts, db, f)
	case models.FamilyAccount:
		return printRows[models.Account](cmd, opts, db, f)
	case models.FamilyBreach:
		return printRows[models.Breach](cmd, opts, db, f)
	default:
		// Relationship families have no scope flag and no single value.
		return fmt.Errorf("%w for family %q", database.ErrUnsupportedFamilyOp, family)
	}
}

func printRows[M interface {
	models.Model[M]
	models.ScopedRow
	models.Valued
}](cmd *cobra.Command, opts *RootOptions, db *database.Database, f *filter.Filter) error {
	rows, err := database.Filter[M](db, f.AndScoped())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		for _, row := range rows {
			if err := enc.Encode(row); err != nil {
				return err
			}
		}
		return nil
	}
	for _, row := range rows {
		fmt.Fprintln(out, row.RowValue())
	}
	return nil
}
