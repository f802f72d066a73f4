package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spyglass-osint/spyglass/internal/database"
	"github.com/spyglass-osint/spyglass/internal/filter"
	"github.com/spyglass-osint/spyglass/internal/models"
)

// NewDeleteCommand creates the delete command: remove rows matching a
// filter. The filter is required, there is no implicit delete-all.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <family> where <filter>",
		Short: "Delete rows matching a filter",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			family, err := models.ParseFamily(args[0])
			if err != nil {
				return err
			}
			f, err := filter.Parse(args[1:])
			if err != nil {
				return err
			}

			db, _, err := opts.openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := deleteRows(db, family, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d rows\n", rows)
			return nil
		},
	}
}

func deleteRows(db *database.Database, family models.Family, f *filter.Filter) (int64, error) {
	switch family {
	case models.FamilyDomain:
		return database.Delete[models.Domain](db, f)
	case models.FamilySubdomain:
		return database.Delete[models.Subdomain](db, f)
	case models.FamilyIpAddr:
		return database.Delete[models.IpAddr](db, f)
	case models.FamilySubdomainIpAddr:
		return database.Delete[models.SubdomainIpAddr](db, f)
	case models.FamilyUrl:
		return database.Delete[models.Url](db, f)
	case models.FamilyEmail:
		return database.Delete[models.Email](db, f)
	case models.FamilyPhoneNumber:
		return database.Delete[models.PhoneNumber](db, f)
	case models.FamilyDevice:
		return database.Delete[models.Device](db, f)
	case models.FamilyNetwork:
		return database.Delete[models.Network](db, f)
	case models.FamilyNetworkDevice:
		return database.Delete[models.NetworkDevice](db, f)
	case models.FamilyAccount:
		return database.Delete[models.Account](db, f)
	case models.FamilyBreach:
		return database.Delete[models.Breach](db, f)
	case models.FamilyBreachEmail:
		return database.Delete[models.BreachEmail](db, f)
	default:
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownFamily, string(family))
	}
}
