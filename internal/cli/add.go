package cli

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spyglass-osint/spyglass/internal/database"
	"github.com/spyglass-osint/spyglass/internal/models"
)

// NewAddCommand creates the add command: manually seed single-value
// entities into the workspace. The bulk of the data comes from the
// discovery pipeline; this is the investigator's way to plant a starting
// point or amend by hand.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entity to the workspace",
	}
	cmd.AddCommand(
		newAddSubcommand(opts, "domain", func(value string) (models.Insert, error) {
			return &models.NewDomain{Value: value}, nil
		}),
		newAddSubcommand(opts, "ipaddr", newIpAddrInsert),
		newAddSubcommand(opts, "email", func(value string) (models.Insert, error) {
			return &models.NewEmail{Value: value}, nil
		}),
		newAddSubcommand(opts, "phonenumber", func(value string) (models.Insert, error) {
			if !strings.HasPrefix(value, "+") {
				return nil, fmt.Errorf("phone number must be in E.164 notation: %q", value)
			}
			return &models.NewPhoneNumber{Value: value}, nil
		}),
		newAddSubcommand(opts, "network", func(value string) (models.Insert, error) {
			return &models.NewNetwork{Value: value}, nil
		}),
		newAddSubcommand(opts, "breach", func(value string) (models.Insert, error) {
			return &models.NewBreach{Value: value}, nil
		}),
	)
	return cmd
}

func newAddSubcommand(opts *RootOptions, use string, build func(value string) (models.Insert, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <value>",
		Short: "Add a " + use,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj, err := build(args[0])
			if err != nil {
				return err
			}

			db, _, err := opts.openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			change, err := db.InsertGeneric(obj)
			if err != nil {
				return err
			}
			printChange(cmd, change, args[0])
			return nil
		},
	}
}

func newIpAddrInsert(value string) (models.Insert, error) {
	ip := net.ParseIP(value)
	if ip == nil {
		return nil, fmt.Errorf("invalid ip address: %q", value)
	}
	family := "6"
	if ip.To4() != nil {
		family = "4"
	}
	return &models.NewIpAddr{Family: family, Value: ip.String()}, nil
}

func printChange(cmd *cobra.Command, change *database.Change, value string) {
	out := cmd.OutOrStdout()
	switch change.Kind {
	case database.Inserted:
		fmt.Fprintf(out, "Added %q\n", value)
	case database.Updated:
		fmt.Fprintf(out, "Updated %q (%s)\n", value, models.Describe(change.Update))
	case database.Unchanged:
		fmt.Fprintf(out, "Unchanged %q\n", value)
	case database.Rejected:
		fmt.Fprintf(out, "Not adding %q, value is out of scope\n", value)
	}
}
