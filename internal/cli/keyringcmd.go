package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spyglass-osint/spyglass/internal/keyring"
)

// NewKeyringCommand creates the keyring command group for managing API
// credentials. Keys are addressed as namespace:name, e.g. "shodan:api".
func NewKeyringCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyring",
		Short: "Manage API credentials",
	}
	cmd.AddCommand(
		newKeyringAddCommand(opts),
		newKeyringGetCommand(opts),
		newKeyringDeleteCommand(opts),
		newKeyringListCommand(opts),
	)
	return cmd
}

func newKeyringAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <namespace:name> [secret]",
		Short: "Add a new key to the keyring",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keyring.ParseKeyName(args[0])
			if err != nil {
				return err
			}
			var secret *string
			if len(args) == 2 {
				secret = &args[1]
			}

			kr, err := opts.openKeyring()
			if err != nil {
				return err
			}
			return kr.Insert(key, secret)
		},
	}
}

func newKeyringGetCommand(opts *RootOptions) *cobra.Command {
	var secretOnly bool

	cmd := &cobra.Command{
		Use:   "get <namespace:name>",
		Short: "Get a key from the keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := keyring.ParseKeyName(args[0])
			if err != nil {
				return err
			}

			kr, err := opts.openKeyring()
			if err != nil {
				return err
			}

			key := kr.Get(name)
			if key == nil {
				return nil
			}

			out := cmd.OutOrStdout()
			if secretOnly {
				if key.Secret != nil {
					fmt.Fprintln(out, *key.Secret)
				}
				return nil
			}
			fmt.Fprintf(out, "Namespace:    %q\n", name.Namespace)
			fmt.Fprintf(out, "Access Key:   %q\n", name.Name)
			if key.Secret != nil {
				fmt.Fprintf(out, "Secret:       %q\n", *key.Secret)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&secretOnly, "secret-only", false, "only output the secret key")
	return cmd
}

func newKeyringDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <namespace:name>",
		Short: "Delete a key from the keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := keyring.ParseKeyName(args[0])
			if err != nil {
				return err
			}

			kr, err := opts.openKeyring()
			if err != nil {
				return err
			}
			return kr.Delete(key)
		},
	}
}

func newKeyringListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [namespace]",
		Short: "List keys in the keyring",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kr, err := opts.openKeyring()
			if err != nil {
				return err
			}

			var keys []keyring.KeyName
			if len(args) == 1 {
				keys = kr.ListFor(args[0])
			} else {
				keys = kr.List()
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key.String())
			}
			return nil
		},
	}
}
