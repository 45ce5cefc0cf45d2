package cli

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/cryptopix/internal/common"
	"github.com/dmitrijs2005/cryptopix/internal/cryptox"
	"github.com/spf13/cobra"
)

func newGetCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch an object and decrypt it with the vault password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, _, err := opts.client().FetchContent(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			password, err := promptPassword(cmd.OutOrStdout(), "Vault password: ")
			if err != nil {
				return err
			}
			defer common.WipeBytes(password)

			plaintext, err := cryptox.NewPasswordCipher().Decrypt(envelope, string(password))
			if err != nil {
				return err
			}

			target := output
			if target == "" {
				target = args[0]
			}
			if err := os.WriteFile(target, plaintext, 0o600); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "decrypted %d bytes to %s\n", len(plaintext), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to the object id)")

	return cmd
}
