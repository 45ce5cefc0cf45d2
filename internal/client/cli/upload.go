package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/cryptopix/internal/common"
	"github.com/dmitrijs2005/cryptopix/internal/cryptox"
	"github.com/spf13/cobra"
)

func newUploadCmd(opts *options) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Encrypt a file with the vault password and upload the envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			password, err := promptPassword(cmd.OutOrStdout(), "Vault password: ")
			if err != nil {
				return err
			}
			defer common.WipeBytes(password)

			envelope, err := cryptox.NewPasswordCipher().Encrypt(plaintext, string(password))
			if err != nil {
				return err
			}

			displayName := name
			if displayName == "" {
				displayName = filepath.Base(args[0])
			}
			contentType := mime.TypeByExtension(filepath.Ext(args[0]))
			if contentType == "" {
				contentType = "application/octet-stream"
			}

			info, err := opts.client().Upload(cmd.Context(), envelope, displayName, contentType)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%d bytes) as %s\n", info.DisplayName, info.SizeBytes, info.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the file name)")

	return cmd
}
