// Package cli implements the command-line client. Files are encrypted and
// decrypted locally; the server only ever receives sealed envelopes.
package cli

import (
	"os"

	"github.com/dmitrijs2005/cryptopix/internal/client/api"
	"github.com/spf13/cobra"
)

const (
	serverEnvKey = "CRYPTOPIX_SERVER"
	tokenEnvKey  = "CRYPTOPIX_TOKEN"
)

type options struct {
	server string
	token  string
}

func (o *options) client() *api.Client {
	return api.NewClient(o.server, o.token)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "cryptopix",
		Short:         "Cryptopix stores password-encrypted photos and videos on an untrusted server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", envOr(serverEnvKey, "http://localhost:8080"), "server base URL")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv(tokenEnvKey), "access token (defaults to $"+tokenEnvKey+")")

	cmd.AddCommand(
		newRegisterCmd(opts),
		newLoginCmd(opts),
		newUploadCmd(opts),
		newListCmd(opts),
		newGetCmd(opts),
		newRmCmd(opts),
	)

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
