package cli

import (
	"fmt"

	"github.com/dmitrijs2005/cryptopix/internal/common"
	"github.com/spf13/cobra"
)

func newRegisterCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "register <login>",
		Short: "Create an account on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(cmd.OutOrStdout(), "Login password: ")
			if err != nil {
				return err
			}
			defer common.WipeBytes(password)

			if err := opts.client().Register(cmd.Context(), args[0], string(password)); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "account created, now run: cryptopix login", args[0])
			return nil
		},
	}
}

func newLoginCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login <login>",
		Short: "Obtain an access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword(cmd.OutOrStdout(), "Login password: ")
			if err != nil {
				return err
			}
			defer common.WipeBytes(password)

			token, err := opts.client().Login(cmd.Context(), args[0], string(password))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "export "+tokenEnvKey+"="+token)
			return nil
		},
	}
}
