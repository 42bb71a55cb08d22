package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealgram/internal/crypto"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Show this identity's public key fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			id, err := appCtx.Identity.LoadIdentity(passphrase)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", id.ID, crypto.Fingerprint(id.Keys.Public))
			return nil
		},
	}
}
