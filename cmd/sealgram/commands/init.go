package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealgram/internal/crypto"
	"sealgram/internal/domain"
)

// init <id>: generate an identity key pair and store it encrypted.
func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <id>",
		Short: "Generate identity keys and store them securely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			kp, err := crypto.GenerateKeyPair()
			if err != nil {
				return err
			}
			id := domain.Identity{ID: args[0], Keys: kp}
			if err := appCtx.Identity.SaveIdentity(passphrase, id); err != nil {
				return err
			}
			fmt.Printf("Identity created.\nID: %s\nPublic key: %s\nFingerprint: %s\n",
				id.ID, kp.Public.B64(), crypto.Fingerprint(kp.Public))
			return nil
		},
	}
}
