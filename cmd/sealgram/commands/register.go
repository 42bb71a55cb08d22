package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sealgram/internal/crypto"
	"sealgram/internal/domain"
)

// register <id> <publicKeyB64>: add a participant to the directory.
func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <id> <publicKeyB64>",
		Short: "Add a participant's public key to the directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := crypto.FromB64(args[1])
			if err != nil {
				return fmt.Errorf("decode public key: %w", err)
			}
			if len(raw) != domain.KeySize {
				return fmt.Errorf("public key is %d bytes, want %d", len(raw), domain.KeySize)
			}
			var pub domain.PublicKey
			copy(pub[:], raw)

			if err := appCtx.Directory.Register(domain.Participant{ID: args[0], Public: pub}); err != nil {
				return err
			}
			fmt.Printf("registered %s (%s)\n", args[0], crypto.Fingerprint(pub))
			return nil
		},
	}
}

func participantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "participants",
		Short: "List directory entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := appCtx.Directory.List()
			if err != nil {
				return err
			}
			for _, p := range list {
				fmt.Printf("%s %s\n", p.ID, crypto.Fingerprint(p.Public))
			}
			return nil
		},
	}
}
