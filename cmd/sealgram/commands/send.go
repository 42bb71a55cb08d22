package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// send <message> --to <id> [--to <id> ...]: encrypt for the recipient
// set and persist the envelope.
func sendCmd() *cobra.Command {
	var to []string
	cmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Encrypt a message for a set of participants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			id, err := appCtx.Messages.Send(cmd.Context(), passphrase, to, args[0])
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&to, "to", nil, "recipient participant ID (repeatable)")
	return cmd
}

// read <messageID>: decrypt a stored message for this identity.
func readCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <messageID>",
		Short: "Decrypt a stored message addressed to you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			plaintext, err := appCtx.Messages.Read(cmd.Context(), passphrase, args[0])
			if err != nil {
				return err
			}
			fmt.Println(plaintext)
			return nil
		},
	}
}
