package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"sealgram/internal/domain"
	"sealgram/internal/protocol/provision"
)

// link drives the device-provisioning handshake. Transporting the
// printed values between devices (QR code, copy/paste) is up to the
// operator; this core only derives and uses the shared key.
func linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Device-linking handshake",
	}
	cmd.AddCommand(linkNewCmd(), linkSealCmd(), linkOpenCmd())
	return cmd
}

// link new: start a linking attempt and print our ephemeral public key.
func linkNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a linking attempt and print the ephemeral public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := provision.NewSession()
			if err != nil {
				return err
			}
			if err := appCtx.Files.SaveLinkSession(sess.Ephemeral); err != nil {
				return err
			}
			fmt.Println(sess.Ephemeral.Public.B64())
			return nil
		},
	}
}

// link seal --peer <pubB64> --secret <presharedB64>: seal this
// device's identity keys for the peer.
func linkSealCmd() *cobra.Command {
	var peer, secret string
	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Seal this identity's keys for the linking peer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			sess, err := resumeLinkSession(peer, secret)
			if err != nil {
				return err
			}
			defer sess.Discard()

			id, err := appCtx.Identity.LoadIdentity(passphrase)
			if err != nil {
				return err
			}
			payload, err := sess.Seal(id)
			if err != nil {
				return err
			}
			out, err := json.Marshal(payload)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&peer, "peer", "", "peer's ephemeral public key (base64)")
	cmd.Flags().StringVar(&secret, "secret", "", "pre-shared secret (base64)")
	_ = cmd.MarkFlagRequired("peer")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}

// link open --peer <pubB64> --secret <presharedB64> <payloadJSON>:
// open a sealed payload from the peer and store the received identity.
func linkOpenCmd() *cobra.Command {
	var peer, secret string
	cmd := &cobra.Command{
		Use:   "open <payloadJSON>",
		Short: "Open a sealed payload from the linking peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			sess, err := resumeLinkSession(peer, secret)
			if err != nil {
				return err
			}
			defer sess.Discard()

			var payload domain.SealedPayload
			if err := json.Unmarshal([]byte(args[0]), &payload); err != nil {
				return fmt.Errorf("decode payload: %w", err)
			}
			var id domain.Identity
			if err := sess.Open(payload, &id); err != nil {
				return err
			}
			if err := appCtx.Identity.SaveIdentity(passphrase, id); err != nil {
				return err
			}
			if err := appCtx.Files.ClearLinkSession(); err != nil {
				return err
			}
			fmt.Printf("linked as %s\n", id.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&peer, "peer", "", "peer's ephemeral public key (base64)")
	cmd.Flags().StringVar(&secret, "secret", "", "pre-shared secret (base64)")
	_ = cmd.MarkFlagRequired("peer")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}

func resumeLinkSession(peerPubB64, presharedB64 string) (*provision.Session, error) {
	kp, ok, err := appCtx.Files.LoadLinkSession()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no pending link attempt; run 'link new' first")
	}
	sess := &provision.Session{Ephemeral: kp}
	if err := sess.Derive(peerPubB64, presharedB64); err != nil {
		return nil, err
	}
	return sess, nil
}
