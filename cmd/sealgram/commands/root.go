package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sealgram/internal/app"
)

var (
	home       string
	passphrase string
	appCtx     *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:   "sealgram",
		Short: "Multi-recipient message encryption and device linking",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".sealgram")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			appCtx = app.New(app.Config{Home: home})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				appCtx.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.sealgram)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to protect keys")

	root.AddCommand(initCmd(), fingerprintCmd(), registerCmd(), participantsCmd(), sendCmd(), readCmd(), linkCmd())
	return root.Execute()
}
