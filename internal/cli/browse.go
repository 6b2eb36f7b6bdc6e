package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vvka-141/scriptfs/internal/tui"
	"github.com/vvka-141/scriptfs/internal/tui/browser"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse scripts interactively",
	Long: `Open a full-screen browser on the script home.

Keys: enter open • backspace parent • n new script • N new folder •
r rename • d delete • R refresh all • q quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !tui.IsInteractive() {
		return errors.New("browse requires an interactive terminal; use 'scriptfs shell' or 'scriptfs ls' instead")
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	return browser.Run(s.registry.Default(), s.ops)
}
