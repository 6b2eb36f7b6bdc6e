package cli

import (
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [dir...]",
	Short: "Drop cached listings and notify views",
	Long: `Drop cached listings. With directories, only those are invalidated;
otherwise every cached listing is dropped and views are told to reload the
script home. The published events are printed.`,
	ValidArgsFunction: completeDirectories,
	RunE:              runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	p := s.registry.Default()
	defer s.watch()()

	if len(args) == 0 {
		p.RefreshAll()
		return nil
	}
	for _, arg := range args {
		p.NotifyDirectoryChanged(resolvePath(s.ops.CurrentDirectory(), arg))
	}
	return nil
}
