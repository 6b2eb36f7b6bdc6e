package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

var lsFlags struct {
	all  bool
	long bool
}

var lsCmd = &cobra.Command{
	Use:   "ls [dir]",
	Short: "List a directory",
	Long: `List the scripts and folders of a directory.

Without arguments the working directory (--dir, default the script home)
is listed. Only script files are shown unless --all is given, which lists
every file through the unfiltered external storage provider.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeDirectories,
	RunE:              runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolVarP(&lsFlags.all, "all", "a", false, "List every file, not only scripts")
	lsCmd.Flags().BoolVarP(&lsFlags.long, "long", "l", false, "Show size and modification time")
}

func runLs(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	dir := s.ops.CurrentDirectory()
	if len(args) == 1 {
		dir = resolvePath(dir, args[0])
	}

	var entries []scriptfs.Entry
	for e := range s.provider(dir, lsFlags.all).ListDirectory(dir) {
		entries = append(entries, e)
	}
	printEntries(s.out, entries, lsFlags.long)
	return nil
}

func printEntries(w io.Writer, entries []scriptfs.Entry, long bool) {
	if !long {
		for _, e := range entries {
			fmt.Fprintln(w, displayName(e))
		}
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", e.Size, e.ModTime.Format("2006-01-02 15:04"), displayName(e))
	}
	tw.Flush()
}

func displayName(e scriptfs.Entry) string {
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name
}
