package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/scriptfs/internal/download"
	"github.com/vvka-141/scriptfs/internal/tui"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

var downloadFlags struct {
	saveDir   string
	overwrite bool
	temp      bool
}

var downloadCmd = &cobra.Command{
	Use:   "download <url>",
	Short: "Download a script",
	Long: `Download a script into the working directory (or --save-dir), named
after the last segment of the URL.

An existing file is only replaced with --overwrite; interactive sessions
are asked instead. --temp stores the download under a unique temporary
name outside the script home and prints its path.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringVar(&downloadFlags.saveDir, "save-dir", "", "Directory to save into (default: working directory)")
	downloadCmd.Flags().BoolVar(&downloadFlags.overwrite, "overwrite", false, "Replace an existing file")
	downloadCmd.Flags().BoolVar(&downloadFlags.temp, "temp", false, "Download to a temporary file")
}

func runDownload(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	rawURL := args[0]
	name := download.ParseFileName(rawURL)

	progress := tui.NewProgressDisplay(cmd.ErrOrStderr())
	progress.Start(name)
	onProgress := func(p download.Progress) { progress.Update(p.Percent()) }

	if downloadFlags.temp {
		entry, err := s.ops.TemporarilyDownload(commandContext(cmd), rawURL, onProgress)
		if err != nil {
			progress.Error(err.Error())
			return err
		}
		progress.Success(entry.Path)
		fmt.Fprintln(s.out, entry.Path)
		return nil
	}

	saveDir := resolvePath(s.ops.CurrentDirectory(), downloadFlags.saveDir)
	overwrite := downloadFlags.overwrite
	if !overwrite && s.fs.Exists(resolvePath(saveDir, name)) {
		overwrite = tui.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("%s exists. Overwrite?", name), false)
		if !overwrite {
			err := fmt.Errorf("%s: %w", name, scriptfs.ErrFileExists)
			progress.Error(err.Error())
			return err
		}
	}

	defer s.watchDir(saveDir)()
	entry, err := s.ops.Download(commandContext(cmd), rawURL, saveDir, overwrite, onProgress)
	if err != nil {
		progress.Error(err.Error())
		return err
	}
	progress.Success(entry.Path)
	return nil
}
