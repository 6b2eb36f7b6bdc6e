package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scriptfs",
	Short: "Script storage with cached, observable directory listings",
	Long: `scriptfs manages a directory of automation scripts (.js, .auto).

Listings are served from a bounded cache shared by every view in the
process. Creating, importing, renaming, deleting or downloading a script
updates the cached listing in place and notifies every subscribed view.

Configuration is read from scriptfs.yaml in the script home, overlaid by
SCRIPTFS_HOME, SCRIPTFS_EXTERNAL_ROOT and SCRIPTFS_CACHE_CAPACITY (a .env
file in the working directory is honoured), then by flags.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Name empty or already taken
  12 - Create, import, rename or delete failed
  13 - Download failed or cancelled`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("home", "", "Script home directory (default ~/Scripts)")
	rootCmd.PersistentFlags().String("external-root", "", "Storage root used by --all and file pickers (default ~)")
	rootCmd.PersistentFlags().Int("cache-capacity", 0, "Number of directory listings to cache")
	rootCmd.PersistentFlags().StringP("dir", "C", "", "Directory to operate in, relative to the script home (default: the home itself)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
