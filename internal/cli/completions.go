package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/scriptfs/internal/files/filter"
	"github.com/vvka-141/scriptfs/internal/samples"
)

// completeSampleNames provides shell completion for sample names.
func completeSampleNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	all, err := samples.NewLibrary().List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var matches []string
	for _, s := range all {
		if strings.HasPrefix(s.Name, toComplete) {
			matches = append(matches, s.Name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories completes folder paths relative to the working
// directory.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	s, err := newSession(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	parent, prefix := filepath.Split(toComplete)
	dirs, err := s.scanner.ScanDirectory(resolvePath(s.ops.CurrentDirectory(), parent), filter.DirectoriesOnly)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, d := range dirs {
		if strings.HasPrefix(d.Name, prefix) {
			matches = append(matches, parent+d.Name+"/")
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

// completeScriptPaths completes script and folder names in the working
// directory.
func completeScriptPaths(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	s, err := newSession(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var matches []string
	for e := range s.registry.Default().ListDirectory(s.ops.CurrentDirectory()) {
		if strings.HasPrefix(e.Name, toComplete) {
			matches = append(matches, displayName(e))
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
