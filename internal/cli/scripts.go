package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var newFlags struct {
	content   string
	fromStdin bool
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a script",
	Long: `Create <name>.js in the working directory.

Content can be given with --content or piped with --stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runMkdir,
}

var importFlags struct {
	name string
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Copy a file into the working directory",
	Long: `Copy a file into the working directory, keeping its extension.

The copy keeps the source's name unless --name is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var renameCmd = &cobra.Command{
	Use:               "rename <path> <new-name>",
	Short:             "Rename a script or folder",
	Long:              `Rename a script or folder. A script keeps its extension: "rename a.js b" yields b.js.`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeScriptPaths,
	RunE:              runRename,
}

var rmCmd = &cobra.Command{
	Use:               "rm <path>",
	Short:             "Delete a script or folder (recursively)",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeScriptPaths,
	RunE:              runRm,
}

func init() {
	rootCmd.AddCommand(newCmd, mkdirCmd, importCmd, renameCmd, rmCmd)

	newCmd.Flags().StringVar(&newFlags.content, "content", "", "Script content")
	newCmd.Flags().BoolVar(&newFlags.fromStdin, "stdin", false, "Read script content from stdin")
	importCmd.Flags().StringVar(&importFlags.name, "name", "", "Name of the copy, without extension")
}

func runNew(cmd *cobra.Command, args []string) error {
	if newFlags.fromStdin && newFlags.content != "" {
		return fmt.Errorf("--content and --stdin are mutually exclusive")
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	content := newFlags.content
	if newFlags.fromStdin {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		content = string(data)
	}

	defer s.watch()()
	_, err = s.ops.NewScriptFile(args[0], content)
	return err
}

func runMkdir(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.watch()()
	_, err = s.ops.NewDirectory(args[0])
	return err
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.watch()()

	_, err = s.ops.ImportFile(commandContext(cmd), resolvePath(s.ops.CurrentDirectory(), args[0]), importFlags.name)
	return err
}

func runRename(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	file, err := s.entry(args[0])
	if err != nil {
		return err
	}
	defer s.watchDir(file.Dir())()
	_, err = s.ops.Rename(file, args[1])
	return err
}

func runRm(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	file, err := s.entry(args[0])
	if err != nil {
		return err
	}
	defer s.watchDir(file.Dir())()
	return s.ops.Delete(file)
}
