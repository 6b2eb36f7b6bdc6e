package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vvka-141/scriptfs/internal/samples"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List or import bundled sample scripts",
}

var samplesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundled samples",
	Args:  cobra.NoArgs,
	RunE:  runSamplesList,
}

var samplesImportFlags struct {
	as string
}

var samplesImportCmd = &cobra.Command{
	Use:               "import <sample>",
	Short:             "Copy a sample into the working directory",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeSampleNames,
	RunE:              runSamplesImport,
}

func init() {
	rootCmd.AddCommand(samplesCmd)
	samplesCmd.AddCommand(samplesListCmd, samplesImportCmd)
	samplesImportCmd.Flags().StringVar(&samplesImportFlags.as, "as", "", "Name of the copy, without extension")
}

func runSamplesList(cmd *cobra.Command, args []string) error {
	all, err := samples.NewLibrary().List()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, s := range all {
		fmt.Fprintf(tw, "%s\t%s\n", s.Category, s.Name+s.Ext())
	}
	return tw.Flush()
}

func runSamplesImport(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	sample, err := s.ops.Samples().Find(args[0])
	if err != nil {
		return err
	}

	defer s.watch()()
	_, err = s.ops.ImportSample(commandContext(cmd), sample, samplesImportFlags.as)
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
