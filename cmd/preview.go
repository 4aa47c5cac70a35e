package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chisel-ui/chisel/internal/extractor"
	"github.com/chisel-ui/chisel/internal/renderer"
)

var previewCmd = &cobra.Command{
	Use:     "preview <file>",
	Aliases: []string{"p"},
	Short:   "Print the structural preview HTML for a component file",
	Long: `Extract a component and render the fast structural preview: primitive
elements become their HTML counterparts, unknown elements become labeled
placeholders. No compilation runs; use 'chisel render' for the sandbox.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().String("name", "", "component name to preview (default: first exported)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	_, _, catalog, err := setup()
	if err != nil {
		return err
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("name")

	structure, err := extractor.New(catalog).Extract(string(source), name)
	if err != nil {
		return err
	}
	html, err := renderer.New(catalog).Render(structure, nil)
	if err != nil {
		return err
	}
	fmt.Println(html)
	return nil
}
