package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chisel-ui/chisel/internal/extractor"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract the editable structure of a component file",
	Long: `Parse a JSX/TSX component file and print its extracted structure as
JSON: the element tree with stable ids for this pass and the editable
properties synthesized from class names, attributes, and text content.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().String("name", "", "component name to extract (default: first exported)")
}

func runExtract(cmd *cobra.Command, args []string) error {
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
	out, err := json.MarshalIndent(structure, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
