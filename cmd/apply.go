package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chisel-ui/chisel/internal/extractor"
	"github.com/chisel-ui/chisel/internal/mutator"
	"github.com/chisel-ui/chisel/internal/validate"
)

var applyCmd = &cobra.Command{
	Use:   "apply <file> <element-id> <property> <value>",
	Short: "Apply a property change to a component file",
	Long: `Apply one visual edit to a component file as a surgical source
mutation. The element id comes from a preceding extract of the same file
contents; ids are only stable within one extraction pass.

By default the mutated source is printed to stdout; --write saves it back
to the file.`,
	Args: cobra.ExactArgs(4),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolP("write", "w", false, "write the result back to the file")
}

func runApply(cmd *cobra.Command, args []string) error {
	_, _, catalog, err := setup()
	if err != nil {
		return err
	}
	file, elementID, property, value := args[0], args[1], args[2], args[3]

	raw, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	source := string(raw)

	structure, err := extractor.New(catalog).Extract(source, "")
	if err != nil {
		return err
	}
	elem, ok := structure.FindElement(elementID)
	if !ok {
		return fmt.Errorf("element %q not found; run 'chisel extract %s' for current ids", elementID, file)
	}
	prop, ok := catalog.ResolveProperty(elem, property)
	if !ok {
		return fmt.Errorf("property %q is not editable on element %q", property, elementID)
	}
	if err := validate.Change(prop, value); err != nil {
		return err
	}

	mutated, err := mutator.New(catalog).ApplyChange(source, elem, prop, value)
	if err != nil {
		return err
	}

	if write, _ := cmd.Flags().GetBool("write"); write {
		info, err := os.Stat(file)
		if err != nil {
			return err
		}
		return os.WriteFile(file, []byte(mutated), info.Mode().Perm())
	}
	fmt.Print(mutated)
	return nil
}
