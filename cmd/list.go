package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chisel-ui/chisel/internal/extractor"
	"github.com/chisel-ui/chisel/internal/registry"
	"github.com/chisel-ui/chisel/internal/scanner"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List components discovered in the configured scan paths",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("json", false, "output as JSON")
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, logger, catalog, err := setup()
	if err != nil {
		return err
	}

	reg := registry.NewComponentRegistry()
	sc := scanner.New(reg, extractor.New(catalog), cfg.Components.ExcludePatterns)
	if err := sc.ScanPaths(cfg.Components.ScanPaths); err != nil {
		logger.Warn(cmd.Context(), err, "scan reported errors")
	}

	records := reg.GetAll()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if len(records) == 0 {
		fmt.Println("No components found. Check components.scan_paths in .chisel.yml.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tELEMENTS\tFILE")
	for _, rec := range records {
		elements := 0
		if rec.Structure != nil {
			elements = len(rec.Structure.Elements)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", rec.Name, elements, rec.FilePath)
	}
	return w.Flush()
}
