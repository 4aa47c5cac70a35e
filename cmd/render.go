package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chisel-ui/chisel/internal/sandbox"
)

var renderCmd = &cobra.Command{
	Use:   "render <preview-file> [component-file]",
	Short: "Compile and execute a preview through the sandbox",
	Long: `Run the live rendering pipeline: strip module syntax, transpile the
markup to function calls, execute the preview inside the embedded
JavaScript sandbox, and print the serialized HTML. The optional component
file is concatenated ahead of the preview so the preview can reference it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().Duration("timeout", 2*time.Second, "execution timeout")
}

func runRender(cmd *cobra.Command, args []string) error {
	preview, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var component []byte
	if len(args) == 2 {
		component, err = os.ReadFile(args[1])
		if err != nil {
			return err
		}
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")

	sb := sandbox.New(sandbox.WithTimeout(timeout))
	result, err := sb.Compile(context.Background(), string(preview), string(component))
	if err != nil {
		return err
	}
	fmt.Println(result.HTML)
	return nil
}
