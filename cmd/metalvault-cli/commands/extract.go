package commands

import (
	"fmt"
	"os"

	"github.com/metalvault/metalvault/domain/domain_catalog/catalog_models"
	"github.com/metalvault/metalvault/parser"
	"github.com/spf13/cobra"
)

var extractTable bool

func init() {
	extractCmd.Flags().BoolVar(&extractTable, "table", false, "render a table instead of JSON")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <kind> <file>",
	Short: "Extracts a record from a saved catalog page.",
	Long:  "Extracts a record from a saved catalog page. Kinds: " + kindList(),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := catalog_models.ParsePageKind(args[0])
		if err != nil {
			return err
		}
		markup, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}

		record, err := parser.Extract(kind, markup)
		if err != nil {
			// 唱片目录的年份错误不影响输出
			fmt.Fprintln(os.Stderr, "warning:", err)
		}
		if record == nil {
			return fmt.Errorf("nothing extracted from %s", args[1])
		}
		return printRecord(os.Stdout, record, extractTable)
	},
}
