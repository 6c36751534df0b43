package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var outFile string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export memo history as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/records/export", apiFlag))
			if err != nil {
				return err
			}
			if len(data) == 0 {
				return fmt.Errorf("history is empty, nothing to export")
			}
			if outFile == "" {
				_, _ = fmt.Fprintln(os.Stdout, string(data))
				return nil
			}
			return os.WriteFile(outFile, data, 0o644)
		},
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "Write CSV to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
