package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	// create
	createCmd := &cobra.Command{
		Use:   "create MEMO_TEXT",
		Short: "Record a geotagged memo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"memo": args[0]}
			data, err := doPostJSON(fmt.Sprintf("%s/api/records", apiFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(createCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List memo history, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("%s/api/records", apiFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(listCmd)

	// refresh
	refreshCmd := &cobra.Command{
		Use:   "refresh RECORD_ID",
		Short: "Re-resolve the address of one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON(fmt.Sprintf("%s/api/records/%s/refresh", apiFlag, args[0]), nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(refreshCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete RECORD_ID",
		Short: "Delete one record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doDelete(fmt.Sprintf("%s/api/records/%s", apiFlag, args[0]))
		},
	}
	rootCmd.AddCommand(deleteCmd)
}
