package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a section from a runbook",
	Long:  `Extract one section of a runbook, for pasting into an incident channel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		section, _ := cmd.Flags().GetString("section")

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		runbook, err := Parse(content)
		if err != nil {
			return fmt.Errorf("parsing runbook: %w", err)
		}

		found := runbook.FindSection(section)
		if found == nil {
			return fmt.Errorf("section %q not found in %s", section, file)
		}

		fmt.Printf("## %s\n\n", found.Name)
		fmt.Println(found.Content)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sections of a runbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		runbook, err := Parse(content)
		if err != nil {
			return fmt.Errorf("parsing runbook: %w", err)
		}

		if runbook.Title != "" {
			fmt.Printf("%s\n\n", runbook.Title)
		}
		for _, section := range runbook.Sections {
			fmt.Println(section.Name)
		}

		return nil
	},
}

func init() {
	extractCmd.Flags().StringP("file", "f", "", "Path to the runbook file")
	extractCmd.Flags().StringP("section", "s", "", "Section to extract")
	_ = extractCmd.MarkFlagRequired("file")
	_ = extractCmd.MarkFlagRequired("section")

	listCmd.Flags().StringP("file", "f", "", "Path to the runbook file")
	_ = listCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(listCmd)
}
