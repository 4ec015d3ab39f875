package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballcore/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List all registered scenarios",
	Long: `Shows the built-in starting arrangements. Commands that take a
scenario also accept a path to a scenario YAML file.`,
	Run: runScenarios,
}

func runScenarios(_ *cobra.Command, _ []string) {
	items := scenario.List()

	if len(items) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range items {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")

	for _, s := range items {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'ballcore watch <id>' to watch a scenario.")
}
