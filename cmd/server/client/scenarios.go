package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/horror-bot/internal/catalog"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the built-in scenarios",
	Long:  `List every scenario id accepted by create_game with its greeting, objectives and public rules.`,
	RunE:  runScenarios,
}

func runScenarios(_ *cobra.Command, _ []string) error {
	c, err := catalog.Load()
	if err != nil {
		return err
	}

	ids := c.ScenarioIDs()
	fmt.Printf("Found %d scenarios:\n\n", len(ids))

	for _, id := range ids {
		s, err := c.Scenario(id)
		if err != nil {
			return err
		}
		fmt.Println(renderScenario(s, width))
	}

	return nil
}
