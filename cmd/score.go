package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/naveeng/ndrsim/core/model"
	"github.com/naveeng/ndrsim/core/severity"
)

var scoreFlags struct {
	category      string
	population    int64
	infraDamage   int
	accessibility int
	spreadRate    float64
	cascadingRisk int
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single hypothetical event and print the severity",
	RunE:  scoreEvent,
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&scoreFlags.category, "category", "flood", "disaster category")
	f.Int64Var(&scoreFlags.population, "population", 10000, "affected population")
	f.IntVar(&scoreFlags.infraDamage, "infra-damage", 0, "infrastructure damage percentage")
	f.IntVar(&scoreFlags.accessibility, "accessibility", 0, "accessibility difficulty percentage")
	f.Float64Var(&scoreFlags.spreadRate, "spread-rate", 0, "spread rate, category-specific units")
	f.IntVar(&scoreFlags.cascadingRisk, "cascading-risk", 0, "cascading risk percentage")
	rootCmd.AddCommand(scoreCmd)
}

func scoreEvent(cmd *cobra.Command, args []string) error {
	cat, err := model.ParseCategory(strings.ToUpper(scoreFlags.category))
	if err != nil {
		return err
	}
	ev := &model.DisasterEvent{
		ID:            "adhoc",
		Category:      cat,
		Region:        "adhoc",
		Created:       time.Now(),
		Population:    scoreFlags.population,
		InfraDamage:   model.ClampPercent(scoreFlags.infraDamage),
		Accessibility: model.ClampPercent(scoreFlags.accessibility),
		SpreadRate:    scoreFlags.spreadRate,
		CascadingRisk: model.ClampPercent(scoreFlags.cascadingRisk),
		Severity:      model.SeverityUnscored,
	}
	score, err := severity.DefaultEngine().Score(ev)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s severity=%d\n", cat, score)
	return nil
}
