package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stlbnmaria/careplan/internal/config"
	"github.com/stlbnmaria/careplan/internal/ioadapter"
	"github.com/stlbnmaria/careplan/pkg/assembler"
	"github.com/stlbnmaria/careplan/pkg/instance"
	"github.com/stlbnmaria/careplan/pkg/model"
	"github.com/stlbnmaria/careplan/pkg/solver"
	"github.com/stlbnmaria/careplan/pkg/travel"
)

var solveDayOfMonth int

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a single day",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		bundle, err := ioadapter.LoadBundle(bundlePath)
		if err != nil {
			return err
		}

		caregivers := bundle.Caregivers()
		oracle := travel.New(bundle.TravelEdges(), logger).WithSelfEdges(caregiverIDs(caregivers))

		dayKey := strconv.Itoa(solveDayOfMonth)
		sessions := bundle.SessionsForDay(dayKey, solveDayOfMonth)

		in := instance.Build(sessions, caregivers, solveDayOfMonth, cfg.InstanceConfig(), logger)
		activeCaregivers := make(map[model.LocationID]model.Caregiver, len(in.Caregivers))
		for _, c := range in.Caregivers {
			activeCaregivers[c.ID] = c
		}
		asm := assembler.Assemble(in, oracle, activeCaregivers, cfg.AssemblerConfig(), logger)

		res, err := solver.Solve(cmd.Context(), in, asm, cfg.TimeLimit(), logger)
		if err != nil {
			return err
		}

		logger.Info("day solved",
			zap.String("status", res.Status.String()),
			zap.Bool("not_proven_optimal", res.NotProvenOptimal),
			zap.Float64("objective", res.ObjectiveValue),
			zap.Int("commute_minutes", res.TotalCommuteMinutes),
			zap.Int("short_gaps", res.ShortGapCount),
		)
		for _, r := range res.Routes {
			fmt.Printf("%s: %v\n", r.Caregiver, r.Sessions)
		}
		return nil
	},
}

func init() {
	solveCmd.Flags().IntVar(&solveDayOfMonth, "day", 1, "day-of-month to solve (1-31)")
	rootCmd.AddCommand(solveCmd)
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func caregiverIDs(cs []model.Caregiver) []model.LocationID {
	ids := make([]model.LocationID, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}
