package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stlbnmaria/careplan/internal/ioadapter"
	"github.com/stlbnmaria/careplan/pkg/batch"
	"github.com/stlbnmaria/careplan/pkg/travel"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Solve every day present in the input bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		b, err := ioadapter.LoadBundle(bundlePath)
		if err != nil {
			return err
		}

		caregivers := b.Caregivers()
		oracle := travel.New(b.TravelEdges(), logger).WithSelfEdges(caregiverIDs(caregivers))

		days := make([]batch.DaySpec, 0, len(b.Sessions))
		for key := range b.Sessions {
			dom, err := strconv.Atoi(key)
			if err != nil {
				logger.Warn("skipping non-numeric day key", zap.String("key", key))
				continue
			}
			days = append(days, batch.DaySpec{DayOfMonth: dom, Sessions: b.SessionsForDay(key, dom)})
		}
		sort.Slice(days, func(i, j int) bool { return days[i].DayOfMonth < days[j].DayOfMonth })

		results := batch.Run(cmd.Context(), days, caregivers, oracle, batch.Config{
			InstanceConfig:  cfg.InstanceConfig(),
			AssemblerConfig: cfg.AssemblerConfig(),
			TimeLimit:       cfg.TimeLimit(),
			Workers:         cfg.Workers,
		}, logger)

		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("day %d: error: %v\n", r.DayOfMonth, r.Err)
				continue
			}
			fmt.Printf("day %d: %s objective=%.2f commute_min=%d short_gaps=%d\n",
				r.DayOfMonth, r.Result.Status, r.Result.ObjectiveValue, r.Result.TotalCommuteMinutes, r.Result.ShortGapCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
