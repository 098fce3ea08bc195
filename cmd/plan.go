package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/lowaak/hiit-timer/internal/config"
	"github.com/lowaak/hiit-timer/internal/workout"
)

// Output formats of the plan command
const (
	formatTable = "table"
	formatYAML  = "yaml"
	formatJSON  = "json"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	totalStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	kindStyles = map[workout.Kind]lipgloss.Style{
		workout.KindWarmup:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		workout.KindHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		workout.KindLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		workout.KindBreak:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		workout.KindCooldown: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
)

// Column widths of the table format
const (
	colIndex    = 4
	colLabel    = 26
	colKind     = 10
	colDuration = 10
)

// planDocument is the yaml and json shape of a generated plan
type planDocument struct {
	TotalSeconds  int          `json:"total_seconds" yaml:"total_seconds"`
	HighIntervals int          `json:"high_intervals" yaml:"high_intervals"`
	Segments      workout.Plan `json:"segments" yaml:"segments"`
}

func newPlanCmd(v *viper.Viper) *cobra.Command {
	var format string

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the segments of the configured workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(v)
			if err != nil {
				return err
			}
			plan, err := workout.Generate(settings.Workout())
			if err != nil {
				return err
			}
			return writePlan(cmd.OutOrStdout(), plan, format)
		},
	}
	planCmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, yaml or json")
	return planCmd
}

func writePlan(w io.Writer, plan workout.Plan, format string) error {
	doc := planDocument{
		TotalSeconds:  plan.TotalSeconds(),
		HighIntervals: plan.HighIntervalCount(),
		Segments:      plan,
	}

	switch format {
	case formatTable:
		return writePlanTable(w, plan)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q, want %s, %s or %s", format, formatTable, formatYAML, formatJSON)
	}
}

func cell(style lipgloss.Style, width int, text string) string {
	return style.Width(width).Render(text)
}

func writePlanTable(w io.Writer, plan workout.Plan) error {
	plain := lipgloss.NewStyle()
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		cell(headerStyle, colIndex, "#"),
		cell(headerStyle, colLabel, "Segment"),
		cell(headerStyle, colKind, "Kind"),
		cell(headerStyle, colDuration, "Duration"),
		headerStyle.Render("Starts"),
	)
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for i, seg := range plan {
		style, ok := kindStyles[seg.Kind]
		if !ok {
			style = plain
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			cell(mutedStyle, colIndex, strconv.Itoa(i+1)),
			cell(style, colLabel, seg.Label),
			cell(plain, colKind, string(seg.Kind)),
			cell(plain, colDuration, workout.FormatClock(seg.DurationSeconds)),
			mutedStyle.Render(workout.FormatClock(plan.SecondsBefore(i))),
		)
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("Total %s, %d high intervals, %d segments",
		workout.FormatClock(plan.TotalSeconds()), plan.HighIntervalCount(), len(plan))
	_, err := fmt.Fprintln(w, totalStyle.Render(summary))
	return err
}
