package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	slotsService int
	slotsDate    string
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List time slots for a service on a date",
	RunE:  runSlots,
}

func init() {
	slotsCmd.Flags().IntVar(&slotsService, "service", 0, "Service ID (required)")
	slotsCmd.Flags().StringVar(&slotsDate, "date", "", "Date in YYYY-MM-DD format (required)")
	slotsCmd.MarkFlagRequired("service")
	slotsCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(slotsCmd)
}

func runSlots(cmd *cobra.Command, args []string) error {
	slots, err := newClient().ListSlots(context.Background(), slotsDate, slotsService)
	if err != nil {
		return fmt.Errorf("failed to load slots: %w", err)
	}

	if len(slots) == 0 {
		fmt.Printf("No slots found for service %d on %s.\n", slotsService, slotsDate)
		return nil
	}

	green := color.New(color.FgGreen)
	for _, slot := range slots {
		if slot.Available {
			green.Printf("%-7s available  (slot %d)\n", slot.Time, slot.ID)
		} else {
			fmt.Printf("%-7s booked\n", slot.Time)
		}
	}
	return nil
}
