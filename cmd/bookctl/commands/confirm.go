package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/OlgaOrl/massage-booking/internal/flow"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm <booking-id>",
	Short: "Look up a booking confirmation",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfirm,
}

func init() {
	rootCmd.AddCommand(confirmCmd)
}

func runConfirm(cmd *cobra.Command, args []string) error {
	booking, err := flow.LoadConfirmation(context.Background(), newClient(), args[0])
	if err != nil {
		if errors.Is(err, flow.ErrConfirmationUnavailable) {
			return fmt.Errorf("unable to load booking confirmation for %q", args[0])
		}
		return err
	}

	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Printf("%s\n", booking.Reference)
	fmt.Printf("Client:   %s\n", booking.ClientName)
	fmt.Printf("Service:  %s (%d min, $%.2f)\n", booking.ServiceName, booking.Duration, booking.Price)
	fmt.Printf("Date:     %s\n", flow.FormatConfirmationDate(booking.Date))
	fmt.Printf("Time:     %s\n", booking.TimeSlot)
	return nil
}
