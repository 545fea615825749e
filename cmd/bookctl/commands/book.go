package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/OlgaOrl/massage-booking/internal/flow"
)

var (
	bookService int
	bookDate    string
	bookTime    string
	bookName    string
	bookEmail   string
	bookPhone   string
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a slot: hold it, fill in contact details, confirm",
	Long: `Book walks the full flow in one shot: pick the service, pick the
date, hold the requested time slot, validate the contact details and
submit the booking. The hold is released if anything fails after it
was placed.`,
	RunE: runBook,
}

func init() {
	bookCmd.Flags().IntVar(&bookService, "service", 0, "Service ID (required)")
	bookCmd.Flags().StringVar(&bookDate, "date", "", "Date in YYYY-MM-DD format (required)")
	bookCmd.Flags().StringVar(&bookTime, "time", "", "Slot time in HH:MM format (required)")
	bookCmd.Flags().StringVar(&bookName, "name", "", "Client name (required)")
	bookCmd.Flags().StringVar(&bookEmail, "email", "", "Client email (required)")
	bookCmd.Flags().StringVar(&bookPhone, "phone", "", "Client phone (required)")
	bookCmd.MarkFlagRequired("service")
	bookCmd.MarkFlagRequired("date")
	bookCmd.MarkFlagRequired("time")
	bookCmd.MarkFlagRequired("name")
	bookCmd.MarkFlagRequired("email")
	bookCmd.MarkFlagRequired("phone")
	rootCmd.AddCommand(bookCmd)
}

func runBook(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	session := flow.NewSession(newClient())

	if err := session.LoadServices(ctx); err != nil {
		return fmt.Errorf("failed to load services: %w", err)
	}
	if err := session.SelectService(bookService); err != nil {
		return err
	}
	if err := session.SelectDate(ctx, bookDate); err != nil {
		return err
	}

	slotID := 0
	for _, slot := range session.Slots() {
		if slot.Time == bookTime && slot.Available {
			slotID = slot.ID
			break
		}
	}
	if slotID == 0 {
		return fmt.Errorf("no available slot at %s on %s", bookTime, bookDate)
	}
	if err := session.SelectSlot(slotID); err != nil {
		return err
	}

	if err := session.Reserve(ctx); err != nil {
		return fmt.Errorf("failed to hold slot: %w", err)
	}
	display, _ := session.CountdownDisplay()
	fmt.Printf("Held slot %s for %s (expires in %s)\n", bookTime, bookDate, display)

	if err := session.SetName(bookName); err != nil {
		session.Cancel(ctx)
		return err
	}
	if err := session.SetEmail(bookEmail); err != nil {
		session.Cancel(ctx)
		return err
	}
	if err := session.SetPhone(bookPhone); err != nil {
		session.Cancel(ctx)
		return err
	}

	booking, err := session.Submit(ctx)
	if err != nil {
		session.Cancel(ctx)
		return fmt.Errorf("failed to submit booking: %w", err)
	}

	green := color.New(color.FgGreen, color.Bold)
	green.Printf("Booked: %s\n", booking.Reference)
	fmt.Printf("%s, %s at %s\n", booking.ServiceName, flow.FormatConfirmationDate(booking.Date), booking.TimeSlot)
	fmt.Printf("Confirmation sent to %s\n", booking.Email)
	return nil
}
