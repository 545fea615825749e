package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/OlgaOrl/massage-booking/internal/flow"
)

var apiURL string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bookctl",
	Short: "Command-line client for the massage booking API",
	Long: `bookctl walks the same booking flow as the web widget: browse the
service catalog, list open time slots, hold a slot and book it, and
look up an existing confirmation.

The API base URL comes from --api, or the BOOKING_API_URL environment
variable, or defaults to http://localhost:8080.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Base URL of the booking API")
}

func newClient() *flow.Client {
	base := apiURL
	if base == "" {
		base = os.Getenv("BOOKING_API_URL")
	}
	if base == "" {
		base = "http://localhost:8080"
	}
	return flow.NewClient(base)
}
