package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var servicesJSON bool

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the massage service catalog",
	RunE:  runServices,
}

func init() {
	servicesCmd.Flags().BoolVar(&servicesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(servicesCmd)
}

func runServices(cmd *cobra.Command, args []string) error {
	services, err := newClient().ListServices(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load services: %w", err)
	}

	if servicesJSON {
		data, err := json.MarshalIndent(services, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%-4s %-25s %-10s %s\n", "ID", "SERVICE", "DURATION", "PRICE")
	for _, svc := range services {
		fmt.Printf("%-4d %-25s %-10s $%.2f\n", svc.ID, svc.Name, fmt.Sprintf("%d min", svc.Duration), svc.Price)
	}
	return nil
}
