package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	ucAppointment "github.com/BruksfildServices01/workshop-scheduler/internal/usecase/appointment"
)

func newAvailabilityCmd() *cobra.Command {
	var (
		workshop string
		date     string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Print free, busy and past slots of a workshop day",
		RunE: func(cmd *cobra.Command, args []string) error {
			workshopID, err := uuid.Parse(workshop)
			if err != nil {
				return fmt.Errorf("--workshop: %w", err)
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := ucAppointment.NewGetAvailability(a.deps()).Execute(cmd.Context(), workshopID, date)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printAvailability(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&workshop, "workshop", "", "workshop id")
	cmd.Flags().StringVar(&date, "date", "", "local date, YYYY-MM-DD")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("workshop")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func printAvailability(cmd *cobra.Command, a *domain.Availability) {
	cmd.Printf("workshop %s  date %s  capacity %d\n", a.WorkshopID, a.Date, a.Capacity)
	cmd.Printf("free: %s\n", joinOrDash(a.FreeSlots))
	cmd.Printf("busy: %s\n", joinOrDash(a.BusySlots))
	cmd.Printf("past: %s\n", joinOrDash(a.PastSlots))
}

func joinOrDash(slots []string) string {
	if len(slots) == 0 {
		return "-"
	}
	return strings.Join(slots, " ")
}
