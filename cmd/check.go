package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-InterviewScheduler/internal/availability"
	"github.com/m04kA/SMC-InterviewScheduler/internal/domain"
	conflictRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/conflict"
	interviewRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/interview"
	slotRepo "github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/slot"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/types"
)

func newCheckCmd(configPath *string) *cobra.Command {
	var (
		slotID  int64
		date    string
		timeStr string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a slot can be booked at the given date and time",
		Example: "  interview-scheduler check --slot 3 --date 2024-03-04\n" +
			"  interview-scheduler check --slot 3 --date 2024-03-04 --time 14:30",
		RunE: func(cmd *cobra.Command, args []string) error {
			if slotID <= 0 {
				return errors.New("--slot must be positive")
			}

			a, err := bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			slot, err := slotRepo.NewRepository(a.db).GetByID(cmd.Context(), slotID)
			if err != nil {
				return fmt.Errorf("get slot %d: %w", slotID, err)
			}

			loc, err := slot.Calendar.Location()
			if err != nil {
				return err
			}

			cand, err := parseCandidate(date, timeStr, loc)
			if err != nil {
				return err
			}

			validator := newValidator(a, interviewRepo.NewRepository(a.db), conflictRepo.NewRepository(a.db))
			verdict, err := validator.Check(cmd.Context(), cand, slot)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatVerdict(slot, cand, verdict))
			return nil
		},
	}

	cmd.Flags().Int64Var(&slotID, "slot", 0, "slot id")
	cmd.Flags().StringVar(&date, "date", "", "date in calendar timezone, YYYY-MM-DD (empty: no date)")
	cmd.Flags().StringVar(&timeStr, "time", "", "time of day HH:MM (empty: slot start)")
	_ = cmd.MarkFlagRequired("slot")

	return cmd
}

// parseCandidate дата и время в часовом поясе календаря; пустая дата даёт кандидата без даты
func parseCandidate(date, timeStr string, loc *time.Location) (availability.Candidate, error) {
	if date == "" {
		return availability.Candidate{}, nil
	}

	d, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		return availability.Candidate{}, fmt.Errorf("--date: %w", err)
	}
	cand := availability.Candidate{Date: d}

	if timeStr != "" {
		ts, err := types.NewTimeStringFromString(timeStr)
		if err != nil {
			return availability.Candidate{}, fmt.Errorf("--time: %w", err)
		}
		cand.Time = ts
	}

	return cand, nil
}

func formatVerdict(slot *domain.Slot, cand availability.Candidate, v availability.Verdict) string {
	out := fmt.Sprintf("slot=%d calendar=%d candidate=%q available=%t reason=%s",
		slot.ID, slot.CalendarID, cand.String(), v.Available, v.Reason)
	if v.ConflictID != 0 {
		out += fmt.Sprintf(" conflict=%d", v.ConflictID)
	}
	return out
}
