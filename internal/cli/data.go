package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/timegrid/internal/stats"
)

type DataCmd struct {
	Weeks int `help:"Number of trailing weeks to summarize." default:"20"`
}

func (c *DataCmd) Run(cliCtx *Context) error {
	if err := cliCtx.Store.Load(); err != nil {
		return err
	}

	user, err := cliCtx.UserID()
	if err != nil {
		return err
	}

	summary, err := stats.Load(context.Background(), cliCtx.Store, user, time.Now())
	if err != nil {
		return err
	}

	days := summary.Days
	if c.Weeks > 0 && c.Weeks*7 < len(days) {
		days = days[len(days)-c.Weeks*7:]
	}

	fmt.Println("Contribution history:")
	for _, day := range days {
		if day.CompletedCount == 0 {
			continue
		}
		fmt.Printf("  %s  %d/%d completed\n", day.DateString, day.CompletedCount, day.TotalSlots)
	}

	if len(summary.Subjects) == 0 {
		fmt.Println("\nNo completed time recorded yet.")
		return nil
	}

	fmt.Println("\nTotals by subject:")
	for _, subject := range summary.Subjects {
		hours := subject.TotalMinutes / 60
		minutes := subject.TotalMinutes % 60
		fmt.Printf("  %-20s %3dh %02dm\n", subject.Name, hours, minutes)
	}

	return nil
}
