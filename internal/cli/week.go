package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/timegrid/internal/dateutil"
	"github.com/julianstephens/timegrid/internal/merge"
	"github.com/julianstephens/timegrid/internal/models"
)

type WeekCmd struct {
	Date string `arg:"" help:"Any date in the week to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *WeekCmd) Run(cliCtx *Context) error {
	if err := cliCtx.Store.Load(); err != nil {
		return err
	}

	user, err := cliCtx.UserID()
	if err != nil {
		return err
	}

	pivot, err := parseDateArg(c.Date)
	if err != nil {
		return err
	}

	ctx := context.Background()

	slotsPerDay, ok, err := cliCtx.Store.FetchSlotsPerDay(ctx, user)
	if err != nil {
		return err
	}
	if !ok {
		slotsPerDay = models.DefaultSlotsPerDay
	}
	slotsPerDay = models.ClampSlotsPerDay(slotsPerDay)

	subjects, err := cliCtx.Store.FetchSubjects(ctx, user)
	if err != nil {
		return err
	}

	dateStrings := dateutil.WeekDateStrings(pivot)
	saved, err := cliCtx.Store.FetchMany(ctx, user, dateStrings)
	if err != nil {
		return err
	}

	for _, dateString := range dateStrings {
		var savedRecord *models.DailyRecord
		if record, ok := saved[dateString]; ok {
			savedRecord = &record
		}
		record := merge.Merge(dateString, savedRecord, slotsPerDay)

		fmt.Printf("%s (%d/%d done)\n", dateString, record.CompletedCount(), len(record.Slots))
		for _, slot := range record.Slots {
			fmt.Println(formatSlotLine(slot, subjects))
		}
		fmt.Println()
	}

	return nil
}
