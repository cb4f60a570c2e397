package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/timegrid/internal/models"
)

type SettingsCmd struct {
	SlotsPerDay int `help:"Set the number of slots per day (clamped to 2-6)." default:"-1"`
}

func (c *SettingsCmd) Run(cliCtx *Context) error {
	if err := cliCtx.Store.Load(); err != nil {
		return err
	}

	user, err := cliCtx.UserID()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if c.SlotsPerDay >= 0 {
		clamped := models.ClampSlotsPerDay(c.SlotsPerDay)
		if err := cliCtx.Store.SaveSlotsPerDay(ctx, user, clamped); err != nil {
			return err
		}
		fmt.Printf("Slots per day set to %d\n", clamped)
		return nil
	}

	count, ok, err := cliCtx.Store.FetchSlotsPerDay(ctx, user)
	if err != nil {
		return err
	}
	if !ok {
		count = models.DefaultSlotsPerDay
	}

	mode, _, err := cliCtx.Store.FetchDisplayMode(ctx, user)
	if err != nil {
		mode = models.DefaultDisplayMode
	}

	fmt.Printf("Slots per day: %d\n", models.ClampSlotsPerDay(count))
	fmt.Printf("Display mode:  %s\n", mode)
	return nil
}
