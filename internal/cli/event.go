package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/growlog/internal/validation"
)

type EventAddCmd struct {
	Type  string `arg:"" help:"Event type (e.g. Watered)."`
	Date  string `short:"d" help:"Event date (YYYY-MM-DD), defaults to today."`
	Plant string `short:"p" help:"Target a single plant by id or name instead of the selection."`
}

func (c *EventAddCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = time.Now().Format(validation.DateLayout)
	}

	if c.Plant != "" {
		id, err := ctx.resolvePlant(c.Plant)
		if err != nil {
			return err
		}
		if err := ctx.Plants.AddEventToPlant(id, c.Type, date); err != nil {
			return err
		}
		fmt.Printf("Logged %q on %s\n", c.Type, date)
		return nil
	}

	count, err := ctx.Plants.AddEventToSelected(c.Type, date)
	if err != nil {
		return err
	}
	fmt.Printf("Logged %q on %s for %d plant(s)\n", c.Type, date, count)
	return nil
}

type EventRemoveCmd struct {
	Plant string `arg:"" help:"Plant id or name."`
	Index int    `arg:"" help:"Event position, starting at 0."`
}

func (c *EventRemoveCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	id, err := ctx.resolvePlant(c.Plant)
	if err != nil {
		return err
	}
	if !ctx.Plants.RemoveEventFromPlant(id, c.Index) {
		return fmt.Errorf("no event at index %d", c.Index)
	}
	fmt.Println("Event removed")
	return nil
}

type EventListCmd struct {
	Plant string `arg:"" help:"Plant id or name."`
}

func (c *EventListCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	id, err := ctx.resolvePlant(c.Plant)
	if err != nil {
		return err
	}
	p := ctx.Plants.FindActive(id)
	if len(p.Events) == 0 {
		fmt.Println("No events logged")
		return nil
	}

	fmt.Printf("Events for %s:\n", p.Name)
	for i, ev := range p.Events {
		fmt.Printf("  %3d  %s  %s\n", i, ev.Date, ev.Type)
	}
	return nil
}
