package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/growlog/internal/validation"
)

type MeasureHeightCmd struct {
	Value string `arg:"" help:"Height measurement."`
	Date  string `short:"d" help:"Measurement date (YYYY-MM-DD), defaults to today."`
}

func (c *MeasureHeightCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	value, err := validation.MeasurementValue(c.Value)
	if err != nil {
		return err
	}
	date := c.Date
	if date == "" {
		date = time.Now().Format(validation.DateLayout)
	}
	count, err := ctx.Plants.AddHeightToSelected(value, date)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded height %v on %s for %d plant(s)\n", value, date, count)
	return nil
}

type MeasureWeightCmd struct {
	Value string `arg:"" help:"Weight measurement."`
	Date  string `short:"d" help:"Measurement date (YYYY-MM-DD), defaults to today."`
}

func (c *MeasureWeightCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	value, err := validation.MeasurementValue(c.Value)
	if err != nil {
		return err
	}
	date := c.Date
	if date == "" {
		date = time.Now().Format(validation.DateLayout)
	}
	count, err := ctx.Plants.AddWeightToSelected(value, date)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded weight %v on %s for %d plant(s)\n", value, date, count)
	return nil
}
