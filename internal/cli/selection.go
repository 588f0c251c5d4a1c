package cli

import "fmt"

type SelectCmd struct {
	Plants []string `arg:"" help:"Plant ids or names to toggle in the selection."`
}

func (c *SelectCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	for _, ref := range c.Plants {
		id, err := ctx.resolvePlant(ref)
		if err != nil {
			return err
		}
		ctx.Plants.ToggleSelect(id)
	}

	selected := ctx.Plants.SelectedIDs()
	fmt.Printf("%d plant(s) selected\n", len(selected))
	return nil
}

type SelectClearCmd struct{}

func (c *SelectClearCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	ctx.Plants.ClearSelection()
	fmt.Println("Selection cleared")
	return nil
}

type SelectListCmd struct{}

func (c *SelectListCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	ids := ctx.Plants.SelectedIDs()
	if len(ids) == 0 {
		fmt.Println("No plants selected")
		return nil
	}
	fmt.Println("Selected plants:")
	for _, id := range ids {
		p := ctx.Plants.FindActive(id)
		fmt.Printf("  %s (%s)\n", p.Name, p.ID)
	}
	return nil
}
