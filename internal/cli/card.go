package cli

import "fmt"

type CardAddCmd struct {
	Label   string `arg:"" help:"Card label, logged as the event type."`
	Details string `arg:"" help:"Auxiliary description."`
	Icon    string `help:"Display glyph."`
}

func (c *CardAddCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	card, err := ctx.Cards.AddQuickCard(c.Label, c.Details, c.Icon)
	if err != nil {
		return err
	}
	fmt.Printf("Added quick card: %s %s (ID: %s)\n", card.Icon, card.Label, card.ID)
	return nil
}

type CardListCmd struct{}

func (c *CardListCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	cards := ctx.Cards.Sorted()
	if len(cards) == 0 {
		fmt.Println("No quick cards found")
		return nil
	}

	fmt.Println("Quick cards:")
	for _, card := range cards {
		pin := " "
		if card.Pinned {
			pin = "📌"
		}
		fmt.Printf("  %s %s %s - %s\n", pin, card.Icon, card.Label, card.InputDetails)
		fmt.Printf("      ID: %s\n", card.ID)
	}
	return nil
}

type CardDeleteCmd struct {
	ID    string `arg:"" help:"Quick card id."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *CardDeleteCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	if !c.Force && !confirm("Delete this quick card?") {
		fmt.Println("Delete cancelled.")
		return nil
	}
	if !ctx.Cards.DeleteQuickCard(c.ID) {
		return fmt.Errorf("quick card not found: %s", c.ID)
	}
	fmt.Println("Quick card deleted")
	return nil
}

type CardPinCmd struct {
	ID    string `arg:"" help:"Quick card id."`
	Unpin bool   `help:"Unpin instead of pin."`
}

func (c *CardPinCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	if !ctx.Cards.SetPinned(c.ID, !c.Unpin) {
		return fmt.Errorf("quick card not found: %s", c.ID)
	}
	if c.Unpin {
		fmt.Println("Quick card unpinned")
	} else {
		fmt.Println("Quick card pinned")
	}
	return nil
}

type CardApplyCmd struct {
	Label string `arg:"" help:"Quick card label."`
	Plant string `arg:"" help:"Target plant id or name."`
}

func (c *CardApplyCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	card := ctx.Cards.FindByLabel(c.Label)
	if card == nil {
		return fmt.Errorf("quick card not found: %s", c.Label)
	}
	id, err := ctx.resolvePlant(c.Plant)
	if err != nil {
		return err
	}
	if err := ctx.Cards.ApplyToPlant(id, card); err != nil {
		return err
	}
	fmt.Printf("Applied %q to plant\n", card.Label)
	return nil
}
