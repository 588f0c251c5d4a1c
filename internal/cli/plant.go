package cli

import (
	"fmt"

	"github.com/julianstephens/growlog/internal/models"
)

type PlantAddCmd struct {
	Name      string `arg:"" help:"Plant name."`
	SeedDate  string `short:"s" help:"Seed date (YYYY-MM-DD)." required:""`
	Strain    string `help:"Strain name."`
	Medium    string `help:"Grow medium."`
	Light     string `help:"Light cycle."`
	Nutrients string `help:"Nutrient schedule."`
}

func (c *PlantAddCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	p, err := ctx.Plants.AddPlant(c.Name, c.SeedDate, models.PlantOptions{
		Strain:           c.Strain,
		GrowMedium:       c.Medium,
		LightCycle:       c.Light,
		NutrientSchedule: c.Nutrients,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added plant: %s (ID: %s)\n", p.Name, p.ID)
	return nil
}

type PlantListCmd struct {
	Archived bool   `help:"Show archived plants instead of active ones."`
	Phase    string `help:"Filter active plants by growth phase."`
}

func (c *PlantListCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	plants := ctx.Plants.Active()
	if c.Archived {
		plants = ctx.Plants.Archived()
	} else if c.Phase != "" {
		ctx.Plants.SetFilter(c.Phase)
		plants = ctx.Plants.Filtered()
	}

	if len(plants) == 0 {
		fmt.Println("No plants found")
		return nil
	}

	fmt.Println("Plants:")
	for _, p := range plants {
		marker := " "
		if ctx.Plants.IsSelected(p.ID) {
			marker = "*"
		}
		fmt.Printf("  [%s] %s - %s (seeded %s, %d events)\n",
			marker, p.Name, p.Phase, p.SeedDate, len(p.Events))
		if p.Strain != "" {
			fmt.Printf("      Strain: %s\n", p.Strain)
		}
		fmt.Printf("      ID: %s\n", p.ID)
	}
	return nil
}

type PlantRenameCmd struct {
	Plant string `arg:"" help:"Plant id or name."`
	Name  string `arg:"" help:"New name."`
}

func (c *PlantRenameCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	id, err := ctx.resolvePlant(c.Plant)
	if err != nil {
		return err
	}
	if !ctx.Plants.RenamePlant(id, c.Name) {
		return fmt.Errorf("rename failed: new name must not be blank")
	}
	fmt.Printf("Renamed plant to: %s\n", c.Name)
	return nil
}

type PlantPhaseCmd struct {
	Plant string `arg:"" help:"Plant id or name."`
	Phase string `arg:"" help:"New growth phase."`
}

func (c *PlantPhaseCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	id, err := ctx.resolvePlant(c.Plant)
	if err != nil {
		return err
	}
	if err := ctx.Plants.UpdatePhase(id, models.Phase(c.Phase)); err != nil {
		return err
	}
	fmt.Printf("Phase changed to %s\n", c.Phase)
	return nil
}

type PlantArchiveCmd struct {
	Plant string `arg:"" help:"Plant id or name."`
}

func (c *PlantArchiveCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	id, err := ctx.resolvePlant(c.Plant)
	if err != nil {
		return err
	}
	if !ctx.Plants.ArchivePlant(id) {
		return fmt.Errorf("plant not found in active collection: %s", c.Plant)
	}
	fmt.Println("Plant archived")
	return nil
}

type PlantUnarchiveCmd struct {
	ID string `arg:"" help:"Archived plant id."`
}

func (c *PlantUnarchiveCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	if !ctx.Plants.UnarchivePlant(c.ID) {
		return fmt.Errorf("plant not found in archive: %s", c.ID)
	}
	fmt.Println("Plant restored to active collection")
	return nil
}

type PlantDeleteCmd struct {
	Plant    string `arg:"" help:"Plant id or name."`
	Archived bool   `help:"Delete from the archive instead of the active collection."`
	Force    bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *PlantDeleteCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	if c.Archived {
		if !c.Force && !confirm(fmt.Sprintf("Permanently delete archived plant %s?", c.Plant)) {
			fmt.Println("Delete cancelled.")
			return nil
		}
		if !ctx.Plants.DeleteArchivedPlant(c.Plant) {
			return fmt.Errorf("plant not found in archive: %s", c.Plant)
		}
		fmt.Println("Archived plant deleted")
		return nil
	}

	id, err := ctx.resolvePlant(c.Plant)
	if err != nil {
		return err
	}
	if !c.Force && !confirm(fmt.Sprintf("Permanently delete plant %s?", c.Plant)) {
		fmt.Println("Delete cancelled.")
		return nil
	}
	if !ctx.Plants.DeletePlant(id) {
		return fmt.Errorf("plant not found: %s", c.Plant)
	}
	fmt.Println("Plant deleted")
	return nil
}
