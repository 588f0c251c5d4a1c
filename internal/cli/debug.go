package cli

import "fmt"

type DebugKeysCmd struct{}

func (c *DebugKeysCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	keys, err := ctx.Store.Keys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Println("No keys stored")
		return nil
	}

	fmt.Println("Stored keys:")
	for _, key := range keys {
		value, ok, err := ctx.Store.GetItem(key)
		if err != nil || !ok {
			fmt.Printf("  %s (unreadable)\n", key)
			continue
		}
		fmt.Printf("  %s (%d bytes)\n", key, len(value))
	}
	return nil
}
