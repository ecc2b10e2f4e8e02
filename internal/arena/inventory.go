package arena

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/hollowblade/inventory"
)

const itemCatalog = "items.yaml"

// setupInventory restores the saved inventory when a store is attached and
// a save exists, otherwise grants the configured starting items. Every
// equippable item is then worn.
func (a *Arena) setupInventory(ctx context.Context) error {
	spec, err := a.registry.Items(itemCatalog)
	if err != nil {
		return fmt.Errorf("arena: %w", err)
	}
	catalog, err := inventory.NewCatalog(spec)
	if err != nil {
		return fmt.Errorf("arena: %w", err)
	}
	a.inventory = inventory.NewPlayer(inventory.EntityOwner(a.world, a.player), catalog, a.logger)

	if a.store != nil {
		data, err := a.store.Load(ctx, a.cfg.Store.Profile)
		switch {
		case err == nil:
			a.inventory.Load(data)
			a.logger.Info("inventory restored", zap.String("profile", a.cfg.Store.Profile), zap.Int("gold", data.Gold))
			return nil
		case errors.Is(err, inventory.ErrNotFound):
		default:
			return fmt.Errorf("arena: %w", err)
		}
	}

	for _, id := range a.cfg.Arena.Items {
		data, ok := catalog.Get(id)
		if !ok {
			return fmt.Errorf("arena: unknown starting item %q", id)
		}
		item := inventory.NewItem(data)
		if !a.inventory.CanAddItem(item) {
			a.logger.Warn("inventory full", zap.String("item", id))
			continue
		}
		a.inventory.AddItem(item)
	}
	for _, item := range append([]*inventory.Item(nil), a.inventory.Items...) {
		switch item.Data.Type {
		case inventory.ItemWeapon, inventory.ItemArmor, inventory.ItemRing:
			a.inventory.TryEquipItem(item)
		}
	}
	return nil
}

// Close writes the inventory back to the store, if any.
func (a *Arena) Close(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	if err := a.store.Save(ctx, a.cfg.Store.Profile, a.inventory.Save()); err != nil {
		return fmt.Errorf("arena: %w", err)
	}
	a.logger.Info("inventory saved", zap.String("profile", a.cfg.Store.Profile))
	return nil
}
