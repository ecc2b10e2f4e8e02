package inventory

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/milk9111/hollowblade/prefabs"
	"github.com/milk9111/hollowblade/stat"
)

// ItemType doubles as the equipment slot type.
type ItemType string

const (
	ItemWeapon     ItemType = "weapon"
	ItemArmor      ItemType = "armor"
	ItemRing       ItemType = "ring"
	ItemConsumable ItemType = "consumable"
	ItemMaterial   ItemType = "material"
)

func parseItemType(s string) (ItemType, error) {
	switch t := ItemType(s); t {
	case ItemWeapon, ItemArmor, ItemRing, ItemConsumable, ItemMaterial:
		return t, nil
	}
	return "", fmt.Errorf("unknown item type %q", s)
}

// Modifier is a stat change granted while an item is equipped.
type Modifier struct {
	Stat  stat.Type
	Kind  stat.ModifierKind
	Value float64
}

// ItemData is the shared definition of an item. SaveID keys it in save
// data.
type ItemData struct {
	SaveID    string
	Name      string
	Type      ItemType
	MaxStack  int
	Modifiers []Modifier
}

// Catalog is the item database.
type Catalog struct {
	items map[string]*ItemData
}

// NewCatalog converts the prefab item specs, rejecting unknown stats,
// modifier kinds and item types.
func NewCatalog(spec *prefabs.ItemCatalogSpec) (*Catalog, error) {
	c := &Catalog{items: make(map[string]*ItemData)}
	if spec == nil {
		return c, nil
	}
	probe := &stat.Sheet{}
	for _, is := range spec.Items {
		typ, err := parseItemType(is.Type)
		if err != nil {
			return nil, fmt.Errorf("inventory: item %s: %w", is.ID, err)
		}
		data := &ItemData{
			SaveID:   is.ID,
			Name:     is.Name,
			Type:     typ,
			MaxStack: max(is.MaxStack, 1),
		}
		for _, ms := range is.Modifiers {
			if probe.StatByType(stat.Type(ms.Stat)) == nil {
				return nil, fmt.Errorf("inventory: item %s: unknown stat %q", is.ID, ms.Stat)
			}
			kind, err := stat.ParseModifierKind(ms.Kind)
			if err != nil {
				return nil, fmt.Errorf("inventory: item %s: %w", is.ID, err)
			}
			data.Modifiers = append(data.Modifiers, Modifier{Stat: stat.Type(ms.Stat), Kind: kind, Value: ms.Value})
		}
		c.items[is.ID] = data
	}
	return c, nil
}

// Get returns the item with the given save id.
func (c *Catalog) Get(id string) (*ItemData, bool) {
	if c == nil {
		return nil, false
	}
	d, ok := c.items[id]
	return d, ok
}

// IDs returns every save id in sorted order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Item is one inventory entry: a stack of the same ItemData. Its ID is
// the source of the stat modifiers it grants.
type Item struct {
	ID        uuid.UUID
	Data      *ItemData
	StackSize int
}

func NewItem(data *ItemData) *Item {
	return &Item{ID: uuid.New(), Data: data, StackSize: 1}
}

func (it *Item) CanAddStack() bool {
	return it.StackSize < it.Data.MaxStack
}

func (it *Item) AddStack() {
	it.StackSize++
}

func (it *Item) RemoveStack() {
	it.StackSize--
}

// AddModifiers applies the item's modifiers to sheet.
func (it *Item) AddModifiers(sheet *stat.Sheet) {
	for _, m := range it.Data.Modifiers {
		if s := sheet.StatByType(m.Stat); s != nil {
			s.AddModifier(stat.Modifier{Source: it.ID.String(), Kind: m.Kind, Value: m.Value})
		}
	}
}

// RemoveModifiers removes everything AddModifiers applied.
func (it *Item) RemoveModifiers(sheet *stat.Sheet) {
	for _, m := range it.Data.Modifiers {
		if s := sheet.StatByType(m.Stat); s != nil {
			s.RemoveModifier(it.ID.String())
		}
	}
}
