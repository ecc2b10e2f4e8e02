package inventory

import (
	"sort"

	"go.uber.org/zap"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/ecs/system"
	"github.com/milk9111/hollowblade/stat"
)

// Owner is the entity wearing the equipment.
type Owner interface {
	Sheet() *stat.Sheet
	HealthPercent() float64
	SetHealthToPercent(p float64)
}

type entityOwner struct {
	w *ecs.World
	e ecs.Entity
}

// EntityOwner adapts a world entity with stats and health to Owner.
func EntityOwner(w *ecs.World, e ecs.Entity) Owner {
	return entityOwner{w: w, e: e}
}

func (o entityOwner) Sheet() *stat.Sheet {
	s, ok := ecs.Get(o.w, o.e, component.StatsComponent.Kind())
	if !ok {
		return nil
	}
	return s.Sheet
}

func (o entityOwner) HealthPercent() float64 { return system.HealthPercent(o.w, o.e) }

func (o entityOwner) SetHealthToPercent(p float64) { system.SetHealthToPercent(o.w, o.e, p) }

// EquipmentSlot holds at most one item of SlotType.
type EquipmentSlot struct {
	SlotType ItemType
	Item     *Item
}

func (s *EquipmentSlot) HasItem() bool { return s.Item != nil }

// DefaultSlots is one weapon, one armor and two ring slots.
func DefaultSlots() []*EquipmentSlot {
	return []*EquipmentSlot{
		{SlotType: ItemWeapon},
		{SlotType: ItemArmor},
		{SlotType: ItemRing},
		{SlotType: ItemRing},
	}
}

// Player is the player's inventory plus equipment and gold.
type Player struct {
	*Inventory
	Equipment []*EquipmentSlot
	Gold      int

	owner   Owner
	catalog *Catalog
}

func NewPlayer(owner Owner, catalog *Catalog, logger *zap.Logger) *Player {
	return &Player{
		Inventory: New(logger),
		Equipment: DefaultSlots(),
		owner:     owner,
		catalog:   catalog,
	}
}

// TryEquipItem equips item from the inventory into an empty matching
// slot, or swaps out the first matching slot when all are full.
func (p *Player) TryEquipItem(item *Item) bool {
	inv := p.FindItem(item)
	if inv == nil {
		return false
	}
	var matching []*EquipmentSlot
	for _, slot := range p.Equipment {
		if slot.SlotType == item.Data.Type {
			matching = append(matching, slot)
		}
	}
	if len(matching) == 0 {
		p.logger.Debug("item is not equippable", zap.String("item", item.Data.SaveID))
		return false
	}

	for _, slot := range matching {
		if !slot.HasItem() {
			p.equipItem(inv, slot)
			return true
		}
	}

	slot := matching[0]
	p.UnequipItem(slot.Item, true)
	p.equipItem(inv, slot)
	return true
}

func (p *Player) equipItem(item *Item, slot *EquipmentSlot) {
	saved := p.owner.HealthPercent()

	equipped := item
	if item.StackSize > 1 {
		equipped = NewItem(item.Data)
	}
	slot.Item = equipped
	equipped.AddModifiers(p.owner.Sheet())

	p.owner.SetHealthToPercent(saved)
	p.RemoveOneItem(item)
}

// UnequipItem moves item back into the inventory. Without replacing it
// needs inventory space; a full inventory leaves it equipped.
func (p *Player) UnequipItem(item *Item, replacing bool) bool {
	if item == nil {
		return false
	}
	if !p.CanAddItem(item) && !replacing {
		p.logger.Debug("No space!", zap.String("item", item.Data.SaveID))
		return false
	}

	saved := p.owner.HealthPercent()
	for _, slot := range p.Equipment {
		if slot.Item == item {
			slot.Item = nil
			break
		}
	}
	item.RemoveModifiers(p.owner.Sheet())

	p.owner.SetHealthToPercent(saved)
	p.AddItem(item)
	return true
}

// Equipped returns the items currently worn, in slot order.
func (p *Player) Equipped() []*Item {
	var items []*Item
	for _, slot := range p.Equipment {
		if slot.HasItem() {
			items = append(items, slot.Item)
		}
	}
	return items
}

// AddGold adds amount, which may be negative, without going below zero.
func (p *Player) AddGold(amount int) {
	p.Gold = max(p.Gold+amount, 0)
	p.changed()
}

// SpendGold takes amount when the player can afford it.
func (p *Player) SpendGold(amount int) bool {
	if amount < 0 || p.Gold < amount {
		return false
	}
	p.Gold -= amount
	p.changed()
	return true
}

// SaveData is the persisted inventory: unit counts and equipped slots by
// item save id.
type SaveData struct {
	Gold      int                 `json:"gold"`
	Inventory map[string]int      `json:"inventory"`
	Equipped  map[string]ItemType `json:"equipped"`
}

// Save snapshots the inventory. Two equipped copies of one item collapse
// to a single entry.
func (p *Player) Save() *SaveData {
	data := &SaveData{
		Gold:      p.Gold,
		Inventory: make(map[string]int),
		Equipped:  make(map[string]ItemType),
	}
	for _, it := range p.Items {
		if it == nil || it.Data == nil {
			continue
		}
		data.Inventory[it.Data.SaveID] += it.StackSize
	}
	for _, slot := range p.Equipment {
		if slot.HasItem() {
			data.Equipped[slot.Item.Data.SaveID] = slot.SlotType
		}
	}
	return data
}

// Load adds the saved items and equipment on top of the current state.
// Unknown ids and equipment with no free slot are skipped with a warning.
func (p *Player) Load(data *SaveData) {
	if data == nil {
		return
	}
	p.Gold = data.Gold

	for _, id := range sortedKeys(data.Inventory) {
		itemData, ok := p.catalog.Get(id)
		if !ok {
			p.logger.Warn("item not found", zap.String("item", id))
			continue
		}
		for i := 0; i < data.Inventory[id]; i++ {
			p.AddItem(NewItem(itemData))
		}
	}

	for _, id := range sortedKeys(data.Equipped) {
		itemData, ok := p.catalog.Get(id)
		if !ok {
			p.logger.Warn("item not found", zap.String("item", id))
			continue
		}
		slot := p.freeSlot(data.Equipped[id])
		if slot == nil {
			p.logger.Warn("no free equipment slot", zap.String("item", id))
			continue
		}
		slot.Item = NewItem(itemData)
		slot.Item.AddModifiers(p.owner.Sheet())
	}

	p.changed()
}

func (p *Player) freeSlot(t ItemType) *EquipmentSlot {
	for _, slot := range p.Equipment {
		if slot.SlotType == t && !slot.HasItem() {
			return slot
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
