package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/ecs/system"
	"github.com/milk9111/hollowblade/stat"
)

type fakeOwner struct {
	sheet   *stat.Sheet
	current float64
}

func newFakeOwner() *fakeOwner {
	sheet := stat.NewSheet(stat.Setup{stat.MaxHealth: 100, stat.Damage: 10})
	return &fakeOwner{sheet: sheet, current: sheet.MaxHealth()}
}

func (o *fakeOwner) Sheet() *stat.Sheet { return o.sheet }

func (o *fakeOwner) HealthPercent() float64 { return o.current / o.sheet.MaxHealth() }

func (o *fakeOwner) SetHealthToPercent(p float64) { o.current = o.sheet.MaxHealth() * p }

func newTestPlayer(t *testing.T, logger *zap.Logger) (*Player, *fakeOwner, *Catalog) {
	t.Helper()
	c := testCatalog(t)
	owner := newFakeOwner()
	return NewPlayer(owner, c, logger), owner, c
}

func give(t *testing.T, p *Player, c *Catalog, id string) *Item {
	t.Helper()
	item := NewItem(itemData(t, c, id))
	p.AddItem(item)
	return p.FindSameItem(item)
}

func TestEquipAppliesModifiers(t *testing.T) {
	p, owner, c := newTestPlayer(t, nil)
	sword := give(t, p, c, "iron_sword")

	require.True(t, p.TryEquipItem(sword))

	assert.Equal(t, 16.0, owner.sheet.BaseDamage())
	assert.Empty(t, p.Items)
	assert.Equal(t, []*Item{sword}, p.Equipped())

	require.True(t, p.UnequipItem(sword, false))
	assert.Equal(t, 10.0, owner.sheet.BaseDamage())
	assert.Empty(t, p.Equipped())
	require.Len(t, p.Items, 1)
}

func TestEquipKeepsHealthPercent(t *testing.T) {
	p, owner, c := newTestPlayer(t, nil)
	owner.current = 50
	armor := give(t, p, c, "leather_armor")

	require.True(t, p.TryEquipItem(armor))
	assert.Equal(t, 130.0, owner.sheet.MaxHealth())
	assert.InDelta(t, 65, owner.current, 1e-9)

	require.True(t, p.UnequipItem(armor, false))
	assert.InDelta(t, 50, owner.current, 1e-9)
}

func TestEquipFillsEmptySlotThenReplacesFirst(t *testing.T) {
	p, owner, c := newTestPlayer(t, nil)
	first := give(t, p, c, "vital_ring")
	require.True(t, p.TryEquipItem(first))
	second := give(t, p, c, "vital_ring")
	require.True(t, p.TryEquipItem(second))

	assert.Same(t, first, p.Equipment[2].Item)
	assert.Same(t, second, p.Equipment[3].Item)
	assert.Equal(t, 6.0, owner.sheet.Major.Vitality.Value())

	third := give(t, p, c, "vital_ring")
	require.True(t, p.TryEquipItem(third))

	assert.Same(t, third, p.Equipment[2].Item)
	assert.Same(t, second, p.Equipment[3].Item)
	assert.Equal(t, 6.0, owner.sheet.Major.Vitality.Value())
	require.Len(t, p.Items, 1)
	assert.Same(t, first, p.Items[0])
}

func TestEquipRejectsNonEquipment(t *testing.T) {
	p, _, c := newTestPlayer(t, nil)
	potion := give(t, p, c, "health_potion")
	assert.False(t, p.TryEquipItem(potion))
	assert.False(t, p.TryEquipItem(NewItem(itemData(t, c, "iron_sword"))), "not in inventory")
}

func TestEquipFromStackLeavesRest(t *testing.T) {
	p, owner, c := newTestPlayer(t, nil)
	ring := itemData(t, c, "vital_ring")
	ring.MaxStack = 3
	stack := NewItem(ring)
	p.AddItem(stack)
	p.AddItem(NewItem(ring))

	require.True(t, p.TryEquipItem(stack))

	assert.Equal(t, 1, stack.StackSize)
	assert.NotSame(t, stack, p.Equipment[2].Item)
	assert.Equal(t, 3.0, owner.sheet.Major.Vitality.Value())
}

func TestUnequipNeedsSpace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p, owner, c := newTestPlayer(t, zap.New(core))
	sword := give(t, p, c, "iron_sword")
	require.True(t, p.TryEquipItem(sword))

	for i := 0; i < DefaultMaxSize; i++ {
		p.AddItem(NewItem(itemData(t, c, "leather_armor")))
	}

	assert.False(t, p.UnequipItem(sword, false))
	assert.Same(t, sword, p.Equipment[0].Item)
	assert.Equal(t, 16.0, owner.sheet.BaseDamage())
	assert.Equal(t, 1, logs.FilterMessage("No space!").Len())

	assert.True(t, p.UnequipItem(sword, true))
	assert.Len(t, p.Items, DefaultMaxSize+1)
}

func TestGold(t *testing.T) {
	p, _, _ := newTestPlayer(t, nil)
	p.AddGold(100)
	assert.False(t, p.SpendGold(150))
	assert.True(t, p.SpendGold(40))
	assert.Equal(t, 60, p.Gold)
	p.AddGold(-500)
	assert.Equal(t, 0, p.Gold)
	assert.False(t, p.SpendGold(-1))
}

func TestSaveAndLoad(t *testing.T) {
	p, _, c := newTestPlayer(t, nil)
	p.AddGold(250)
	for i := 0; i < 7; i++ {
		give(t, p, c, "health_potion")
	}
	require.True(t, p.TryEquipItem(give(t, p, c, "iron_sword")))
	require.True(t, p.TryEquipItem(give(t, p, c, "vital_ring")))

	data := p.Save()
	assert.Equal(t, &SaveData{
		Gold:      250,
		Inventory: map[string]int{"health_potion": 7},
		Equipped:  map[string]ItemType{"iron_sword": ItemWeapon, "vital_ring": ItemRing},
	}, data)

	loaded, owner, _ := newTestPlayer(t, nil)
	loaded.Load(data)

	assert.Equal(t, 250, loaded.Gold)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, 5, loaded.Items[0].StackSize)
	assert.Equal(t, 2, loaded.Items[1].StackSize)
	assert.Equal(t, "iron_sword", loaded.Equipment[0].Item.Data.SaveID)
	assert.Equal(t, "vital_ring", loaded.Equipment[2].Item.Data.SaveID)
	assert.Equal(t, 16.0, owner.sheet.BaseDamage())
	assert.Equal(t, data, loaded.Save())
}

func TestLoadSkipsUnknownItems(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p, _, _ := newTestPlayer(t, zap.New(core))

	p.Load(&SaveData{
		Inventory: map[string]int{"ghost": 2, "slime_gel": 3},
		Equipped:  map[string]ItemType{"phantom": ItemArmor},
	})

	require.Len(t, p.Items, 1)
	assert.Equal(t, 3, p.Items[0].StackSize)
	assert.Empty(t, p.Equipped())
	assert.Equal(t, 2, logs.FilterMessage("item not found").Len())
}

func TestEntityOwner(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.StatsComponent.Kind(), &component.Stats{
		Sheet: stat.NewSheet(stat.Setup{stat.MaxHealth: 100}),
	}))
	require.NoError(t, ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{}))
	require.True(t, system.SetupHealth(w, e))

	c := testCatalog(t)
	p := NewPlayer(EntityOwner(w, e), c, nil)
	system.SetHealthToPercent(w, e, 0.5)

	armor := NewItem(itemData(t, c, "leather_armor"))
	p.AddItem(armor)
	require.True(t, p.TryEquipItem(armor))

	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	require.True(t, ok)
	assert.InDelta(t, 65, h.Current, 1e-9)
	assert.InDelta(t, 0.5, system.HealthPercent(w, e), 1e-9)
}
