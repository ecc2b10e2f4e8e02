package inventory

import (
	"go.uber.org/zap"
)

// DefaultMaxSize is the number of stacks an inventory holds.
const DefaultMaxSize = 10

// Inventory is an ordered list of item stacks.
type Inventory struct {
	MaxSize int
	Items   []*Item

	// OnChange runs after every mutation.
	OnChange func()

	logger *zap.Logger
}

func New(logger *zap.Logger) *Inventory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inventory{MaxSize: DefaultMaxSize, logger: logger}
}

func (inv *Inventory) changed() {
	if inv.OnChange != nil {
		inv.OnChange()
	}
}

// CanAddItem reports whether item fits: an existing stack has room or a
// free slot remains.
func (inv *Inventory) CanAddItem(item *Item) bool {
	return inv.FindStackable(item) != nil || len(inv.Items) < inv.MaxSize
}

// FindStackable returns the first stack of the same data with room left.
func (inv *Inventory) FindStackable(item *Item) *Item {
	for _, it := range inv.Items {
		if it.Data == item.Data && it.CanAddStack() {
			return it
		}
	}
	return nil
}

// AddItem stacks item onto a matching stack or appends it. Capacity is
// the caller's check via CanAddItem.
func (inv *Inventory) AddItem(item *Item) {
	if stack := inv.FindStackable(item); stack != nil {
		stack.AddStack()
	} else {
		inv.Items = append(inv.Items, item)
	}
	inv.changed()
}

// RemoveOneItem takes one unit off item's stack, dropping the stack when
// it was the last one.
func (inv *Inventory) RemoveOneItem(item *Item) {
	i := inv.indexOf(item)
	if i < 0 {
		return
	}
	if item.StackSize > 1 {
		item.RemoveStack()
	} else {
		inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
	}
	inv.changed()
}

// RemoveFullStack removes item and its whole stack.
func (inv *Inventory) RemoveFullStack(item *Item) {
	for n := item.StackSize; n > 0; n-- {
		inv.RemoveOneItem(item)
	}
}

// RemoveItemAmount removes up to amount units of data across stacks, in
// inventory order.
func (inv *Inventory) RemoveItemAmount(data *ItemData, amount int) {
	for i := 0; i < len(inv.Items) && amount > 0; {
		it := inv.Items[i]
		if it.Data != data {
			i++
			continue
		}
		n := min(amount, it.StackSize)
		for j := 0; j < n; j++ {
			inv.RemoveOneItem(it)
		}
		amount -= n
		if i < len(inv.Items) && inv.Items[i] == it {
			i++
		}
	}
}

// HasItemAmount reports whether the stacks of data hold at least amount
// units in total.
func (inv *Inventory) HasItemAmount(data *ItemData, amount int) bool {
	total := 0
	for _, it := range inv.Items {
		if it.Data == data {
			total += it.StackSize
		}
		if total >= amount {
			return true
		}
	}
	return false
}

// FindItem returns item if this inventory holds that exact stack.
func (inv *Inventory) FindItem(item *Item) *Item {
	if inv.indexOf(item) < 0 {
		return nil
	}
	return item
}

// FindSameItem returns the first stack holding the same data as item.
func (inv *Inventory) FindSameItem(item *Item) *Item {
	for _, it := range inv.Items {
		if it.Data == item.Data {
			return it
		}
	}
	return nil
}

func (inv *Inventory) indexOf(item *Item) int {
	for i, it := range inv.Items {
		if it == item {
			return i
		}
	}
	return -1
}
