package domain

// Inventory maps an item name to a positive count.
// A count of zero is never stored; the key is removed instead.
type Inventory map[string]int

// Count returns how many of the item are held
func (inv Inventory) Count(item string) int {
	return inv[item]
}

// Add increases the item count by n
func (inv Inventory) Add(item string, n int) {
	if n <= 0 {
		return
	}
	inv[item] += n
}

// Take removes n of the item, deleting the key when it reaches zero.
// It returns false and leaves the inventory untouched if fewer than n are held.
func (inv Inventory) Take(item string, n int) bool {
	have := inv[item]
	if n <= 0 || have < n {
		return false
	}
	if have == n {
		delete(inv, item)
		return true
	}
	inv[item] = have - n
	return true
}

// Clone returns an independent copy
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// prune drops non-positive counts left behind by older snapshots
func (inv Inventory) prune() {
	for k, v := range inv {
		if v <= 0 {
			delete(inv, k)
		}
	}
}
