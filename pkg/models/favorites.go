package models

// FavoriteSet is an insertion-ordered set of listing ids.
// Ids are kept even when the listing they name no longer exists.
type FavoriteSet struct {
	ids   []string
	index map[string]struct{}
}

// NewFavoriteSet builds a set from ids, dropping duplicates and empty ids
func NewFavoriteSet(ids ...string) *FavoriteSet {
	f := &FavoriteSet{index: make(map[string]struct{})}
	for _, id := range ids {
		f.Add(id)
	}
	return f
}

// Has reports whether id is a favorite
func (f *FavoriteSet) Has(id string) bool {
	if f == nil {
		return false
	}
	_, ok := f.index[id]
	return ok
}

// Add inserts id, returning false if it was already present
func (f *FavoriteSet) Add(id string) bool {
	if id == "" || f.Has(id) {
		return false
	}
	if f.index == nil {
		f.index = make(map[string]struct{})
	}
	f.index[id] = struct{}{}
	f.ids = append(f.ids, id)
	return true
}

// Remove deletes id, returning false if it was absent
func (f *FavoriteSet) Remove(id string) bool {
	if !f.Has(id) {
		return false
	}
	delete(f.index, id)
	for i, existing := range f.ids {
		if existing == id {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			break
		}
	}
	return true
}

// Toggle flips membership of id and returns the new membership
func (f *FavoriteSet) Toggle(id string) bool {
	if f.Remove(id) {
		return false
	}
	return f.Add(id)
}

// IDs returns the ids in insertion order
func (f *FavoriteSet) IDs() []string {
	if f == nil {
		return []string{}
	}
	out := make([]string, len(f.ids))
	copy(out, f.ids)
	return out
}

// Len returns the number of favorites
func (f *FavoriteSet) Len() int {
	if f == nil {
		return 0
	}
	return len(f.ids)
}
