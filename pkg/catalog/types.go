package catalog

// Item is a flat catalog record supplied by the storefront's read API.
// The assistant never mutates catalog data; items flow through the
// pipeline by value.
type Item struct {
	Id            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	SubCategory   string   `json:"sub_category,omitempty"`
	Price         float64  `json:"price"`
	DietaryTag    string   `json:"dietary_tag,omitempty"`    // "veg" | "non-veg" | ""
	CaffeineLevel string   `json:"caffeine_level,omitempty"` // "none" | "low" | "medium" | "high"
	Tags          []string `json:"tags,omitempty"`
	Description   string   `json:"description,omitempty"`

	// Partition-specific attributes
	Artist         string `json:"artist,omitempty"`          // art pieces
	SeatsAvailable int    `json:"seats_available,omitempty"` // workshops
}

// Snapshot is one consistent read of all catalog partitions. A partition
// that failed to load is simply empty; the builder works with whatever
// is present.
type Snapshot struct {
	MenuItems []Item
	ArtPieces []Item
	Workshops []Item
}

// All returns every item across partitions, menu first. Order is stable
// so corpus rebuilds over the same snapshot are byte-identical.
func (s Snapshot) All() []Item {
	out := make([]Item, 0, len(s.MenuItems)+len(s.ArtPieces)+len(s.Workshops))
	out = append(out, s.MenuItems...)
	out = append(out, s.ArtPieces...)
	out = append(out, s.Workshops...)
	return out
}

// Len is the total item count across partitions.
func (s Snapshot) Len() int {
	return len(s.MenuItems) + len(s.ArtPieces) + len(s.Workshops)
}

// Empty reports whether no partition yielded any items.
func (s Snapshot) Empty() bool {
	return len(s.MenuItems) == 0 && len(s.ArtPieces) == 0 && len(s.Workshops) == 0
}
