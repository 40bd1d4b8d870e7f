package economy

// Skin is a purchasable cosmetic in the shop.
type Skin struct {
	ID    SkinID
	Name  string
	Price int // coins
}

// Catalog is the ordered list of skins offered in the shop.
type Catalog struct {
	Skins []Skin
}

// DefaultCatalog returns the stock shop. The default skin is free.
func DefaultCatalog() Catalog {
	return Catalog{Skins: []Skin{
		{ID: DefaultSkin, Name: "Classic", Price: 0},
		{ID: "steel", Name: "Steel", Price: 100},
		{ID: "gold", Name: "Gold", Price: 250},
		{ID: "ruby", Name: "Ruby", Price: 400},
		{ID: "shadow", Name: "Shadow", Price: 750},
		{ID: "dragon", Name: "Dragon Tooth", Price: 1500},
	}}
}

// Lookup finds a skin by id (normalized).
func (c Catalog) Lookup(id SkinID) (Skin, bool) {
	want := NormalizeSkin(string(id))
	for _, s := range c.Skins {
		if s.ID == want {
			return s, true
		}
	}
	return Skin{}, false
}
