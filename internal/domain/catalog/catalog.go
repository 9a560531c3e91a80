// Package catalog contains the static product category table used by
// rule-based weight estimation. Categories form a closed set; each carries
// a keyword list, a typical weight range, and packaged dimensions.
// The table is pure data, loaded once and never mutated.
package catalog

import (
	"github.com/sokoflow/quote-go/internal/domain/valueobject"
)

// Category identifies a product category.
type Category string

// The closed category set. Default is the catch-all for descriptions that
// match no keywords.
const (
	CategoryPhone    Category = "phone"
	CategoryLaptop   Category = "laptop"
	CategoryTablet   Category = "tablet"
	CategoryConsole  Category = "console"
	CategoryBook     Category = "book"
	CategoryClothing Category = "clothing"
	CategoryBeauty   Category = "beauty"
	CategoryHome     Category = "home"
	CategoryDefault  Category = "default"
)

// WeightRange bounds the expected real weight of a category in kilograms.
type WeightRange struct {
	// Min is the lightest plausible weight.
	Min float64 `json:"min"`

	// Max is the heaviest plausible weight.
	Max float64 `json:"max"`

	// Typical is the weight assumed when nothing more specific is known.
	Typical float64 `json:"typical"`
}

// Profile holds the estimation data for one category.
type Profile struct {
	// Category this profile describes.
	Category Category `json:"category"`

	// Keywords whose presence in a description indicates this category.
	Keywords []string `json:"keywords"`

	// Weights is the expected real weight range in kg.
	Weights WeightRange `json:"weights"`

	// Dimensions is the typical packaged size in cm.
	Dimensions valueobject.Dimensions `json:"dimensions"`
}

// profiles is the static category table. Typical weights and dimensions
// reflect packaged (boxed) goods as shipped, not bare products.
var profiles = map[Category]Profile{
	CategoryPhone: {
		Category:   CategoryPhone,
		Keywords:   []string{"phone", "iphone", "smartphone", "galaxy", "pixel", "samsung"},
		Weights:    WeightRange{Min: 0.15, Max: 0.4, Typical: 0.25},
		Dimensions: valueobject.NewDimensions(17, 9, 5),
	},
	CategoryLaptop: {
		Category:   CategoryLaptop,
		Keywords:   []string{"laptop", "macbook", "notebook", "chromebook", "thinkpad"},
		Weights:    WeightRange{Min: 1.2, Max: 3.0, Typical: 2.0},
		Dimensions: valueobject.NewDimensions(40, 28, 6),
	},
	CategoryTablet: {
		Category:   CategoryTablet,
		Keywords:   []string{"tablet", "ipad", "kindle", "e-reader"},
		Weights:    WeightRange{Min: 0.3, Max: 0.9, Typical: 0.55},
		Dimensions: valueobject.NewDimensions(26, 19, 4),
	},
	CategoryConsole: {
		Category:   CategoryConsole,
		Keywords:   []string{"console", "playstation", "ps5", "ps4", "xbox", "nintendo", "switch"},
		Weights:    WeightRange{Min: 4.2, Max: 4.8, Typical: 4.5},
		Dimensions: valueobject.NewDimensions(39, 26, 10.4),
	},
	CategoryBook: {
		Category:   CategoryBook,
		Keywords:   []string{"book", "novel", "textbook", "paperback", "hardcover"},
		Weights:    WeightRange{Min: 0.2, Max: 1.2, Typical: 0.5},
		Dimensions: valueobject.NewDimensions(23, 15, 4),
	},
	CategoryClothing: {
		Category:   CategoryClothing,
		Keywords:   []string{"shirt", "jeans", "dress", "jacket", "hoodie", "clothing", "shoes", "sneakers"},
		Weights:    WeightRange{Min: 0.2, Max: 1.5, Typical: 0.6},
		Dimensions: valueobject.NewDimensions(30, 25, 6),
	},
	CategoryBeauty: {
		Category:   CategoryBeauty,
		Keywords:   []string{"perfume", "makeup", "cream", "lotion", "cosmetics", "lipstick", "serum"},
		Weights:    WeightRange{Min: 0.1, Max: 0.6, Typical: 0.3},
		Dimensions: valueobject.NewDimensions(15, 10, 8),
	},
	CategoryHome: {
		Category:   CategoryHome,
		Keywords:   []string{"blender", "kettle", "toaster", "microwave", "vacuum", "lamp", "cookware"},
		Weights:    WeightRange{Min: 1.0, Max: 6.0, Typical: 2.5},
		Dimensions: valueobject.NewDimensions(40, 30, 25),
	},
	CategoryDefault: {
		Category:   CategoryDefault,
		Keywords:   nil,
		Weights:    WeightRange{Min: 0.3, Max: 2.0, Typical: 1.0},
		Dimensions: valueobject.NewDimensions(30, 20, 15),
	},
}

// ProfileFor returns the profile for a category. Unknown categories resolve
// to the default profile so lookups are total.
func ProfileFor(c Category) Profile {
	if p, ok := profiles[c]; ok {
		return p
	}
	return profiles[CategoryDefault]
}

// matchOrder fixes the iteration order for keyword matching so that
// classification is deterministic when categories tie.
var matchOrder = []Category{
	CategoryPhone,
	CategoryLaptop,
	CategoryTablet,
	CategoryConsole,
	CategoryBook,
	CategoryClothing,
	CategoryBeauty,
	CategoryHome,
}

// Profiles returns every non-default profile in matching order.
func Profiles() []Profile {
	out := make([]Profile, 0, len(matchOrder))
	for _, c := range matchOrder {
		out = append(out, profiles[c])
	}
	return out
}

// Default returns the catch-all profile.
func Default() Profile {
	return profiles[CategoryDefault]
}
