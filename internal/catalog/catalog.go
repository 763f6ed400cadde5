package catalog

import (
	"sort"
	"strings"

	"github.com/shopcore/checkout-backend/internal/models"
)

// Catalog is a read-only product lookup, seeded once at startup and never
// mutated afterwards, so reads need no locking.
type Catalog struct {
	products map[int64]models.Product
}

func New() *Catalog {
	c := &Catalog{products: make(map[int64]models.Product)}
	for _, p := range seed {
		c.products[p.ID] = p
	}
	return c
}

func (c *Catalog) Get(id int64) (models.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

func (c *Catalog) List() []models.Product {
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) ListByCategory(category string) []models.Product {
	var out []models.Product
	for _, p := range c.List() {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

var seed = []models.Product{
	{
		ID:          1,
		Name:        "Premium Wireless Earbuds",
		Description: "High-quality wireless earbuds with noise cancellation and 24-hour battery life",
		Price:       399900,
		Image:       "🎧",
		Category:    "Electronics",
	},
	{
		ID:          2,
		Name:        "Smart Fitness Band",
		Description: "Track your health with heart rate monitor, sleep tracking, and 7-day battery",
		Price:       149900,
		Image:       "⌚",
		Category:    "Wearables",
	},
	{
		ID:          3,
		Name:        "Aluminum Laptop Stand",
		Description: "Ergonomic laptop stand with adjustable height and cooling ventilation",
		Price:       249900,
		Image:       "💻",
		Category:    "Accessories",
	},
	{
		ID:          4,
		Name:        "Mechanical Gaming Keyboard",
		Description: "RGB backlit mechanical keyboard with blue switches and macro keys",
		Price:       499900,
		Image:       "⌨️",
		Category:    "Gaming",
	},
	{
		ID:          5,
		Name:        "USB-C Hub 7-in-1",
		Description: "Multi-port adapter with HDMI, USB 3.0, SD card reader, and PD charging",
		Price:       199900,
		Image:       "🔌",
		Category:    "Accessories",
	},
	{
		ID:          6,
		Name:        "Portable Bluetooth Speaker",
		Description: "Waterproof speaker with 360° sound and 12-hour playtime",
		Price:       299900,
		Image:       "🔊",
		Category:    "Audio",
	},
}
