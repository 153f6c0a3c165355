package catalog

import (
	"github.com/storeforge/api/internal/domain"
)

// builtinTemplates is the shipped template gallery. Section orders are 1-based
// and contiguous per template.
var builtinTemplates = []domain.StoreTemplate{
	{
		ID:          "launch-pad",
		Name:        "Launch Pad",
		Description: "High-conversion landing page for a single flagship product.",
		StoreKind:   domain.StoreKindSingleProduct,
		BestFor:     []string{"product launches", "crowdfunding", "pre-orders"},
		Theme:       domain.Theme{PrimaryColor: "#2563eb", SecondaryColor: "#f59e0b", FontFamily: "Inter"},
		Sections: []domain.TemplateSection{
			{Type: "hero-banner", Order: 1, Enabled: true, Props: domain.PropBag{
				"title":    "The last one you'll ever need",
				"subtitle": "Built to outlast everything else on the market.",
				"ctaText":  "Pre-order now",
				"ctaLink":  "#checkout",
				"showCta":  true,
			}},
			{Type: "featured-product", Order: 2, Enabled: true, Props: domain.PropBag{
				"title":       "Designed from scratch",
				"description": "Every component selected for durability and repairability.",
			}},
			{Type: "benefits-list", Order: 3, Enabled: true, Props: domain.PropBag{
				"title": "What you get",
				"items": []any{"Lifetime warranty", "Free returns", "Carbon-neutral shipping"},
			}},
			{Type: "testimonials", Order: 4, Enabled: true, Props: domain.PropBag{
				"title": "Loved by early adopters",
			}},
			{Type: "faq", Order: 5, Enabled: false, Props: domain.PropBag{
				"faqs": []any{},
			}},
			{Type: "cta-banner", Order: 6, Enabled: true, Props: domain.PropBag{
				"title":      "Join thousands of happy customers",
				"buttonText": "Pre-order now",
			}},
		},
	},
	{
		ID:          "storefront-classic",
		Name:        "Storefront Classic",
		Description: "Traditional catalog layout with collections and a product grid.",
		StoreKind:   domain.StoreKindMultiProduct,
		BestFor:     []string{"boutiques", "general retail"},
		Theme:       domain.Theme{PrimaryColor: "#0f766e", SecondaryColor: "#fbbf24", FontFamily: "Lora"},
		Sections: []domain.TemplateSection{
			{Type: "hero-banner", Order: 1, Enabled: true, Props: domain.PropBag{
				"title":    "New season, new arrivals",
				"subtitle": "Browse the latest additions to the collection.",
				"ctaText":  "Shop new arrivals",
				"ctaLink":  "#products",
				"showCta":  true,
			}},
			{Type: "collections", Order: 2, Enabled: true, Props: domain.PropBag{
				"title": "Shop by collection",
			}},
			{Type: "product-grid", Order: 3, Enabled: true, Props: domain.PropBag{
				"title":   "Bestsellers",
				"columns": "3",
			}},
			{Type: "trust-badges", Order: 4, Enabled: true, Props: domain.PropBag{}},
			{Type: "testimonials", Order: 5, Enabled: false, Props: domain.PropBag{}},
			{Type: "footer-links", Order: 6, Enabled: true, Props: domain.PropBag{}},
		},
	},
	{
		ID:          "story-first",
		Name:        "Story First",
		Description: "Narrative-driven page that explains before it sells.",
		StoreKind:   domain.StoreKindSingleProduct,
		BestFor:     []string{"artisan goods", "premium brands"},
		Theme:       domain.Theme{PrimaryColor: "#7c2d12", SecondaryColor: "#e7e5e4", FontFamily: "Playfair Display"},
		Sections: []domain.TemplateSection{
			{Type: "hero-banner", Order: 1, Enabled: true, Props: domain.PropBag{
				"title":   "Made slowly, on purpose",
				"showCta": false,
			}},
			{Type: "how-it-works", Order: 2, Enabled: true, Props: domain.PropBag{
				"title": "From workshop to your door",
			}},
			{Type: "video-showcase", Order: 3, Enabled: true, Props: domain.PropBag{
				"title": "Watch it being made",
			}},
			{Type: "comparison-table", Order: 4, Enabled: false, Props: domain.PropBag{}},
			{Type: "newsletter-signup", Order: 5, Enabled: true, Props: domain.PropBag{
				"title": "Follow the craft",
			}},
		},
	},
	{
		ID:          "mega-mart",
		Name:        "Mega Mart",
		Description: "Dense catalog layout for stores with a large inventory.",
		StoreKind:   domain.StoreKindMultiProduct,
		BestFor:     []string{"large catalogs", "marketplaces"},
		Theme:       domain.Theme{PrimaryColor: "#dc2626", SecondaryColor: "#1f2937", FontFamily: "Roboto"},
		Sections: []domain.TemplateSection{
			{Type: "hero-banner", Order: 1, Enabled: true, Props: domain.PropBag{
				"title":   "Everything in one place",
				"ctaText": "Start shopping",
				"ctaLink": "#products",
				"showCta": true,
			}},
			{Type: "product-grid", Order: 2, Enabled: true, Props: domain.PropBag{
				"columns":     "4",
				"maxProducts": float64(24),
			}},
			{Type: "stats-bar", Order: 3, Enabled: true, Props: domain.PropBag{
				"stats": []any{
					map[string]any{"value": "10k+", "label": "Products"},
					map[string]any{"value": "24h", "label": "Dispatch"},
				},
			}},
			{Type: "features", Order: 4, Enabled: true, Props: domain.PropBag{
				"title": "Why shop with us",
			}},
			{Type: "faq", Order: 5, Enabled: false, Props: domain.PropBag{}},
			{Type: "footer-links", Order: 6, Enabled: true, Props: domain.PropBag{}},
		},
	},
}
