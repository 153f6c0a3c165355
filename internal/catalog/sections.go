package catalog

import (
	"github.com/storeforge/api/internal/domain"
)

var allKinds = []domain.StoreKind{domain.StoreKindSingleProduct, domain.StoreKindMultiProduct}

// builtinSectionTypes is the shipped section catalog. Default props cover every
// settings name so editors never start from an undefined value; the editor
// still tolerates missing keys by falling back to the kind's empty value.
var builtinSectionTypes = []domain.SectionTypeDefinition{
	{
		Type:          "hero-banner",
		Name:          "Hero Banner",
		Description:   "Full-width opening banner with headline, call to action and background image.",
		Category:      "headers",
		ApplicableFor: allKinds,
		DefaultProps: domain.PropBag{
			"title":           "Welcome to our store",
			"subtitle":        "Quality products, delivered to your door.",
			"ctaText":         "Shop now",
			"ctaLink":         "#products",
			"showCta":         true,
			"backgroundImage": "",
			"overlayColor":    "#000000",
			"overlayOpacity":  float64(40),
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Headline"},
			{Name: "subtitle", Kind: domain.SettingKindTextarea, Label: "Subheadline"},
			{Name: "ctaText", Kind: domain.SettingKindText, Label: "Button text"},
			{Name: "ctaLink", Kind: domain.SettingKindURL, Label: "Button link"},
			{Name: "showCta", Kind: domain.SettingKindToggle, Label: "Show button"},
			{Name: "backgroundImage", Kind: domain.SettingKindImage, Label: "Background image"},
			{Name: "overlayColor", Kind: domain.SettingKindColor, Label: "Overlay color"},
			{Name: "overlayOpacity", Kind: domain.SettingKindRange, Label: "Overlay opacity", Min: 0, Max: 100, Step: 5},
		},
	},
	{
		Type:          "featured-product",
		Name:          "Featured Product",
		Description:   "Spotlight for the flagship product with image and badges.",
		Category:      "products",
		ApplicableFor: []domain.StoreKind{domain.StoreKindSingleProduct},
		DefaultProps: domain.PropBag{
			"title":        "Meet the product",
			"description":  "Everything you need to know about what makes it great.",
			"productImage": "",
			"badges":       []any{},
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Title"},
			{Name: "description", Kind: domain.SettingKindTextarea, Label: "Description"},
			{Name: "productImage", Kind: domain.SettingKindImage, Label: "Product image"},
			{Name: "badges", Kind: domain.SettingKindBadgesArray, Label: "Badges"},
		},
	},
	{
		Type:          "product-grid",
		Name:          "Product Grid",
		Description:   "Responsive grid of catalog products.",
		Category:      "products",
		ApplicableFor: []domain.StoreKind{domain.StoreKindMultiProduct},
		DefaultProps: domain.PropBag{
			"title":       "Our products",
			"columns":     "3",
			"maxProducts": float64(12),
			"showPrices":  true,
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Title"},
			{Name: "columns", Kind: domain.SettingKindSelect, Label: "Columns", Options: []string{"2", "3", "4"}},
			{Name: "maxProducts", Kind: domain.SettingKindRange, Label: "Max products", Min: 4, Max: 48, Step: 4},
			{Name: "showPrices", Kind: domain.SettingKindToggle, Label: "Show prices"},
		},
	},
	{
		Type:          "collections",
		Name:          "Collections",
		Description:   "Curated product collections with cover images.",
		Category:      "products",
		ApplicableFor: []domain.StoreKind{domain.StoreKindMultiProduct},
		DefaultProps: domain.PropBag{
			"title":       "Shop by collection",
			"collections": []any{},
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Title"},
			{Name: "collections", Kind: domain.SettingKindCollectionsArray, Label: "Collections"},
		},
	},
	{
		Type:          "testimonials",
		Name:          "Testimonials",
		Description:   "Customer quotes with ratings and avatars.",
		Category:      "social-proof",
		ApplicableFor: allKinds,
		DefaultProps: domain.PropBag{
			"title":        "What customers say",
			"testimonials": []any{},
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Title"},
			{Name: "testimonials", Kind: domain.SettingKindTestimonialsArray, Label: "Testimonials"},
		},
	},
	{
		Type:          "trust-badges",
		Name:          "Trust Badges",
		Description:   "Row of trust signals such as guarantees and secure checkout.",
		Category:      "social-proof",
		ApplicableFor: allKinds,
		DefaultProps: domain.PropBag{
			"badges": []any{
				map[string]any{"icon": "shield", "text": "Secure checkout"},
				map[string]any{"icon": "truck", "text": "Free shipping"},
			},
		},
		Settings: []domain.SettingDescriptor{
			{Name: "badges", Kind: domain.SettingKindBadgesArray, Label: "Badges"},
		},
	},
	{
		Type:          "stats-bar",
		Name:          "Stats Bar",
		Description:   "Headline numbers such as customers served or years in business.",
		Category:      "social-proof",
		ApplicableFor: allKinds,
		DefaultProps: domain.PropBag{
			"stats": []any{},
		},
		Settings: []domain.SettingDescriptor{
			{Name: "stats", Kind: domain.SettingKindStatsArray, Label: "Stats"},
		},
	},
	{
		Type:          "features",
		Name:          "Feature Cards",
		Description:   "Grid of feature cards with icons and descriptions.",
		Category:      "content",
		ApplicableFor: allKinds,
		DefaultProps: domain.PropBag{
			"title":    "Why choose us",
			"features": []any{},
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Title"},
			{Name: "features", Kind: domain.SettingKindFeaturesArray, Label: "Features"},
		},
	},
	{
		Type:          "benefits-list",
		Name:          "Benefits List",
		Description:   "Checklist of short product benefits.",
		Category:      "content",
		ApplicableFor: []domain.StoreKind{domain.StoreKindSingleProduct},
		DefaultProps: domain.PropBag{
			"title": "What you get",
			"items": []any{},
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Title"},
			{Name: "items", Kind: domain.SettingKindFeaturesList, Label: "Benefits"},
		},
	},
	{
		Type:          "comparison-table",
		Name:          "Comparison Table",
		Description:   "Side-by-side comparison against alternatives.",
		Category:      "content",
		ApplicableFor: []domain.StoreKind{domain.StoreKindSingleProduct},
		DefaultProps: domain.PropBag{
			"title":   "How we compare",
			"columns": []any{},
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Title"},
			{Name: "columns", Kind: domain.SettingKindComparisonColumns, Label: "Columns"},
		},
	},
	{
		Type:          "how-it-works",
		Name:          "How It Works",
		Description:   "Numbered steps explaining the purchase or usage flow.",
		Category:      "content",
		ApplicableFor: allKinds,
		DefaultProps: domain.PropBag{
			"title": "How it works",
			"steps": []any{},
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Title"},
			{Name: "steps", Kind: domain.SettingKindStepsArray, Label: "Steps"},
		},
	},
	{
		Type:          "video-showcase",
		Name:          "Video Showcase",
		Description:   "Embedded product or brand video.",
		Category:      "media",
		ApplicableFor: allKinds,
		DefaultProps: domain.PropBag{
			"title":    "See it in action",
			"videoUrl": "",
			"autoplay": false,
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Title"},
			{Name: "videoUrl", Kind: domain.SettingKindVideo, Label: "Video"},
			{Name: "autoplay", Kind: domain.SettingKindToggle, Label: "Autoplay"},
		},
	},
	{
		Type:          "faq",
		Name:          "FAQ",
		Description:   "Expandable list of frequently asked questions.",
		Category:      "support",
		ApplicableFor: allKinds,
		DefaultProps: domain.PropBag{
			"title": "Frequently asked questions",
			"faqs":  []any{},
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Title"},
			{Name: "faqs", Kind: domain.SettingKindFAQsArray, Label: "Questions"},
		},
	},
	{
		Type:          "newsletter-signup",
		Name:          "Newsletter Signup",
		Description:   "Email capture block with customizable accent color.",
		Category:      "conversion",
		ApplicableFor: allKinds,
		DefaultProps: domain.PropBag{
			"title":       "Stay in the loop",
			"subtitle":    "Sign up for product news and offers.",
			"buttonText":  "Subscribe",
			"accentColor": "#2563eb",
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Title"},
			{Name: "subtitle", Kind: domain.SettingKindTextarea, Label: "Subtitle"},
			{Name: "buttonText", Kind: domain.SettingKindText, Label: "Button text"},
			{Name: "accentColor", Kind: domain.SettingKindColor, Label: "Accent color"},
		},
	},
	{
		Type:          "cta-banner",
		Name:          "Call To Action",
		Description:   "Closing banner nudging visitors toward checkout.",
		Category:      "conversion",
		ApplicableFor: allKinds,
		DefaultProps: domain.PropBag{
			"title":           "Ready to get started?",
			"buttonText":      "Buy now",
			"buttonLink":      "#checkout",
			"backgroundColor": "#111827",
		},
		Settings: []domain.SettingDescriptor{
			{Name: "title", Kind: domain.SettingKindText, Label: "Title"},
			{Name: "buttonText", Kind: domain.SettingKindText, Label: "Button text"},
			{Name: "buttonLink", Kind: domain.SettingKindURL, Label: "Button link"},
			{Name: "backgroundColor", Kind: domain.SettingKindColor, Label: "Background color"},
		},
	},
	{
		Type:          "footer-links",
		Name:          "Footer Links",
		Description:   "Footer navigation with grouped links.",
		Category:      "footers",
		ApplicableFor: allKinds,
		DefaultProps: domain.PropBag{
			"links": []any{},
		},
		Settings: []domain.SettingDescriptor{
			{Name: "links", Kind: domain.SettingKindLinksArray, Label: "Links"},
		},
	},
}
