package services

import "aurora/internal/models/db_models"

const seedBrand = "Aurora Beauty"

func seedProduct(name, category, description string, price float64, stock int, suitableFor, targets, whenToApply string) db_models.Product {
	return db_models.Product{
		Name:        name,
		Brand:       seedBrand,
		Category:    category,
		Description: description,
		Price:       price,
		Stock:       stock,
		SuitableFor: db_models.ParseCommaList(suitableFor),
		Targets:     db_models.ParseCommaList(targets),
		WhenToApply: db_models.ParseCommaList(whenToApply),
	}
}

// starterCatalog is the built-in product list inserted by SeedProducts.
func starterCatalog() []db_models.Product {
	return []db_models.Product{
		seedProduct("Botanical Repair Mist", "Toner",
			"A soothing mist that helps repair and rejuvenate skin.", 24.99, 50,
			"Acne, Eczema, Rosacea, Dry Skin, Normal Skin", "Skin Repair, Hydration, Soothing", "AM/PM"),
		seedProduct("Lavender Foaming Face Wash", "Cleanser",
			"Gentle foaming cleanser with lavender extract.", 19.99, 45,
			"Acne, Rosacea, Oily Skin", "Cleansing, Oil Control", "AM/PM"),
		seedProduct("Sandal Mist", "Toner",
			"Refreshing mist with sandalwood extract.", 22.99, 40,
			"Acne, Rosacea, Dry Skin, Normal Skin", "Hydration, Soothing", "AM/PM"),
		seedProduct("BIO Enzyme GLYCOLIC Vinegar", "Treatment",
			"Exfoliating treatment with glycolic acid.", 29.99, 35,
			"Acne, Keratosis, Milia, Oily Skin", "Exfoliation, Brightening", "PM"),
		seedProduct("Asian Clay & Rose Mask", "Mask",
			"Purifying clay mask with rose extract.", 27.99, 30,
			"Acne, Wrinkles, Oily Skin, Normal Skin", "Deep Cleansing, Anti-aging", "PM"),
		seedProduct("Intensive Skin Repair Sandal Lotion", "Moisturizer",
			"Intensive repair lotion with sandalwood.", 34.99, 40,
			"Acne, Eczema, Rosacea, Wrinkles, Dry Skin", "Skin Repair, Moisturizing", "AM/PM"),
		seedProduct("Niacinamide & NEEM Toner", "Toner",
			"Balancing toner with niacinamide and neem.", 21.99, 45,
			"Acne, Rosacea, Oily Skin, Hyperpigmentation", "Oil Control, Brightening", "AM/PM"),
		seedProduct("Charcoal Detox Soap", "Cleanser",
			"Deep cleansing soap with activated charcoal.", 16.99, 50,
			"Acne, Oily Skin", "Deep Cleansing, Detoxifying", "AM/PM"),
		seedProduct("Lavender Soothing Lotion", "Moisturizer",
			"Calming lotion with lavender extract.", 29.99, 40,
			"Eczema, Rosacea, Dry Skin", "Soothing, Moisturizing", "AM/PM"),
		seedProduct("Radiant Plump Serum", "Serum",
			"Hydrating serum for plump, radiant skin.", 39.99, 35,
			"Eczema, Rosacea, Wrinkles, Dry Skin, Hyperpigmentation", "Hydration, Anti-aging", "AM/PM"),
		seedProduct("Radiant Rose Face Mist", "Toner",
			"Refreshing rose mist for radiant skin.", 23.99, 45,
			"Eczema, Rosacea, Dry Skin, Normal Skin", "Hydration, Brightening", "AM/PM"),
		seedProduct("Radiant Plump Moisturizer with Glutathione", "Moisturizer",
			"Advanced moisturizer with glutathione for radiant skin.", 44.99, 30,
			"Eczema, Rosacea, Wrinkles, Dry Skin, Hyperpigmentation", "Anti-aging, Brightening", "AM/PM"),
		seedProduct("Sandal Glow Facial & Body Scrub", "Scrub",
			"Exfoliating scrub with sandalwood for glowing skin.", 26.99, 35,
			"Keratosis, Wrinkles, Dry Skin", "Exfoliation, Brightening", "PM"),
	}
}
