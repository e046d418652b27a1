package domain

import "time"

func fixtureTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixture(id, name string, price float64, minQty int, channel, phone, postedAt, category, description string) Product {
	return Product{
		ID:          id,
		Name:        name,
		Price:       price,
		MinQuantity: minQty,
		Channel:     channel,
		Contact:     Contact{Phone: phone, WhatsApp: WhatsAppLink(phone)},
		PostedAt:    fixtureTime(postedAt),
		Category:    category,
		Description: description,
		Image:       "/placeholder.svg?height=200&width=200",
	}
}

// SampleProducts is the offline catalog used when the search API is unreachable.
// It returns a fresh copy on every call.
func SampleProducts() []Product {
	return []Product{
		fixture("p001", "Premium Cotton T-Shirts (Bulk Pack)", 299, 50, "MegaClothDeals", "9876543210",
			"2025-07-03T10:00:00Z", "Clothing",
			"High-quality cotton t-shirts available in multiple colors and sizes. Perfect for retail business with excellent profit margins."),
		fixture("p002", "Wireless Bluetooth Earbuds - Wholesale", 899, 25, "TechWholesale", "9876543211",
			"2025-07-03T09:30:00Z", "Electronics",
			"Latest wireless earbuds with noise cancellation and 24-hour battery life. High demand product with 40% profit margin."),
		fixture("p003", "Designer Handbags Collection (Mixed)", 1299, 12, "FashionHub", "9876543212",
			"2025-07-03T08:45:00Z", "Fashion",
			"Trendy designer handbags in various styles and colors. High-quality materials with premium finishing."),
		fixture("p004", "Sports Shoes - Running Collection (Assorted)", 1899, 20, "SportsGear", "9876543213",
			"2025-07-03T07:20:00Z", "Sports",
			"Professional running shoes with advanced cushioning technology. Popular brand replicas with excellent build quality."),
		fixture("p005", "Kitchen Appliances Set (3-in-1)", 3499, 8, "HomeEssentials", "9876543214",
			"2025-07-03T06:15:00Z", "Home & Kitchen",
			"Complete kitchen appliances set including mixer, blender, and food processor. High-demand home appliances."),
		fixture("p006", "Mobile Phone Accessories Bundle (50 pcs)", 199, 100, "MobileWorld", "9876543215",
			"2025-07-02T18:30:00Z", "Electronics",
			"Complete mobile accessories bundle with cases, chargers, and screen protectors. Fast-moving inventory items."),
		fixture("p007", "Women's Ethnic Wear Collection", 799, 30, "EthnicFashion", "9876543216",
			"2025-07-02T16:45:00Z", "Fashion",
			"Beautiful ethnic wear collection including kurtis, sarees, and lehengas. Festival season high-demand products."),
		fixture("p008", "LED Smart Bulbs (Pack of 10)", 2499, 15, "SmartHome", "9876543217",
			"2025-07-02T14:20:00Z", "Electronics",
			"WiFi-enabled smart LED bulbs with app control and voice assistant compatibility. Growing smart home market."),
	}
}

// MockSearchProducts are served by the mock search endpoint.
func MockSearchProducts() []Product {
	wallet := fixture("api001", "Premium Leather Wallet Collection", 799, 15, "LeatherCrafts", "9876543220",
		"2025-07-03T11:30:00Z", "Fashion", "Handcrafted leather wallets with RFID protection")
	watch := fixture("api002", "Smart Watch Series Pro", 2999, 8, "TechGadgets", "9876543221",
		"2025-07-03T10:45:00Z", "Electronics", "Latest smartwatch with health monitoring and GPS")
	wallet.Image, watch.Image = "", ""
	return []Product{wallet, watch}
}

// Categories offered as search facets.
var Categories = []string{"Clothing", "Electronics", "Fashion", "Sports", "Home & Kitchen", "Beauty", "Books", "Toys"}
