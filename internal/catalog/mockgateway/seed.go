package mockgateway

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopstate/internal/catalog"
)

const (
	TagFreeDelivery = "Free Delivery"
	TagSellingFast  = "Selling Fast"
)

// SeedProducts returns a fresh copy of the demo catalog.
func SeedProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:    "1",
			Name:  "Wireless Bluetooth Headphones",
			Price: decimal.RequireFromString("299.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500",
				"https://images.unsplash.com/photo-1484704849700-f032a568e944?w=500",
				"https://images.unsplash.com/photo-1572569511254-d8f925fe2cbb?w=500",
			},
			Description: "Premium wireless headphones with noise cancellation and 30-hour battery life.",
			Tags:        []string{TagFreeDelivery, TagSellingFast},
			Category:    "Electronics",
		},
		{
			ID:    "2",
			Name:  "Smart Watch Pro",
			Price: decimal.RequireFromString("499.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500",
				"https://images.unsplash.com/photo-1434493789847-2f02dc6ca35d?w=500",
			},
			Description: "Advanced smartwatch with health tracking and GPS.",
			Tags:        []string{TagFreeDelivery},
			Category:    "Electronics",
		},
		{
			ID:    "3",
			Name:  "Laptop Stand Aluminum",
			Price: decimal.RequireFromString("89.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500",
				"https://images.unsplash.com/photo-1593642632823-8f785ba67e45?w=500",
			},
			Description: "Ergonomic aluminum laptop stand for better posture.",
			Tags:        []string{TagSellingFast},
			Category:    "Accessories",
		},
		{
			ID:    "4",
			Name:  "Mechanical Keyboard RGB",
			Price: decimal.RequireFromString("149.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1587829741301-dc798b83add3?w=500",
				"https://images.unsplash.com/photo-1618384887929-16ec33cab9ef?w=500",
			},
			Description: "RGB mechanical keyboard with customizable keys.",
			Tags:        []string{TagFreeDelivery, TagSellingFast},
			Category:    "Electronics",
		},
		{
			ID:    "5",
			Name:  "Wireless Mouse",
			Price: decimal.RequireFromString("49.99"),
			Images: []string{
				"https://images.unsplash.com/photo-1527814050087-3793815479db?w=500",
				"https://images.unsplash.com/photo-1615663245857-ac93bb7c39e7?w=500",
			},
			Description: "Ergonomic wireless mouse with precision tracking.",
			Tags:        []string{TagFreeDelivery},
			Category:    "Accessories",
		},
		{
			ID:          "6",
			Name:        "USB-C Hub",
			Price:       decimal.RequireFromString("79.99"),
			Images:      []string{"https://images.unsplash.com/photo-1587825147138-346c006f4f98?w=500"},
			Description: "Multi-port USB-C hub with HDMI and card reader.",
			Tags:        []string{TagSellingFast},
			Category:    "Accessories",
		},
	}
}

func SeedBanners() []catalog.Banner {
	return []catalog.Banner{
		{
			ID:       "1",
			Image:    "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=800",
			Title:    "Summer Sale",
			Subtitle: "Up to 50% off on Electronics",
		},
		{
			ID:       "2",
			Image:    "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800",
			Title:    "New Arrivals",
			Subtitle: "Check out our latest products",
		},
		{
			ID:       "3",
			Image:    "https://images.unsplash.com/photo-1556740758-90de374c12ad?w=800",
			Title:    "Free Delivery",
			Subtitle: "On orders over $100",
		},
	}
}

func SeedPaymentMethods() []catalog.PaymentMethod {
	return []catalog.PaymentMethod{
		{ID: "1", Name: "Credit/Debit Card", Icon: "credit-card"},
		{ID: "2", Name: "Cash on Delivery", Icon: "cash"},
	}
}
