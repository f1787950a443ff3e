package derive

import (
	"github.com/angelmondragon/shopstate/internal/catalog"
	"github.com/angelmondragon/shopstate/internal/store"
)

const (
	TagSellingFast  = "Selling Fast"
	TagFreeDelivery = "Free Delivery"

	SectionSellingFast  = "Selling Fast"
	SectionFreeDelivery = "Free Delivery"
	SectionAllProducts  = "All Products"
)

// Carousel is one titled product row on the home screen.
type Carousel struct {
	Title    string            `json:"title"`
	Products []catalog.Product `json:"products"`
}

// Home is the home screen model: banners followed by the three product carousels.
// The carousels are always present, empty while products load.
type Home struct {
	Banners   []catalog.Banner `json:"banners"`
	Carousels []Carousel       `json:"carousels"`
	Loading   bool             `json:"loading"`
	Error     string           `json:"error,omitempty"`
}

func HomeSections(s store.State) Home {
	products := s.Products.Value
	if products == nil {
		products = []catalog.Product{}
	}
	banners := s.Banners.Value
	if banners == nil {
		banners = []catalog.Banner{}
	}
	carousels := []Carousel{
		{Title: SectionSellingFast, Products: GroupByTag(products, TagSellingFast)},
		{Title: SectionFreeDelivery, Products: GroupByTag(products, TagFreeDelivery)},
		{Title: SectionAllProducts, Products: products},
	}

	errMsg := s.Products.Error
	if errMsg == "" {
		errMsg = s.Banners.Error
	}

	return Home{
		Banners:   banners,
		Carousels: carousels,
		Loading:   s.Products.Loading() || s.Banners.Loading(),
		Error:     errMsg,
	}
}
