package controller

type Route string

const (
	RouteHome           Route = "Home"
	RouteSearch         Route = "Search"
	RouteProductDetails Route = "ProductDetails"
	RouteCart           Route = "Cart"
	RouteCartReview     Route = "CartReview"
	RouteConfirmation   Route = "Confirmation"
)

// Navigator moves the presentation layer between screens.
type Navigator interface {
	Navigate(route Route, params map[string]string)
	// Reset replaces the navigation stack with route.
	Reset(route Route)
}

type NoopNavigator struct{}

func (NoopNavigator) Navigate(Route, map[string]string) {}
func (NoopNavigator) Reset(Route)                       {}
