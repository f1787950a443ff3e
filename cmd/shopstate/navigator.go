package main

import (
	"context"

	"github.com/angelmondragon/shopstate/internal/controller"
	"github.com/angelmondragon/shopstate/pkg/logger"
)

// logNavigator records screen transitions; the HTTP harness has no screens.
type logNavigator struct {
	logg *logger.Logger
}

func (n logNavigator) Navigate(route controller.Route, params map[string]string) {
	fields := map[string]any{"route": string(route)}
	for k, v := range params {
		fields[k] = v
	}
	n.logg.Info(n.logg.WithFields(context.Background(), fields), "navigation.push")
}

func (n logNavigator) Reset(route controller.Route) {
	n.logg.Info(n.logg.WithField(context.Background(), "route", string(route)), "navigation.reset")
}
