package handlers

import (
	"context"

	"go.uber.org/zap"

	"github.com/bookhive/order_picker_service/internal/catalog"
	"github.com/bookhive/order_picker_service/internal/picker"
)

var (
	Logger   *zap.Logger
	Registry *picker.Registry

	// NewSource binds an upstream client to one session's bearer token.
	NewSource func(token string) picker.EntitySource

	// PickerConfig is the default query policy; screens can override the
	// empty-query behavior when opening a session.
	PickerConfig picker.Config

	// RedisHealthy is nil when the snapshot cache is disabled.
	RedisHealthy func(ctx context.Context) bool
)

func SetLogger(l *zap.Logger) {
	Logger = l
}

func SetRegistry(r *picker.Registry) {
	Registry = r
}

func SetSourceFactory(f func(token string) picker.EntitySource) {
	NewSource = f
}

func SetPickerConfig(cfg picker.Config) {
	PickerConfig = cfg
}

func SetRedisHealth(f func(ctx context.Context) bool) {
	RedisHealthy = f
}

type entityJSON struct {
	ID       string            `json:"id"`
	Kind     string            `json:"kind"`
	Display  map[string]string `json:"display"`
	Selected bool              `json:"selected"`
}

func toEntityJSON(e catalog.Entity, selected bool) entityJSON {
	return entityJSON{
		ID:       e.ID,
		Kind:     string(e.Kind),
		Display:  e.Display,
		Selected: selected,
	}
}
