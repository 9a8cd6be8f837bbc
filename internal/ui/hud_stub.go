//go:build !ebiten

package ui

import "flockfx/internal/registry"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(*registry.Registry, int) *HUD { return nil }

// SetRegistry is a no-op in the headless build.
func (h *HUD) SetRegistry(*registry.Registry) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
