package controllers

import (
	"github.com/souqdz/souq/config"
	"github.com/souqdz/souq/pkg/ctx"
)

// ConfigController exposes the public client bootstrap settings.
//
// The storefront JS fetches these before it can talk to the hosted
// database and image CDN, so secrets must never leak through here; only
// the publishable keys are returned.
type ConfigController struct{}

func NewConfigController() *ConfigController {
	return &ConfigController{}
}

// Show returns the four publishable settings under their exact legacy
// key names. The storefront bundle depends on this shape.
func (ConfigController) Show(c *ctx.Context) {
	c.JSON(200, map[string]string{
		"supabaseUrl":      config.PublicDatabaseURL(),
		"supabaseKey":      config.PublicDatabaseKey(),
		"cloudinaryName":   config.ImageHostName(),
		"cloudinaryPreset": config.ImageHostPreset(),
	})
}
