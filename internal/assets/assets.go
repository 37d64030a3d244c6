// Package assets renders the generated page assets that the static pages
// load before their own logic runs.
package assets

import (
	"encoding/json"
	"fmt"

	"github.com/casadelapaleta/ventas-site/internal/config"
)

// GlobalName is the page global every page script reads its settings from.
const GlobalName = "VENTAS_CONFIG"

// pageConfig fixes the key names and order of the published schema. Page
// scripts depend on these exact five keys.
type pageConfig struct {
	Org          string `json:"org"`
	Repo         string `json:"repo"`
	APIURL       string `json:"apiUrl"`
	MenuLocal    string `json:"menuLocal"`
	MenuFallback string `json:"menuFallback"`
}

// ConfigScript renders the config script asset. Evaluating it assigns the
// global unconditionally, so loading the script twice overwrites rather
// than merges.
func ConfigScript(cfg *config.Config) (string, error) {
	pc := pageConfig{
		Org:          cfg.Org,
		Repo:         cfg.Repo,
		APIURL:       cfg.APIURL,
		MenuLocal:    cfg.MenuLocal,
		MenuFallback: cfg.MenuFallback,
	}
	data, err := json.MarshalIndent(pc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding page config: %w", err)
	}
	return "// Generated by ventas build. Do not edit.\nwindow." + GlobalName + " = " + string(data) + ";\n", nil
}
