package config

// Fixed values of the published site contract. The API endpoint is the
// hosted issue-creation service; the fallback catalog lives on the GitHub
// Pages deployment of this same repository.
const (
	DefaultOrg    = "casadelapaleta"
	DefaultRepo   = "ventas"
	DefaultAPIURL = "https://ventas-backend-rose.vercel.app/api/create-issue"
	DefaultMenu   = "menu.json"
)

// DefaultExcludes are content glob patterns excluded from the build by
// default. Drafts stay out of the published site.
var DefaultExcludes = []string{
	"_drafts/**",
	"**/*.tmp",
}

// Default returns a Config with the published site contract and sensible
// toolchain defaults.
func Default() *Config {
	return &Config{
		Org:          DefaultOrg,
		Repo:         DefaultRepo,
		APIURL:       DefaultAPIURL,
		MenuLocal:    DefaultMenu,
		MenuFallback: PagesURL(DefaultOrg, DefaultRepo) + "/" + DefaultMenu,

		Title:      "La Casa de la Paleta",
		ContentDir: "content",
		OutputDir:  "docs",
		DataDir:    "data",
		DBPath:     "data/ventas.db",
		Include:    []string{"**"},
		Exclude:    DefaultExcludes,

		Serve: ServeConfig{
			Port: 8080,
			Open: false,
		},
	}
}
