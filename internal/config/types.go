package config

// Config is the top-level ventas configuration, corresponding to ventas.yml.
//
// The first five fields are the site contract: they are rendered verbatim
// into js/config.js as the VENTAS_CONFIG page global that every page script
// reads. They are never mutated after Load.
type Config struct {
	Org          string `yaml:"org" koanf:"org"`
	Repo         string `yaml:"repo" koanf:"repo"`
	APIURL       string `yaml:"api_url" koanf:"api_url"`
	MenuLocal    string `yaml:"menu_local" koanf:"menu_local"`
	MenuFallback string `yaml:"menu_fallback" koanf:"menu_fallback"`

	Title      string   `yaml:"title" koanf:"title"`
	ContentDir string   `yaml:"content_dir" koanf:"content_dir"`
	OutputDir  string   `yaml:"output_dir" koanf:"output_dir"`
	DataDir    string   `yaml:"data_dir" koanf:"data_dir"`
	DBPath     string   `yaml:"db_path" koanf:"db_path"`
	Include    []string `yaml:"include" koanf:"include"`
	Exclude    []string `yaml:"exclude" koanf:"exclude"`

	Serve ServeConfig `yaml:"serve" koanf:"serve"`
}

// ServeConfig holds preview-server settings.
type ServeConfig struct {
	Port int  `yaml:"port" koanf:"port"`
	Open bool `yaml:"open" koanf:"open"`
}
