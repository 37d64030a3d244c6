package config

import (
	"fmt"
	"net/url"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// ventas.yml, and returns it.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to ventas! Let's configure your site.")
	fmt.Println()

	cfg := Default()

	// 1. GitHub org and repo. They decide where sale issues land and
	// where the Pages fallback catalog is served from.
	orgPrompt := promptui.Prompt{
		Label:    "GitHub organization or user",
		Default:  cfg.Org,
		Validate: notEmpty("organization"),
	}
	org, err := orgPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("organization: %w", err)
	}

	repoPrompt := promptui.Prompt{
		Label:    "Repository name",
		Default:  cfg.Repo,
		Validate: notEmpty("repository"),
	}
	repo, err := repoPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}

	titlePrompt := promptui.Prompt{
		Label:    "Site title",
		Default:  cfg.Title,
		Validate: notEmpty("site title"),
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}

	// 2. Issue-creation endpoint.
	apiPrompt := promptui.Prompt{
		Label:   "Sale registration endpoint",
		Default: cfg.APIURL,
		Validate: func(s string) error {
			u, err := url.Parse(s)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("must be an absolute http(s) URL")
			}
			return nil
		},
	}
	apiURL, err := apiPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("endpoint: %w", err)
	}

	// 3. Directories.
	contentPrompt := promptui.Prompt{
		Label:    "Content directory",
		Default:  cfg.ContentDir,
		Validate: notEmpty("content directory"),
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}

	outputPrompt := promptui.Prompt{
		Label:    "Output directory (the GitHub Pages root)",
		Default:  cfg.OutputDir,
		Validate: notEmpty("output directory"),
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	cfg.Org = org
	cfg.Repo = repo
	cfg.Title = title
	cfg.APIURL = apiURL
	cfg.MenuFallback = PagesURL(org, repo) + "/" + cfg.MenuLocal
	cfg.ContentDir = contentDir
	cfg.OutputDir = outputDir

	configPath := "ventas.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// notEmpty returns a promptui validator rejecting blank input.
func notEmpty(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s must not be empty", what)
		}
		return nil
	}
}
