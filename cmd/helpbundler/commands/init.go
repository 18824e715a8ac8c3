package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/helpbundler/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing configuration file"`
}

const starterConfig = `# helpbundler configuration
bundle:
  identifier: com.example.my-docs
  name: my-docs
  title: My Documentation
  # base_url: https://docs.example.com

source:
  content_root: ./content
  # assets_root: ./static
  # git:
  #   url: https://forge.example.com/team/docs.git
  #   ref: main
  #   subdir: docs

output:
  directory: ./bundle

scan:
  provider: hugo
  include_drafts: false
  workers: 4

theme:
  name: default # default|slate|paper|custom

history:
  enabled: false

logging:
  level: info
  format: text
`

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = config.DefaultConfigFile
	}
	if _, err := os.Stat(path); err == nil && !i.Force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("write configuration file: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
