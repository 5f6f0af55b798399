// internal/config/config.go
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config represents the application configuration
type Config struct {
	StartDir    string `toml:"start_dir"`
	LastDir     string `toml:"last_dir"`
	ShowHidden  bool   `toml:"show_hidden"`
	PreviewRows int    `toml:"preview_rows"`
	LogLevel    string `toml:"log_level"`
	Theme       Theme  `toml:"theme_colors"`
	Keys        KeyMap `toml:"keys"`

	// path the config was loaded from; empty means the XDG default
	path string
}

// Theme defines the color palette
type Theme struct {
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextFaint     string `toml:"text_faint"`
	Accent        string `toml:"accent"`
	Success       string `toml:"success"`
	Error         string `toml:"error"`
	Highlight     string `toml:"highlight"`
	Warning       string `toml:"warning"`
	BgPrimary     string `toml:"bg_primary"`
	BgSecondary   string `toml:"bg_secondary"`
	CardBg        string `toml:"card_bg"`
	PopupBg       string `toml:"popup_bg"`
	BorderColor   string `toml:"border_color"`
	SelectedBg    string `toml:"selected_bg"`
}

// KeyMap defines key bindings for the panel view. Keys inside modals are
// fixed so that a wizard can never be left by a rebound global key.
type KeyMap struct {
	Quit       []string `toml:"quit"`
	Help       []string `toml:"help"`
	NextPanel  []string `toml:"next_panel"`
	PrevPanel  []string `toml:"prev_panel"`
	MoveUp     []string `toml:"move_up"`
	MoveDown   []string `toml:"move_down"`
	Select     []string `toml:"select"`
	Import     []string `toml:"import"`
	Open       []string `toml:"open"`
	NewMemory  []string `toml:"new_memory"`
	Disconnect []string `toml:"disconnect"`
	Refresh    []string `toml:"refresh"`

	FocusDatabases []string `toml:"focus_databases"`
	FocusTables    []string `toml:"focus_tables"`
	FocusContent   []string `toml:"focus_content"`
	DropTable      []string `toml:"drop_table"`
	PrevColumn     []string `toml:"prev_column"`
	NextColumn     []string `toml:"next_column"`
	SortAsc        []string `toml:"sort_asc"`
	SortDesc       []string `toml:"sort_desc"`
	ClearSort      []string `toml:"clear_sort"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		StartDir:    "",
		LastDir:     "",
		ShowHidden:  false,
		PreviewRows: 100,
		LogLevel:    "info",
		Theme:       DefaultTheme(),
		Keys:        DefaultKeyMap(),
	}
}

// DefaultTheme returns the Nord palette
func DefaultTheme() Theme {
	return Theme{
		TextPrimary:   "#D8DEE9",
		TextSecondary: "#81A1C1",
		TextFaint:     "#4C566A",
		Accent:        "#88C0D0",
		Success:       "#A3BE8C",
		Error:         "#BF616A",
		Highlight:     "#8FBCBB",
		Warning:       "#D08770",
		BgPrimary:     "#2E3440",
		BgSecondary:   "#3B4252",
		CardBg:        "#434C5E",
		PopupBg:       "#3B4252",
		BorderColor:   "#4C566A",
		SelectedBg:    "#434C5E",
	}
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       []string{"q", "esc", "ctrl+c"},
		Help:       []string{"h", "?"},
		NextPanel:  []string{"tab"},
		PrevPanel:  []string{"shift+tab"},
		MoveUp:     []string{"up", "k"},
		MoveDown:   []string{"down", "j"},
		Select:     []string{"enter"},
		Import:     []string{"i"},
		Open:       []string{"o"},
		NewMemory:  []string{"n"},
		Disconnect: []string{"d"},
		Refresh:    []string{"r"},

		FocusDatabases: []string{"1"},
		FocusTables:    []string{"2"},
		FocusContent:   []string{"3"},
		DropTable:      []string{"D"},
		PrevColumn:     []string{"left"},
		NextColumn:     []string{"right"},
		SortAsc:        []string{"a"},
		SortDesc:       []string{"A"},
		ClearSort:      []string{"c"},
	}
}

// bindings lists every binding slot of the map
func (k *KeyMap) bindings() []*[]string {
	return []*[]string{
		&k.Quit, &k.Help, &k.NextPanel, &k.PrevPanel, &k.MoveUp, &k.MoveDown,
		&k.Select, &k.Import, &k.Open, &k.NewMemory, &k.Disconnect, &k.Refresh,
		&k.FocusDatabases, &k.FocusTables, &k.FocusContent, &k.DropTable,
		&k.PrevColumn, &k.NextColumn, &k.SortAsc, &k.SortDesc, &k.ClearSort,
	}
}

// ConfigPath returns the XDG-compliant config file path
func ConfigPath() (string, error) {
	return xdg.ConfigFile("ducky/config.toml")
}

// LogPath returns the XDG-compliant log file path
func LogPath() (string, error) {
	return xdg.StateFile("ducky/ducky.log")
}

// Load loads the config from the default location or creates it
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the config at path, writing defaults on first run
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run: create default
		cfg := DefaultConfig()
		cfg.path = path
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	cfg.path = path

	// Populate defaults for missing fields (migration)
	if cfg.fillDefaults() {
		// Persist defaults so user can see/edit them; in-memory defaults
		// are still used if the write fails
		_ = cfg.Save()
	}

	return &cfg, nil
}

// fillDefaults back-fills empty sections and reports whether anything changed
func (c *Config) fillDefaults() bool {
	defaults := DefaultConfig()
	updated := false

	if c.Theme.TextPrimary == "" {
		c.Theme = defaults.Theme
		updated = true
	}
	// Bindings added in later versions are missing from older files
	want := defaults.Keys.bindings()
	for i, slot := range c.Keys.bindings() {
		if len(*slot) == 0 {
			*slot = *want[i]
			updated = true
		}
	}
	if c.PreviewRows <= 0 {
		c.PreviewRows = defaults.PreviewRows
		updated = true
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
		updated = true
	}
	return updated
}

// Save writes the config to disk
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return err
		}
		c.path = path
	}

	// Ensure directory exists with secure permissions
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	// Create/truncate file with secure permissions (owner read/write only)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// BrowseDir returns the directory the file browser should open in:
// the last used directory if it still exists, then start_dir, then the
// working directory
func (c *Config) BrowseDir() string {
	for _, d := range []string{c.LastDir, c.StartDir} {
		if d == "" {
			continue
		}
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			return d
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// RememberDir records dir as the last used browser directory
func (c *Config) RememberDir(dir string) error {
	if dir == "" || dir == c.LastDir {
		return nil
	}
	c.LastDir = dir
	return c.Save()
}
