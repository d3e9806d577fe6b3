package config

var Presets = map[string]*Config{
	"classic": {
		Count: 62, Start: 0, OutDir: DefaultOutDir,
		Plot:      PlotConfig{Format: "png", DPI: 100, LineWidth: 0.2},
		Animation: AnimConfig{Format: "mp4", FPS: 240, DPI: 100, DegreeSkip: 1},
	},
	"poster": {
		Count: 1000, Start: 0, OutDir: DefaultOutDir,
		Plot:      PlotConfig{Format: "svg", DPI: 300, LineWidth: 0.1},
		Animation: AnimConfig{Format: "mp4", FPS: 240, DPI: 100, DegreeSkip: 1},
	},
	"offset": {
		Count: 120, Start: 17, OutDir: DefaultOutDir,
		Plot:      PlotConfig{Format: "png", DPI: 150, LineWidth: 0.3},
		Animation: AnimConfig{Format: "mp4", FPS: 240, DPI: 100, DegreeSkip: 2},
	},
	"quick-gif": {
		Count: 30, Start: 0, OutDir: DefaultOutDir,
		Plot:      PlotConfig{Format: "png", DPI: 100, LineWidth: 0.5},
		Animation: AnimConfig{Enabled: true, Format: "gif", FPS: 50, DPI: 60, DegreeSkip: 15},
	},
}

// GetPreset returns a copy of the named preset, or nil when it does not exist.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
