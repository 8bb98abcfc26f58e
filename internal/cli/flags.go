package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trihex/pkg/config"
)

// configFlags binds one flag per session field plus --config.
type configFlags struct {
	file string
	s    config.Session
}

// flagName maps a session field to its command-line flag.
func flagName(f config.Field) string {
	switch f {
	case config.FieldColorR:
		return "red"
	case config.FieldColorG:
		return "green"
	case config.FieldColorB:
		return "blue"
	}
	return strings.ReplaceAll(string(f), "_", "-")
}

func (f *configFlags) register(cmd *cobra.Command) {
	f.s = config.Defaults()
	fs := cmd.Flags()
	fs.StringVarP(&f.file, "config", "c", "", "TOML file with session parameters")
	cmd.MarkFlagFilename("config", "toml")
	for _, p := range config.Prompts {
		name, usage := flagName(p.Field), strings.ToLower(p.Question[:1])+p.Question[1:]
		switch p.Field {
		case config.FieldHexSize:
			fs.Float64Var(&f.s.HexSize, name, f.s.HexSize, usage)
		case config.FieldGapSize:
			fs.Float64Var(&f.s.GapSize, name, f.s.GapSize, usage)
		case config.FieldLayerCount:
			fs.IntVar(&f.s.LayerCount, name, f.s.LayerCount, usage)
		case config.FieldCenterEdgeWidth:
			fs.Float64Var(&f.s.CenterEdgeWidth, name, f.s.CenterEdgeWidth, usage)
		case config.FieldGlowWidth:
			fs.Float64Var(&f.s.GlowWidth, name, f.s.GlowWidth, usage)
		case config.FieldGlowLayers:
			fs.IntVar(&f.s.GlowLayers, name, f.s.GlowLayers, usage)
		case config.FieldColorR:
			fs.Float64Var(&f.s.Color.R, name, f.s.Color.R, usage)
		case config.FieldColorG:
			fs.Float64Var(&f.s.Color.G, name, f.s.Color.G, usage)
		case config.FieldColorB:
			fs.Float64Var(&f.s.Color.B, name, f.s.Color.B, usage)
		}
	}
}

// resolve layers defaults, the --config file and explicitly set flags, in
// that order, and validates the result.
func (f *configFlags) resolve(cmd *cobra.Command) (config.Session, error) {
	s := config.Defaults()
	if f.file != "" {
		loaded, err := config.Load(f.file)
		if err != nil {
			return config.Session{}, err
		}
		s = loaded
	}
	for _, p := range config.Prompts {
		flag := cmd.Flags().Lookup(flagName(p.Field))
		if flag == nil || !flag.Changed {
			continue
		}
		if err := s.Set(p.Field, flag.Value.String()); err != nil {
			return config.Session{}, err
		}
	}
	if err := s.Validate(); err != nil {
		return config.Session{}, err
	}
	return s, nil
}
