package providers

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	proto "github.com/tliron/glsp/protocol_3_16"
	"github.com/vantaboard/class-fold/fold"
	"github.com/vantaboard/class-fold/i18n"
	"github.com/vantaboard/class-fold/scanner"
	"github.com/vantaboard/class-fold/state"
	. "github.com/vantaboard/class-fold/types"
	"gopkg.in/yaml.v3"
)

// Configuration is read from the --config file, initializationOptions,
// workspace/didChangeConfiguration and config/change. Each source is
// decoded over the previous one, so absent keys keep their value.
type Configuration struct {
	Locale        string   `json:"locale" mapstructure:"locale"`
	Languages     []string `json:"languages" mapstructure:"languages"`
	Class         bool     `json:"class" mapstructure:"class"`
	Style         bool     `json:"style" mapstructure:"style"`
	EditingDelay  int      `json:"editing_delay" mapstructure:"editing_delay"`
	FoldLevels    int      `json:"fold_levels" mapstructure:"fold_levels"`
	FoldDirection string   `json:"fold_direction" mapstructure:"fold_direction"`
	MatchTimeout  int      `json:"match_timeout" mapstructure:"match_timeout"`
}

func DefaultConfiguration() Configuration {
	options := fold.DefaultOptions()

	return Configuration{
		Locale:        i18n.Locale(),
		Languages:     options.Languages,
		Class:         true,
		Style:         true,
		EditingDelay:  int(options.EditingDelay / time.Millisecond),
		FoldLevels:    options.FoldLevels,
		FoldDirection: string(options.FoldDirection),
		MatchTimeout:  int(options.MatchTimeout / time.Millisecond),
	}
}

// Merge decodes src over a copy of config.
func (config Configuration) Merge(src any) (res Configuration, err error) {
	res = config

	if src == nil {
		return
	}

	// decoding into a non-nil slice keeps its trailing items
	res.Languages = nil

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &res,
	})

	if err != nil {
		return
	}

	err = decoder.Decode(src)

	if err != nil {
		err = errors.New(i18n.L("invalid_config", err.Error()))
	}

	if res.Languages == nil {
		res.Languages = config.Languages
	}

	return
}

// Options converts the configuration for the fold controller.
func (config Configuration) Options() (options fold.Options, err error) {
	direction := fold.Direction(config.FoldDirection)

	if !direction.Valid() {
		err = errors.New(i18n.L("unknown_fold_direction", config.FoldDirection))
		return
	}

	options = fold.DefaultOptions()
	options.Languages = config.Languages
	options.Kinds = make([]scanner.Kind, 0, len(scanner.Kinds))
	options.FoldDirection = direction

	if config.Class {
		options.Kinds = append(options.Kinds, scanner.Class)
	}

	if config.Style {
		options.Kinds = append(options.Kinds, scanner.Style)
	}

	if config.FoldLevels > 0 {
		options.FoldLevels = config.FoldLevels
	}

	if config.EditingDelay > 0 {
		options.EditingDelay = time.Duration(config.EditingDelay) * time.Millisecond
	} else {
		options.EditingDelay = state.DefaultEditingDelay
	}

	if config.MatchTimeout > 0 {
		options.MatchTimeout = time.Duration(config.MatchTimeout) * time.Millisecond
	}

	return
}

// LoadConfiguration reads a YAML file over the defaults. An empty path gives
// the defaults.
func LoadConfiguration(path string) (config Configuration, err error) {
	config = DefaultConfiguration()

	if path == "" {
		return
	}

	data, err := os.ReadFile(path)

	if err != nil {
		return
	}

	src := make(map[string]any)
	err = yaml.Unmarshal(data, &src)

	if err != nil {
		return
	}

	return config.Merge(src)
}

// settings sent by editors are often nested under the extension key
func unwrapSettings(settings any) any {
	if m, ok := settings.(map[string]any); ok {
		if nested, ok := m[ExperimentalKey]; ok {
			return nested
		}
	}

	return settings
}

func (s *Session) ConfigurationChange(_ *Ctx, src map[string]any) error {
	return s.Configure(src)
}

func (s *Session) DidChangeConfiguration(_ *Ctx, params *proto.DidChangeConfigurationParams) error {
	return s.Configure(unwrapSettings(params.Settings))
}

type ConfigurationHandlers struct {
	Change ConfigChangeFunc
}

func (req *ConfigurationHandlers) Handle(ctx *Ctx) (res any, validMethod bool, validParams bool, err error) {
	switch ctx.Method {
	case ConfigChangeMethod:
		validMethod = true

		var params map[string]any
		if err = json.Unmarshal(ctx.Params, &params); err == nil {
			validParams = true
			err = req.Change(ctx, params)
		}
	}

	return
}

type ConfigChangeFunc func(*Ctx, map[string]any) error
