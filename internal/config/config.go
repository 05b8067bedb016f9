package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"docspell/internal/dump"
	"docspell/internal/spell"
)

// Config is the root configuration. Command-line flags override it.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Engine    EngineConfig    `yaml:"engine"`
	Rules     RulesConfig     `yaml:"rules"`
	Words     WordsConfig     `yaml:"words"`
	Log       LogConfig       `yaml:"log"`
	Update    UpdateConfig    `yaml:"update"`

	// Timeout bounds the whole run; zero waits forever.
	Timeout time.Duration `yaml:"timeout" env:"DOCSPELL_TIMEOUT" env-default:"0s"`
}

// GeneratorConfig holds AST generator settings.
type GeneratorConfig struct {
	Command     string   `yaml:"command"      env:"DOCSPELL_GENERATOR"    env-default:"clang"`
	Std         string   `yaml:"std"          env:"DOCSPELL_STD"          env-default:"c++11"`
	IncludeDirs []string `yaml:"include_dirs" env:"DOCSPELL_INCLUDE_DIRS"`
	AllComments bool     `yaml:"all_comments" env:"DOCSPELL_ALL_COMMENTS" env-default:"false"`
}

// EngineConfig holds spelling engine settings.
type EngineConfig struct {
	Command       string `yaml:"command"        env:"DOCSPELL_ENGINE"         env-default:"hunspell"`
	Dictionary    string `yaml:"dictionary"     env:"DOCSPELL_DICTIONARY"`
	PersonalDict  string `yaml:"personal_dict"  env:"DOCSPELL_PERSONAL_DICT"`
	AcceptMarkers string `yaml:"accept_markers" env:"DOCSPELL_ACCEPT_MARKERS" env-default:"*"`
}

// RulesConfig holds the comment command tables.
type RulesConfig struct {
	CrossReferenceCommands []string `yaml:"cross_reference_commands" env:"DOCSPELL_XREF_COMMANDS"   env-default:"sa,see"`
	ThrowsCommands         []string `yaml:"throws_commands"          env:"DOCSPELL_THROWS_COMMANDS" env-default:"throws"`
	ImageCommands          []string `yaml:"image_commands"           env:"DOCSPELL_IMAGE_COMMANDS"  env-default:"image"`
	// KeepBacktrackedLines keeps text re-emitted on a line already taken
	// (see dump.Rules.SkipBacktracked).
	KeepBacktrackedLines bool `yaml:"keep_backtracked_lines" env:"DOCSPELL_KEEP_BACKTRACKED"`
}

// WordsConfig holds tokenizer settings.
type WordsConfig struct {
	Apostrophes string `yaml:"apostrophes" env:"DOCSPELL_APOSTROPHES" env-default:"keep"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"DOCSPELL_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"DOCSPELL_LOG_FORMAT" env-default:"text"`
}

// UpdateConfig names the GitHub repository checked by --update.
type UpdateConfig struct {
	Repository string `yaml:"repository" env:"DOCSPELL_UPDATE_REPOSITORY"` // owner/name
}

// Load reads configuration from the YAML file at path, when given, then
// from the environment. Priority: ENV > YAML > defaults.
// An empty path falls back to $DOCSPELL_CONFIG.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("DOCSPELL_CONFIG")
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return cfg, fmt.Errorf("config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("config: read env: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks values that cannot be expressed as tags.
func (c Config) Validate() error {
	if err := dump.ValidateStandard(c.Generator.Std); err != nil {
		return fmt.Errorf("config: generator.std: %w", err)
	}
	if _, err := spell.ParseApostrophePolicy(c.Words.Apostrophes); err != nil {
		return fmt.Errorf("config: words.apostrophes: %w", err)
	}
	if c.Generator.Command == "" {
		return fmt.Errorf("config: generator.command is required")
	}
	if c.Engine.Command == "" {
		return fmt.Errorf("config: engine.command is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative")
	}
	return nil
}

// ExtractRules returns the extractor rules described by the configuration.
func (c Config) ExtractRules() dump.Rules {
	return dump.Rules{
		CrossReference:  c.Rules.CrossReferenceCommands,
		Throws:          c.Rules.ThrowsCommands,
		Image:           c.Rules.ImageCommands,
		SkipBacktracked: !c.Rules.KeepBacktrackedLines,
	}
}

// Clang returns the configured AST generator.
func (c Config) Clang() *dump.Clang {
	return &dump.Clang{
		Path:        c.Generator.Command,
		Std:         c.Generator.Std,
		IncludeDirs: c.Generator.IncludeDirs,
		AllComments: c.Generator.AllComments,
	}
}

// Hunspell returns the configured spelling engine.
func (c Config) Hunspell() *spell.Hunspell {
	return &spell.Hunspell{
		Path:         c.Engine.Command,
		Dictionary:   c.Engine.Dictionary,
		PersonalDict: c.Engine.PersonalDict,
	}
}

// Tokenizer returns the configured word tokenizer. Validate has already
// rejected unknown policies.
func (c Config) Tokenizer() spell.Tokenizer {
	policy, _ := spell.ParseApostrophePolicy(c.Words.Apostrophes)
	return spell.Tokenizer{Apostrophes: policy}
}
