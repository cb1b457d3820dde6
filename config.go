package stylesheet

import (
	"fmt"

	validator "github.com/go-playground/validator/v10"

	"github.com/yacobolo/stylesheet/internal/compiler"
)

// Config holds build configuration.
type Config struct {
	Sources   []string `validate:"required_without=Inline,dive,required"` // globs: "assets/styles/**/*.css"
	Inline    []string `validate:"dive,required"`                         // raw CSS, keyed raw:<hash>
	Templates []string `validate:"dive,required"`                         // globs: "templates/**/*.html"
	Output    string   `validate:"required"`                              // "public/app.css"

	Baseline string // seed colors; empty skips the family
	Primary  string

	Strict         bool // conflicting @charset is an error
	Pretty         bool
	NoCoalesce     bool
	SkipInvalid    bool // report and skip sources that fail to parse
	Force          bool // rebuild even when the output is newer than every input
	IterationLimit int  `validate:"gte=0"`

	Safelist []string // class lists always generated, e.g. "flex col"
}

// Validate checks the configuration.
func (c Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// CompilerOptions maps the configuration onto the compiler.
func (c Config) CompilerOptions() compiler.Options {
	return compiler.Options{
		Strict:         c.Strict,
		Pretty:         c.Pretty,
		NoCoalesce:     c.NoCoalesce,
		SkipInvalid:    c.SkipInvalid,
		IterationLimit: c.IterationLimit,
		Safelist:       c.Safelist,
	}
}
