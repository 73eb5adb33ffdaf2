package preset

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// LoadFile reads a YAML preset file and validates it against the embedded
// CUE schema.
func LoadFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("reading preset file: %w", err)
	}
	return Load(path, data)
}

// Load parses YAML preset bytes, unifies them with the #Preset schema, and
// decodes the validated value. The filename is used in error positions only.
func Load(filename string, data []byte) (Preset, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Preset{}, fmt.Errorf("compiling preset schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Preset"))
	if !def.Exists() {
		return Preset{}, fmt.Errorf("preset schema missing #Preset definition")
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return Preset{}, fmt.Errorf("parsing preset YAML: %w", err)
	}
	value := ctx.BuildFile(file)
	if err := value.Err(); err != nil {
		return Preset{}, fmt.Errorf("building preset value: %w", err)
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Preset{}, fmt.Errorf("validating preset: %w", err)
	}

	// The schema guarantees shape and ranges; the YAML decoder fills the
	// struct through its yaml tags.
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("decoding preset: %w", err)
	}
	return p, nil
}
