// Where: internal/definition/parser.go
// What: Experiment definition parsing and schema validation.
// Why: Validate declarative experiment files before building specs.
package definition

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

//go:embed schema/experiment.schema.json
var schemaFS embed.FS

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

// Definition is a validated experiment file.
type Definition struct {
	Title        string            `json:"title"`
	Packageables []PackageableSpec `json:"packageables"`
}

// PackageableSpec pairs one executable description with its executor and
// static parameters.
type PackageableSpec struct {
	Executable    ExecutableSpec     `json:"executable"`
	Executor      string             `json:"executor,omitempty"`
	Args          []string           `json:"args,omitempty"`
	Env           map[string]string  `json:"env,omitempty"`
	DockerOptions *DockerOptionsSpec `json:"docker_options,omitempty"`
}

// DockerOptionsSpec tunes local container execution.
type DockerOptionsSpec struct {
	Mounts map[string]string `json:"mounts,omitempty"`
	Ports  map[int]int       `json:"ports,omitempty"`
}

// ExecutableSpec is the raw executable description keyed by kind.
type ExecutableSpec struct {
	Kind               string          `json:"kind"`
	Path               string          `json:"path,omitempty"`
	Image              string          `json:"image,omitempty"`
	Label              string          `json:"label,omitempty"`
	BaseImage          string          `json:"base_image,omitempty"`
	DockerInstructions []string        `json:"docker_instructions,omitempty"`
	Entrypoint         *EntrypointSpec `json:"entrypoint,omitempty"`
}

// EntrypointSpec holds either a module name or a command list.
type EntrypointSpec struct {
	Module   string   `json:"module,omitempty"`
	Commands []string `json:"commands,omitempty"`
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		data, err := schemaFS.ReadFile("schema/experiment.schema.json")
		if err != nil {
			schemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("experiment.schema.json", bytes.NewReader(data)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("experiment.schema.json")
	})
	return compiledSchema, schemaErr
}

// Parse validates YAML content against the experiment schema and decodes
// it into a Definition.
func Parse(content []byte) (Definition, error) {
	sch, err := loadSchema()
	if err != nil {
		return Definition{}, err
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return Definition{}, fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return Definition{}, fmt.Errorf("decode json: %w", err)
	}
	if err := sch.Validate(document); err != nil {
		return Definition{}, fmt.Errorf("invalid experiment definition: %w", err)
	}

	var def Definition
	if err := json.Unmarshal(jsonData, &def); err != nil {
		return Definition{}, fmt.Errorf("decode definition: %w", err)
	}
	return def, nil
}

// ParseFile reads and parses an experiment definition file.
func ParseFile(path string) (Definition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, err
	}
	return Parse(content)
}
