package output

import (
	"io"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// PlanDocument is the YAML shape printed by --dry-run.
type PlanDocument struct {
	Operation string   `yaml:"operation"`
	Tool      string   `yaml:"tool"`
	Args      []string `yaml:"args"`
}

// WritePlan renders doc as a YAML document on w.
func WritePlan(w io.Writer, doc PlanDocument) error {
	if doc.Args == nil {
		doc.Args = []string{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return eris.Wrap(err, "encode plan")
	}
	return eris.Wrap(enc.Close(), "flush plan")
}
