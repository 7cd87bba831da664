package htmlsanitize

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts a rule either as a mapping
//
//	{attr: type, value: "math/tex; mode=display", decision: allow}
//
// or as a sequence [attr, value] or [attr, value, decision].
// A missing decision means allow. An unknown decision is kept as is and
// never permits a tag.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var parts []string
		if err := node.Decode(&parts); err != nil {
			return err
		}
		if len(parts) < 2 || len(parts) > 3 {
			return fmt.Errorf("line %d: rule must have 2 or 3 items, got %d", node.Line, len(parts))
		}
		decision := ""
		if len(parts) == 3 {
			decision = parts[2]
		}
		r.Attr, r.Value = parts[0], parts[1]
		r.Decision, _ = ParseDecision(decision)
		return nil

	case yaml.MappingNode:
		var raw struct {
			Attr     string `yaml:"attr"`
			Value    string `yaml:"value"`
			Decision string `yaml:"decision"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		r.Attr, r.Value = raw.Attr, raw.Value
		r.Decision, _ = ParseDecision(raw.Decision)
		return nil
	}
	return fmt.Errorf("line %d: rule must be a mapping or a sequence", node.Line)
}

// LoadACL decodes a YAML tag ACL from r. An empty document yields an empty ACL.
func LoadACL(r io.Reader) (TagACL, error) {
	acl := TagACL{}
	if err := yaml.NewDecoder(r).Decode(&acl); err != nil {
		if errors.Is(err, io.EOF) {
			return TagACL{}, nil
		}
		return nil, errors.Join(ErrLoadACL, err)
	}
	if acl == nil {
		return TagACL{}, nil
	}
	return acl, nil
}

// LoadACLFile reads a YAML tag ACL from path.
func LoadACLFile(path string) (TagACL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrLoadACL, err)
	}
	defer f.Close()
	return LoadACL(f)
}
