package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a class declaration file. A file holds
// either a single class at the top level or a list under "classes".
type File struct {
	Classes []*Class `json:"classes,omitempty" yaml:"classes,omitempty"`
}

// ParseYAML decodes the classes declared in a YAML document.
func ParseYAML(buf []byte) ([]*Class, error) {
	var f File
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return nil, err
	}
	if len(f.Classes) > 0 {
		return f.Classes, nil
	}
	c := &Class{}
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, err
	}
	if isZero(c) {
		return nil, nil
	}
	return []*Class{c}, nil
}

// ParseJSON decodes the classes declared in a JSON document.
func ParseJSON(buf []byte) ([]*Class, error) {
	buf = bytes.TrimSpace(buf)
	if len(buf) > 0 && buf[0] == '[' {
		var cs []*Class
		if err := json.Unmarshal(buf, &cs); err != nil {
			return nil, err
		}
		return cs, nil
	}
	var f File
	if err := json.Unmarshal(buf, &f); err != nil {
		return nil, err
	}
	if len(f.Classes) > 0 {
		return f.Classes, nil
	}
	c := &Class{}
	if err := json.Unmarshal(buf, c); err != nil {
		return nil, err
	}
	if isZero(c) {
		return nil, nil
	}
	return []*Class{c}, nil
}

// LoadFile reads and decodes a class declaration file. The format is chosen
// by extension: ".json" is decoded as JSON, anything else as YAML.
func LoadFile(path string) ([]*Class, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cs []*Class
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		cs, err = ParseJSON(buf)
	default:
		cs, err = ParseYAML(buf)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	for _, c := range cs {
		c.Source = path
	}
	return cs, nil
}

// LoadFiles decodes all given files and returns their classes in file order.
func LoadFiles(paths ...string) ([]*Class, error) {
	var all []*Class
	for _, p := range paths {
		cs, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, cs...)
	}
	return all, nil
}

func isZero(c *Class) bool {
	return c.Name == "" && len(c.Properties) == 0 && c.Options == (Toggles{}) &&
		c.ConstructorAccess == nil && c.BuilderAccess == nil && c.PreConstructor == nil
}
