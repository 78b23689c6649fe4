// Package shapeset decodes YAML documents that describe named shapes.
//
//	shapes:
//	  - name: board
//	    kind: rectangle
//	    params: {width: 10, height: 5}
//	  - name: plot
//	    kind: polygon
//	    params: {vertices: [0, 0, 10, 0, 10, 10, 0, 10]}
package shapeset

import (
	"fmt"
	"os"

	"github.com/sgostarter/libeasygo/cuserror"
	"github.com/sgostarter/libshapes/shape"
	"gopkg.in/yaml.v3"
)

type Definition struct {
	Name   string       `yaml:"name" json:"name"`
	Kind   shape.Kind   `yaml:"kind" json:"kind"`
	Params shape.Params `yaml:"params" json:"params"`
}

type Set struct {
	Shapes []Definition `yaml:"shapes" json:"shapes"`
}

type NamedShape struct {
	Name  string
	Shape shape.Shape
}

func Parse(d []byte) (*Set, error) {
	var set Set

	if err := yaml.Unmarshal(d, &set); err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(set.Shapes))

	for idx, def := range set.Shapes {
		if def.Name == "" {
			return nil, cuserror.NewWithErrorMsg(fmt.Sprintf("shape #%d has no name", idx))
		}

		if names[def.Name] {
			return nil, cuserror.NewWithErrorMsg(fmt.Sprintf("duplicate shape name: %s", def.Name))
		}

		names[def.Name] = true
	}

	return &set, nil
}

func LoadFile(fileName string) (*Set, error) {
	d, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	return Parse(d)
}

// Build creates every shape of the set in order; the first failure aborts.
func (set *Set) Build(factory shape.Factory) (shapes []NamedShape, err error) {
	if factory == nil {
		factory = shape.NewFactory()
	}

	shapes = make([]NamedShape, 0, len(set.Shapes))

	for _, def := range set.Shapes {
		s, e := factory.Create(def.Kind, def.Params)
		if e != nil {
			err = fmt.Errorf("shape %s: %w", def.Name, e)

			return nil, err
		}

		shapes = append(shapes, NamedShape{
			Name:  def.Name,
			Shape: s,
		})
	}

	return
}
