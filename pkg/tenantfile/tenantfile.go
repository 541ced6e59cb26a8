// Package tenantfile loads the clinic registry from a YAML file and watches
// the file for changes.
//
// File format:
//
//	tenants:
//	  - subdomain: cgh
//	    slug: city-general-hospital
//	    name: City General Hospital
package tenantfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
)

type document struct {
	Tenants []entry `yaml:"tenants"`
}

type entry struct {
	Subdomain string `yaml:"subdomain"`
	Slug      string `yaml:"slug"`
	Name      string `yaml:"name"`
}

// Source is a tenancy.Source backed by a YAML file.
type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Name() string { return "file:" + s.path }

func (s *Source) Path() string { return s.path }

func (s *Source) Load(context.Context) ([]tenancy.Tenant, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return Parse(data)
}

// Parse decodes a registry document. Unknown keys are rejected so a typo
// does not silently drop a clinic.
func Parse(data []byte) ([]tenancy.Tenant, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode registry: %w", err)
	}

	out := make([]tenancy.Tenant, 0, len(doc.Tenants))
	for _, e := range doc.Tenants {
		out = append(out, tenancy.Tenant{Subdomain: e.Subdomain, Slug: e.Slug, Name: e.Name})
	}
	return out, nil
}

// Write encodes tenants in the registry format.
func Write(w io.Writer, tenants []tenancy.Tenant) error {
	doc := document{Tenants: make([]entry, 0, len(tenants))}
	for _, t := range tenants {
		doc.Tenants = append(doc.Tenants, entry{Subdomain: t.Subdomain, Slug: t.Slug, Name: t.Name})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
