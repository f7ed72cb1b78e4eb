package catalog

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// xmlCatalog matches the catalog XML schema:
//
//	<Catalog>
//	  <Group Name="props">
//	    <Model Name="Crate" File="props/crate.obj"/>
//	  </Group>
//	</Catalog>
type xmlCatalog struct {
	Groups []xmlGroup `xml:"Group"`
}

type xmlGroup struct {
	Name   string     `xml:"Name,attr"`
	Models []xmlModel `xml:"Model"`
}

type xmlModel struct {
	Name string `xml:"Name,attr"`
	File string `xml:"File,attr"`
}

// Parse reads a catalog XML file and returns all models that name a file.
func Parse(xmlPath string) ([]ModelDef, error) {
	raw, err := os.ReadFile(xmlPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", xmlPath, err)
	}

	var cat xmlCatalog
	if err := xml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", xmlPath, err)
	}

	var models []ModelDef
	for _, g := range cat.Groups {
		for _, m := range g.Models {
			if m.File == "" {
				continue
			}
			file := filepath.ToSlash(strings.ReplaceAll(m.File, "\\", "/"))
			name := m.Name
			if name == "" {
				name = stem(file)
			}
			models = append(models, ModelDef{Group: g.Name, Name: name, File: file})
		}
	}

	return models, nil
}

// Scan finds every .obj file under dir. The group is the containing
// directory relative to dir ("" for the root); results are sorted by file.
func Scan(dir string) ([]ModelDef, error) {
	var models []ModelDef
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".obj") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		group := filepath.ToSlash(filepath.Dir(rel))
		if group == "." {
			group = ""
		}
		models = append(models, ModelDef{Group: group, Name: stem(rel), File: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: scan %s: %w", dir, err)
	}

	sort.Slice(models, func(i, j int) bool { return models[i].File < models[j].File })
	return models, nil
}

func stem(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
