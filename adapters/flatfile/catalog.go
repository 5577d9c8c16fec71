package flatfile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"qqfit/domain/core"
)

// CatalogFile is the side-car metadata file naming the physical column order
// of every data file in a directory.
const CatalogFile = "columns.yaml"

type catalogDoc struct {
	ColumnNames []string `yaml:"column_names"`
}

// ColumnNames reads the column catalog for dir. The result names every
// physical column of the directory's data files in order; rows are addressed
// by this order, never by a header.
func ColumnNames(dir string) ([]string, error) {
	path := filepath.Join(dir, CatalogFile)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrCatalogMissing, path)
		}
		return nil, core.ConfigurationErrorf("reading column catalog %s: %v", path, err)
	}

	var doc catalogDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrCatalogMalformed, path, err)
	}
	if len(doc.ColumnNames) == 0 {
		return nil, fmt.Errorf("%w: %s has no column_names entry", core.ErrCatalogMalformed, path)
	}

	return doc.ColumnNames, nil
}
