package client

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Client code talks to the server through internal/api only.
func TestClientDoesNotImportServerPackages(t *testing.T) {
	const serverPrefix = "github.com/dmitrijs2005/gophmessenger/internal/server"

	for _, dir := range []string{".", "../cli", "../config"} {
		files, err := filepath.Glob(filepath.Join(dir, "*.go"))
		require.NoError(t, err)
		require.NotEmpty(t, files, dir)

		for _, path := range files {
			f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ImportsOnly)
			require.NoError(t, err, path)
			for _, imp := range f.Imports {
				p, _ := strconv.Unquote(imp.Path.Value)
				if strings.HasPrefix(p, serverPrefix) {
					t.Fatalf("%s imports %s", path, p)
				}
			}
		}
	}
}
