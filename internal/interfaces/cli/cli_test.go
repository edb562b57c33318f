package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-atributos/internal/application/dto"
	"github.com/jhoicas/Catalogo-atributos/internal/interfaces/cli"
	"github.com/jhoicas/Catalogo-atributos/pkg/config"
)

// testConfig badger persistente en un directorio temporal para compartir datos entre ejecuciones.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)
	dir := t.TempDir()
	cfg.App.Env = "production"
	cfg.Log.Level = "error"
	cfg.Badger.Path = filepath.Join(dir, "catalog")
	cfg.Badger.SyncWrites = false
	cfg.Metrics.File = filepath.Join(dir, "catalog.prom")
	return cfg
}

func run(t *testing.T, cfg *config.Config, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = cli.Execute(context.Background(), args, cli.Options{
		Stdout:     &out,
		Stderr:     &errOut,
		Log:        io.Discard,
		LoadConfig: func() (*config.Config, error) { return cfg, nil },
	})
	return code, out.String(), errOut.String()
}

func decodeError(t *testing.T, stderr string) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(stderr), &resp), stderr)
	return resp
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// ─────────────────────────────────────────────────────────────────────────────
// demo
// ─────────────────────────────────────────────────────────────────────────────

func TestDemo(t *testing.T) {
	cfg := testConfig(t)
	code, stdout, stderr := run(t, cfg, "demo")
	require.Equal(t, 0, code, stderr)

	var res cli.DemoResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))

	assert.Equal(t, []string{"Computer", "Desktop", "Laptop"}, res.Import.Order)
	assert.Equal(t, "Desktop", res.Schema.Category)
	require.Len(t, res.Schema.Entries, 5)
	assert.Equal(t, "Weight", res.Schema.Entries[0].Name)
	assert.Equal(t, "Desktop", res.Schema.Entries[0].Source)
	assert.Equal(t, "Shipping weight", res.Schema.Entries[4].Name)
	assert.Equal(t, "Computer", res.Schema.Entries[4].Source)

	assert.Equal(t, "Desktop", res.Product.Category)
	assert.Len(t, res.Product.Attributes, 5)
	assert.GreaterOrEqual(t, res.Product.SKU, int64(0))
	assert.Less(t, res.Product.SKU, cfg.Catalog.SKURange)

	assert.Equal(t, "REQUIRED_ATTRIBUTE_MISSING", res.ExpectedFailure.Code)
	assert.Contains(t, res.ExpectedFailure.Message, `"Name"`)

	// la demo no toca el almacén configurado
	_, err := os.Stat(cfg.Badger.Path)
	assert.True(t, os.IsNotExist(err))

	metrics, err := os.ReadFile(cfg.Metrics.File)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "catalog_products_created_total 1")
	assert.Contains(t, string(metrics), `catalog_validations_total{outcome="required_missing"} 1`)
}

// ─────────────────────────────────────────────────────────────────────────────
// import, schema, product
// ─────────────────────────────────────────────────────────────────────────────

const attributesYAML = `
- name: Name
  unit: PIECE
- name: CPU frequency
  unit: MHz
- name: Weight
  unit: kg
`

const categoriesJSON = `[
  {"name": "Desktop", "super": "Computer", "attributes": [{"attr_name": "Weight"}]},
  {"name": "Computer", "attributes": [
    {"attr_name": "Name", "required": true},
    {"attr_name": "CPU frequency", "required": true}
  ]}
]`

func TestImportSchemaAndProduct(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	attrs := writeFile(t, dir, "attributes.yaml", attributesYAML)
	cats := writeFile(t, dir, "categories.json", categoriesJSON)

	// Caso 1: importación ordena padres antes que hijas
	code, stdout, stderr := run(t, cfg, "import", "--attributes", attrs, "--categories", cats)
	require.Equal(t, 0, code, stderr)
	var imported dto.ImportResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &imported))
	assert.Equal(t, []string{"Computer", "Desktop"}, imported.Order)
	assert.Equal(t, 3, imported.Bindings)

	// Caso 2: reimportar falla con DUPLICATE
	code, _, stderr = run(t, cfg, "import", "--attributes", attrs, "--categories", cats)
	assert.Equal(t, 1, code)
	assert.Equal(t, "DUPLICATE", decodeError(t, stderr).Code)

	// Caso 3: esquema efectivo
	code, stdout, stderr = run(t, cfg, "schema", "Desktop")
	require.Equal(t, 0, code, stderr)
	var schema dto.SchemaResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &schema))
	names := make([]string, 0, len(schema.Entries))
	for _, e := range schema.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Weight", "Name", "CPU frequency"}, names)

	code, stdout, stderr = run(t, cfg, "schema", "--all")
	require.Equal(t, 0, code, stderr)
	var all []dto.SchemaResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &all))
	require.Len(t, all, 2)
	assert.Equal(t, "Computer", all[0].Category)

	// Caso 4: alta con SKU explícito y registro auxiliar
	code, stdout, stderr = run(t, cfg, "product", "create",
		"--category", "Desktop",
		"--data", `{"Name":"Desktop 1","CPU frequency":100,"Weight":0.8}`,
		"--sku", "42",
		"--aux", `computer={"cpu_frequency":100}`,
	)
	require.Equal(t, 0, code, stderr)
	var created dto.ProductResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &created))
	assert.Equal(t, int64(42), created.SKU)
	require.NotNil(t, created.Auxiliary)
	assert.Equal(t, "computer", created.Auxiliary.Kind)

	// Caso 5: lectura por SKU desde otra ejecución
	code, stdout, stderr = run(t, cfg, "product", "get", "42")
	require.Equal(t, 0, code, stderr)
	var got dto.ProductResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Desktop", got.Category)
	require.NotNil(t, got.Auxiliary)
	assert.Equal(t, "4", got.Auxiliary.Fields["expansion_slots"].String())

	// Caso 6: mismo SKU explícito
	code, _, stderr = run(t, cfg, "product", "create",
		"--category", "Desktop",
		"--data", `{"Name":"Desktop 2","CPU frequency":100}`,
		"--sku", "42",
	)
	assert.Equal(t, 1, code)
	assert.Equal(t, "TRANSACTION_ABORTED", decodeError(t, stderr).Code)

	// Caso 7: falta un requerido heredado
	code, _, stderr = run(t, cfg, "product", "create", "--category", "Desktop", "--data", `{"CPU frequency":100}`)
	assert.Equal(t, 1, code)
	assert.Equal(t, "REQUIRED_ATTRIBUTE_MISSING", decodeError(t, stderr).Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Errores de entrada
// ─────────────────────────────────────────────────────────────────────────────

func TestInputErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code string
	}{
		{"categoría inexistente", []string{"schema", "Laptop"}, "CATEGORY_NOT_FOUND"},
		{"schema sin nombre", []string{"schema"}, "VALIDATION"},
		{"schema con nombre y --all", []string{"schema", "Desktop", "--all"}, "VALIDATION"},
		{"import sin archivos", []string{"import"}, "VALIDATION"},
		{"flag desconocido", []string{"product", "create", "--color", "rojo"}, "VALIDATION"},
		{"data inválido", []string{"product", "create", "--category", "Desktop", "--data", "{"}, "VALIDATION"},
		{"aux sin tipo", []string{"product", "create", "--category", "Desktop", "--aux", `{"a":1}`}, "VALIDATION"},
		{"sku no numérico", []string{"product", "get", "abc"}, "VALIDATION"},
		{"sku inexistente", []string{"product", "get", "7"}, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, stdout, stderr := run(t, testConfig(t), tc.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.Equal(t, tc.code, decodeError(t, stderr).Code)
		})
	}
}
