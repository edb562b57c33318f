package catalog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-atributos/internal/application/catalog"
	"github.com/jhoicas/Catalogo-atributos/internal/application/dto"
	badgerstore "github.com/jhoicas/Catalogo-atributos/internal/infrastructure/badger"
	"github.com/jhoicas/Catalogo-atributos/internal/infrastructure/graphrepo"
)

// newRunner almacén Badger en memoria, cerrado al terminar el test.
func newRunner(t *testing.T) *graphrepo.TxRunner {
	t.Helper()
	store, err := badgerstore.Open(badgerstore.InMemoryConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return graphrepo.NewTxRunner(store)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// sampleRequest Computer (raíz) -> Desktop.
//
//	Computer: Name (req), CPU frequency (req), Weight como "Shipping weight" (default 1)
//	Desktop:  Weight, Price
func sampleRequest() dto.ImportRequest {
	return dto.ImportRequest{
		Attributes: []dto.AttributeRecord{
			{Name: "Name", Unit: "pcs."},
			{Name: "CPU frequency", Unit: "MHZ"},
			{Name: "Weight", Unit: "kg"},
			{Name: "Price", Unit: "USD"},
		},
		Categories: []dto.CategoryRecord{
			{Name: "Computer", Attributes: []dto.BindingRecord{
				{AttrName: "Name", Required: true},
				{AttrName: "CPU frequency", Required: true},
				{AttrName: "Weight", Name: "Shipping weight", DefaultValue: dec("1")},
			}},
			{Name: "Desktop", Super: "Computer", Attributes: []dto.BindingRecord{
				{AttrName: "Weight"},
				{AttrName: "Price"},
			}},
		},
	}
}

// fixture runner con el catálogo de ejemplo importado y los casos de uso cableados.
type fixture struct {
	runner   *graphrepo.TxRunner
	rec      *fakeRecorder
	imports  *catalog.ImportUseCase
	schemas  *catalog.SchemaUseCase
	products *catalog.CreateProductUseCase
}

func newFixture(t *testing.T, req dto.ImportRequest, opts catalog.ProductOptions) *fixture {
	t.Helper()
	runner := newRunner(t)
	rec := &fakeRecorder{}
	f := &fixture{runner: runner, rec: rec}
	f.imports = catalog.NewImportUseCase(runner, nil)
	f.schemas = catalog.NewSchemaUseCase(runner, nil, rec, 2)
	f.products = catalog.NewCreateProductUseCase(runner, f.schemas, nil, rec, opts)
	_, err := f.imports.Import(context.Background(), req)
	require.NoError(t, err)
	return f
}

// fakeRecorder cuenta las llamadas de métricas.
type fakeRecorder struct {
	mu          sync.Mutex
	resolutions map[string]int
	validations map[string]int
	created     int
	aborted     int
}

func (r *fakeRecorder) SchemaResolved(outcome string, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.resolutions == nil {
		r.resolutions = map[string]int{}
	}
	r.resolutions[outcome]++
}

func (r *fakeRecorder) Validated(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.validations == nil {
		r.validations = map[string]int{}
	}
	r.validations[outcome]++
}

func (r *fakeRecorder) ProductCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
}

func (r *fakeRecorder) TransactionAborted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aborted++
}

// sequence fuente de SKUs determinista.
func sequence(values ...int64) func(int64) int64 {
	i := 0
	return func(int64) int64 {
		v := values[i%len(values)]
		i++
		return v
	}
}
