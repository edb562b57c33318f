package catalog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/catalog"
)

func TestResolver_ChildFirstOrder(t *testing.T) {
	m := newMem()
	m.add("C", "")
	m.add("B", "C")
	m.add("A", "B")
	m.bind("A", "a1", false, "")
	m.bind("B", "b1", true, "")
	m.bind("B", "b2", false, "3")
	m.bind("C", "c1", true, "5")

	s, err := catalog.NewResolver(m, m).Resolve(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, "A", s.Category)
	assert.Equal(t, 3, s.Depth)
	assert.Equal(t, []string{"a1", "b1", "b2", "c1"}, s.Names())
	assert.Equal(t, "B", s.Entries[2].Source)
	assert.True(t, s.Entries[3].HasDefault())
	assert.Equal(t, "5", s.Entries[3].DefaultValue.Decimal.String())
}

func TestResolver_LongChain(t *testing.T) {
	// Caso: cadena profunda; el recorrido es iterativo
	m := newMem()
	const depth = 5000
	m.add("n0", "")
	for i := 1; i < depth; i++ {
		m.add(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i-1))
	}
	m.bind("n0", "root", true, "")

	s, err := catalog.NewResolver(m, m).Resolve(context.Background(), fmt.Sprintf("n%d", depth-1))
	require.NoError(t, err)
	assert.Equal(t, depth, s.Depth)
	assert.Equal(t, []string{"root"}, s.Names())
}

func TestResolver_EmptyRootAndNotFound(t *testing.T) {
	m := newMem()
	m.add("Root", "")
	r := catalog.NewResolver(m, m)

	s, err := r.Resolve(context.Background(), "Root")
	require.NoError(t, err)
	assert.NotNil(t, s.Entries)
	assert.Empty(t, s.Entries)

	_, err = r.Resolve(context.Background(), "Missing")
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestResolver_StoredCycle(t *testing.T) {
	// Caso: un ciclo ya presente en el almacén no cuelga la resolución
	m := newMem()
	m.add("X", "Y")
	m.add("Y", "X")

	_, err := catalog.NewResolver(m, m).Resolve(context.Background(), "X")
	require.ErrorIs(t, err, domain.ErrCategoryCycle)
}

func TestResolver_Canceled(t *testing.T) {
	m := newMem()
	m.add("R", "")
	m.add("S", "R")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := catalog.NewResolver(m, m).Resolve(ctx, "S")
	require.ErrorIs(t, err, context.Canceled)
}
