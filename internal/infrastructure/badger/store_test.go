package badger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/graph"
	badgerstore "github.com/jhoicas/Catalogo-atributos/internal/infrastructure/badger"
)

func openStore(t *testing.T) *badgerstore.Store {
	t.Helper()
	s, err := badgerstore.Open(badgerstore.InMemoryConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func category(name string) graph.Properties {
	return graph.Properties{"name": entity.String(name)}
}

// ─────────────────────────────────────────────────────────────────────────────
// Nodos y relaciones
// ─────────────────────────────────────────────────────────────────────────────

func TestStore_NodesAndRelationships(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	var computerID string
	err := s.Update(ctx, func(tx graph.Tx) error {
		computer, err := tx.CreateNode(ctx, graph.LabelCategory, category("Computer"))
		require.NoError(t, err)
		computerID = computer.ID
		for _, name := range []string{"Desktop", "Laptop", "Server"} {
			child, err := tx.CreateNode(ctx, graph.LabelCategory, category(name))
			require.NoError(t, err)
			_, err = tx.CreateRelationship(ctx, computer, child, graph.RelSubcategory, nil)
			require.NoError(t, err)
		}
		return nil
	})
	require.NoError(t, err)

	err = s.View(ctx, func(tx graph.Tx) error {
		nodes, err := tx.NodesByLabel(ctx, graph.LabelCategory)
		require.NoError(t, err)
		require.Len(t, nodes, 4)
		assert.Equal(t, "Computer", nodes[0].Props["name"].String(), "orden de creación")
		assert.Equal(t, "Server", nodes[3].Props["name"].String())

		out, err := tx.Relationships(ctx, computerID, graph.RelSubcategory, graph.Outgoing)
		require.NoError(t, err)
		require.Len(t, out, 3)
		child, err := tx.GetNode(ctx, out[1].To)
		require.NoError(t, err)
		assert.Equal(t, "Laptop", child.Props["name"].String())

		in, err := tx.Relationships(ctx, out[0].To, graph.RelSubcategory, graph.Incoming)
		require.NoError(t, err)
		require.Len(t, in, 1)
		assert.Equal(t, computerID, in[0].From)

		found, err := tx.FindNodeByProperty(ctx, graph.LabelCategory, "name", entity.String("Server"))
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, out[2].To, found.ID)

		missing, err := tx.FindNodeByProperty(ctx, graph.LabelCategory, "name", entity.String("Phone"))
		require.NoError(t, err)
		assert.Nil(t, missing)

		none, err := tx.GetNode(ctx, "no-existe")
		require.NoError(t, err)
		assert.Nil(t, none)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_RelationshipProps(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	err := s.Update(ctx, func(tx graph.Tx) error {
		c, err := tx.CreateNode(ctx, graph.LabelCategory, category("Computer"))
		require.NoError(t, err)
		a, err := tx.CreateNode(ctx, graph.LabelAttribute, graph.Properties{"name": entity.String("Weight"), "unit": entity.String("kg")})
		require.NoError(t, err)
		_, err = tx.CreateRelationship(ctx, c, a, graph.RelAttribute, graph.Properties{
			"name":          entity.String("Shipping weight"),
			"required":      entity.Bool(false),
			"default_value": entity.NumberFromFloat(1.5),
		})
		require.NoError(t, err)

		rels, err := tx.Relationships(ctx, c.ID, graph.RelAttribute, graph.Outgoing)
		require.NoError(t, err)
		require.Len(t, rels, 1)
		assert.True(t, entity.NumberFromFloat(1.5).Equal(rels[0].Props["default_value"]))
		assert.Equal(t, entity.Bool(false), rels[0].Props["required"])
		return nil
	})
	require.NoError(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Cardinalidad y unicidad
// ─────────────────────────────────────────────────────────────────────────────

func TestStore_SecondParentRejected(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	err := s.Update(ctx, func(tx graph.Tx) error {
		a, _ := tx.CreateNode(ctx, graph.LabelCategory, category("A"))
		b, _ := tx.CreateNode(ctx, graph.LabelCategory, category("B"))
		child, _ := tx.CreateNode(ctx, graph.LabelCategory, category("Child"))
		_, err := tx.CreateRelationship(ctx, a, child, graph.RelSubcategory, nil)
		require.NoError(t, err)
		_, err = tx.CreateRelationship(ctx, b, child, graph.RelSubcategory, nil)
		return err
	})
	require.ErrorIs(t, err, domain.ErrCardinalityViolation)
}

func TestStore_LabelMismatchRejected(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	err := s.Update(ctx, func(tx graph.Tx) error {
		c, _ := tx.CreateNode(ctx, graph.LabelCategory, category("A"))
		a, _ := tx.CreateNode(ctx, graph.LabelAttribute, category("Weight"))
		_, err := tx.CreateRelationship(ctx, a, c, graph.RelAttribute, nil)
		return err
	})
	require.ErrorIs(t, err, domain.ErrCardinalityViolation)
}

func TestStore_ProductWithoutCategoryRolledBack(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	// Caso: el mínimo de CATEGORY se verifica al confirmar
	err := s.Update(ctx, func(tx graph.Tx) error {
		_, err := tx.CreateNode(ctx, graph.LabelProduct, graph.Properties{"sku": entity.NumberFromInt(1)})
		return err
	})
	require.ErrorIs(t, err, domain.ErrCardinalityViolation)

	err = s.View(ctx, func(tx graph.Tx) error {
		nodes, err := tx.NodesByLabel(ctx, graph.LabelProduct)
		require.NoError(t, err)
		assert.Empty(t, nodes, "nada se confirma")
		return nil
	})
	require.NoError(t, err)
}

func TestStore_UniqueProperties(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	require.NoError(t, s.Update(ctx, func(tx graph.Tx) error {
		_, err := tx.CreateNode(ctx, graph.LabelCategory, category("Computer"))
		return err
	}))

	err := s.Update(ctx, func(tx graph.Tx) error {
		_, err := tx.CreateNode(ctx, graph.LabelCategory, category("Computer"))
		return err
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	// La misma propiedad en otra etiqueta no colisiona
	require.NoError(t, s.Update(ctx, func(tx graph.Tx) error {
		_, err := tx.CreateNode(ctx, graph.LabelAttribute, category("Computer"))
		return err
	}))
}

func TestStore_FailedUpdateDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	boom := errors.New("boom")

	err := s.Update(ctx, func(tx graph.Tx) error {
		_, err := tx.CreateNode(ctx, graph.LabelCategory, category("Computer"))
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = s.View(ctx, func(tx graph.Tx) error {
		n, err := tx.FindNodeByProperty(ctx, graph.LabelCategory, "name", entity.String("Computer"))
		require.NoError(t, err)
		assert.Nil(t, n)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_WriteInViewFails(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	err := s.View(ctx, func(tx graph.Tx) error {
		_, err := tx.CreateNode(ctx, graph.LabelCategory, category("Computer"))
		return err
	})
	require.Error(t, err)
}

func TestStore_Persistent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := badgerstore.Open(badgerstore.Config{Path: dir, SyncWrites: true}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Update(ctx, func(tx graph.Tx) error {
		_, err := tx.CreateNode(ctx, graph.LabelCategory, category("Computer"))
		return err
	}))
	require.NoError(t, s.Close())

	s, err = badgerstore.Open(badgerstore.Config{Path: dir}, nil)
	require.NoError(t, err)
	defer s.Close()
	err = s.View(ctx, func(tx graph.Tx) error {
		n, err := tx.FindNodeByProperty(ctx, graph.LabelCategory, "name", entity.String("Computer"))
		require.NoError(t, err)
		assert.NotNil(t, n, "sobrevive al reinicio")
		return nil
	})
	require.NoError(t, err)

	_, err = badgerstore.Open(badgerstore.Config{}, nil)
	require.Error(t, err, "path obligatorio")
}
