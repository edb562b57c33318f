package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/jhoicas/Catalogo-atributos/internal/application/dto"
	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	domcatalog "github.com/jhoicas/Catalogo-atributos/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/repository"
	"github.com/jhoicas/Catalogo-atributos/pkg/logger"
	"github.com/jhoicas/Catalogo-atributos/pkg/validation"
)

// ProductOptions parámetros de generación de SKU.
type ProductOptions struct {
	SKURange       int64 // SKUs generados en [0, SKURange)
	SKUMaxAttempts int   // reintentos ante colisión de un SKU generado
	// RandSKU fuente de SKUs; por defecto math/rand.
	RandSKU func(n int64) int64
}

// CreateProductUseCase alta transaccional de productos validados contra el esquema efectivo.
type CreateProductUseCase struct {
	tx      TxRunner
	schemas *SchemaUseCase
	log     *logger.Logger
	rec     Recorder
	opts    ProductOptions
}

// NewCreateProductUseCase construye el caso de uso.
func NewCreateProductUseCase(tx TxRunner, schemas *SchemaUseCase, log *logger.Logger, rec Recorder, opts ProductOptions) *CreateProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	if opts.SKURange <= 0 {
		opts.SKURange = 1000
	}
	if opts.SKUMaxAttempts <= 0 {
		opts.SKUMaxAttempts = 1
	}
	if opts.RandSKU == nil {
		opts.RandSKU = rand.Int63n
	}
	return &CreateProductUseCase{tx: tx, schemas: schemas, log: log.Component("product"), rec: rec, opts: opts}
}

// CreateProduct atajo sin registros auxiliares. sku nil = generado.
func (uc *CreateProductUseCase) CreateProduct(ctx context.Context, categoryName string, values map[string]entity.Value, sku *int64) (*entity.Product, error) {
	return uc.Create(ctx, dto.CreateProductRequest{Category: categoryName, Attributes: values, SKU: sku})
}

// Create resuelve el esquema de la categoría (instantánea de lectura), valida los valores y los
// registros auxiliares y, en una única transacción de escritura, crea el producto, lo enlaza a su
// categoría y crea el registro auxiliar. Cualquier fallo dentro de la transacción la descarta y
// se devuelve envuelto en domain.ErrTransactionAborted.
//
// Un SKU indicado por el llamador que ya existe falla con domain.ErrDuplicate; uno generado se
// vuelve a sortear hasta SKUMaxAttempts veces.
func (uc *CreateProductUseCase) Create(ctx context.Context, req dto.CreateProductRequest) (*entity.Product, error) {
	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	schema, err := uc.schemas.ResolveEffectiveSchema(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	attrs, err := domcatalog.Validate(schema, req.Attributes)
	if err != nil {
		uc.rejected(req.Category, err)
		return nil, err
	}
	aux, err := validateAuxiliary(req.Auxiliary)
	if err != nil {
		uc.rejected(req.Category, err)
		return nil, err
	}
	uc.rec.Validated(outcomeOK)

	attempts := uc.opts.SKUMaxAttempts
	if req.SKU != nil {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		sku := uc.nextSKU(req.SKU)
		p, err := uc.write(ctx, req.Category, sku, attrs, aux)
		if err == nil {
			uc.rec.ProductCreated()
			uc.log.Info().
				Int64("sku", p.SKU).
				Str("category", p.Category).
				Int("attributes", len(p.Attributes)).
				Msg("producto creado")
			return p, nil
		}
		lastErr = err
		if req.SKU != nil || !errors.Is(err, domain.ErrDuplicate) {
			break
		}
		uc.log.Debug().Int64("sku", sku).Int("attempt", i+1).Msg("SKU generado en uso, reintentando")
	}

	uc.rec.TransactionAborted()
	uc.log.Error().Err(lastErr).Str("category", req.Category).Msg("transacción descartada")
	if errors.Is(lastErr, domain.ErrTransactionAborted) {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%w: %w", domain.ErrTransactionAborted, lastErr)
}

func (uc *CreateProductUseCase) write(ctx context.Context, categoryName string, sku int64, attrs map[string]entity.Value, aux *entity.AuxiliaryRecord) (*entity.Product, error) {
	var product *entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Set) error {
		category, err := domcatalog.NewCategoryGraph(repos.Categories).GetByName(ctx, categoryName)
		if err != nil {
			return err
		}
		p := &entity.Product{SKU: sku, Attributes: attrs}
		if err := repos.Products.Create(ctx, p); err != nil {
			return err
		}
		if err := repos.Products.LinkCategory(ctx, p, category); err != nil {
			return err
		}
		if aux != nil {
			rec := *aux
			if err := repos.Auxiliary.Create(ctx, p, &rec); err != nil {
				return err
			}
		}
		product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *CreateProductUseCase) nextSKU(requested *int64) int64 {
	if requested != nil {
		return *requested
	}
	return uc.opts.RandSKU(uc.opts.SKURange)
}

func (uc *CreateProductUseCase) rejected(category string, err error) {
	outcome := outcomeError
	if errors.Is(err, domain.ErrRequiredAttributeMissing) {
		outcome = outcomeMissing
	}
	uc.rec.Validated(outcome)
	uc.log.Warn().Err(err).Str("category", category).Msg("producto rechazado")
}

// validateAuxiliary admite como máximo un registro auxiliar por producto.
func validateAuxiliary(in map[string]map[string]entity.Value) (*entity.AuxiliaryRecord, error) {
	if len(in) == 0 {
		return nil, nil
	}
	if len(in) > 1 {
		kinds := make([]string, 0, len(in))
		for k := range in {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		return nil, fmt.Errorf("%w: un solo registro auxiliar por producto, recibidos %v", domain.ErrInvalidInput, kinds)
	}
	for kind, fields := range in {
		return domcatalog.ValidateAuxiliary(kind, fields)
	}
	return nil, nil
}

// GetBySKU lee el producto confirmado. ErrNotFound si no existe.
func (uc *CreateProductUseCase) GetBySKU(ctx context.Context, sku int64) (*entity.Product, error) {
	var p *entity.Product
	err := uc.tx.View(ctx, func(repos repository.Set) error {
		var err error
		p, err = repos.Products.GetBySKU(ctx, sku)
		return err
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto con SKU %d", domain.ErrNotFound, sku)
	}
	return p, nil
}
