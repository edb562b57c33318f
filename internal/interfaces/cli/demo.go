package cli

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Catalogo-atributos/internal/application/dto"
	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
	"github.com/jhoicas/Catalogo-atributos/internal/infrastructure/loader"
)

//go:embed demodata/*.json
var demoData embed.FS

// DemoResult salida del comando demo.
type DemoResult struct {
	Import          *dto.ImportResult   `json:"import"`
	Schema          *dto.SchemaResponse `json:"schema"`
	Product         dto.ProductResponse `json:"product"`
	ExpectedFailure dto.ErrorResponse   `json:"expected_failure"`
}

func newDemoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Importa el catálogo de ejemplo en memoria y crea un producto Desktop",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.open(cmd.Context(), true); err != nil {
				return err
			}
			res, err := a.runDemo(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(res)
		},
	}
}

func loadDemoRequest() (dto.ImportRequest, error) {
	var req dto.ImportRequest
	files := []struct {
		name string
		out  any
	}{
		{"demodata/attributes.json", &req.Attributes},
		{"demodata/categories.json", &req.Categories},
	}
	for _, f := range files {
		data, err := demoData.ReadFile(f.name)
		if err != nil {
			return dto.ImportRequest{}, err
		}
		if err := loader.Decode(bytes.NewReader(data), loader.JSON, loader.UTF8, f.out); err != nil {
			return dto.ImportRequest{}, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return req, nil
}

func (a *app) runDemo(ctx context.Context) (*DemoResult, error) {
	req, err := loadDemoRequest()
	if err != nil {
		return nil, err
	}
	imported, err := a.imports.Import(ctx, req)
	if err != nil {
		return nil, err
	}
	schema, err := a.schemas.Resolve(ctx, "Desktop")
	if err != nil {
		return nil, err
	}

	values := map[string]entity.Value{
		"Name":            entity.String("Desktop 1"),
		"CPU frequency":   entity.NumberFromInt(100),
		"Shipping weight": entity.NumberFromInt(1),
		"Weight":          entity.NumberFromFloat(0.8),
		"Price":           entity.NumberFromInt(999),
	}
	p, err := a.products.CreateProduct(ctx, "Desktop", values, nil)
	if err != nil {
		return nil, err
	}

	delete(values, "Name")
	_, err = a.products.CreateProduct(ctx, "Desktop", values, nil)
	if !errors.Is(err, domain.ErrRequiredAttributeMissing) {
		return nil, fmt.Errorf("se esperaba %v sin \"Name\", se obtuvo: %v", domain.ErrRequiredAttributeMissing, err)
	}

	return &DemoResult{
		Import:          imported,
		Schema:          schema,
		Product:         dto.ProductToResponse(p),
		ExpectedFailure: ToErrorResponse(err),
	}, nil
}
