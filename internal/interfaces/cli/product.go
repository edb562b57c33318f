package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Catalogo-atributos/internal/application/dto"
	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/domain/entity"
)

func newProductCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Alta y consulta de productos",
	}
	cmd.AddCommand(newProductCreateCommand(a), newProductGetCommand(a))
	return cmd
}

func newProductCreateCommand(a *app) *cobra.Command {
	var (
		category string
		data     string
		sku      int64
		aux      []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Valida los atributos contra el esquema efectivo y crea el producto",
		Example: `  catalog product create --category Desktop \
    --data '{"Name":"Desktop 1","CPU frequency":100,"Weight":0.8,"Price":999}' \
    --aux 'computer={"cpu_frequency":100}'`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := dto.CreateProductRequest{Category: category}
			if data != "" {
				if err := json.Unmarshal([]byte(data), &req.Attributes); err != nil {
					return fmt.Errorf("%w: --data: %s", domain.ErrInvalidInput, err)
				}
			}
			if cmd.Flags().Changed("sku") {
				req.SKU = &sku
			}
			records, err := parseAuxiliary(aux)
			if err != nil {
				return err
			}
			req.Auxiliary = records

			if err := a.open(cmd.Context(), false); err != nil {
				return err
			}
			p, err := a.products.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printJSON(dto.ProductToResponse(p))
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "categoría del producto")
	cmd.Flags().StringVar(&data, "data", "", "atributos como objeto JSON")
	cmd.Flags().Int64Var(&sku, "sku", 0, "SKU explícito (por defecto se genera)")
	cmd.Flags().StringArrayVar(&aux, "aux", nil, "registro auxiliar KIND=JSON")
	return cmd
}

// parseAuxiliary convierte valores KIND=JSON en el mapa del request.
func parseAuxiliary(values []string) (map[string]map[string]entity.Value, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make(map[string]map[string]entity.Value, len(values))
	for _, v := range values {
		kind, raw, ok := strings.Cut(v, "=")
		kind = strings.TrimSpace(kind)
		if !ok || kind == "" {
			return nil, fmt.Errorf("%w: --aux espera KIND=JSON, recibió %q", domain.ErrInvalidInput, v)
		}
		fields := map[string]entity.Value{}
		if strings.TrimSpace(raw) != "" {
			if err := json.Unmarshal([]byte(raw), &fields); err != nil {
				return nil, fmt.Errorf("%w: --aux %s: %s", domain.ErrInvalidInput, kind, err)
			}
		}
		if _, dup := out[kind]; dup {
			return nil, fmt.Errorf("%w: --aux %s repetido", domain.ErrInvalidInput, kind)
		}
		out[kind] = fields
	}
	return out, nil
}

func newProductGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get SKU",
		Short: "Muestra un producto por SKU",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sku, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: SKU %q no es un entero", domain.ErrInvalidInput, args[0])
			}
			if err := a.open(cmd.Context(), false); err != nil {
				return err
			}
			p, err := a.products.GetBySKU(cmd.Context(), sku)
			if err != nil {
				return err
			}
			return a.printJSON(dto.ProductToResponse(p))
		},
	}
}
