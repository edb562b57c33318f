package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
)

func newSchemaCommand(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "schema [NAME]",
		Short: "Muestra el esquema efectivo de una categoría (propio y heredado)",
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return fmt.Errorf("%w: --all no admite nombre de categoría", domain.ErrInvalidInput)
			}
			if !all {
				return exactArgs(1)(cmd, args)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context(), false); err != nil {
				return err
			}
			if all {
				out, err := a.schemas.ResolveAll(cmd.Context())
				if err != nil {
					return err
				}
				return a.printJSON(out)
			}
			out, err := a.schemas.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "resolver todas las categorías")
	return cmd
}
