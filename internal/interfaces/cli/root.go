package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
)

// newRootCommand árbol de comandos. El almacén se abre en cada comando y se cierra en Execute.
func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Catálogo de productos con atributos heredados por categoría",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetOut(a.opts.Stdout)
	root.SetErr(a.opts.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	})

	root.AddCommand(
		newImportCommand(a),
		newSchemaCommand(a),
		newProductCommand(a),
		newDemoCommand(a),
	)
	return root
}

// Execute ejecuta la CLI con args y devuelve el código de salida.
func Execute(ctx context.Context, args []string, opts Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	a := &app{opts: opts}
	defer a.close()

	root := newRootCommand(a)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		if a.log != nil {
			a.log.Debug().Err(err).Str("code", ErrorCode(err)).Msg("comando fallido")
		}
		enc := json.NewEncoder(opts.Stderr)
		enc.SetIndent("", "  ")
		_ = enc.Encode(ToErrorResponse(err))
		return 1
	}
	return 0
}

// exactArgs como cobra.ExactArgs pero clasificado como error de entrada.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		return nil
	}
}
