package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Catalogo-atributos/internal/domain"
	"github.com/jhoicas/Catalogo-atributos/internal/infrastructure/loader"
)

func newImportCommand(a *app) *cobra.Command {
	var attributesPath, categoriesPath, encoding string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Importa atributos y categorías desde archivos JSON o YAML",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if attributesPath == "" || categoriesPath == "" {
				return fmt.Errorf("%w: --attributes y --categories son obligatorios", domain.ErrInvalidInput)
			}
			if encoding == "" {
				encoding = a.cfg.Import.Encoding
			}
			enc, err := loader.ParseEncoding(encoding)
			if err != nil {
				return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
			}
			req, err := loader.LoadRequest(attributesPath, categoriesPath, enc)
			if err != nil {
				return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
			}
			if err := a.open(cmd.Context(), false); err != nil {
				return err
			}
			res, err := a.imports.Import(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printJSON(res)
		},
	}
	cmd.Flags().StringVar(&attributesPath, "attributes", "", "archivo de atributos (.json, .yaml)")
	cmd.Flags().StringVar(&categoriesPath, "categories", "", "archivo de categorías (.json, .yaml)")
	cmd.Flags().StringVar(&encoding, "encoding", "", "codificación de los archivos: utf-8 o latin1 (por defecto IMPORT_ENCODING)")
	return cmd
}
