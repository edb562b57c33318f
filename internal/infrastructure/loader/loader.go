// Package loader lee los archivos de importación (atributos y categorías) en JSON o YAML,
// opcionalmente codificados en ISO-8859-1.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Catalogo-atributos/internal/application/dto"
)

// Encoding codificación de los archivos de entrada.
type Encoding string

const (
	UTF8   Encoding = "utf-8"
	Latin1 Encoding = "latin1"
)

// ParseEncoding acepta utf-8/utf8 y latin1/iso-8859-1 (sin distinguir mayúsculas). Vacío = UTF-8.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return Latin1, nil
	default:
		return "", fmt.Errorf("codificación no soportada: %q", s)
	}
}

// Format formato del archivo.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath deduce el formato por la extensión (.json, .yaml, .yml).
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("extensión no soportada: %s", path)
	}
}

// Decode lee r en la codificación enc y decodifica en out según el formato.
func Decode(r io.Reader, format Format, enc Encoding, out any) error {
	if enc == Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("leer: %w", err)
	}
	switch format {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		return dec.Decode(out)
	case YAML:
		return yaml.Unmarshal(data, out)
	default:
		return fmt.Errorf("formato no soportado: %q", format)
	}
}

// DecodeFile abre path y lo decodifica según su extensión.
func DecodeFile(path string, enc Encoding, out any) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Decode(f, format, enc, out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadRequest lee el archivo de atributos y el de categorías.
func LoadRequest(attributesPath, categoriesPath string, enc Encoding) (dto.ImportRequest, error) {
	var req dto.ImportRequest
	if err := DecodeFile(attributesPath, enc, &req.Attributes); err != nil {
		return dto.ImportRequest{}, err
	}
	if err := DecodeFile(categoriesPath, enc, &req.Categories); err != nil {
		return dto.ImportRequest{}, err
	}
	return req, nil
}
