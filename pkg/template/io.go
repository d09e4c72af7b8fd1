package template

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ExportVersion stamps exported template documents.
const ExportVersion = "1.0.0"

//go:embed schema.json
var schemaText string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("prasia-template.schema.json", schemaText)
	})
	return schema, schemaErr
}

// Import reads a template document, checks it against the template schema
// and registers it.
func (r *Registry) Import(rd io.Reader) (Template, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return Template{}, fmt.Errorf("template: read import: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	s, err := compiledSchema()
	if err != nil {
		return Template{}, fmt.Errorf("template: compile schema: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return Template{}, schemaError(err)
	}

	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := Validate(t); err != nil {
		return Template{}, err
	}
	r.Register(t)
	return t, nil
}

// schemaError reports the first leaf cause of a schema failure.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalid, loc, ve.Message)
}

type exportDoc struct {
	Template
	ExportDate string `json:"exportDate"`
	Version    string `json:"version"`
}

// Export writes the named template as an indented JSON document.
func (r *Registry) Export(name string, w io.Writer, now time.Time) error {
	t, ok := r.Get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportDoc{
		Template:   t,
		ExportDate: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Version:    ExportVersion,
	})
}

var whitespace = regexp.MustCompile(`\s+`)

// ExportFileName names the export file of template name on the day of now.
func ExportFileName(name string, now time.Time) string {
	return fmt.Sprintf("template-%s-%s.json", whitespace.ReplaceAllString(name, "-"), now.UTC().Format("2006-01-02"))
}

// LoadDir registers every *.toml template pack in dir, in file name order.
// A missing dir is not an error. Files that fail to decode or validate are
// reported together after the rest are loaded.
func (r *Registry) LoadDir(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("template: scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		if _, statErr := os.Stat(dir); statErr != nil && !os.IsNotExist(statErr) {
			return nil, fmt.Errorf("template: scan %s: %w", dir, statErr)
		}
		return nil, nil
	}
	sort.Strings(paths)

	var loaded []string
	var errs []error
	for _, path := range paths {
		t, err := decodePack(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.Register(t)
		loaded = append(loaded, t.Name)
	}
	return loaded, errors.Join(errs...)
}

func decodePack(path string) (Template, error) {
	var t Template
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Template{}, fmt.Errorf("template: decode %s: %w", filepath.Base(path), err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Template{}, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalid, filepath.Base(path), strings.Join(keys, ", "))
	}
	if err := Validate(t); err != nil {
		return Template{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// WritePack encodes t in the TOML pack format read by LoadDir.
func WritePack(w io.Writer, t Template) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return fmt.Errorf("template: encode pack: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// PackFileName names the TOML pack file of template name. Names that would
// leave the pack directory are rejected.
func PackFileName(name string) (string, error) {
	base := whitespace.ReplaceAllString(strings.TrimSpace(name), "-")
	if base == "" || base == "." || base == ".." || strings.ContainsAny(base, `/\`) || filepath.Base(base) != base {
		return "", fmt.Errorf("%w: %q cannot be used as a pack file name", ErrInvalid, name)
	}
	return base + ".toml", nil
}

// SavePack writes the named template as a pack in dir so LoadDir picks it
// up next time, and returns the file path.
func (r *Registry) SavePack(dir, name string) (string, error) {
	t, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	file, err := PackFileName(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("template: ensure %s: %w", dir, err)
	}
	path := filepath.Join(dir, file)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("template: create pack: %w", err)
	}
	if err := WritePack(f, t); err != nil {
		_ = f.Close()
		return "", err
	}
	return path, f.Close()
}

// RemovePack deletes the pack file of name from dir. A missing file is not
// an error.
func RemovePack(dir, name string) error {
	file, err := PackFileName(name)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(dir, file))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("template: remove pack: %w", err)
	}
	return nil
}
