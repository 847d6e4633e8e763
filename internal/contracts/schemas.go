package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas
var schemasFS embed.FS

const (
	PredictPriceRequest = "PredictPriceRequest/1.0.0"
	PricePredictedEvent = "PricePredictedEvent/1.0.0"
)

var compiledSchemas = mustCompileSchemas()

// mustCompileSchemas компилирует все встроенные схемы. Схемы вшиты в бинарник,
// поэтому ошибка здесь - ошибка сборки, а не окружения.
func mustCompileSchemas() map[string]*jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		// Ресурсы добавляются все сразу, чтобы работали $ref между схемами
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		panic(fmt.Sprintf("contracts: %v", err))
	}

	compiled := make(map[string]*jsonschema.Schema, len(paths))
	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			panic(fmt.Sprintf("contracts: could not compile schema %s: %v", path, err))
		}
		key := generateKeyFromPath(path)
		if key == "" {
			panic(fmt.Sprintf("contracts: unexpected schema path %s", path))
		}
		compiled[key] = schema
	}
	return compiled
}

// generateKeyFromPath преобразует "schemas/events/price-predicted/v1.json"
// в "PricePredictedEvent/1.0.0", а "schemas/requests/predict-price/v1.json"
// в "PredictPriceRequest/1.0.0".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "schemas/"), ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 3 {
		return ""
	}

	var suffix string
	switch parts[0] {
	case "events":
		suffix = "Event"
	case "requests":
		suffix = "Request"
	default:
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[1], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString(suffix)

	version := strings.TrimPrefix(parts[2], "v") + ".0.0"
	return name.String() + "/" + version
}

// Validate проверяет JSON-тело по схеме с ключом вида "PredictPriceRequest/1.0.0".
func Validate(key string, body []byte) error {
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema '%s' not found", key)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}
