package http

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/swaggo/swag"
)

//go:embed api/openapi.yaml
var openAPIDocument []byte

// OpenAPIDocument returns the embedded API description in YAML.
func OpenAPIDocument() []byte {
	return openAPIDocument
}

// loadOpenAPI parses and validates the embedded document and builds the
// router the request validator matches against.
func loadOpenAPI() (*openapi3.T, routers.Router, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPIDocument)
	if err != nil {
		return nil, nil, fmt.Errorf("load openapi document: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("build openapi router: %w", err)
	}
	return doc, router, nil
}

// swaggerDoc serves the document to echo-swagger, which expects JSON.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

//nolint:gochecknoglobals // swag keeps a process-wide registry
var registerSwagger sync.Once

func registerSwaggerDoc(doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}

	registerSwagger.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
	return nil
}
