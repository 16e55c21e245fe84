package assets

import _ "embed"

// OpenApiData is the OpenAPI document served by the Swagger UI.
//
//go:embed openapi.yaml
var OpenApiData []byte
