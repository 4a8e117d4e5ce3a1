//go:build swag

package swaggerkit

import docs "adperf/internal/services/api/docs"

// docReader is a seam so tests can serve a document without regenerating docs
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
