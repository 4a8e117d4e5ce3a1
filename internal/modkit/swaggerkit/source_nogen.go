//go:build !swag

package swaggerkit

// docReader serves a skeleton so the UI still loads in builds without -tags swag
var docReader = func() string {
	return `{"openapi":"3.0.3","info":{"title":"Ad Performance Tracker API","version":"0.0.0"},"paths":{}}`
}
