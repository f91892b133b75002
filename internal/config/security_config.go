package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps "METHOD /path/template" to the required
// security level. Paths are mux route templates.
var EndpointSecurityConfig = map[string]SecurityLevel{
	"GET /healthz":               SecurityPublic,
	"POST /api/v1/auth/login":    SecurityPublic,
	"POST /api/v1/rentals/quote": SecurityAccess,
}

// GetSecurityLevel returns the security level for a route
func GetSecurityLevel(method, pathTemplate string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method+" "+pathTemplate]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
