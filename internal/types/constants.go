package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

var (
	// Origins the recipevault web client runs on during development.
	defaultOrigins = []string{
		"http://localhost:5173",
		"http://localhost:8080",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := append([]string{}, defaultOrigins...)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
