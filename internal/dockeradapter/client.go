// Where: internal/dockeradapter/client.go
// What: Docker client constructor.
// Why: Centralize Docker SDK initialization.
package dockeradapter

import "github.com/docker/docker/client"

// NewClient constructs a Docker SDK client using environment defaults.
func NewClient() (Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}
