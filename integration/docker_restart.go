//go:build integration
// +build integration

package integration

import (
	"context"
	"os"
	"os/exec"
	"testing"
)

// restartCatalogContainer bounces one compose service so later reads must
// come back from the database rather than process memory. E2E_COMPOSE_FILE
// points at a compose file other than the default.
func restartCatalogContainer(t *testing.T, ctx context.Context, service string) {
	t.Helper()

	args := []string{"compose"}
	if f := os.Getenv("E2E_COMPOSE_FILE"); f != "" {
		args = append(args, "-f", f)
	}
	args = append(args, "restart", service)

	out, err := exec.CommandContext(ctx, "docker", args...).CombinedOutput()
	if err != nil {
		t.Fatalf("docker %v failed: %v\n%s", args, err, out)
	}
}
