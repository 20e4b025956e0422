package identity_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/lumahq/identity/pkg/identsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for identity service end-to-end
 * tests. This includes container setup, account helpers, and assertions.
 */

const (
	testImageName = "luma-identity-test:latest"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Identity Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Identity Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/identity/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupIdentityContainer starts the identity service in a container and
// returns the base URL.
func setupIdentityContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"IDENTITY_DATABASE_FILE": "/tmp/identity.db",
			"IDENTITY_PEPPER_FILE":   "/tmp/pepper",
			"IDENTITY_ISSUER":        "luma-identity",
			"IDENTITY_NUM_KEYS":      "1", // Start with 1 key for simpler testing
			"ENV":                    "test",
			"LOG_LEVEL":              "info",
			"LOG_FORMAT":             "json",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// registerRequest returns a valid registration payload with the given
// email.
func registerRequest(email string) identsdk.RegisterRequest {
	return identsdk.RegisterRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     email,
		Password:  "password",
		Phone:     "0400000000",
	}
}

// mustRegister registers an account and fails the test on any error.
func mustRegister(t *testing.T, client *identsdk.Client, email string) *identsdk.Session {
	t.Helper()

	session, err := client.Register(context.Background(), registerRequest(email))
	require.NoError(t, err, "Registration should succeed")
	require.NotNil(t, session)
	require.NotEmpty(t, session.AccessToken(), "Access token should not be empty")

	return session
}

// assertAPIError verifies an error is a typed *identsdk.APIError with the
// expected status code.
func assertAPIError(t *testing.T, err error, statusCode int, context string) *identsdk.APIError {
	t.Helper()
	require.Error(t, err, context)

	apiErr, ok := err.(*identsdk.APIError)
	require.True(t, ok, "%s - expected *identsdk.APIError, got %T: %v", context, err, err)
	require.Equal(t, statusCode, apiErr.StatusCode, context)
	return apiErr
}
