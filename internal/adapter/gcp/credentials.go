// Package gcp handles Google Cloud credential material for the review run.
package gcp

import (
	"fmt"
	"os"

	"github.com/darkin100/i-am-reviewed/internal/config"
)

const (
	// credentialsVar carries inline service-account JSON, typically from a CI
	// secret.
	credentialsVar = "GOOGLE_CLOUD_CREDENTIALS"

	// adcVar is where the Google SDKs look for a credentials file path.
	adcVar = "GOOGLE_APPLICATION_CREDENTIALS"
)

// MaterializeCredentials writes inline service-account JSON from the
// environment to a mode 0600 temp file and points GOOGLE_APPLICATION_CREDENTIALS
// at it, so the Vertex client picks it up as Application Default Credentials.
//
// The returned cleanup removes the file and must run on every exit path,
// success or failure. When no inline credentials are present the function is
// a no-op and cleanup is still safe to call; ambient ADC (workload identity,
// an existing GOOGLE_APPLICATION_CREDENTIALS) keeps working untouched.
func MaterializeCredentials(env config.Snapshot) (cleanup func(), err error) {
	cleanup = func() {}

	raw, ok := env.Lookup(credentialsVar)
	if !ok {
		return cleanup, nil
	}

	file, err := os.CreateTemp("", "iar-credentials-*.json")
	if err != nil {
		return cleanup, fmt.Errorf("creating credentials file: %w", err)
	}
	path := file.Name()
	cleanup = func() {
		os.Remove(path)
	}

	if err := file.Chmod(0o600); err != nil {
		file.Close()
		return cleanup, fmt.Errorf("restricting credentials file mode: %w", err)
	}
	if _, err := file.WriteString(raw); err != nil {
		file.Close()
		return cleanup, fmt.Errorf("writing credentials file: %w", err)
	}
	if err := file.Close(); err != nil {
		return cleanup, fmt.Errorf("closing credentials file: %w", err)
	}

	if err := os.Setenv(adcVar, path); err != nil {
		return cleanup, fmt.Errorf("setting %s: %w", adcVar, err)
	}

	return cleanup, nil
}
