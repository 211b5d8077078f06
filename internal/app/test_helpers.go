package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/vk/extbindgo/internal/config"
	"github.com/vk/extbindgo/internal/hcl"
	"github.com/vk/extbindgo/internal/registry"
)

// testLoader returns the manifest loader app tests construct apps with.
func testLoader() config.Loader {
	return hcl.NewLoader()
}

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing.
func SetupAppTest(t *testing.T, appConfig *Config, extensions ...registry.Extension) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp := NewApp(logBuffer, appConfig, testLoader(), extensions...)

	t.Cleanup(func() {
		if os.Getenv("EXTBIND_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
