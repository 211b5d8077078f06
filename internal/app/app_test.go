package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApp_LoadsUnderDeclaredName(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	appConfig, err := NewConfig(Config{})
	require.NoError(t, err)

	// --- Act ---
	testApp, _ := SetupAppTest(t, appConfig)

	// --- Assert ---
	// With no override the module loads under the manifest-declared name.
	require.Equal(t, []string{"greeter"}, testApp.Host().Modules())
	require.True(t, testApp.Registry().Sealed())
}

func TestApp_RunGreets(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	appConfig, err := NewConfig(Config{GreetName: "World"})
	require.NoError(t, err)
	testApp, out := SetupAppTest(t, appConfig)

	// --- Act ---
	require.NoError(t, testApp.Run(context.Background(), appConfig))

	// --- Assert ---
	output := out.String()
	require.Contains(t, output, "simple_greet")
	require.Contains(t, output, "complex_greet")
	require.Contains(t, output, "World")
}

func TestApp_ModuleNameOverride(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	appConfig, err := NewConfig(Config{ModuleName: "_ext"})
	require.NoError(t, err)
	testApp, _ := SetupAppTest(t, appConfig)

	// --- Assert ---
	require.Equal(t, []string{"_ext"}, testApp.Host().Modules())

	mod, openErr := testApp.Host().Open("_ext")
	require.NoError(t, openErr)
	require.Equal(t, "_ext", mod.Name())
}

func TestApp_MalformedModuleNameFailsFatally(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	appConfig, err := NewConfig(Config{ModuleName: "not an identifier"})
	require.NoError(t, err)

	// --- Act & Assert ---
	require.Panics(t, func() {
		NewApp(&SafeBuffer{}, appConfig, testLoader())
	}, "a malformed module identity is a fatal load-time configuration error")
}

func TestApp_DescribePrintsStub(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	appConfig, err := NewConfig(Config{Describe: true})
	require.NoError(t, err)
	testApp, out := SetupAppTest(t, appConfig)

	// --- Act ---
	require.NoError(t, testApp.Run(context.Background(), appConfig))

	// --- Assert ---
	output := out.String()
	require.Contains(t, output, "module greeter")
	require.Contains(t, output, "type Greeter:")
	require.Contains(t, output, "simple_greet(name: string) -> string")
}

func TestApp_UnboundManifestFailsFatally(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// An on-disk manifest with no compiled binding breaks manifest/Go
	// parity and must abort startup.
	tempDir := t.TempDir()
	orphan := `
extension "orphan" {
  type "Ghost" {
    method "haunt" {
      handler = "Haunt"
      input "who" { type = string }
      output "result" { type = string }
    }
  }
}`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "orphan.hcl"), []byte(orphan), 0600))

	appConfig, err := NewConfig(Config{ManifestPath: tempDir})
	require.NoError(t, err)

	// --- Act & Assert ---
	require.Panics(t, func() {
		NewApp(&SafeBuffer{}, appConfig, testLoader())
	})
}
