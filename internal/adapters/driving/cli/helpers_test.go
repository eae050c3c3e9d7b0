package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	catalogfile "github.com/custodia-labs/octopus/internal/adapters/driven/catalog/file"
	"github.com/custodia-labs/octopus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/octopus/internal/adapters/driven/fetch"
	"github.com/custodia-labs/octopus/internal/adapters/driven/rdf"
	"github.com/custodia-labs/octopus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/octopus/internal/core/domain"
	"github.com/custodia-labs/octopus/internal/core/ports/driven"
	"github.com/custodia-labs/octopus/internal/core/ports/driving"
	"github.com/custodia-labs/octopus/internal/core/services"
)

const rdfTurtle = `@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

rdf:type a rdf:Property ;
    rdfs:label "type" .
`

// testEnv is a project directory, a catalog repository and wired services.
type testEnv struct {
	projectDir string
	repository string
	config     *memory.ConfigStore
	history    *memory.InstallHistoryStore
	settings   []domain.Settings
}

// setupServices wires real services over temporary directories and
// restores the previous wiring when the test ends.
func setupServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		projectDir: t.TempDir(),
		repository: t.TempDir(),
		config:     memory.NewConfigStore(),
		history:    memory.NewInstallHistoryStore(),
	}

	oldSettings, oldHistory, oldProjects := settingsService, historyService, projectLoader
	oldCatalog, oldInstaller, oldRepository := newCatalogLoader, newInstaller, defaultRepository
	t.Cleanup(func() {
		settingsService, historyService, projectLoader = oldSettings, oldHistory, oldProjects
		newCatalogLoader, newInstaller, defaultRepository = oldCatalog, oldInstaller, oldRepository
		resetFlags(rootCmd)
	})

	SetServices(Services{
		Settings: services.NewSettingsService(env.config),
		History:  services.NewHistoryService(env.history),
		Projects: file.NewProjectLoader(),
		NewCatalogLoader: func(repository string) driven.CatalogLoader {
			return catalogfile.NewLoader(repository)
		},
		NewInstaller: func(settings domain.Settings) driving.Installer {
			env.settings = append(env.settings, settings)
			return services.NewInstaller(
				fetch.NewFetcher(fetch.Options{Timeout: settings.Timeout}),
				services.NewConverter(rdf.NewCodec()),
				env.history,
				settings.Concurrency,
			)
		},
		DefaultRepository: env.repository,
	})

	return env
}

// writeFile writes content below dir, creating parents.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// addArtifact registers name in the repository with a local Turtle file.
func (e *testEnv) addArtifact(t *testing.T, name, source string) {
	t.Helper()
	writeFile(t, e.repository, name+".json", `{
		"name": "`+name+`",
		"version": {"*": {"require": {}, "file": "`+filepath.ToSlash(source)+`"}}
	}`)
}

// writeProject writes octopus.json and returns its path.
func (e *testEnv) writeProject(t *testing.T, content string) string {
	t.Helper()
	return writeFile(t, e.projectDir, "octopus.json", content)
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default so tests stay independent.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
