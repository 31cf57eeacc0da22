package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sema/internal/adapters/fs"
	"go.trai.ch/sema/internal/adapters/memcache"
	"go.trai.ch/sema/internal/adapters/telemetry"
	"go.trai.ch/sema/internal/app"
	"go.trai.ch/sema/internal/core/domain"
	"go.trai.ch/sema/internal/core/ports/mocks"
	"go.trai.ch/sema/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type mainTestMocks struct {
	loader  *mocks.MockConfigLoader
	checker *mocks.MockChecker
	logger  *mocks.MockLogger
}

// testProvider builds a ComponentProvider around mocked edges and a real
// application core.
func testProvider(t *testing.T) (ComponentProvider, mainTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mainTestMocks{
		loader:  mocks.NewMockConfigLoader(ctrl),
		checker: mocks.NewMockChecker(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}

	cache := memcache.New()
	oracle := fs.NewOracle()
	orch := orchestrator.New(m.checker, oracle, oracle, cache, telemetry.NewNoOp())
	application := app.New(m.loader, orch, cache, mocks.NewMockCompiler(ctrl), m.logger)

	provider := func(context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:       application,
			Logger:    m.logger,
			Telemetry: telemetry.NewNoOp(),
			Cache:     cache,
		}, func() {}, nil
	}
	return provider, m
}

// loadableWorkspace returns a workspace with one single-file project.
func loadableWorkspace(t *testing.T) *domain.Workspace {
	t.Helper()
	ws := domain.NewWorkspace()
	require.NoError(t, ws.AddProject(&domain.ProjectDecl{Name: domain.NewInternedString("app")}))
	require.NoError(t, ws.Validate())
	ws.SetSnapshot(domain.NewProjectSnapshot("app",
		[]domain.SourceFile{{Path: domain.NewInternedString("app.sx"), Content: []byte("let x = 1")}},
		nil, nil,
	))
	return ws
}

func TestRun_Version(t *testing.T) {
	provider, _ := testProvider(t)
	stderr := new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
	assert.Empty(t, stderr.String())
}

func TestRun_ProviderFailure(t *testing.T) {
	stderr := new(bytes.Buffer)
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, zerr.New("wiring exploded")
	}

	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: wiring exploded")
}

func TestRun_CheckSuccess(t *testing.T) {
	provider, m := testProvider(t)
	m.loader.EXPECT().Load(".").Return(loadableWorkspace(t), nil)
	m.checker.EXPECT().
		CheckFile(gomock.Any(), "app.sx", gomock.Any(), gomock.Any()).
		Return(&domain.CheckResult{}, nil)

	exitCode := run(context.Background(), []string{"check", "app"}, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
}

func TestRun_DiagnosticsExitSilently(t *testing.T) {
	provider, m := testProvider(t)
	m.loader.EXPECT().Load(".").Return(loadableWorkspace(t), nil)
	m.checker.EXPECT().
		CheckFile(gomock.Any(), "app.sx", gomock.Any(), gomock.Any()).
		Return(&domain.CheckResult{
			Diagnostics: []domain.Diagnostic{
				{File: "app.sx", Line: 3, Column: 7, Severity: domain.SeverityError, Message: "unknown identifier y"},
			},
		}, nil)

	// The diagnostic is reported exactly once, by the app layer; the exit
	// path must not log it a second time.
	m.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"check", "app"}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

func TestRun_HardErrorIsLogged(t *testing.T) {
	provider, m := testProvider(t)
	m.loader.EXPECT().Load(".").Return(nil, zerr.New("config gone"))

	// The only Error call comes from the exit path.
	m.logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"check", "app"}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
