package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/fsproc/internal/config"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

func resetFlags(t *testing.T) {
	t.Helper()
	globalFlags = globalFlagValues{}
	callFlags = callFlagValues{}
	loadFlags = loadFlagValues{batchSize: 100}
	metadataJSON = false
	for _, key := range []string{config.EnvRoot, config.EnvEncoding, config.EnvPGConnection} {
		t.Setenv(key, "")
	}
	globalFlags.configPath = filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(globalFlags.configPath, nil, 0644))
	t.Cleanup(func() {
		globalFlags = globalFlagValues{}
		callFlags = callFlagValues{}
	})
}

// useDefaultConfig clears the explicit --config so a missing file is not an error.
func useDefaultConfig(t *testing.T) {
	t.Helper()
	globalFlags.configPath = ""
	t.Chdir(t.TempDir())
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func captureOutput() (*bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	callCmd.SetOut(&stdout)
	callCmd.SetErr(&stderr)
	loadCmd.SetOut(&stdout)
	loadCmd.SetErr(&stderr)
	metadataCmd.SetOut(&stdout)
	metadataCmd.SetErr(&stderr)
	return &stdout, &stderr
}

func TestCallCmd_ArgsValidation(t *testing.T) {
	err := callCmd.Args(callCmd, []string{fsproc.ProcedureFetchFiles})
	require.Error(t, err)
	assert.Equal(t, fsproc.ExitUsageError, fsproc.ExitCodeForError(err))

	err = callCmd.Args(callCmd, []string{"a", "b", "c"})
	assert.Error(t, err)
}

func TestRunCall_ListsRows(t *testing.T) {
	resetFlags(t)
	useDefaultConfig(t)
	stdout, _ := captureOutput()
	callFlags.root = writeFiles(t, map[string]string{"a.txt": "alpha", "b.txt": "bravo!", "c.bin": "x"})

	err := runCall(callCmd, []string{fsproc.ProcedureFetchTextFiles, "*.txt"})
	require.NoError(t, err)

	assert.Equal(t, "a.txt\tclob\t5\nb.txt\tclob\t6\n", stdout.String())
}

func TestRunCall_Checksum(t *testing.T) {
	resetFlags(t)
	stdout, _ := captureOutput()
	callFlags.root = writeFiles(t, map[string]string{"abc.bin": "abc"})
	callFlags.checksum = true

	err := runCall(callCmd, []string{"FETCHFILES", "abc.bin"})
	require.NoError(t, err)

	assert.Equal(t, "abc.bin\tblob\t3\tba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad\n", stdout.String())
}

func TestRunCall_DumpToDirectory(t *testing.T) {
	resetFlags(t)
	_, stderr := captureOutput()
	callFlags.root = writeFiles(t, map[string]string{"a.txt": "alpha", "b.txt": "bravo"})
	callFlags.out = filepath.Join(t.TempDir(), "export")

	err := runCall(callCmd, []string{fsproc.ProcedureFetchFiles, "."})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(callFlags.out, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "bravo", string(data))
	assert.Contains(t, stderr.String(), "Wrote 2 file(s)")
}

func TestRunCall_ConfigFileEncoding(t *testing.T) {
	resetFlags(t)
	captureOutput()
	root := writeFiles(t, map[string]string{"latin1.txt": "caf\xe9"})
	cfgPath := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(cfgPath, []byte("root: "+root+"\nencoding: ISO-8859-1\n"), 0644))
	globalFlags.configPath = cfgPath
	callFlags.out = t.TempDir()

	err := runCall(callCmd, []string{fsproc.ProcedureFetchTextFiles, "latin1.txt"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(callFlags.out, "latin1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "café", string(data))
}

func TestRunCall_Precedence(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "alpha"})
	missing := filepath.Join(t.TempDir(), "missing")

	t.Run("env overrides file", func(t *testing.T) {
		resetFlags(t)
		captureOutput()
		cfgPath := filepath.Join(t.TempDir(), config.ConfigFileName)
		require.NoError(t, os.WriteFile(cfgPath, []byte("root: "+missing+"\n"), 0644))
		globalFlags.configPath = cfgPath
		t.Setenv(config.EnvRoot, root)

		assert.NoError(t, runCall(callCmd, []string{fsproc.ProcedureFetchFiles, "a.txt"}))
	})

	t.Run("flag overrides env", func(t *testing.T) {
		resetFlags(t)
		captureOutput()
		t.Setenv(config.EnvRoot, missing)
		callFlags.root = root

		assert.NoError(t, runCall(callCmd, []string{fsproc.ProcedureFetchFiles, "a.txt"}))
	})
}

func TestRunCall_ExitCodes(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "alpha"})

	tests := []struct {
		name     string
		setup    func(t *testing.T)
		args     []string
		wantCode int
	}{
		{
			name:     "unknown procedure",
			setup:    func(t *testing.T) { callFlags.root = root },
			args:     []string{"fetchEverything", "a.txt"},
			wantCode: fsproc.ExitConfigError,
		},
		{
			name:     "unsupported encoding",
			setup:    func(t *testing.T) { callFlags.root = root; callFlags.encoding = "klingon" },
			args:     []string{fsproc.ProcedureFetchTextFiles, "a.txt"},
			wantCode: fsproc.ExitConfigError,
		},
		{
			name:     "missing root",
			setup:    func(t *testing.T) { callFlags.root = filepath.Join(root, "nope") },
			args:     []string{fsproc.ProcedureFetchFiles, "a.txt"},
			wantCode: fsproc.ExitConnectionError,
		},
		{
			name:     "parent path rejected",
			setup:    func(t *testing.T) { callFlags.root = root },
			args:     []string{fsproc.ProcedureFetchFiles, "../outside.txt"},
			wantCode: fsproc.ExitExecutionFailed,
		},
		{
			name:     "explicit config missing",
			setup: func(t *testing.T) {
				callFlags.root = root
				globalFlags.configPath = filepath.Join(t.TempDir(), "absent.yaml")
			},
			args:     []string{fsproc.ProcedureFetchFiles, "a.txt"},
			wantCode: fsproc.ExitConfigError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			captureOutput()
			tt.setup(t)

			err := runCall(callCmd, tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, fsproc.ExitCodeForError(err), "error: %v", err)
		})
	}
}

func TestRunMetadata_YAML(t *testing.T) {
	resetFlags(t)
	stdout, _ := captureOutput()

	require.NoError(t, runMetadata(metadataCmd, nil))

	out := stdout.String()
	assert.Contains(t, out, "procedures:")
	assert.Contains(t, out, fsproc.ProcedureFetchTextFiles)
	assert.Contains(t, out, fsproc.ProcedureFetchFiles)
	assert.Contains(t, out, "clob")
	assert.Contains(t, out, "blob")
}

func TestRunMetadata_JSON(t *testing.T) {
	resetFlags(t)
	stdout, _ := captureOutput()
	metadataJSON = true

	require.NoError(t, runMetadata(metadataCmd, nil))

	var doc struct {
		Procedures []struct {
			Name    string `json:"name"`
			Columns []struct {
				Name string `json:"name"`
				Type string `json:"type"`
			} `json:"columns"`
		} `json:"procedures"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Len(t, doc.Procedures, 2)
	for _, p := range doc.Procedures {
		require.Len(t, p.Columns, 2, p.Name)
		assert.Equal(t, "file", p.Columns[0].Name)
		assert.Equal(t, "name", p.Columns[1].Name)
	}
}

func TestRunLoad_Validation(t *testing.T) {
	t.Run("missing connection", func(t *testing.T) {
		resetFlags(t)
		captureOutput()
		loadFlags.root = t.TempDir()

		err := runLoad(loadCmd, []string{fsproc.ProcedureFetchFiles, "."})
		require.Error(t, err)
		assert.ErrorIs(t, err, fsproc.ErrInvalidConfig)
		assert.Contains(t, err.Error(), config.EnvPGConnection)
	})

	t.Run("batch size", func(t *testing.T) {
		resetFlags(t)
		captureOutput()
		loadFlags.batchSize = 0

		err := runLoad(loadCmd, []string{fsproc.ProcedureFetchFiles, "."})
		assert.Equal(t, fsproc.ExitConfigError, fsproc.ExitCodeForError(err))
	})
}

func TestRootCmd_UsageErrors(t *testing.T) {
	resetFlags(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"call", fsproc.ProcedureFetchFiles})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, fsproc.ExitUsageError, fsproc.ExitCodeForError(err))

	rootCmd.SetArgs([]string{"call", "--no-such-flag", "a", "b"})
	err = rootCmd.Execute()
	require.Error(t, err)
	assert.Equal(t, fsproc.ExitUsageError, fsproc.ExitCodeForError(err))
}
