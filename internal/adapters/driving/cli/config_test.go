package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/maildeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/maildeck/internal/core/domain"
	"github.com/custodia-labs/maildeck/internal/core/services"
)

// useTestService points the command surface at a fresh in-memory
// service for the duration of one test.
func useTestService(t *testing.T) *services.ConfigService {
	t.Helper()

	service, err := services.NewConfigService(memory.NewConfigStore())
	require.NoError(t, err)

	old := configService
	configService = service
	t.Cleanup(func() {
		configService = old
		flagSetInt = false
		flagSetList = false
		flagSetSecret = false
		flagNoNotify = false
	})
	return service
}

// newCaptureCommand returns a throwaway command with captured output.
func newCaptureCommand() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

func TestRunConfigList_ShowsBaseline(t *testing.T) {
	useTestService(t)
	cmd, buf := newCaptureCommand()

	require.NoError(t, runConfigList(cmd, nil))

	out := buf.String()
	assert.Contains(t, out, "global.version")
	assert.Contains(t, out, "maildir.prefix")
	assert.Contains(t, out, "string")
}

func TestRunConfigGet(t *testing.T) {
	service := useTestService(t)
	require.NoError(t, service.Set("global.editor", "emacs", false))
	cmd, buf := newCaptureCommand()

	require.NoError(t, runConfigGet(cmd, []string{"global.editor"}))

	assert.Equal(t, "emacs\n", buf.String())
}

func TestRunConfigGet_AbsentKey(t *testing.T) {
	useTestService(t)
	cmd, _ := newCaptureCommand()

	err := runConfigGet(cmd, []string{"no.such.key"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunConfigSet_String(t *testing.T) {
	service := useTestService(t)
	cmd, buf := newCaptureCommand()

	require.NoError(t, runConfigSet(cmd, []string{"steve", "kemp"}))

	entry, err := service.Get("steve")
	require.NoError(t, err)
	assert.Equal(t, domain.KindString, entry.Kind())
	assert.Contains(t, buf.String(), "steve = kemp (string)")
}

func TestRunConfigSet_IntReplacesString(t *testing.T) {
	service := useTestService(t)
	cmd, _ := newCaptureCommand()

	require.NoError(t, runConfigSet(cmd, []string{"steve", "kemp"}))

	flagSetInt = true
	require.NoError(t, runConfigSet(cmd, []string{"steve", "1"}))

	entry, err := service.Get("steve")
	require.NoError(t, err)
	assert.Equal(t, domain.KindInteger, entry.Kind())
	assert.Len(t, service.Keys(), 8)
}

func TestRunConfigSet_List(t *testing.T) {
	service := useTestService(t)
	cmd, _ := newCaptureCommand()

	flagSetList = true
	require.NoError(t, runConfigSet(cmd, []string{"index.folders", "inbox", "sent"}))

	assert.Equal(t, []string{"inbox", "sent"}, service.GetList("index.folders"))
}

func TestRunConfigUnset(t *testing.T) {
	service := useTestService(t)
	require.NoError(t, service.Set("steve", "kemp", false))
	cmd, buf := newCaptureCommand()

	require.NoError(t, runConfigUnset(cmd, []string{"steve"}))

	_, err := service.Get("steve")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, buf.String(), "removed steve")
}

func TestParseSetValue(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		asInt    bool
		asList   bool
		expected any
		wantErr  bool
	}{
		{
			name:     "plain string",
			args:     []string{"kemp"},
			expected: "kemp",
		},
		{
			name:    "string rejects multiple values",
			args:    []string{"a", "b"},
			wantErr: true,
		},
		{
			name:     "integer",
			args:     []string{"42"},
			asInt:    true,
			expected: int64(42),
		},
		{
			name:    "bad integer",
			args:    []string{"x"},
			asInt:   true,
			wantErr: true,
		},
		{
			name:     "list",
			args:     []string{"a", "b"},
			asList:   true,
			expected: []string{"a", "b"},
		},
		{
			name:    "empty list",
			args:    []string{},
			asList:  true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagSetInt = tt.asInt
			flagSetList = tt.asList
			flagSetSecret = false
			defer func() {
				flagSetInt = false
				flagSetList = false
			}()

			got, err := parseSetValue(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsSecretKey(t *testing.T) {
	assert.True(t, isSecretKey("imap.password"))
	assert.True(t, isSecretKey("smtp.auth_token"))
	assert.True(t, isSecretKey("global.SECRET"))
	assert.False(t, isSecretKey("global.editor"))
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "short value",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "long value",
			input:    "hunter2hunter2",
			expected: "hunt...ter2",
		},
		{
			name:     "empty value",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskSecret(tt.input))
		})
	}
}

func TestDisplayValue_MasksSecrets(t *testing.T) {
	entry := domain.StringEntry("hunter2hunter2")

	assert.Equal(t, "hunt...ter2", displayValue("imap.password", entry))
	assert.Equal(t, "hunter2hunter2", displayValue("global.editor", entry))
}
