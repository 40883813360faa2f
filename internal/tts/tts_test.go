package tts

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEngine is a test implementation of Engine.
type mockEngine struct {
	name string
}

func (m *mockEngine) Name() string {
	return m.name
}

func (m *mockEngine) Synthesize(_ context.Context, req SynthesizeRequest) (*SpeechResult, error) {
	return &SpeechResult{Text: req.Text, Voice: req.Voice, Status: "mock"}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStubEngine_Synthesize(t *testing.T) {
	engine := NewStubEngine(quietLogger())
	assert.Equal(t, "stub", engine.Name())

	tests := []struct {
		name     string
		text     string
		voice    string
		duration float64
	}{
		{"three words", "Привет, как дела?", "default", 1.5},
		{"empty text", "", "male", 0},
		{"whitespace only", " \n\t ", "female", 0},
		{"mixed whitespace", "one\ttwo\nthree  four", "default", 2},
		{"unknown voice", "hi", "robot", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.Synthesize(context.Background(), SynthesizeRequest{Text: tt.text, Voice: tt.voice})
			require.NoError(t, err)

			assert.Equal(t, tt.text, res.Text)
			assert.Equal(t, tt.voice, res.Voice)
			assert.Nil(t, res.AudioURL)
			assert.InDelta(t, tt.duration, res.Duration, 1e-9)
			assert.Equal(t, StatusReady, res.Status)
		})
	}
}

func TestSpeechResult_JSON(t *testing.T) {
	res := SpeechResult{Text: "a b c", Voice: "default", Duration: 1.5, Status: "ready"}

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"a b c","voice":"default","audio_url":null,"duration":1.5,"status":"ready"}`, string(data))
}

func TestEstimateDuration(t *testing.T) {
	assert.Equal(t, 0.0, EstimateDuration(""))
	assert.Equal(t, 2.5, EstimateDuration("one two three four five"))
	assert.Equal(t, 5, CountWords("  one two\tthree\nfour  five "))
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	voices := catalog.List()

	require.Len(t, voices, 3)
	ids := []string{voices[0].ID, voices[1].ID, voices[2].ID}
	assert.Equal(t, []string{"default", "female", "male"}, ids)
	for _, v := range voices {
		assert.Equal(t, "ru-RU", v.Lang)
		assert.NotEmpty(t, v.Name)
		assert.NotEmpty(t, v.Description)
	}
	assert.Equal(t, "Женский голос", voices[1].Name)
}

func TestCatalog_ListIsCopy(t *testing.T) {
	catalog := DefaultCatalog()
	voices := catalog.List()
	voices[0].ID = "changed"

	assert.Equal(t, "default", catalog.List()[0].ID)
}

func TestCatalog_Lookup(t *testing.T) {
	catalog := DefaultCatalog()

	v, err := catalog.Lookup("male")
	require.NoError(t, err)
	assert.Equal(t, "Мужской голос", v.Name)

	_, err = catalog.Lookup("robot")
	require.ErrorIs(t, err, ErrVoiceNotFound)
	assert.Contains(t, err.Error(), `"robot"`)

	assert.True(t, catalog.Validate("default"))
	assert.True(t, catalog.Validate("female"))
	assert.False(t, catalog.Validate(""))
	assert.False(t, catalog.Validate("Default"))
}

func TestVoice_JSON(t *testing.T) {
	data, err := json.Marshal(DefaultCatalog().List()[0])
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"default","name":"По умолчанию","lang":"ru-RU","description":"Стандартный русский голос"}`,
		string(data))
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(&mockEngine{name: "test"}))

	got, err := reg.Get("test")
	require.NoError(t, err)
	assert.Equal(t, "test", got.Name())
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	engine := &mockEngine{name: "test"}

	require.NoError(t, reg.Register(engine))
	assert.ErrorIs(t, reg.Register(engine), ErrEngineExists)
}

func TestRegistry_GetNotFound(t *testing.T) {
	_, err := NewRegistry().Get("nonexistent")
	assert.ErrorIs(t, err, ErrEngineNotFound)
}

func TestRegistry_Default(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Default()
	require.ErrorIs(t, err, ErrEngineNotFound)

	require.NoError(t, reg.Register(&mockEngine{name: "first"}))
	require.NoError(t, reg.Register(&mockEngine{name: "second"}))

	def, err := reg.Default()
	require.NoError(t, err)
	assert.Equal(t, "first", def.Name())

	require.NoError(t, reg.SetDefault("second"))
	def, err = reg.Default()
	require.NoError(t, err)
	assert.Equal(t, "second", def.Name())

	assert.ErrorIs(t, reg.SetDefault("missing"), ErrEngineNotFound)
}

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(NewStubEngine(quietLogger())))
	require.NoError(t, reg.Register(&mockEngine{name: "mock"}))

	e, err := reg.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, StubEngineName, e.Name())

	e, err = reg.Resolve("mock")
	require.NoError(t, err)
	assert.Equal(t, "mock", e.Name())

	_, err = reg.Resolve("piper")
	assert.ErrorIs(t, err, ErrEngineNotFound)
}

func TestRegistry_List(t *testing.T) {
	reg := NewRegistry()
	assert.Empty(t, reg.List())

	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, reg.Register(&mockEngine{name: name}))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.List())
}
