package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/trihex/pkg/config"
	"github.com/matzehuels/trihex/pkg/errors"
)

func typeLine(t *testing.T, m PromptModel, s string) PromptModel {
	t.Helper()
	var next tea.Model = m
	if s != "" {
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(PromptModel)
}

func TestPromptAllDefaults(t *testing.T) {
	m := NewPromptModel(config.Defaults())
	for i := range config.Prompts {
		if i%2 == 0 {
			m = typeLine(t, m, "")
		} else {
			m = typeLine(t, m, config.KeepDefault)
		}
	}
	if !m.Done {
		t.Fatal("prompt not done after answering every question")
	}
	if m.Session != config.Defaults() {
		t.Errorf("Session = %+v, want defaults", m.Session)
	}
}

func TestPromptAnswers(t *testing.T) {
	answers := []string{"100", "2", "3", "0.5", "20", "10", "1", "0.5", "0"}
	m := NewPromptModel(config.Defaults())
	for _, a := range answers {
		m = typeLine(t, m, a)
	}
	if !m.Done {
		t.Fatal("prompt not done")
	}

	want := config.Session{
		HexSize: 100, GapSize: 2, LayerCount: 3, CenterEdgeWidth: 0.5,
		GlowWidth: 20, GlowLayers: 10,
	}
	want.Color.R, want.Color.G, want.Color.B = 1, 0.5, 0
	if m.Session != want {
		t.Errorf("Session = %+v, want %+v", m.Session, want)
	}
}

func TestPromptRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		before []string
		input  string
	}{
		{"not a number", nil, "abc"},
		{"negative size", nil, "-4"},
		{"fractional layers", []string{"", ""}, "2.5"},
		{"zero layers", []string{"", ""}, "0"},
		{"colour above one", []string{"", "", "", "", "", ""}, "1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPromptModel(config.Defaults())
			for _, a := range tt.before {
				m = typeLine(t, m, a)
			}
			index := m.Index

			m = typeLine(t, m, tt.input)
			if m.Index != index {
				t.Errorf("Index = %d, want question %d repeated", m.Index, index)
			}
			if m.Err == "" {
				t.Error("no error shown")
			}
			if m.Session != config.Defaults() {
				t.Error("rejected answer changed the session")
			}
			if !strings.Contains(m.View(), m.Err) {
				t.Error("view does not show the error")
			}

			m = typeLine(t, m, "")
			if m.Err != "" || m.Index != index+1 {
				t.Errorf("after a valid answer Err = %q Index = %d", m.Err, m.Index)
			}
		})
	}
}

func TestPromptEditing(t *testing.T) {
	var m tea.Model = NewPromptModel(config.Defaults())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("129")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.(PromptModel).Session.HexSize; got != 120 {
		t.Errorf("HexSize = %v, want 120", got)
	}
}

func TestPromptCancel(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		var m tea.Model = NewPromptModel(config.Defaults())
		m, cmd := m.Update(tea.KeyMsg{Type: key})
		if !m.(PromptModel).Cancelled {
			t.Errorf("key %v did not cancel", key)
		}
		if cmd == nil {
			t.Errorf("key %v did not quit", key)
		}
	}
}

func TestPromptView(t *testing.T) {
	m := NewPromptModel(config.Defaults())
	m = typeLine(t, m, "300")
	view := m.View()

	if !strings.Contains(view, config.Prompts[0].Question) || !strings.Contains(view, "300") {
		t.Error("view missing the answered question")
	}
	if !strings.Contains(view, config.Prompts[1].Question) {
		t.Error("view missing the current question")
	}
	if strings.Contains(view, config.Prompts[2].Question) {
		t.Error("view shows a question not yet asked")
	}
}

func TestSaveSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.toml")
	s := config.Defaults()
	s.HexSize = 42

	if err := saveSession(s, path); err != nil {
		t.Fatalf("saveSession() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded != s {
		t.Errorf("loaded = %+v, want %+v", loaded, s)
	}
}

func TestPromptStart(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	s, err := promptStart("")
	if err != nil || s != config.Defaults() {
		t.Errorf("promptStart(\"\") = %+v, %v; want defaults", s, err)
	}

	s, err = promptStart(write("ok.toml", "hex_size = 120\n"))
	if err != nil {
		t.Fatalf("promptStart(ok) error: %v", err)
	}
	if s.HexSize != 120 {
		t.Errorf("HexSize = %v, want 120", s.HexSize)
	}

	// A bad late field would otherwise block every earlier answer.
	_, err = promptStart(write("bad.toml", "glow_layers = 0\n"))
	if err == nil {
		t.Fatal("promptStart(bad) = nil error")
	}
	if got := errors.FieldOf(err); got != "glow_layers" {
		t.Errorf("field = %q, want glow_layers", got)
	}
}
