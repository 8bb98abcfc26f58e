package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trihex/pkg/config"
	"github.com/matzehuels/trihex/pkg/errors"
)

var (
	promptQuestionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	promptAnswerStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	promptErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	promptCursor        = lipgloss.NewStyle().Foreground(colorCyan).Render("█")
)

// =============================================================================
// PromptModel - Interactive session entry
// =============================================================================

// PromptModel is the bubbletea model that asks for every session field in
// turn. An empty answer or "D" keeps the current value.
type PromptModel struct {
	Session   config.Session
	Index     int
	Input     string
	Err       string
	Done      bool
	Cancelled bool
}

// NewPromptModel starts from s, usually [config.Defaults].
func NewPromptModel(s config.Session) PromptModel {
	return PromptModel{Session: s}
}

func (m PromptModel) Init() tea.Cmd {
	return nil
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Cancelled = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
	case tea.KeyEnter:
		return m.answer()
	case tea.KeyRunes, tea.KeySpace:
		m.Input += string(key.Runes)
	}
	return m, nil
}

// answer applies the current input. A value that fails to parse or
// validate is rejected and the same question is asked again.
func (m PromptModel) answer() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.Input)
	if input == "" {
		input = config.KeepDefault
	}

	next := m.Session
	p := config.Prompts[m.Index]
	err := next.Set(p.Field, input)
	if err == nil {
		err = next.Validate()
	}
	if err != nil {
		m.Err = errors.UserMessage(err)
		m.Input = ""
		return m, nil
	}

	m.Session, m.Err, m.Input = next, "", ""
	m.Index++
	if m.Index == len(config.Prompts) {
		m.Done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m PromptModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("trihex"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("⏎ accept  %s or empty keeps the default  esc quit", config.KeepDefault)))
	b.WriteString("\n\n")

	for i, p := range config.Prompts {
		if i > m.Index || (i == m.Index && m.Done) {
			break
		}
		if i < m.Index {
			b.WriteString(StyleDim.Render(p.Question + ": "))
			b.WriteString(promptAnswerStyle.Render(m.Session.Get(p.Field)))
			b.WriteString("\n")
			continue
		}
		b.WriteString(promptQuestionStyle.Render(p.Question))
		b.WriteString(StyleDim.Render(fmt.Sprintf(" [%s]", m.Session.Get(p.Field))))
		b.WriteString(": ")
		b.WriteString(m.Input)
		b.WriteString(promptCursor)
		b.WriteString("\n")
	}

	if m.Err != "" {
		b.WriteString("\n")
		b.WriteString(promptErrorStyle.Render(iconError + " " + m.Err))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// promptCommand creates the prompt command.
func (c *CLI) promptCommand() *cobra.Command {
	var (
		out  outputOpts
		from string
		save string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Enter parameters interactively, then render",
		Long: `Ask for each parameter in turn, then render.

Answer with a number, or press enter (or type D) to keep the value shown in
brackets. Values are checked as they are entered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := promptStart(from)
			if err != nil {
				return err
			}
			s, ok, err := runPrompt(cmd.Context(), start)
			if err != nil {
				return err
			}
			if !ok {
				printWarning("Cancelled")
				return nil
			}
			if save != "" {
				if err := saveSession(s, save); err != nil {
					return err
				}
				printSuccess("Saved parameters")
				printFile(save)
			}
			if err := c.runRender(cmd.Context(), out.pipelineOptions(s), out); err != nil {
				return err
			}
			if save != "" {
				printNewline()
				printNextStep("Render again with these values", appName+" render -c "+save)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "config", "c", "", "TOML file with starting values")
	cmd.Flags().StringVar(&save, "save", "", "write the answers to a TOML file")
	out.register(cmd)
	return cmd
}

// promptStart returns the values the form starts from. A file with an
// invalid value fails here, since every answer is checked against the
// whole session.
func promptStart(path string) (config.Session, error) {
	if path == "" {
		return config.Defaults(), nil
	}
	s, err := config.Load(path)
	if err != nil {
		return config.Session{}, err
	}
	if err := s.Validate(); err != nil {
		return config.Session{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// runPrompt runs the interactive form. ok is false if the user quit.
func runPrompt(ctx context.Context, start config.Session) (config.Session, bool, error) {
	final, err := tea.NewProgram(NewPromptModel(start), tea.WithContext(ctx)).Run()
	if err != nil {
		return config.Session{}, false, fmt.Errorf("prompt: %w", err)
	}
	m := final.(PromptModel)
	if m.Cancelled || !m.Done {
		return config.Session{}, false, nil
	}
	return m.Session, true, nil
}

func saveSession(s config.Session, path string) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
