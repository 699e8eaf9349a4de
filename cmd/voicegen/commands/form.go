package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tahcohcat/voicegen/internal/persona"
	"github.com/tahcohcat/voicegen/internal/speech"
)

const formHelp = `Type keywords and press enter to set the phrase.
  /persona NAME   switch persona (Polite, Sarcastic, Professional)
  /speak [WORDS]  generate speech for the phrase, or for WORDS
  /dismiss        hide the current error
  /status         show the form state
  /quit           leave`

func newFormCmd(opts *rootOptions) *cobra.Command {
	var mute bool

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Interactive keyword form",
		Long:  "Interactive keyword form.\n\n" + formHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := opts.newController(opts.newPlayer("", mute))
			f := &form{ctrl: ctrl, out: cmd.OutOrStdout()}

			cancel := ctrl.Subscribe(f.render)
			defer cancel()

			f.println(TitleStyle.Render("voicegen") + " " + HelpStyle.Render("backend "+opts.backendURL()))
			f.println(HelpStyle.Render(formHelp))
			return f.run(cmd, cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVar(&mute, "mute", false, "do not play the audio")
	return cmd
}

// form is a line-based front end over a Controller. Requests run in the
// background so the prompt stays live while one is in flight.
type form struct {
	ctrl *speech.Controller
	wg   sync.WaitGroup

	mu   sync.Mutex // guards out and last
	out  io.Writer
	last speech.Phase
}

func (f *form) println(a ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fmt.Fprintln(f.out, a...)
}

// render prints phase changes. Keyword edits alone stay quiet.
func (f *form) render(s speech.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.Phase == f.last && s.Phase != speech.Failed {
		return
	}
	f.last = s.Phase
	fmt.Fprintln(f.out, renderStatus(s))
}

func (f *form) run(cmd *cobra.Command, in io.Reader) error {
	defer f.wg.Wait()

	scanner := bufio.NewScanner(in)
	for {
		prompt := f.prompt()
		f.mu.Lock()
		fmt.Fprint(f.out, prompt)
		f.mu.Unlock()
		if !scanner.Scan() {
			f.println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "/") {
			f.ctrl.SetKeywords(line)
			continue
		}

		name, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		switch name {
		case "/quit", "/exit":
			return nil
		case "/help":
			f.println(HelpStyle.Render(formHelp))
		case "/persona":
			p, err := persona.Parse(arg)
			if err != nil {
				f.println(ErrorStyle.Render(err.Error()))
				continue
			}
			f.ctrl.SetPersona(p)
			f.println(HelpStyle.Render("Persona: " + p.Info().Label + " (" + p.Info().Description + ")"))
		case "/speak":
			if arg != "" {
				f.ctrl.SetKeywords(arg)
			}
			f.speak(cmd.Context())
		case "/dismiss":
			f.ctrl.Dismiss()
		case "/status":
			s := f.ctrl.Snapshot()
			f.println(fmt.Sprintf("phase=%s persona=%s keywords=%q", s.Phase, s.Persona, s.Keywords))
			if s.Caption != "" {
				f.println(renderCaption(s.Caption))
			}
		default:
			f.println(ErrorStyle.Render("Unknown command " + name + ". Try /help."))
		}
	}
}

// speak starts a request for the current keywords and persona. A second
// /speak while one is running is refused.
func (f *form) speak(ctx context.Context) {
	s := f.ctrl.Snapshot()
	if s.Loading() {
		f.println(HelpStyle.Render("Still generating."))
		return
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		if err := f.ctrl.Submit(ctx, s.Keywords, s.Persona); errors.Is(err, speech.ErrInFlight) {
			f.println(HelpStyle.Render("Still generating."))
		}
	}()
}

func (f *form) prompt() string {
	return TitleStyle.Render(string(f.ctrl.Persona())) + HelpStyle.Render(" > ")
}
