package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/glance"
	"github.com/iw2rmb/glance/internal/config"
	"github.com/iw2rmb/glance/internal/logx"
	"github.com/iw2rmb/glance/pager"
)

type model struct {
	pager pager.Model
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.pager, cmd = m.pager.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.pager.View() }

// stream feeds the byte source into the program in chunks, then signals the
// end of the stream. The program's message queue serializes these with keys
// and resizes.
func stream(p *tea.Program, r io.Reader) {
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			p.Send(pager.DataMsg(chunk))
		}
		if err != nil {
			if err != io.EOF {
				logx.Errorf("read: %v", err)
			}
			p.Send(pager.EOFMsg{})
			return
		}
	}
}

func run() error {
	scrolloff := flag.Int("scrolloff", -1, "rows kept between the focus and the screen edges")
	noLineNums := flag.Bool("no-line-numbers", false, "hide the line-number gutter")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(glance.Version())
		return nil
	}

	if path := os.Getenv("GLANCE_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logx.SetOutput(f)
		logx.SetMinLevel(logx.LevelDebug)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pcfg := pager.Config{
		Source:       "stdin",
		Scrolloff:    3,
		ShowLineNums: true,
		Style:        pager.DefaultStyle(),
		KeyMap:       pager.DefaultKeyMap(),
	}
	if cfg.Scrolloff != nil {
		pcfg.Scrolloff = *cfg.Scrolloff
	}
	if cfg.LineNumbers != nil {
		pcfg.ShowLineNums = *cfg.LineNumbers
	}
	// Flags win over the config file.
	if *scrolloff >= 0 {
		pcfg.Scrolloff = *scrolloff
	}
	if *noLineNums {
		pcfg.ShowLineNums = false
	}

	var src io.Reader = os.Stdin
	if name := flag.Arg(0); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
		pcfg.Source = name
	}

	p := tea.NewProgram(model{pager: pager.New(pcfg)}, tea.WithAltScreen())
	go stream(p, src)

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "glance:", err)
		os.Exit(1)
	}
}
