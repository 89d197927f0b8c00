package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/t02uk/tttttemplate/internal/service"
	"github.com/t02uk/tttttemplate/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`tttttemplate - Terminal-based text template filling

USAGE:
    tttttemplate [OPTIONS]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --init          Initialize a new template library

Running without arguments starts the interactive TUI: pick a template,
fill its {{variables}}, preview the result and copy it to the clipboard.
Variable defaults are small expressions (e.g. "draft", [1, 2, 3], now())
and date variables accept natural language like "next Monday" or
"today + 3 days".

STORAGE:
    Default directory: ~/.tttttemplate
    Override with: TTTTEMPLATE_DIR=<path>
`)
}

func main() {
	var showVersion bool
	var initLib bool
	var showHelp bool

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&initLib, "init", false, "Initialize a new template library")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("tttttemplate version %s\n", version)
		os.Exit(0)
	}

	svc, err := service.NewService()
	if err != nil {
		fmt.Println(err)
		return
	}

	if initLib {
		if err := svc.InitLibrary(); err != nil {
			fmt.Println("Error initializing library:", err)
			return
		}
		fmt.Println("Initialized template library")
		return
	}

	if err := svc.InitLibrary(); err != nil {
		fmt.Println("Error initializing library:", err)
		return
	}

	p := tea.NewProgram(ui.NewModel(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println(err)
		return
	}
}
