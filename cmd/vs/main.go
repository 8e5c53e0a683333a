package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/vs/internal/exporter"
	"github.com/nikbrunner/vs/internal/importer"
	"github.com/nikbrunner/vs/internal/model"
	"github.com/nikbrunner/vs/internal/picker"
	"github.com/nikbrunner/vs/internal/scroller"
	"github.com/nikbrunner/vs/internal/search"
	"github.com/nikbrunner/vs/internal/storage"
	"github.com/nikbrunner/vs/internal/tui"
)

func main() {
	closeLog := setupLogging()
	defer closeLog()

	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "seed":
			count := -1
			if len(os.Args) >= 3 {
				n, err := strconv.Atoi(os.Args[2])
				if err != nil || n < 1 {
					fmt.Fprintf(os.Stderr, "Usage: vs seed [count]\n")
					os.Exit(1)
				}
				count = n
			}
			runSeed(count)
			return
		case "demo":
			count := 10000
			if len(os.Args) >= 3 {
				n, err := strconv.Atoi(os.Args[2])
				if err != nil || n < 1 {
					fmt.Fprintf(os.Stderr, "Usage: vs demo [count]\n")
					os.Exit(1)
				}
				count = n
			}
			runDemo(count)
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: vs import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			// Export with optional path
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI(nil)
}

func printHelp() {
	help := `vs - virtual scrolling list viewer

Usage:
  vs                    Open the list
  vs <query>            Fuzzy search, then open the list at the match
  vs seed [count]       Append generated items
  vs demo [count]       Scroll generated items without storage
  vs import <file>      Import items from HTML
  vs export [path]      Export items to HTML
  vs help               Show this help

Keybindings:
  j/k         Scroll one line
  ^d/^u       Scroll half a page
  ^f/^b       Scroll a page
  gg/G        Jump to top/bottom
  / or :      Jump to an index or text
  y           Copy the top row to the clipboard
  q           Quit

Data Storage:
  ~/.config/vs/config.json
  ~/.config/vs/items.json or ~/.config/vs/items.db

Set VS_DEBUG=1 to log to vs-debug.log.
`
	fmt.Print(help)
}

// setupLogging sends the log package to a file when VS_DEBUG is set and
// silences it otherwise.
func setupLogging() func() {
	if os.Getenv("VS_DEBUG") == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := tea.LogToFile("vs-debug.log", "vs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
		os.Exit(1)
	}
	return func() { f.Close() }
}

// openStore loads config and items from the configured backend.
func openStore() (*storage.Config, storage.Storage, *model.Store) {
	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
		os.Exit(1)
	}

	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	st, err := storage.OpenStorage(*cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}

	store, err := st.Load()
	if err != nil {
		storage.Close(st)
		fmt.Fprintf(os.Stderr, "Error loading items: %v\n", err)
		os.Exit(1)
	}
	if p, ok := st.(interface{ Path() string }); ok {
		log.Printf("loaded %d items from %s", store.Len(), p.Path())
	}

	return cfg, st, store
}

// saveStore writes the store back and exits on failure.
func saveStore(st storage.Storage, store *model.Store) {
	if err := st.Save(store); err != nil {
		storage.Close(st)
		fmt.Fprintf(os.Stderr, "Error saving items: %v\n", err)
		os.Exit(1)
	}
}

// runTUI runs the list. A non-nil start overrides the configured start index.
func runTUI(start *int) {
	cfg, st, store := openStore()
	defer storage.Close(st)

	if store.Len() == 0 {
		store.Seed(cfg.SeedCount)
		saveStore(st, store)
		log.Printf("seeded %d items", cfg.SeedCount)
	}

	// The database answers windows directly; other backends serve from memory.
	var source scroller.DataSource[model.Item] = store
	lo, hi, _ := store.Bounds()
	if db, ok := st.(*storage.SQLiteStorage); ok {
		source = db
		var found bool
		var err error
		lo, hi, found, err = db.Bounds(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading item range: %v\n", err)
			os.Exit(1)
		}
		if !found {
			fmt.Fprintf(os.Stderr, "Error: no items to show\n")
			os.Exit(1)
		}
	}

	if start != nil {
		cfg.StartIndex = *start
	}
	runApp(cfg, lo, hi, source, store)
}

// runDemo runs the list over count generated items held nowhere.
func runDemo(count int) {
	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
		os.Exit(1)
	}
	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	lo := model.DefaultFirstIndex
	hi := lo + count - 1
	source := scroller.RangeSource[model.Item]{
		Min: lo,
		Max: hi,
		Item: func(index int) model.Item {
			return model.Item{ID: strconv.Itoa(index), Index: index, Text: model.GeneratedText(index)}
		},
	}
	runApp(cfg, lo, hi, source, nil)
}

// runApp builds the scroller over source and runs the TUI. store may be nil,
// which limits jumps to indices.
func runApp(cfg *storage.Config, lo, hi int, source scroller.DataSource[model.Item], store *model.Store) {
	if cfg.AutoAmount {
		fitRange(cfg, hi-lo+1)
	}
	settings, err := cfg.Settings(lo, hi)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in settings: %v\n", err)
		os.Exit(1)
	}

	controller, err := scroller.NewController(settings, source,
		scroller.WithIndexFunc(model.ItemIndex),
		scroller.WithObserver(func(w scroller.Window[model.Item]) {
			log.Printf("window at %d: %d rows, padding %d/%d", w.Index, len(w.Data), w.TopPaddingHeight, w.BottomPaddingHeight)
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scroller: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(tui.AppParams{
		Controller: controller,
		Store:      store,
		AutoAmount: cfg.AutoAmount,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// fitRange shrinks Amount and Tolerance to what count items allow. The TUI
// refits them to the terminal once it knows its size.
func fitRange(cfg *storage.Config, count int) {
	cfg.Amount = min(cfg.Amount, count)
	cfg.Tolerance = min(cfg.Tolerance, (count-cfg.Amount)/2)
}

// runQuickSearch performs a fuzzy search and opens the list at the selected item.
func runQuickSearch(query string) {
	_, st, store := openStore()
	storage.Close(st)

	results := search.FuzzySearchItems(store, query)

	if len(results) == 0 {
		fmt.Printf("No items found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *model.Item

	if len(results) == 1 {
		// Single result - select it directly
		selected = results[0].Item
	} else {
		// Multiple results - show picker
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.SelectedItem()
	}

	if selected == nil {
		os.Exit(0)
	}

	item := store.GetItemByID(selected.ID)
	if item == nil {
		os.Exit(0)
	}
	start := item.Index
	runTUI(&start)
}

// runSeed appends generated items. A negative count uses the configured one.
func runSeed(count int) {
	cfg, st, store := openStore()
	defer storage.Close(st)

	if count < 0 {
		count = cfg.SeedCount
	}
	added := store.Seed(count)
	saveStore(st, store)

	lo, hi, _ := store.Bounds()
	fmt.Printf("Seeded %d items (%d..%d)\n", added, lo, hi)
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	_, st, store := openStore()
	defer storage.Close(st)

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	items, err := importer.ParseHTML(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
		os.Exit(1)
	}

	added, skipped := store.ImportMerge(items)
	saveStore(st, store)

	fmt.Printf("Imported %d items", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	// Determine output path
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	_, st, store := openStore()
	storage.Close(st)

	html := exporter.ExportHTML(store)

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d items to %s\n", store.Len(), outputPath)
}
