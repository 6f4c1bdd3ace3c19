// Package tui provides an interactive, terminal-based viewer of a finished
// routing result: a scrollable list of gaps and subchannels, each showing
// the nets, shields, and blockages placed inside it.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/edalab/gcr/output"
)

// areaEntry is one selectable row: a gap or one column's subchannel, along
// with the allocations placed inside it.
type areaEntry struct {
	label  string
	allocs []output.AllocationJSON
}

// App is the routing result viewer.
type App struct {
	app       *tview.Application
	list      *tview.List
	detail    *tview.TextView
	statusBar *tview.TextView

	areas []areaEntry
}

// NewApp builds a viewer over a finished routing result.
func NewApp(result *output.Result) *App {
	a := &App{
		app: tview.NewApplication(),
	}
	a.areas = buildAreaEntries(result)
	a.setupUI()
	return a
}

func buildAreaEntries(result *output.Result) []areaEntry {
	var areas []areaEntry

	gapIDs := make([]int, 0, len(result.Gaps))
	for id := range result.Gaps {
		gapIDs = append(gapIDs, id)
	}
	sort.Ints(gapIDs)
	for _, id := range gapIDs {
		areas = append(areas, areaEntry{
			label:  fmt.Sprintf("Gap %d", id),
			allocs: result.Gaps[id],
		})
	}

	cols := make([]int, 0, len(result.Subchannels))
	for col := range result.Subchannels {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	for _, col := range cols {
		byID := result.Subchannels[col]
		ids := make([]int, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			areas = append(areas, areaEntry{
				label:  fmt.Sprintf("Column %d / Subchannel %d", col, id),
				allocs: byID[id],
			})
		}
	}

	return areas
}

func (a *App) setupUI() {
	a.list = tview.NewList().ShowSecondaryText(false)
	a.list.SetBorder(true).SetTitle(" Routing Areas ")
	for _, area := range a.areas {
		a.list.AddItem(fmt.Sprintf("%s (%d)", area.label, len(area.allocs)), "", 0, nil)
	}

	a.detail = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	a.detail.SetBorder(true).SetTitle(" Allocations ")

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetText("[yellow]↑↓: select area[white] | Tab: switch panel | 'q': quit")

	a.list.SetChangedFunc(func(index int, _, _ string, _ rune) {
		a.showAreaDetail(index)
	})
	if len(a.areas) > 0 {
		a.showAreaDetail(0)
	}

	body := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(a.list, 0, 1, true).
		AddItem(a.detail, 0, 2, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q', 'Q':
			a.app.Stop()
			return nil
		}
		if event.Key() == tcell.KeyTab {
			if a.app.GetFocus() == a.list {
				a.app.SetFocus(a.detail)
			} else {
				a.app.SetFocus(a.list)
			}
			return nil
		}
		return event
	})

	a.app.SetRoot(main, true).SetFocus(a.list)
}

func (a *App) showAreaDetail(index int) {
	if index < 0 || index >= len(a.areas) {
		a.detail.SetText("")
		return
	}
	area := a.areas[index]

	var b strings.Builder
	fmt.Fprintf(&b, "[white::b]%s[white::-]\n\n", area.label)
	if len(area.allocs) == 0 {
		b.WriteString("[dim]empty[white]\n")
	}
	for _, alloc := range area.allocs {
		fmt.Fprintf(&b, "[yellow]%s[white] (%s)  x:[%s,%s)  y:[%s,%s)\n",
			alloc.Name, alloc.Type,
			alloc.XInterval.Min, alloc.XInterval.Max,
			alloc.YInterval.Min, alloc.YInterval.Max,
		)
	}
	a.detail.SetText(b.String())
}

// Run starts the viewer and blocks until the user quits.
func (a *App) Run() error {
	return a.app.Run()
}
