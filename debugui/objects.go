package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/bunnymark/ecs"
	"github.com/plus3/bunnymark/engine"
)

// DefaultObjectsPerPage is the page size of the object browser.
const DefaultObjectsPerPage = 50

// ObjectRow describes one drawable engine object.
type ObjectRow struct {
	ID      ecs.EntityId
	Variant string
	Layer   engine.Layer
	X, Y    float64
	Hidden  bool
}

type drawableObject struct {
	ecs.EntityId
	*engine.Transform
	*engine.Sprite
}

// ObjectBrowser lists the live sprites and nodes of a world, filtered by
// variant name and paged.
type ObjectBrowser struct {
	view    *ecs.View[drawableObject]
	filter  string
	perPage int
	page    int
	rows    []ObjectRow
}

func NewObjectBrowser(world *engine.World, perPage int) *ObjectBrowser {
	if perPage <= 0 {
		perPage = DefaultObjectsPerPage
	}
	return &ObjectBrowser{
		view:    ecs.NewView[drawableObject](world.Storage()),
		perPage: perPage,
	}
}

// SetFilter keeps only objects whose variant name contains text,
// case-insensitively, and returns to the first page.
func (b *ObjectBrowser) SetFilter(text string) {
	b.filter = text
	b.page = 0
}

// Rows returns every object matching the filter, ordered by id.
func (b *ObjectBrowser) Rows() []ObjectRow {
	b.rows = b.rows[:0]
	filter := strings.ToLower(b.filter)

	for id, obj := range b.view.Iter() {
		name := obj.Variant.String()
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		b.rows = append(b.rows, ObjectRow{
			ID:      id,
			Variant: name,
			Layer:   obj.Layer,
			X:       obj.X,
			Y:       obj.Y,
			Hidden:  obj.Hidden,
		})
	}

	slices.SortFunc(b.rows, func(a, c ObjectRow) int {
		switch {
		case a.ID < c.ID:
			return -1
		case a.ID > c.ID:
			return 1
		}
		return 0
	})
	return b.rows
}

// Page returns the rows of the current page and the number of pages.
func (b *ObjectBrowser) Page() ([]ObjectRow, int) {
	rows := b.Rows()
	pages := max(1, (len(rows)+b.perPage-1)/b.perPage)
	b.page = min(b.page, pages-1)

	start := b.page * b.perPage
	end := min(start+b.perPage, len(rows))
	return rows[start:end], pages
}

// Next and Prev move between pages. Page clamps past the end.
func (b *ObjectBrowser) Next() { b.page++ }

func (b *ObjectBrowser) Prev() {
	if b.page > 0 {
		b.page--
	}
}

func (b *ObjectBrowser) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(380, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 420), imgui.CondOnce)

	if !imgui.BeginV("Objects", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	filter := b.filter
	if imgui.InputTextWithHint("##filter", "Variant...", &filter, imgui.InputTextFlagsNone, nil) {
		b.SetFilter(filter)
	}
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		b.SetFilter("")
	}

	rows, pages := b.Page()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ObjectTable", 4, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Variant")
		imgui.TableSetupColumn("Layer")
		imgui.TableSetupColumn("Position")
		imgui.TableHeadersRow()

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.ID))
			imgui.TableNextColumn()
			imgui.Text(row.Variant)
			imgui.TableNextColumn()
			if row.Layer == engine.LayerGUI {
				imgui.Text("gui")
			} else {
				imgui.Text("world")
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.0f, %.0f", row.X, row.Y))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d objects)", b.page+1, pages, len(b.rows)))
	imgui.SameLine()
	if imgui.Button("Prev") {
		b.Prev()
	}
	imgui.SameLine()
	if imgui.Button("Next") && b.page < pages-1 {
		b.Next()
	}

	imgui.End()
}
