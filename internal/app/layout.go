package app

import (
	"github.com/joshribakoff/bearing-dash/internal/models"
)

const (
	minProjectPaneWidth = 22
	maxProjectPaneWidth = 36
	minMainPaneWidth    = 40
)

// layoutDims holds computed layout dimensions for the UI.
type layoutDims struct {
	width        int
	height       int
	headerHeight int
	footerHeight int
	bodyHeight   int
	gapX         int

	leftWidth       int
	leftInnerWidth  int
	leftInnerHeight int

	rightWidth       int
	rightInnerWidth  int
	mainHeight       int
	mainInnerHeight  int
	detailsHeight    int
	detailsInnerRows int
}

// setWindowSize updates the window dimensions and applies the layout.
func (m *Model) setWindowSize(width, height int) {
	m.view.WindowWidth = width
	m.view.WindowHeight = height
	m.applyLayout(m.computeLayout())
	if m.screens.IsActive() {
		m.screens.Set(nil)
		m.showHelp()
	}
}

// computeLayout calculates the layout dimensions based on window size and UI state.
func (m *Model) computeLayout() layoutDims {
	width := m.view.WindowWidth
	height := m.view.WindowHeight
	if width <= 0 {
		width = 120
	}
	if height <= 0 {
		height = 40
	}

	headerHeight := 1
	footerHeight := 1
	gapX := 1
	bodyHeight := max(height-headerHeight-footerHeight, 10)

	paneFrameX := m.basePaneStyle().GetHorizontalFrameSize()
	paneFrameY := m.basePaneStyle().GetVerticalFrameSize()

	leftWidth := min(max(width/4, minProjectPaneWidth), maxProjectPaneWidth)
	rightWidth := width - leftWidth - gapX
	if rightWidth < minMainPaneWidth {
		rightWidth = minMainPaneWidth
		leftWidth = max(width-rightWidth-gapX, minProjectPaneWidth)
	}

	mainRatio := 0.60
	if m.store.FocusedPanel() == models.PanelDetails {
		mainRatio = 0.45
	}
	mainHeight := max(int(float64(bodyHeight)*mainRatio), 6)
	detailsHeight := max(bodyHeight-mainHeight, 5)

	return layoutDims{
		width:            width,
		height:           height,
		headerHeight:     headerHeight,
		footerHeight:     footerHeight,
		bodyHeight:       bodyHeight,
		gapX:             gapX,
		leftWidth:        leftWidth,
		leftInnerWidth:   max(1, leftWidth-paneFrameX),
		leftInnerHeight:  max(1, bodyHeight-paneFrameY),
		rightWidth:       rightWidth,
		rightInnerWidth:  max(1, rightWidth-paneFrameX),
		mainHeight:       mainHeight,
		mainInnerHeight:  max(1, mainHeight-paneFrameY),
		detailsHeight:    detailsHeight,
		detailsInnerRows: max(1, detailsHeight-paneFrameY-1),
	}
}

// applyLayout sizes the tables to the computed layout.
func (m *Model) applyLayout(layout layoutDims) {
	// one line for the pane title
	tableHeight := max(3, layout.mainInnerHeight-1)
	m.tableWidth = layout.rightInnerWidth
	m.tableRows = max(1, tableHeight-tableHeaderLines)
	m.worktreeTable.SetWidth(layout.rightInnerWidth)
	m.worktreeTable.SetHeight(tableHeight)
	m.planTable.SetWidth(layout.rightInnerWidth)
	m.planTable.SetHeight(tableHeight)
	m.filterInput.Width = max(4, layout.leftInnerWidth-4)
	m.syncTables()
}

// relayout recomputes pane sizes after a focus change, since the details
// panel grows when focused.
func (m *Model) relayout() {
	m.applyLayout(m.computeLayout())
}
