package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/sim"
)

// PieceRow is one line of the piece table.
type PieceRow struct {
	ID          piece.ID
	Kind        string
	Disposition string
	Position    grid.Position
	Active      bool
	FloorRow    int64
}

// PieceRows lists every piece in spawn order.
func PieceRows(w *sim.World) []PieceRow {
	rows := make([]PieceRow, 0, w.Len())
	for p := range w.Pieces() {
		rows = append(rows, PieceRow{
			ID:          p.ID,
			Kind:        string(p.Kind),
			Disposition: fmt.Sprintf("%d/%d", p.Disposition, p.Table.Len()),
			Position:    p.Position,
			Active:      p.Active,
			FloorRow:    p.FloorRow(),
		})
	}
	return rows
}

// PieceInspector lists pieces and shows the fields and cells of the selected
// one.
type PieceInspector struct {
	world    *sim.World
	selected piece.ID
}

func NewPieceInspector(world *sim.World) *PieceInspector {
	return &PieceInspector{world: world}
}

// Selected returns the selected piece, falling back to the newest active one.
func (pi *PieceInspector) Selected() (*piece.Piece, bool) {
	if p, ok := pi.world.Piece(pi.selected); ok {
		return p, true
	}
	var last *piece.Piece
	for p := range pi.world.ActivePieces() {
		last = p
	}
	return last, last != nil
}

func (pi *PieceInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 320), imgui.CondOnce)

	if !imgui.BeginV("Pieces", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rows := PieceRows(pi.world)
	imgui.Text(fmt.Sprintf("Pieces: %d (%d active)", len(rows), pi.world.ActiveCount()))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("PieceTable", 6, tableFlags, imgui.NewVec2(0, 140), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Disp")
		imgui.TableSetupColumn("Pos")
		imgui.TableSetupColumn("Active")
		imgui.TableSetupColumn("Floor")
		imgui.TableHeadersRow()

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), pi.selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				pi.selected = row.ID
			}
			imgui.TableNextColumn()
			imgui.Text(row.Kind)
			imgui.TableNextColumn()
			imgui.Text(row.Disposition)
			imgui.TableNextColumn()
			imgui.Text(row.Position.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%t", row.Active))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.FloorRow))
		}
		imgui.EndTable()
	}

	if p, ok := pi.Selected(); ok {
		imgui.Separator()
		if imgui.TreeNodeStr(fmt.Sprintf("Piece %d", p.ID)) {
			for _, f := range Fields(p) {
				imgui.Text(fmt.Sprintf("%s: %s", f.Name, f.Value))
			}
			imgui.TreePop()
		}
		if imgui.TreeNodeStr("Cells") {
			for _, c := range p.Cells() {
				line := fmt.Sprintf("block %d at (%d,%d)", c.Index, c.Col, c.Row)
				if !pi.world.Grid.Contains(c.Col, c.Row) {
					imgui.TextColored(imgui.NewVec4(1.0, 0.5, 0.3, 1.0), line+" outside")
					continue
				}
				imgui.BulletText(line)
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}
