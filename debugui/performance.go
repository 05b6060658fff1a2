package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/sim"
)

// PerformancePanel shows per-system timings and a history of total frame
// time spent in systems.
type PerformancePanel struct {
	scheduler     *sim.Scheduler
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	lastTotal     int64
}

func NewPerformancePanel(scheduler *sim.Scheduler, historyFrames int) *PerformancePanel {
	if historyFrames <= 0 {
		historyFrames = 1
	}
	return &PerformancePanel{
		scheduler:     scheduler,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record samples the time systems spent since the previous call, in
// milliseconds.
func (pp *PerformancePanel) Record(stats *sim.SchedulerStats) {
	var total int64
	for _, s := range stats.Systems {
		total += int64(s.TotalDuration)
	}
	pp.frameHistory[pp.frameIndex] = float32(total-pp.lastTotal) / 1e6
	pp.frameIndex = (pp.frameIndex + 1) % pp.historyFrames
	pp.lastTotal = total
}

// History returns the samples, oldest first.
func (pp *PerformancePanel) History() []float32 {
	out := make([]float32, 0, pp.historyFrames)
	out = append(out, pp.frameHistory[pp.frameIndex:]...)
	return append(out, pp.frameHistory[:pp.frameIndex]...)
}

func (pp *PerformancePanel) Render() {
	stats := pp.scheduler.Stats()
	pp.Record(stats)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 550), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 240), imgui.CondOnce)

	if !imgui.BeginV("Systems", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Systems: %d, executions: %d", stats.SystemCount, stats.TotalExecutions))
	imgui.PlotLinesFloatPtr("##systime", &pp.frameHistory[0], int32(len(pp.frameHistory)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Min")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, s := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(s.Name)
			imgui.TableNextColumn()
			imgui.Text(s.LastDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MinDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MaxDuration.String())
		}
		imgui.EndTable()
	}

	imgui.End()
}
