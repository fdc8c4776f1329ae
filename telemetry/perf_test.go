package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/spectrogrid/systems"
)

var stepStages = []string{systems.StageSample, systems.StageReduce, systems.StageGrid, systems.StageTelemetry}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10, stepStages)

	for i := 0; i < 5; i++ {
		pc.StartStep()
		pc.StartStage(systems.StageSample)
		time.Sleep(100 * time.Microsecond)
		pc.StartStage(systems.StageGrid)
		time.Sleep(200 * time.Microsecond)
		pc.EndStep()
	}

	stats := pc.Stats()

	if stats.AvgStepDuration <= 0 {
		t.Error("expected positive average step duration")
	}
	if len(stats.Stages) != len(stepStages) {
		t.Fatalf("stages = %d, want %d", len(stats.Stages), len(stepStages))
	}
	for i, id := range stepStages {
		if stats.Stages[i].ID != id {
			t.Errorf("stage %d = %q, want %q", i, stats.Stages[i].ID, id)
		}
	}
	if stats.Stage(systems.StageSample).Avg <= 0 || stats.Stage(systems.StageGrid).Avg <= 0 {
		t.Error("expected sample and grid stages to be timed")
	}
	if stats.Stage(systems.StageReduce).Avg != 0 {
		t.Error("reduce stage never ran but has a duration")
	}
	if stats.MinStepDuration > stats.MaxStepDuration {
		t.Errorf("min %v > max %v", stats.MinStepDuration, stats.MaxStepDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5, stepStages) // Small window

	// Slow steps first; they must age out of the ring.
	for i := 0; i < 5; i++ {
		pc.StartStep()
		pc.StartStage(systems.StageReduce)
		time.Sleep(2 * time.Millisecond)
		pc.EndStep()
	}
	for i := 0; i < 5; i++ {
		pc.StartStep()
		pc.StartStage(systems.StageGrid)
		pc.EndStep()
	}

	stats := pc.Stats()
	if got := stats.Stage(systems.StageReduce).Avg; got != 0 {
		t.Errorf("reduce avg = %v after the window rolled over, want 0", got)
	}
	if stats.StepsPerSecond <= 0 {
		t.Error("expected positive steps per second")
	}
}

func TestPerfCollector_StagePercentages(t *testing.T) {
	pc := NewPerfCollector(10, stepStages)

	for i := 0; i < 5; i++ {
		pc.StartStep()
		pc.StartStage(systems.StageSample)
		time.Sleep(10 * time.Microsecond)
		pc.StartStage(systems.StageGrid)
		time.Sleep(time.Millisecond)
		pc.EndStep()
	}

	stats := pc.Stats()
	fast, slow := stats.Stage(systems.StageSample).Pct, stats.Stage(systems.StageGrid).Pct
	if slow <= fast {
		t.Errorf("expected grid stage (%v%%) > sample stage (%v%%)", slow, fast)
	}
	if fast+slow > 100.0001 {
		t.Errorf("stage shares sum to %v%%", fast+slow)
	}
}

func TestPerfCollector_UnknownStageIgnored(t *testing.T) {
	pc := NewPerfCollector(4, stepStages)

	pc.StartStep()
	pc.StartStage(systems.StageRender)
	time.Sleep(100 * time.Microsecond)
	pc.EndStep()

	stats := pc.Stats()
	if len(stats.Stages) != len(stepStages) {
		t.Fatalf("stages = %d, want %d", len(stats.Stages), len(stepStages))
	}
	for _, st := range stats.Stages {
		if st.Avg != 0 {
			t.Errorf("stage %q = %v, want 0", st.ID, st.Avg)
		}
	}
	if got := stats.Stage(systems.StageRender); got.Avg != 0 || got.ID != systems.StageRender {
		t.Errorf("Stage(render) = %+v", got)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10, stepStages).Stats()

	if stats.AvgStepDuration != 0 {
		t.Error("expected zero avg step duration for empty collector")
	}
	if len(stats.Stages) != len(stepStages) {
		t.Errorf("stages = %d, want %d", len(stats.Stages), len(stepStages))
	}
}

func TestPerfCollector_DrawTiming(t *testing.T) {
	pc := NewPerfCollector(10, stepStages)

	pc.RecordDraw()
	time.Sleep(16 * time.Millisecond)
	pc.RecordDraw()

	stats := pc.Stats()
	if stats.DrawInterval < 15*time.Millisecond {
		t.Errorf("expected draw interval >= 15ms, got %v", stats.DrawInterval)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70], got %v", stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgStepDuration: 2 * time.Millisecond,
		Stages: []StageTiming{
			{ID: systems.StageSample, Pct: 60},
			{ID: systems.StageGrid, Pct: 30},
		},
	}
	row := stats.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgStepUS != 2000 {
		t.Errorf("row = %+v", row)
	}
	if row.SamplePct != 60 || row.GridPct != 30 || row.ReducePct != 0 {
		t.Errorf("stage pct = (%v, %v, %v)", row.SamplePct, row.ReducePct, row.GridPct)
	}
}
