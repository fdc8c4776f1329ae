package systems

// Frame stage IDs, in execution order. Timed stages key the perf collector.
const (
	StageSample    = "sample"
	StageReduce    = "reduce"
	StageGrid      = "grid"
	StageTelemetry = "telemetry"
	StageRender    = "render"
)

// SystemInfo describes a frame stage for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this stage does
	Category    string // Grouping (e.g., "audio", "simulation")
	Timed       bool   // Runs inside a pipeline step and gets a perf slot
}

// SystemRegistry holds metadata about all frame stages.
// This centralizes naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known stages.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the pipeline stages in the order they run.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: StageSample, Name: "Sample", Description: "Reads audio and computes the magnitude spectrum", Category: "audio", Timed: true})
	r.Register(SystemInfo{ID: StageReduce, Name: "Reduce", Description: "Averages bins into log-compressed bands", Category: "audio", Timed: true})
	r.Register(SystemInfo{ID: StageGrid, Name: "Grid", Description: "Folds bands into entity heights", Category: "simulation", Timed: true})
	r.Register(SystemInfo{ID: StageTelemetry, Name: "Telemetry", Description: "Window stats, bookmarks and CSV output", Category: "telemetry", Timed: true})
	r.Register(SystemInfo{ID: StageRender, Name: "Render", Description: "Draws the grid", Category: "visual"})
}

// Register adds a stage to the registry. Re-registering an ID replaces its metadata
// but keeps its original position.
func (r *SystemRegistry) Register(info SystemInfo) {
	if _, ok := r.byID[info.ID]; ok {
		for i := range r.systems {
			if r.systems[i].ID == info.ID {
				r.systems[i] = info
			}
		}
	} else {
		r.systems = append(r.systems, info)
	}
	r.byID[info.ID] = info
}

// Get returns stage info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a stage ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// ByCategory returns stages filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all stage IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}

// StepIDs returns the timed stage IDs in the order a step runs them.
func (r *SystemRegistry) StepIDs() []string {
	var ids []string
	for _, info := range r.systems {
		if info.Timed {
			ids = append(ids, info.ID)
		}
	}
	return ids
}
