package timeline

// Plan is the serializable running order of a clip, written for inspection
// and reloaded to reorder or resize scenes.
type Plan struct {
	Version  string      `yaml:"version"`
	Duration float64     `yaml:"duration"` // Total duration in seconds
	FPS      int         `yaml:"fps"`
	Fades    PlanFades   `yaml:"fades"`
	Scenes   []PlanScene `yaml:"scenes"`
}

// PlanFades mirrors Fades.
type PlanFades struct {
	Scene float64 `yaml:"scene"`
	Open  float64 `yaml:"open"`
	Close float64 `yaml:"close"`
}

// PlanScene describes one slot of the clip.
type PlanScene struct {
	Index      int     `yaml:"index"`
	Name       string  `yaml:"name"`
	Share      float64 `yaml:"share"`
	Start      float64 `yaml:"start"` // seconds, inclusive
	End        float64 `yaml:"end"`   // seconds, exclusive
	FirstFrame int     `yaml:"first_frame"`
	LastFrame  int     `yaml:"last_frame"`
}

// FrameCount is the number of frames of a clip at fps.
func FrameCount(duration float64, fps int) int {
	if duration <= 0 || fps <= 0 {
		return 0
	}
	return int(duration*float64(fps) + 0.5)
}

// FrameTime is the timestamp of frame i.
func FrameTime(i, fps int) float64 {
	return float64(i) / float64(fps)
}

// Plan snapshots the timeline with the frame ranges each scene receives at fps.
func (tl *Timeline) Plan(fps int) *Plan {
	plan := &Plan{
		Version:  "1.0",
		Duration: tl.Duration,
		FPS:      fps,
		Fades:    PlanFades{Scene: tl.Fades.Scene, Open: tl.Fades.Open, Close: tl.Fades.Close},
	}

	for _, s := range tl.Slots {
		plan.Scenes = append(plan.Scenes, PlanScene{
			Index:      s.Index,
			Name:       s.Name,
			Share:      s.Duration() / tl.Duration,
			Start:      s.Start,
			End:        s.End,
			FirstFrame: -1,
			LastFrame:  -1,
		})
	}

	n := FrameCount(tl.Duration, fps)
	for f := 0; f < n; f++ {
		ps := &plan.Scenes[tl.Resolve(FrameTime(f, fps)).Index()]
		if ps.FirstFrame < 0 {
			ps.FirstFrame = f
		}
		ps.LastFrame = f
	}
	return plan
}
