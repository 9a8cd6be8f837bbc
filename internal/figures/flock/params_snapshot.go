package flock

import "flockfx/internal/core"

// Parameters reports the active configuration for HUDs and run logs.
func (f *Flock) Parameters() core.ParameterSnapshot {
	p := f.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Placement",
			Params: []core.Parameter{
				core.IntParam("count", "Count", f.cfg.Count),
				core.FloatParam("size_box", "Box side", f.cfg.SizeBox),
				core.FloatParam("origin_x", "Origin X", f.cfg.Origin[0]),
				core.FloatParam("origin_y", "Origin Y", f.cfg.Origin[1]),
				core.FloatParam("origin_z", "Origin Z", f.cfg.Origin[2]),
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				core.FloatParam("cohesion", "Cohesion divisor", p.Cohesion),
				core.FloatParam("alignment", "Alignment divisor", p.Alignment),
				core.FloatParam("separation", "Separation threshold", p.Separation),
				core.FloatParam("radius", "Boundary radius", p.Radius),
			},
		},
	}
	if len(f.track) > 0 {
		groups = append(groups, core.ParameterGroup{
			Name: "Leader track",
			Params: []core.Parameter{
				core.StringParam("track", "Track", f.cfg.TrackPath),
				core.IntParam("track_len", "Frames", len(f.track)),
				core.IntParam("frame", "Frame", f.frame),
			},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the rules adjustable at runtime.
func (f *Flock) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "cohesion", Label: "Cohesion", Type: core.ParamTypeFloat, Step: 5, Min: 1, HasMin: true, Max: 500, HasMax: true},
		{Key: "alignment", Label: "Alignment", Type: core.ParamTypeFloat, Step: 1, Min: 1, HasMin: true, Max: 100, HasMax: true},
		{Key: "separation", Label: "Separation", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "radius", Label: "Radius", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.5, HasMin: true, Max: 50, HasMax: true},
	}
}

// SetFloatParameter updates one of the rule parameters, clamping to the
// control bounds. It reports whether key names an adjustable parameter.
func (f *Flock) SetFloatParameter(key string, value float64) bool {
	for _, ctrl := range f.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		value = ctrl.Clamp(value)
		switch key {
		case "cohesion":
			f.cfg.Params.Cohesion = value
		case "alignment":
			f.cfg.Params.Alignment = value
		case "separation":
			f.cfg.Params.Separation = value
		case "radius":
			f.cfg.Params.Radius = value
		}
		return true
	}
	return false
}
