package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motion2video_frames_rendered_total",
		Help: "Total number of frames composited, by scene",
	}, []string{"scene"})
	FramesEncoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motion2video_frames_encoded_total",
		Help: "Total number of frames written to the encoder",
	})
	SegmentsEncoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motion2video_segments_encoded_total",
		Help: "Total number of video segments finished by ffmpeg",
	})
	RenderSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "motion2video_frame_render_seconds",
		Help:    "Time spent compositing one frame, by scene",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"scene"})
	EncodeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motion2video_encode_errors_total",
		Help: "Total number of failed ffmpeg runs",
	})
)

// SceneMetrics are the per-scene children, resolved once per scene.
type SceneMetrics struct {
	Rendered prometheus.Counter
	Duration prometheus.Observer
}

func NewSceneMetrics(scene string) SceneMetrics {
	s := SceneMetrics{
		Rendered: FramesRendered.WithLabelValues(scene),
		Duration: RenderSeconds.WithLabelValues(scene),
	}
	s.Rendered.Add(0)
	return s
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// WriteTextfile dumps the default registry in the text exposition format,
// e.g. for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
