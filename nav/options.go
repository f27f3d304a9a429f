package nav

import (
	"github.com/gogpu/fractal"
	"golang.org/x/text/language"
)

// Option configures a State during creation.
type Option func(*options)

type options struct {
	viewport fractal.Viewport
	factors  Factors
	limit    int
	locale   language.Tag
}

func defaultOptions() options {
	return options{
		viewport: fractal.DefaultViewport(),
		factors:  DefaultFactors,
		limit:    DefaultHistoryLimit,
		locale:   language.English,
	}
}

// WithViewport sets the initial viewport.
func WithViewport(vp fractal.Viewport) Option {
	return func(o *options) {
		o.viewport = vp
	}
}

// WithFactors sets the zoom factor and the pan step. Non-positive values
// keep the defaults.
func WithFactors(zoom, offset float64) Option {
	return func(o *options) {
		if zoom > 0 {
			o.factors.Zoom = zoom
		}
		if offset > 0 {
			o.factors.Offset = offset
		}
	}
}

// WithHistoryLimit bounds the undo history.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithLocale sets the locale used to format the title.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}
