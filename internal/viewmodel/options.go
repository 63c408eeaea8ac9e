// Package viewmodel owns the mutable application state that sits between
// the store and the command line: the selected date, search and filter, the
// visible groups, category management and statistics.
package viewmodel

import (
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/logger"
)

type options struct {
	now         func() time.Time
	loc         *time.Location
	pinnedTitle string
	lang        language.Tag
	log         *log.Logger
}

type Option func(*options)

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

func WithPinnedTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.pinnedTitle = title
		}
	}
}

func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.lang = tag
	}
}

func buildOptions(component string, opts []Option) options {
	o := options{
		now:         time.Now,
		loc:         time.Local,
		pinnedTitle: constants.DefaultPinnedTitle,
		lang:        language.Und,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Named(component)
	}
	return o
}

func (o options) today() time.Time {
	return o.now().In(o.loc)
}
