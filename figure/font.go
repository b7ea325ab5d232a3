package figure

import (
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	defaultFontOnce sync.Once
	defaultFont     *text.FontSource
	defaultFontErr  error
)

// goRegular returns the shared Go Regular font source. FontSource is
// heavyweight and safe for concurrent use, so one is kept per process.
func goRegular() (*text.FontSource, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = text.NewFontSource(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}
