package clipboard

import (
	"context"
	"regexp"
	"strings"
	"time"

	"tabbatch/internal/keyboard"
	"tabbatch/internal/services"
	"tabbatch/internal/textutil"
)

var productIDPattern = regexp.MustCompile(`productId=(\d+)`)

// copyDelay gives the browser time to place the address on the clipboard.
const copyDelay = 150 * time.Millisecond

// TabInfo identifies the focused edit page.
type TabInfo struct {
	SPU string
	URL string
	// Title is the focused window's title, empty when it cannot be read.
	Title string
}

// TitleReader reports the title of the focused window.
type TitleReader interface {
	ActiveTitle(ctx context.Context) (string, error)
}

// TabProbe copies the focused tab's address and extracts its SPU.
type TabProbe struct {
	kb       keyboard.Keyboard
	clip     Clipboard
	titles   TitleReader
	modifier string
	sleep    services.Sleeper
}

// ProbeOption configures a TabProbe.
type ProbeOption func(*TabProbe)

// WithSleeper injects the copy delay (primarily for tests).
func WithSleeper(sleep services.Sleeper) ProbeOption {
	return func(p *TabProbe) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// WithTitleReader enables reading the focused window's title.
func WithTitleReader(titles TitleReader) ProbeOption {
	return func(p *TabProbe) {
		if titles != nil {
			p.titles = titles
		}
	}
}

// WithModifier overrides the shortcut modifier key.
func WithModifier(modifier string) ProbeOption {
	return func(p *TabProbe) {
		if modifier != "" {
			p.modifier = modifier
		}
	}
}

// NewTabProbe constructs a probe.
func NewTabProbe(kb keyboard.Keyboard, clip Clipboard, opts ...ProbeOption) *TabProbe {
	p := &TabProbe{
		kb:       kb,
		clip:     clip,
		modifier: keyboard.PrimaryModifier(),
		sleep:    services.SleepWithContext,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Current focuses the address bar, copies it and parses the edit page URL.
// The window title is read first and left empty on failure.
func (p *TabProbe) Current(ctx context.Context) (TabInfo, error) {
	title := p.activeTitle(ctx)
	if err := p.kb.Tap("l", p.modifier); err != nil {
		return TabInfo{}, services.Wrap(services.ErrAutomation, "clipboard", "focus address bar", "", err)
	}
	if err := p.kb.Tap("c", p.modifier); err != nil {
		return TabInfo{}, services.Wrap(services.ErrAutomation, "clipboard", "copy address", "", err)
	}
	if err := p.sleep(ctx, copyDelay); err != nil {
		return TabInfo{}, err
	}
	text, err := p.clip.ReadAll()
	if err != nil {
		return TabInfo{}, services.Wrap(services.ErrExternalTool, "clipboard", "read address", "", err)
	}
	info, err := ParseTabURL(text)
	if err != nil {
		return TabInfo{}, err
	}
	info.Title = title
	return info, nil
}

func (p *TabProbe) activeTitle(ctx context.Context) string {
	if p.titles == nil {
		return ""
	}
	title, err := p.titles.ActiveTitle(ctx)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(title)
}

// ParseTabURL validates an edit page URL and extracts its productId.
func ParseTabURL(text string) (TabInfo, error) {
	url := strings.TrimSpace(text)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return TabInfo{}, services.Wrap(services.ErrValidation, "clipboard", "parse address", "invalid URL "+textutil.Clip(url, 20), nil)
	}
	match := productIDPattern.FindStringSubmatch(url)
	if match == nil {
		return TabInfo{}, services.Wrap(services.ErrNotFound, "clipboard", "parse address", "no SPU in URL "+textutil.Clip(url, 50), nil)
	}
	return TabInfo{SPU: match[1], URL: url}, nil
}
