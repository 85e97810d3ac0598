package window

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeDesktopAPI struct {
	pids      []int
	findErr   error
	names     map[int]string
	titles    map[int]string
	active    string
	queried   string
	activated []int
	maximized []int
}

func (f *fakeDesktopAPI) FindIDs(process string) ([]int, error) {
	f.queried = process
	return f.pids, f.findErr
}

func (f *fakeDesktopAPI) ProcessName(pid int) (string, error) {
	name, ok := f.names[pid]
	if !ok {
		return "", errors.New("no such process")
	}
	return name, nil
}

func (f *fakeDesktopAPI) Title(pid int) string { return f.titles[pid] }

func (f *fakeDesktopAPI) ActiveTitle() string { return f.active }

func (f *fakeDesktopAPI) Activate(pid int) error {
	f.activated = append(f.activated, pid)
	return nil
}

func (f *fakeDesktopAPI) Maximize(pid int) { f.maximized = append(f.maximized, pid) }

func TestDesktopList(t *testing.T) {
	api := &fakeDesktopAPI{
		pids:   []int{10, 11, 12, 13},
		names:  map[int]string{10: "chrome.exe", 11: "chrome.exe", 12: "Google Chrome Helper", 13: "chrome.exe"},
		titles: map[int]string{10: "Inbox - Google Chrome", 11: "", 12: "Edit product", 13: "Untitled"},
	}
	d := NewDesktop(" chrome ", withDesktopAPI(api))

	got, err := d.List(context.Background(), "google chrome")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []Window{
		{ID: "10/Inbox - Google Chrome", Title: "Inbox - Google Chrome"},
		{ID: "12/Edit product", Title: "Edit product"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected windows:\n got %+v\nwant %+v", got, want)
	}
	if api.queried != "chrome" {
		t.Fatalf("expected trimmed process name, got %q", api.queried)
	}

	all, err := d.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected every titled window without a keyword, got %+v", all)
	}
}

func TestDesktopListFailure(t *testing.T) {
	api := &fakeDesktopAPI{findErr: errors.New("ps denied")}
	_, err := NewDesktop("chrome", withDesktopAPI(api)).List(context.Background(), "")
	if err == nil || errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected a listing error, got %v", err)
	}
}

func TestDesktopWindowControl(t *testing.T) {
	api := &fakeDesktopAPI{active: "  Edit product - Google Chrome "}
	d := NewDesktop("chrome", withDesktopAPI(api))
	ctx := context.Background()
	win := Window{ID: "42/Edit product/variant", Title: "Edit product/variant"}

	if err := d.Activate(ctx, win); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if err := d.Maximize(ctx, win); err != nil {
		t.Fatalf("Maximize: %v", err)
	}
	if !reflect.DeepEqual(api.activated, []int{42}) || !reflect.DeepEqual(api.maximized, []int{42}) {
		t.Fatalf("unexpected pids: activated %v maximized %v", api.activated, api.maximized)
	}
	if err := d.Rename(ctx, win, "x"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected rename to be unsupported, got %v", err)
	}
	if err := d.Activate(ctx, Window{ID: "0x1"}); err == nil {
		t.Fatal("expected an error for an id without a pid")
	}

	title, err := d.ActiveTitle(ctx)
	if err != nil || title != "Edit product - Google Chrome" {
		t.Fatalf("ActiveTitle = %q, %v", title, err)
	}
}

func TestDesktopLocatesNewWindow(t *testing.T) {
	api := &fakeDesktopAPI{
		pids:   []int{10},
		titles: map[int]string{10: "Inbox - Google Chrome"},
	}
	launcher := &fakeLauncher{}
	sleeper := &sleepRecorder{}
	d := NewDesktop("chrome", withDesktopAPI(api))
	l := NewLocator(d, launcher, "Google Chrome", testTiming(), nil, WithSleeper(sleeper.sleep))

	// The launch replaces the front title of the existing process.
	launcher.onLaunch = func() { api.titles[10] = "Edit 900 - Google Chrome" }

	win, err := l.LaunchAndLocate(context.Background(), []string{"http://edit/900"}, "b1")
	if err != nil {
		t.Fatalf("LaunchAndLocate: %v", err)
	}
	if win.ID != "10/Edit 900 - Google Chrome" {
		t.Fatalf("unexpected window %+v", win)
	}
	if !reflect.DeepEqual(api.activated, []int{10}) {
		t.Fatalf("expected the located window to be activated, got %v", api.activated)
	}
}

func TestDetect(t *testing.T) {
	found := func(string) (string, error) { return "/usr/bin/wmctrl", nil }
	missing := func(string) (string, error) { return "", errors.New("not found") }

	cases := []struct {
		goos     string
		display  string
		lookPath func(string) (string, error)
		want     string
	}{
		{"linux", ":0", found, "*window.WMCtrl"},
		{"linux", "", found, "window.Noop"},
		{"linux", ":0", missing, "window.Noop"},
		{"windows", "", missing, "*window.Desktop"},
		{"darwin", "", missing, "*window.Desktop"},
		{"freebsd", ":0", found, "window.Noop"},
	}
	for _, tc := range cases {
		got := reflect.TypeOf(detect(tc.goos, tc.display, tc.lookPath, "chrome")).String()
		if got != tc.want {
			t.Fatalf("detect(%s, %q) = %s, want %s", tc.goos, tc.display, got, tc.want)
		}
	}
}

type scriptedExecutor struct {
	outputs map[string]string
}

func (s scriptedExecutor) Output(_ context.Context, binary string, _ []string) (string, error) {
	out, ok := s.outputs[binary]
	if !ok {
		return "", errors.New(binary + ": not installed")
	}
	return out, nil
}

func TestWMCtrlActiveTitle(t *testing.T) {
	exec := scriptedExecutor{outputs: map[string]string{
		"xprop":  "_NET_ACTIVE_WINDOW(WINDOW): window id # 0x3c00007\n",
		"wmctrl": "0x01e00003  0 host Terminal\n0x03c00007  0 host Edit 900 - Google Chrome\n",
	}}
	title, err := NewWMCtrl(WithExecutor(exec)).ActiveTitle(context.Background())
	if err != nil {
		t.Fatalf("ActiveTitle: %v", err)
	}
	if title != "Edit 900 - Google Chrome" {
		t.Fatalf("unexpected title %q", title)
	}

	exec.outputs["xprop"] = "_NET_ACTIVE_WINDOW(WINDOW): window id # 0x0\n"
	if title, err := NewWMCtrl(WithExecutor(exec)).ActiveTitle(context.Background()); err != nil || title != "" {
		t.Fatalf("expected no title without a focused window, got %q, %v", title, err)
	}

	delete(exec.outputs, "xprop")
	if _, err := NewWMCtrl(WithExecutor(exec)).ActiveTitle(context.Background()); err == nil {
		t.Fatal("expected an error without xprop")
	}
}

func TestNoopActiveTitle(t *testing.T) {
	if _, err := (Noop{}).ActiveTitle(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
