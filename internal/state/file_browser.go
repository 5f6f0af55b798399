package state

import (
	"unicode"
	"unicode/utf8"

	"github.com/nhath/ducky/internal/fs"
	"github.com/sahilm/fuzzy"
)

// BrowseMode decides what choosing a file means
type BrowseMode int

const (
	// SelectFile returns the chosen path to the workflow below
	SelectFile BrowseMode = iota
	// OpenDatabase opens the chosen file as a connection
	OpenDatabase
)

// FileBrowser is a modal directory listing with a cursor. Listings are
// requested with ListDirectory and applied by HandleListing; until a request
// succeeds the browser stays on the last good directory.
type FileBrowser struct {
	mode       BrowseMode
	tokens     *Tokens
	dir        string
	entries    []fs.Entry
	visible    []int
	matches    [][]int
	selected   int
	showHidden bool

	filter    []rune
	filtering bool

	pending    Token
	pendingDir string
}

// BrowserView is the render state of a FileBrowser
type BrowserView struct {
	Mode       BrowseMode
	Dir        string
	Entries    []fs.Entry
	Matches    [][]int // matched rune indexes per entry when filtering
	Selected   int
	ShowHidden bool
	Filter     string
	Filtering  bool
	Loading    bool
}

// NewFileBrowser opens a browser on dir and returns the initial listing request
func NewFileBrowser(dir string, mode BrowseMode, showHidden bool, tokens *Tokens) (*FileBrowser, Command) {
	b := &FileBrowser{
		mode:       mode,
		tokens:     tokens,
		selected:   NoSelection,
		showHidden: showHidden,
	}
	return b, b.request(dir)
}

func (*FileBrowser) isModal() {}

// Mode returns the browse mode
func (b *FileBrowser) Mode() BrowseMode {
	return b.mode
}

// Dir returns the last successfully listed directory
func (b *FileBrowser) Dir() string {
	return b.dir
}

// Pending returns the token of the outstanding listing, zero if none
func (b *FileBrowser) Pending() Token {
	return b.pending
}

// CurrentListing returns the entries shown, filtered if a filter is active
func (b *FileBrowser) CurrentListing() []fs.Entry {
	out := make([]fs.Entry, len(b.visible))
	for i, idx := range b.visible {
		out[i] = b.entries[idx]
	}
	return out
}

// Selected returns the highlighted entry
func (b *FileBrowser) Selected() (fs.Entry, bool) {
	if b.selected < 0 || b.selected >= len(b.visible) {
		return fs.Entry{}, false
	}
	return b.entries[b.visible[b.selected]], true
}

func (b *FileBrowser) request(dir string) Command {
	b.pending = b.tokens.Next()
	b.pendingDir = dir
	return ListDirectory{Token: b.pending, Dir: dir, ShowHidden: b.showHidden}
}

// HandleKey moves the cursor, navigates and filters. Esc always cancels; q
// cancels unless it is being typed into the filter.
func (b *FileBrowser) HandleKey(key string) Outcome {
	switch key {
	case "esc":
		return cancelled()
	case "up", "ctrl+p":
		b.move(-1)
		return handled()
	case "down", "ctrl+n":
		b.move(1)
		return handled()
	case "enter":
		return b.activate()
	}

	if b.filtering {
		return b.handleFilterKey(key)
	}

	switch key {
	case "q":
		return cancelled()
	case "k":
		b.move(-1)
	case "j":
		b.move(1)
	case "home", "g":
		b.move(-len(b.visible))
	case "end", "G":
		b.move(len(b.visible))
	case "backspace", "h", "left":
		if b.dir == "" {
			return handled()
		}
		return handled(b.request(fs.Parent(b.dir)))
	case "l", "right":
		if e, ok := b.Selected(); ok && e.IsDir {
			return handled(b.request(e.Path))
		}
	case ".":
		b.showHidden = !b.showHidden
		return handled(b.refresh())
	case "r":
		return handled(b.refresh())
	case "/":
		b.filtering = true
	}
	return handled()
}

func (b *FileBrowser) handleFilterKey(key string) Outcome {
	switch key {
	case "backspace":
		if len(b.filter) == 0 {
			b.filtering = false
			return handled()
		}
		b.filter = b.filter[:len(b.filter)-1]
	case "ctrl+u":
		b.filter = nil
	case "space":
		b.filter = append(b.filter, ' ')
	default:
		r, size := utf8.DecodeRuneInString(key)
		if size == 0 || size != len(key) || !unicode.IsPrint(r) {
			return handled()
		}
		b.filter = append(b.filter, r)
	}
	b.applyFilter()
	return handled()
}

func (b *FileBrowser) refresh() Command {
	dir := b.dir
	if dir == "" {
		dir = b.pendingDir
	}
	return b.request(dir)
}

func (b *FileBrowser) activate() Outcome {
	e, ok := b.Selected()
	if !ok {
		return handled()
	}
	if e.IsDir {
		return handled(b.request(e.Path))
	}
	return popWith(PopResult{Path: e.Path})
}

func (b *FileBrowser) move(delta int) {
	if len(b.visible) == 0 {
		b.selected = NoSelection
		return
	}
	b.selected = clamp(b.selected+delta, 0, len(b.visible)-1)
}

// HandleListing applies a listing result. It reports false when the result
// answers a superseded request.
func (b *FileBrowser) HandleListing(ev DirectoryListed) (Outcome, bool) {
	if ev.Token == 0 || ev.Token != b.pending {
		return Outcome{}, false
	}
	b.pending = 0

	if ev.Err != nil {
		out := handled()
		out.Status = errorStatus(&FilesystemError{Path: ev.Dir, Err: ev.Err})
		return out, true
	}

	var keep string
	if ev.Dir == b.dir {
		if e, ok := b.Selected(); ok {
			keep = e.Name
		}
	}

	b.dir = ev.Dir
	b.entries = ev.Entries
	b.filter = nil
	b.filtering = false
	b.applyFilter()

	b.selected = NoSelection
	if len(b.visible) > 0 {
		b.selected = 0
	}
	if keep != "" {
		for i, idx := range b.visible {
			if b.entries[idx].Name == keep {
				b.selected = i
				break
			}
		}
	}
	return handled(), true
}

type entryNames []fs.Entry

func (e entryNames) String(i int) string { return e[i].Name }
func (e entryNames) Len() int            { return len(e) }

func (b *FileBrowser) applyFilter() {
	b.visible = b.visible[:0]
	b.matches = nil

	if len(b.filter) == 0 {
		for i := range b.entries {
			b.visible = append(b.visible, i)
		}
	} else {
		for _, m := range fuzzy.FindFrom(string(b.filter), entryNames(b.entries)) {
			b.visible = append(b.visible, m.Index)
			b.matches = append(b.matches, m.MatchedIndexes)
		}
	}

	switch {
	case len(b.visible) == 0:
		b.selected = NoSelection
	case b.selected < 0 || b.selected >= len(b.visible):
		b.selected = 0
	}
}

// View returns the render state
func (b *FileBrowser) View() ModalView {
	return BrowserView{
		Mode:       b.mode,
		Dir:        b.dir,
		Entries:    b.CurrentListing(),
		Matches:    b.matches,
		Selected:   b.selected,
		ShowHidden: b.showHidden,
		Filter:     string(b.filter),
		Filtering:  b.filtering,
		Loading:    b.pending != 0,
	}
}
