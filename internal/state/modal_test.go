package state

import (
	"errors"
	"testing"

	"github.com/nhath/ducky/internal/db"
	"github.com/nhath/ducky/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModalStack_Overflow(t *testing.T) {
	var s ModalStack
	for i := 0; i < MaxModalDepth; i++ {
		require.NoError(t, s.Push(&HelpOverlay{}))
	}

	err := s.Push(&HelpOverlay{})
	var ie *InternalInvariantError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, MaxModalDepth, s.Len())

	for i := 0; i < MaxModalDepth; i++ {
		assert.NotNil(t, s.Pop())
	}
	assert.Nil(t, s.Pop())
	assert.Nil(t, s.Top())
	assert.True(t, s.IsEmpty())
}

func TestValidateTableName(t *testing.T) {
	for _, name := range []string{"sales", "_tmp", "Sales_2024"} {
		assert.NoError(t, ValidateTableName(name), name)
	}
	for _, name := range []string{"", "2024", "my table", "drop;", "naïve"} {
		var ve *ValidationError
		assert.ErrorAs(t, ValidateTableName(name), &ve, name)
	}
}

func TestTextPrompt(t *testing.T) {
	p := NewTextPrompt("Import", "Table name", ValidateTableName)

	out := p.HandleKey("enter")
	assert.Equal(t, Handled, out.Kind)
	assert.Error(t, p.Err())
	assert.NotEmpty(t, p.View().(PromptView).Err)

	for _, k := range []string{"q", "x", "backspace", "h", "space", "ctrl+u", "q", "1"} {
		assert.Equal(t, Handled, p.HandleKey(k).Kind)
	}
	assert.Equal(t, "q1", p.Value())
	assert.NoError(t, p.Err())

	out = p.HandleKey("enter")
	assert.Equal(t, Pop, out.Kind)
	assert.Equal(t, "q1", out.Result.Text)

	assert.True(t, p.HandleKey("esc").Result.Cancelled)
}

func listing(dir string, names ...string) []fs.Entry {
	entries := []fs.Entry{{Name: fs.ParentName, Path: "/", IsDir: true}}
	for _, n := range names {
		isDir := n[len(n)-1] == '/'
		if isDir {
			n = n[:len(n)-1]
		}
		entries = append(entries, fs.Entry{Name: n, Path: dir + "/" + n, IsDir: isDir})
	}
	return entries
}

func TestFileBrowser_Navigation(t *testing.T) {
	var tokens Tokens
	b, cmd := NewFileBrowser("/data", SelectFile, false, &tokens)
	first := cmd.(ListDirectory)
	assert.Equal(t, "/data", first.Dir)

	_, ok := b.HandleListing(DirectoryListed{Token: first.Token, Dir: "/data", Entries: listing("/data", "nested/", "data.csv")})
	require.True(t, ok)
	assert.Len(t, b.CurrentListing(), 3)
	e, _ := b.Selected()
	assert.True(t, e.IsParent())

	b.HandleKey("down")
	out := b.HandleKey("enter")
	assert.Equal(t, Handled, out.Kind)
	next := out.Commands[0].(ListDirectory)
	assert.Equal(t, "/data/nested", next.Dir)
	assert.Equal(t, "/data", b.Dir(), "stays until the listing arrives")

	_, ok = b.HandleListing(DirectoryListed{Token: next.Token, Dir: "/data/nested", Entries: listing("/data/nested")})
	require.True(t, ok)
	assert.Equal(t, "/data/nested", b.Dir())
	sel, _ := b.Selected()
	assert.True(t, sel.IsParent())

	out = b.HandleKey("backspace")
	assert.Equal(t, "/data", out.Commands[0].(ListDirectory).Dir)
}

func TestFileBrowser_SelectFilePops(t *testing.T) {
	var tokens Tokens
	b, cmd := NewFileBrowser("/data", SelectFile, false, &tokens)
	b.HandleListing(DirectoryListed{Token: cmd.(ListDirectory).Token, Dir: "/data", Entries: listing("/data", "data.csv")})

	b.HandleKey("j")
	out := b.HandleKey("enter")
	assert.Equal(t, Pop, out.Kind)
	assert.Equal(t, "/data/data.csv", out.Result.Path)
}

func TestFileBrowser_ListingFailureKeepsLastDirectory(t *testing.T) {
	var tokens Tokens
	b, cmd := NewFileBrowser("/data", SelectFile, false, &tokens)
	b.HandleListing(DirectoryListed{Token: cmd.(ListDirectory).Token, Dir: "/data", Entries: listing("/data", "gone/")})

	b.HandleKey("down")
	req := b.HandleKey("enter").Commands[0].(ListDirectory)
	out, ok := b.HandleListing(DirectoryListed{Token: req.Token, Dir: req.Dir, Err: errors.New("permission denied")})
	require.True(t, ok)
	require.NotNil(t, out.Status)
	assert.Equal(t, StatusError, out.Status.Kind)
	assert.Contains(t, out.Status.Text, "permission denied")
	assert.Equal(t, "/data", b.Dir())
	assert.Len(t, b.CurrentListing(), 2)
}

func TestFileBrowser_StaleListingIgnored(t *testing.T) {
	var tokens Tokens
	b, cmd := NewFileBrowser("/data", SelectFile, false, &tokens)
	stale := cmd.(ListDirectory)
	b.HandleKey("r")

	_, ok := b.HandleListing(DirectoryListed{Token: stale.Token, Dir: "/data", Entries: listing("/data", "a.csv")})
	assert.False(t, ok)
	assert.Empty(t, b.CurrentListing())
}

func TestFileBrowser_FilterTypesQ(t *testing.T) {
	var tokens Tokens
	b, cmd := NewFileBrowser("/data", SelectFile, false, &tokens)
	b.HandleListing(DirectoryListed{Token: cmd.(ListDirectory).Token, Dir: "/data", Entries: listing("/data", "quarterly.csv", "sales.csv")})

	b.HandleKey("/")
	assert.Equal(t, Handled, b.HandleKey("q").Kind)
	b.HandleKey("t")

	view := b.View().(BrowserView)
	assert.True(t, view.Filtering)
	assert.Equal(t, "qt", view.Filter)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, "quarterly.csv", view.Entries[0].Name)
	assert.NotEmpty(t, view.Matches[0])

	out := b.HandleKey("enter")
	assert.Equal(t, "/data/quarterly.csv", out.Result.Path)
}

func TestFileBrowser_ToggleHidden(t *testing.T) {
	var tokens Tokens
	b, _ := NewFileBrowser("/data", OpenDatabase, false, &tokens)
	out := b.HandleKey(".")
	assert.True(t, out.Commands[0].(ListDirectory).ShowHidden)
	assert.True(t, b.View().(BrowserView).ShowHidden)
}

func TestConfirmation(t *testing.T) {
	c := NewConfirmation(ConfirmDisconnect, "db1", "db1", "Disconnect memory? (y/n)")
	assert.Equal(t, Handled, c.HandleKey("x").Kind)
	assert.True(t, c.HandleKey("y").Result.Confirmed)
	assert.True(t, c.HandleKey("q").Result.Cancelled)
}

func TestNewEngineError_Classifies(t *testing.T) {
	assert.Equal(t, CategoryUnsupported, NewEngineError("import", &db.UnsupportedFormatError{Path: "x.xlsx"}).Category)
	assert.Equal(t, CategoryConnection, NewEngineError("open", db.WrapConnectionError(errors.New("locked"))).Category)
	assert.Equal(t, CategoryQuery, NewEngineError("import", db.WrapQueryError(errors.New("exists"))).Category)
	assert.Equal(t, CategoryUnknown, NewEngineError("import", errors.New("boom")).Category)
}
