package state

import (
	"fmt"
	"strings"

	"github.com/nhath/ducky/internal/config"
	"github.com/nhath/ducky/internal/db"
)

type action int

const (
	actQuit action = iota
	actHelp
	actNextPanel
	actPrevPanel
	actUp
	actDown
	actSelect
	actImport
	actOpen
	actNewMemory
	actDisconnect
	actRefresh
	actFocusDatabases
	actFocusTables
	actFocusContent
	actDropTable
	actPrevColumn
	actNextColumn
	actSortAsc
	actSortDesc
	actClearSort
)

// Options configures a Controller
type Options struct {
	BrowseDir   string
	ShowHidden  bool
	PreviewRows int
	Keys        config.KeyMap
}

// Controller is the application state machine. It is not safe for
// concurrent use: keys and events must be fed from a single goroutine, and
// the Commands it returns are executed elsewhere, their results coming back
// through HandleEvent.
type Controller struct {
	opts   Options
	keys   map[string]action
	panels *Panels
	modals ModalStack
	tokens Tokens

	conns  []db.Connection
	active string
	status Status

	preview      *db.QueryResult
	previewTable string
	sort         []db.SortKey
	sortColumn   int

	opening      map[Token]struct{}
	closing      map[Token]string
	dropping     map[Token]struct{}
	dbsToken     Token
	tablesToken  Token
	previewToken Token
	inFlight     map[Token]struct{}
}

// Snapshot is a read-only copy of the state for rendering
type Snapshot struct {
	Focus        PanelID
	Panels       [panelCount]Panel
	Connections  []db.Connection
	Active       string
	Status       Status
	Modals       []ModalView
	Preview      *db.QueryResult
	PreviewTable string
	Sort         []db.SortKey
	SortColumn   int
	Busy         bool
}

// Panel returns the snapshot of panel id
func (s Snapshot) Panel(id PanelID) Panel {
	return s.Panels[id]
}

// TopModal returns the view of the modal receiving input, nil if none
func (s Snapshot) TopModal() ModalView {
	if len(s.Modals) == 0 {
		return nil
	}
	return s.Modals[len(s.Modals)-1]
}

// NewController returns a controller with no connections
func NewController(opts Options) *Controller {
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = 100
	}
	if len(opts.Keys.Quit) == 0 {
		opts.Keys = config.DefaultKeyMap()
	}
	return &Controller{
		opts:     opts,
		keys:     bindKeys(opts.Keys),
		panels:   NewPanels(),
		opening:  make(map[Token]struct{}),
		closing:  make(map[Token]string),
		dropping: make(map[Token]struct{}),
		inFlight: make(map[Token]struct{}),
	}
}

func bindKeys(km config.KeyMap) map[string]action {
	keys := make(map[string]action)
	bind := func(a action, ks []string) {
		for _, k := range ks {
			if _, taken := keys[k]; !taken {
				keys[k] = a
			}
		}
	}
	bind(actQuit, km.Quit)
	bind(actHelp, km.Help)
	bind(actNextPanel, km.NextPanel)
	bind(actPrevPanel, km.PrevPanel)
	bind(actUp, km.MoveUp)
	bind(actDown, km.MoveDown)
	bind(actSelect, km.Select)
	bind(actImport, km.Import)
	bind(actOpen, km.Open)
	bind(actNewMemory, km.NewMemory)
	bind(actDisconnect, km.Disconnect)
	bind(actRefresh, km.Refresh)
	bind(actFocusDatabases, km.FocusDatabases)
	bind(actFocusTables, km.FocusTables)
	bind(actFocusContent, km.FocusContent)
	bind(actDropTable, km.DropTable)
	bind(actPrevColumn, km.PrevColumn)
	bind(actNextColumn, km.NextColumn)
	bind(actSortAsc, km.SortAsc)
	bind(actSortDesc, km.SortDesc)
	bind(actClearSort, km.ClearSort)
	return keys
}

// Start returns the commands that load the initial connection set
func (c *Controller) Start() []Command {
	return c.track([]Command{c.listDatabases()})
}

// Active returns the active connection id, empty if none
func (c *Controller) Active() string {
	return c.active
}

// Modals returns the modal stack
func (c *Controller) Modals() *ModalStack {
	return &c.modals
}

// Busy reports whether any command is awaiting its result
func (c *Controller) Busy() bool {
	return len(c.inFlight) > 0
}

// Snapshot returns the render state
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Focus:        c.panels.Focus(),
		Connections:  append([]db.Connection(nil), c.conns...),
		Active:       c.active,
		Status:       c.status,
		Modals:       c.modals.Views(),
		Preview:      c.preview,
		PreviewTable: c.previewTable,
		Sort:         append([]db.SortKey(nil), c.sort...),
		SortColumn:   c.sortColumn,
		Busy:         c.Busy(),
	}
	for i := range s.Panels {
		s.Panels[i] = c.panels.Panel(PanelID(i))
	}
	return s
}

// HandleKey routes a key to the top modal or, with no modal open, to the
// global bindings and then the focused panel. ctrl+c always quits.
func (c *Controller) HandleKey(key string) []Command {
	if key == "ctrl+c" {
		return []Command{Quit{}}
	}

	if top := c.modals.Top(); top != nil {
		out := top.HandleKey(key)
		if out.Kind != Unhandled {
			return c.apply(top, out)
		}
		if act, ok := c.keys[key]; ok {
			return c.track(c.panelAction(act))
		}
		return nil
	}

	act, ok := c.keys[key]
	if !ok {
		return nil
	}

	var cmds []Command
	switch act {
	case actQuit:
		return []Command{Quit{}}
	case actHelp:
		c.push(&HelpOverlay{})
	case actNextPanel:
		c.panels.CycleFocus(1)
	case actPrevPanel:
		c.panels.CycleFocus(-1)
	case actFocusDatabases:
		c.panels.SetFocus(DatabasesPanel)
	case actFocusTables:
		c.panels.SetFocus(TablesPanel)
	case actFocusContent:
		c.panels.SetFocus(ContentPanel)
	case actDropTable:
		c.confirmDropTable()
	case actPrevColumn, actNextColumn, actSortAsc, actSortDesc, actClearSort:
		cmds = c.sortAction(act)
	case actImport:
		cmds = c.startImport()
	case actOpen:
		b, cmd := NewFileBrowser(c.opts.BrowseDir, OpenDatabase, c.opts.ShowHidden, &c.tokens)
		if c.push(b) {
			cmds = []Command{cmd}
		}
	case actNewMemory:
		cmds = []Command{c.openConnection(db.ConnectSpec{InMemory: true})}
	case actDisconnect:
		cmds = c.confirmDisconnect()
	case actRefresh:
		cmds = []Command{c.listDatabases()}
		if cmd := c.refreshTables(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	default:
		cmds = c.panelAction(act)
	}
	return c.track(cmds)
}

// panelAction applies a navigation key to the focused panel
func (c *Controller) panelAction(act action) []Command {
	focus := c.panels.Focus()
	switch act {
	case actUp:
		c.panels.MoveSelection(focus, -1)
	case actDown:
		c.panels.MoveSelection(focus, 1)
	case actSelect:
		return c.selectItem(focus)
	}
	return nil
}

func (c *Controller) selectItem(id PanelID) []Command {
	panel := c.panels.Panel(id)
	if panel.Selected == NoSelection {
		return nil
	}

	switch id {
	case DatabasesPanel:
		if panel.Selected >= len(c.conns) {
			c.setError(&InternalInvariantError{What: fmt.Sprintf("database selection %d out of sync with %d connections", panel.Selected, len(c.conns))})
			return nil
		}
		conn := c.conns[panel.Selected]
		c.setInfo("Active database: " + conn.Label)
		return c.activate(conn.ID)

	case TablesPanel:
		table, _ := panel.SelectedItem()
		if table != c.previewTable {
			c.sort = nil
			c.sortColumn = 0
		}
		return []Command{c.loadPreview(table)}
	}
	return nil
}

func (c *Controller) loadPreview(table string) Command {
	c.previewToken = c.tokens.Next()
	c.setInfo("Loading " + table + "...")
	return PreviewTable{
		Token:  c.previewToken,
		ConnID: c.active,
		Table:  table,
		Limit:  c.opts.PreviewRows,
		Sort:   append([]db.SortKey(nil), c.sort...),
	}
}

// sortAction moves the column cursor of the preview or changes its sort
// chain and reloads it
func (c *Controller) sortAction(act action) []Command {
	if c.panels.Focus() != ContentPanel || c.preview == nil || len(c.preview.Columns) == 0 {
		return nil
	}
	cols := c.preview.Columns

	switch act {
	case actPrevColumn:
		c.sortColumn = clamp(c.sortColumn-1, 0, len(cols)-1)
		return nil
	case actNextColumn:
		c.sortColumn = clamp(c.sortColumn+1, 0, len(cols)-1)
		return nil
	case actSortAsc:
		c.sort = toggleSort(c.sort, cols[c.sortColumn], false)
	case actSortDesc:
		c.sort = toggleSort(c.sort, cols[c.sortColumn], true)
	case actClearSort:
		if len(c.sort) == 0 {
			return nil
		}
		c.sort = nil
	}
	return []Command{c.loadPreview(c.previewTable)}
}

// toggleSort appends column to the chain, flips its direction, or removes it
// when it is already sorted in direction desc
func toggleSort(keys []db.SortKey, column string, desc bool) []db.SortKey {
	out := append([]db.SortKey(nil), keys...)
	for i, k := range out {
		if k.Column != column {
			continue
		}
		if k.Desc == desc {
			return append(out[:i], out[i+1:]...)
		}
		out[i].Desc = desc
		return out
	}
	return append(out, db.SortKey{Column: column, Desc: desc})
}

func (c *Controller) activeConn() (db.Connection, bool) {
	for _, conn := range c.conns {
		if conn.ID == c.active {
			return conn, true
		}
	}
	return db.Connection{}, false
}

func (c *Controller) startImport() []Command {
	conn, ok := c.activeConn()
	if !ok {
		c.setInfo("No active database. Press n for an in-memory one or o to open a file")
		return nil
	}
	w, prompt := NewImportWizard(conn, c.opts.BrowseDir, c.opts.ShowHidden, &c.tokens)
	if !c.push(w) {
		return nil
	}
	if !c.push(prompt) {
		c.modals.Pop()
	}
	return nil
}

func (c *Controller) confirmDisconnect() []Command {
	conn, ok := c.activeConn()
	if !ok {
		c.setInfo("No active database")
		return nil
	}
	c.push(NewConfirmation(ConfirmDisconnect, conn.ID, fmt.Sprintf("Disconnect %s? (y/n)", conn.Label)))
	return nil
}

func (c *Controller) confirmDropTable() {
	if c.panels.Focus() != TablesPanel {
		return
	}
	conn, connOK := c.activeConn()
	table, ok := c.panels.Panel(TablesPanel).SelectedItem()
	if !connOK || !ok {
		c.setInfo("No table selected")
		return
	}
	c.push(NewConfirmation(ConfirmDropTable, conn.ID, table, fmt.Sprintf("Drop table %s from %s? (y/n)", table, conn.Label)))
}

func (c *Controller) push(m Modal) bool {
	if err := c.modals.Push(m); err != nil {
		c.setError(err)
		return false
	}
	return true
}

// apply carries out the outcome m reported
func (c *Controller) apply(m Modal, out Outcome) []Command {
	if out.Status != nil {
		c.status = *out.Status
	}
	cmds := out.Commands

	switch out.Kind {
	case Pop:
		if c.modals.Top() != m {
			c.setError(&InternalInvariantError{What: "pop requested by a modal that is not on top"})
			return nil
		}
		cmds = append(cmds, c.pop(out.Result)...)
	case Handled:
		if out.Push != nil && !c.push(out.Push) {
			// the pushed modal would have consumed these
			cmds = nil
		}
	}
	return c.track(cmds)
}

// pop removes the top modal and hands its result to the modal below, or
// finishes the standalone action it belonged to
func (c *Controller) pop(res PopResult) []Command {
	res.From = c.modals.Pop()

	if parent, ok := c.modals.Top().(*ImportWizard); ok {
		return c.apply(parent, parent.Resume(res))
	}
	return c.finish(res)
}

func (c *Controller) finish(res PopResult) []Command {
	switch from := res.From.(type) {
	case *ImportWizard:
		if from.Phase() == Completed {
			if from.ConnID() == c.active {
				if cmd := c.refreshTables(); cmd != nil {
					return []Command{cmd}
				}
			}
			return nil
		}
		if res.Cancelled {
			c.setInfo("Import cancelled")
		}

	case *FileBrowser:
		if res.Cancelled || from.Mode() != OpenDatabase {
			return nil
		}
		return []Command{
			c.openConnection(db.ConnectSpec{Path: res.Path}),
			RememberDir{Dir: from.Dir()},
		}

	case *Confirmation:
		if !res.Confirmed {
			return nil
		}
		tok := c.tokens.Next()
		switch from.Purpose() {
		case ConfirmDisconnect:
			c.closing[tok] = from.Target()
			return []Command{CloseConnection{Token: tok, ID: from.Target()}}
		case ConfirmDropTable:
			c.dropping[tok] = struct{}{}
			c.setInfo("Dropping " + from.Target() + "...")
			return []Command{DropTable{Token: tok, ConnID: from.ConnID(), Table: from.Target()}}
		}
	}
	return nil
}

func (c *Controller) openConnection(spec db.ConnectSpec) Command {
	tok := c.tokens.Next()
	c.opening[tok] = struct{}{}
	if spec.InMemory {
		c.setInfo("Creating in-memory database...")
	} else {
		c.setInfo("Opening " + spec.Path + "...")
	}
	return OpenConnection{Token: tok, Spec: spec}
}

func (c *Controller) listDatabases() Command {
	c.dbsToken = c.tokens.Next()
	return ListDatabases{Token: c.dbsToken}
}

func (c *Controller) refreshTables() Command {
	if c.active == "" {
		return nil
	}
	c.tablesToken = c.tokens.Next()
	return ListTables{Token: c.tablesToken, ConnID: c.active}
}

// activate makes id the active connection and reloads its tables
func (c *Controller) activate(id string) []Command {
	c.active = id
	c.panels.SetItems(TablesPanel, nil)
	c.clearPreview()
	c.syncDatabases()
	if cmd := c.refreshTables(); cmd != nil {
		return []Command{cmd}
	}
	return nil
}

func (c *Controller) hasConn(id string) bool {
	for _, conn := range c.conns {
		if conn.ID == id {
			return true
		}
	}
	return false
}

func (c *Controller) deactivate() {
	c.active = ""
	c.tablesToken = 0
	c.panels.SetItems(TablesPanel, nil)
	c.clearPreview()
}

func (c *Controller) clearPreview() {
	c.preview = nil
	c.previewTable = ""
	c.previewToken = 0
	c.sort = nil
	c.sortColumn = 0
	c.panels.SetItems(ContentPanel, nil)
}

func (c *Controller) syncDatabases() {
	labels := make([]string, len(c.conns))
	selected := NoSelection
	for i, conn := range c.conns {
		labels[i] = conn.Label
		if conn.ID == c.active {
			selected = i
		}
	}
	c.panels.SetItems(DatabasesPanel, labels)
	c.panels.Select(DatabasesPanel, selected)
}

// track records the tokens of outgoing commands
func (c *Controller) track(cmds []Command) []Command {
	for _, cmd := range cmds {
		switch cmd := cmd.(type) {
		case OpenConnection:
			c.inFlight[cmd.Token] = struct{}{}
		case CloseConnection:
			c.inFlight[cmd.Token] = struct{}{}
		case ListDatabases:
			c.inFlight[cmd.Token] = struct{}{}
		case ListTables:
			c.inFlight[cmd.Token] = struct{}{}
		case ImportFile:
			c.inFlight[cmd.Token] = struct{}{}
		case PreviewTable:
			c.inFlight[cmd.Token] = struct{}{}
		case DropTable:
			c.inFlight[cmd.Token] = struct{}{}
		case ListDirectory:
			c.inFlight[cmd.Token] = struct{}{}
		case RememberDir:
			c.opts.BrowseDir = cmd.Dir
		}
	}
	return cmds
}

func (c *Controller) setInfo(text string) {
	c.status = Status{Kind: StatusInfo, Text: text}
}

func (c *Controller) setError(err error) {
	c.status = Status{Kind: StatusError, Text: err.Error()}
}

// HandleEvent applies the result of a command. Results whose token no longer
// matches the request that is waiting for them are discarded.
func (c *Controller) HandleEvent(ev Event) []Command {
	switch e := ev.(type) {
	case ConnectionOpened:
		delete(c.inFlight, e.Token)
		return c.track(c.connectionOpened(e))
	case ConnectionClosed:
		delete(c.inFlight, e.Token)
		return c.track(c.connectionClosed(e))
	case DatabasesListed:
		delete(c.inFlight, e.Token)
		return c.track(c.databasesListed(e))
	case TablesListed:
		delete(c.inFlight, e.Token)
		c.tablesListed(e)
	case PreviewLoaded:
		delete(c.inFlight, e.Token)
		c.previewLoaded(e)
	case DirectoryListed:
		delete(c.inFlight, e.Token)
		return c.directoryListed(e)
	case ImportFinished:
		delete(c.inFlight, e.Token)
		return c.importFinished(e)
	case TableDropped:
		delete(c.inFlight, e.Token)
		return c.track(c.tableDropped(e))
	}
	return nil
}

func (c *Controller) connectionOpened(e ConnectionOpened) []Command {
	if _, ok := c.opening[e.Token]; !ok {
		return nil
	}
	delete(c.opening, e.Token)

	if e.Err != nil {
		c.setError(NewEngineError("open database", e.Err))
		return nil
	}

	// A listing issued before this change no longer describes the set
	c.dbsToken = 0
	if !c.hasConn(e.Conn.ID) {
		c.conns = append(c.conns, e.Conn)
	}
	c.setInfo("Opened " + e.Conn.Label)
	return c.activate(e.Conn.ID)
}

func (c *Controller) connectionClosed(e ConnectionClosed) []Command {
	id, ok := c.closing[e.Token]
	if !ok {
		return nil
	}
	delete(c.closing, e.Token)

	if e.Err != nil {
		c.setError(NewEngineError("disconnect", e.Err))
		return nil
	}

	c.dbsToken = 0
	label := id
	for i, conn := range c.conns {
		if conn.ID == id {
			label = conn.Label
			c.conns = append(c.conns[:i], c.conns[i+1:]...)
			break
		}
	}
	c.setInfo("Disconnected " + label)

	if c.active != id {
		c.syncDatabases()
		return nil
	}
	c.deactivate()
	if len(c.conns) > 0 {
		return c.activate(c.conns[0].ID)
	}
	c.syncDatabases()
	return nil
}

func (c *Controller) databasesListed(e DatabasesListed) []Command {
	if e.Token != c.dbsToken {
		return nil
	}
	c.dbsToken = 0

	if e.Err != nil {
		c.setError(NewEngineError("list databases", e.Err))
		return nil
	}

	c.conns = append([]db.Connection(nil), e.Conns...)
	if _, ok := c.activeConn(); ok {
		c.syncDatabases()
		return nil
	}

	c.deactivate()
	if len(c.conns) > 0 {
		return c.activate(c.conns[0].ID)
	}
	c.syncDatabases()
	return nil
}

func (c *Controller) tablesListed(e TablesListed) {
	if e.Token != c.tablesToken || e.ConnID != c.active {
		return
	}
	c.tablesToken = 0

	if e.Err != nil {
		c.setError(NewEngineError("list tables", e.Err))
		return
	}
	c.panels.SetItems(TablesPanel, e.Tables)
}

func (c *Controller) previewLoaded(e PreviewLoaded) {
	if e.Token != c.previewToken {
		return
	}
	c.previewToken = 0

	if e.Err != nil {
		c.setError(NewEngineError("preview "+e.Table, e.Err))
		return
	}

	c.preview = e.Result
	c.previewTable = e.Table
	rows := make([]string, 0, len(e.Result.Rows))
	for _, row := range e.Result.Rows {
		rows = append(rows, strings.Join(row, " | "))
	}
	c.panels.SetItems(ContentPanel, rows)
	c.sortColumn = clamp(c.sortColumn, 0, max(0, len(e.Result.Columns)-1))
	c.setInfo(fmt.Sprintf("%s: %d rows", e.Table, e.Result.RowCount))
}

func (c *Controller) tableDropped(e TableDropped) []Command {
	if _, ok := c.dropping[e.Token]; !ok {
		return nil
	}
	delete(c.dropping, e.Token)

	if e.Err != nil {
		c.setError(NewEngineError("drop "+e.Table, e.Err))
		return nil
	}
	c.setInfo("Dropped " + e.Table)

	if e.ConnID != c.active {
		return nil
	}
	if c.previewTable == e.Table {
		c.clearPreview()
	}
	if cmd := c.refreshTables(); cmd != nil {
		return []Command{cmd}
	}
	return nil
}

func (c *Controller) directoryListed(e DirectoryListed) []Command {
	for _, m := range c.modals.modals {
		b, ok := m.(*FileBrowser)
		if !ok || b.Pending() != e.Token {
			continue
		}
		if out, ok := b.HandleListing(e); ok {
			return c.apply(b, out)
		}
	}
	return nil
}

func (c *Controller) importFinished(e ImportFinished) []Command {
	for _, m := range c.modals.modals {
		w, ok := m.(*ImportWizard)
		if !ok || w.Pending() != e.Token {
			continue
		}
		if out, ok := w.HandleImport(e); ok {
			return c.apply(w, out)
		}
	}

	// The workflow was cancelled; only the catalog is refreshed
	if e.Err == nil && e.ConnID == c.active {
		if cmd := c.refreshTables(); cmd != nil {
			return c.track([]Command{cmd})
		}
	}
	return nil
}
