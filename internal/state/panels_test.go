package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanels_CycleFocusWraps(t *testing.T) {
	for n := 0; n < 20; n++ {
		a, b := NewPanels(), NewPanels()
		for i := 0; i < n; i++ {
			a.CycleFocus(1)
		}
		for i := 0; i < n%3; i++ {
			b.CycleFocus(1)
		}
		assert.Equal(t, b.Focus(), a.Focus(), "after %d cycles", n)
	}

	p := NewPanels()
	p.CycleFocus(-1)
	assert.Equal(t, ContentPanel, p.Focus())
	p.CycleFocus(-1)
	assert.Equal(t, TablesPanel, p.Focus())
}

func TestPanels_MoveSelectionClamps(t *testing.T) {
	p := NewPanels()
	p.MoveSelection(TablesPanel, 1)
	assert.Equal(t, NoSelection, p.Panel(TablesPanel).Selected)

	p.SetItems(TablesPanel, []string{"a", "b", "c"})
	p.MoveSelection(TablesPanel, -1)
	assert.Equal(t, 0, p.Panel(TablesPanel).Selected)
	p.MoveSelection(TablesPanel, 10)
	assert.Equal(t, 2, p.Panel(TablesPanel).Selected)
	p.MoveSelection(TablesPanel, 1)
	assert.Equal(t, 2, p.Panel(TablesPanel).Selected)
}

func TestPanels_SetItems(t *testing.T) {
	tests := []struct {
		name     string
		before   []string
		selected int
		after    []string
		want     int
	}{
		{"empty stays none", nil, NoSelection, nil, NoSelection},
		{"first items select the first", nil, NoSelection, []string{"a"}, 0},
		{"valid index is kept", []string{"a", "b", "c"}, 1, []string{"x", "y"}, 1},
		{"shrunk list clamps to last", []string{"a", "b", "c"}, 2, []string{"x"}, 0},
		{"emptied list clears", []string{"a"}, 0, nil, NoSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPanels()
			p.SetItems(DatabasesPanel, tt.before)
			if tt.selected != NoSelection {
				p.Select(DatabasesPanel, tt.selected)
			}
			p.SetItems(DatabasesPanel, tt.after)

			got := p.Panel(DatabasesPanel)
			assert.Equal(t, tt.want, got.Selected)
			if len(got.Items) > 0 {
				assert.GreaterOrEqual(t, got.Selected, 0)
				assert.Less(t, got.Selected, len(got.Items))
			}
		})
	}
}

func TestPanels_SelectRejectsOutOfRange(t *testing.T) {
	p := NewPanels()
	p.SetItems(ContentPanel, []string{"row"})
	assert.False(t, p.Select(ContentPanel, 1))
	assert.False(t, p.Select(ContentPanel, -1))
	assert.True(t, p.Select(ContentPanel, 0))

	item, ok := p.Panel(ContentPanel).SelectedItem()
	assert.True(t, ok)
	assert.Equal(t, "row", item)
}
