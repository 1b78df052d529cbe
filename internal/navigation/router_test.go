package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

var stoic = domain.Quote{ID: "q1", Content: "We suffer more in imagination than in reality.", Author: "Seneca"}

func TestNew_StartsOnHomeRoot(t *testing.T) {
	r := New()

	assert.Equal(t, TabHome, r.Active())
	assert.Equal(t, KindFeed, r.Current().Kind())
	assert.False(t, r.Fullscreen())
	for _, tab := range Tabs() {
		assert.Zero(t, r.Depth(tab), tab.String())
	}
}

func TestSwitchTab_ResetsOtherStacks(t *testing.T) {
	r := New()
	r.ShowQuote(stoic, "")
	require.Equal(t, 1, r.Depth(TabHome))

	require.NoError(t, r.SwitchTab(TabSearch))

	assert.Equal(t, TabSearch, r.Active())
	assert.Zero(t, r.Depth(TabHome))
	assert.Equal(t, KindSearch, r.Current().Kind())
	assert.False(t, r.Fullscreen())
}

func TestSwitchTab_EveryPair(t *testing.T) {
	type pair struct {
		from, to Tab
	}

	var tests []pair
	for _, from := range Tabs() {
		for _, to := range Tabs() {
			tests = append(tests, pair{from: from, to: to})
		}
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+" to "+tt.to.String(), func(t *testing.T) {
			r := New()
			require.NoError(t, r.SwitchTab(tt.from))
			r.ShowQuote(stoic, "")
			r.ShowQuote(stoic, "")
			require.Equal(t, 2, r.Depth(tt.from))
			require.True(t, r.Fullscreen())

			require.NoError(t, r.SwitchTab(tt.to))

			assert.Equal(t, tt.to, r.Active())

			anyDeep := false
			for _, tab := range Tabs() {
				if tab != tt.to {
					assert.Zero(t, r.Depth(tab), tab.String())
				}
				anyDeep = anyDeep || r.Depth(tab) > 0
			}

			// Reselecting the active tab keeps its stack.
			if tt.to == tt.from {
				assert.Equal(t, 2, r.Depth(tt.to))
			} else {
				assert.Zero(t, r.Depth(tt.to))
				assert.Equal(t, tt.to.Root().Kind(), r.Current().Kind())
			}

			assert.Equal(t, anyDeep, r.Fullscreen())
		})
	}
}

func TestSwitchTab_Invalid(t *testing.T) {
	r := New()

	require.ErrorIs(t, r.SwitchTab(Tab(7)), ErrInvalidTab)
	require.ErrorIs(t, r.SwitchTab(Tab(-1)), ErrInvalidTab)
	assert.Equal(t, TabHome, r.Active())
}

func TestShowQuote_UsesActiveTabStack(t *testing.T) {
	tests := []struct {
		name string
		tab  Tab
	}{
		{name: "home", tab: TabHome},
		{name: "search", tab: TabSearch},
		{name: "profile", tab: TabProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			require.NoError(t, r.SwitchTab(tt.tab))

			r.ShowQuote(stoic, "")

			assert.Equal(t, 1, r.Depth(tt.tab))
			assert.True(t, r.Fullscreen())
			detail, ok := r.Current().(QuoteDetailScreen)
			require.True(t, ok)
			assert.Equal(t, "q1", detail.Quote.ID)
			assert.Empty(t, detail.SourceCollectionID)

			for _, other := range Tabs() {
				if other != tt.tab {
					assert.Zero(t, r.Depth(other), other.String())
				}
			}
		})
	}
}

func TestCollectionFlow(t *testing.T) {
	r := New()

	r.ShowCollection("c1", "Stoics")

	assert.Equal(t, TabProfile, r.Active())
	coll, ok := r.Current().(CollectionScreen)
	require.True(t, ok)
	assert.Equal(t, "c1", coll.CollectionID)
	assert.Equal(t, "Stoics", coll.Name)
	assert.True(t, r.Fullscreen())

	r.ShowQuote(stoic, coll.CollectionID)
	detail, ok := r.Current().(QuoteDetailScreen)
	require.True(t, ok)
	assert.Equal(t, "c1", detail.SourceCollectionID)

	require.True(t, r.Back())
	assert.Equal(t, KindCollection, r.Current().Kind())

	require.True(t, r.Back())
	assert.Equal(t, KindProfileGrid, r.Current().Kind())
	assert.False(t, r.Fullscreen())
}

func TestShowCollection_FromAnotherTabResetsIt(t *testing.T) {
	r := New()
	r.ShowQuote(stoic, "")

	r.ShowCollection("c1", "Stoics")

	assert.Zero(t, r.Depth(TabHome))
	assert.Equal(t, 1, r.Depth(TabProfile))
}

func TestShowSettings(t *testing.T) {
	r := New()

	require.NoError(t, r.ShowSettings(PasswordScreen{}))
	assert.Equal(t, TabSettings, r.Active())
	assert.Equal(t, KindPassword, r.Current().Kind())
	assert.True(t, r.Fullscreen())

	require.True(t, r.Back())
	assert.Equal(t, KindSettings, r.Current().Kind())

	require.ErrorIs(t, r.ShowSettings(FeedScreen{}), ErrInvalidScreen)
	assert.Zero(t, r.Depth(TabSettings))
}

func TestBack(t *testing.T) {
	t.Run("home root is not intercepted", func(t *testing.T) {
		r := New()

		assert.False(t, r.Back())
		assert.Equal(t, TabHome, r.Active())
	})

	t.Run("other tab root returns home", func(t *testing.T) {
		r := New()
		require.NoError(t, r.SwitchTab(TabDaily))

		assert.True(t, r.Back())
		assert.Equal(t, TabHome, r.Active())
		assert.Equal(t, KindFeed, r.Current().Kind())
	})

	t.Run("pops exactly one level", func(t *testing.T) {
		r := New()
		r.ShowQuote(stoic, "")
		r.ShowQuote(domain.Quote{ID: "q2"}, "")

		assert.True(t, r.Back())
		assert.Equal(t, 1, r.Depth(TabHome))
		assert.Equal(t, "q1", r.Current().(QuoteDetailScreen).Quote.ID)
	})
}

func TestOpen(t *testing.T) {
	r := New()
	r.ShowQuote(stoic, "")

	require.NoError(t, r.Open(Target{Tab: TabDaily}))

	assert.Equal(t, TabDaily, r.Active())
	assert.Zero(t, r.Depth(TabHome))
	require.ErrorIs(t, r.Open(Target{Tab: 9}), ErrInvalidTab)
}

func TestTab_String(t *testing.T) {
	assert.Equal(t, "Profile", TabProfile.String())
	assert.Equal(t, "Tab(5)", Tab(5).String())
}

func TestStack(t *testing.T) {
	s := NewStack("root")

	assert.False(t, s.Pop())
	s.Push("a")
	s.Push("b")
	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, "b", s.Top())
	assert.True(t, s.Pop())
	assert.Equal(t, "a", s.Top())

	s.Reset()
	assert.Zero(t, s.Depth())
	assert.Equal(t, "root", s.Top())
	assert.Equal(t, "root", s.Root())
}
