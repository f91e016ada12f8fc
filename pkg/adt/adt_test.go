package adt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorData struct {
	Msg string
}

type loadedData struct {
	N   int
	Msg string
}

type stateCases struct {
	Loading Constructor[stateCases, Unit]
	Error   Constructor[stateCases, errorData]
	Loaded  Constructor[stateCases, loadedData]
}

var (
	state = MustCases[stateCases](WithName("State"))
	cases = state.Cases()
)

func TestConstructors_TagFidelity(t *testing.T) {
	t.Parallel()

	loading := cases.Loading.New(Unit{})
	assert.Equal(t, Tag("loading"), loading.Tag())
	assert.Equal(t, Unit{}, loading.Data())

	failed := cases.Error.New(errorData{Msg: "x"})
	assert.Equal(t, Tag("error"), failed.Tag())
	assert.Equal(t, errorData{Msg: "x"}, failed.Data())

	loaded := cases.Loaded.New(loadedData{N: 123, Msg: "some text"})
	assert.Equal(t, Tag("loaded"), loaded.Tag())
	assert.Equal(t, loadedData{N: 123, Msg: "some text"}, loaded.Data())
}

func TestConstructors_CopyOnConstruct(t *testing.T) {
	t.Parallel()

	data := loadedData{N: 1, Msg: "before"}
	v := cases.Loaded.New(data)
	data.Msg = "after"

	got, ok := cases.Loaded.Data(v)
	require.True(t, ok)
	assert.Equal(t, "before", got.Msg)
}

func TestConstructors_ExposeTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Tag("loading"), cases.Loading.Tag())
	assert.Equal(t, Tag("error"), cases.Error.Tag())
	assert.Equal(t, Tag("loaded"), cases.Loaded.Tag())
	assert.Equal(t, []Tag{"loading", "error", "loaded"}, state.Tags())
}

func TestCase_FactoryBindsTag(t *testing.T) {
	t.Parallel()

	c := Case[stateCases, errorData]()("error")
	v := c.New(errorData{Msg: "m"})

	assert.Equal(t, Tag("error"), c.Tag())
	assert.True(t, cases.Error.Is(v))
	assert.True(t, state.Has(v.Tag()))
}

func TestMatch_ChoosesBranch(t *testing.T) {
	t.Parallel()

	v := cases.Loaded.New(loadedData{N: 123, Msg: "m"})

	n, err := Match(v,
		On(cases.Loading, func(Unit) int { return -1 }),
		On(cases.Error, func(errorData) int { return -2 }),
		On(cases.Loaded, func(d loadedData) int { return d.N }),
	)
	require.NoError(t, err)
	assert.Equal(t, 123, n)
}

func TestMatch_HandlerOrderIrrelevant(t *testing.T) {
	t.Parallel()

	v := cases.Error.New(errorData{Msg: "boom"})

	forward, err := Match(v,
		On(cases.Loading, func(Unit) string { return "loading" }),
		On(cases.Error, func(d errorData) string { return d.Msg }),
		On(cases.Loaded, func(loadedData) string { return "loaded" }),
	)
	require.NoError(t, err)

	backward, err := Match(v,
		On(cases.Loaded, func(loadedData) string { return "loaded" }),
		On(cases.Error, func(d errorData) string { return d.Msg }),
		On(cases.Loading, func(Unit) string { return "loading" }),
	)
	require.NoError(t, err)
	assert.Equal(t, "boom", forward)
	assert.Equal(t, forward, backward)
}

func TestMatch_MapsToAnotherCase(t *testing.T) {
	t.Parallel()

	v := cases.Loaded.New(loadedData{N: 123, Msg: "some text"})

	res, err := Match(v,
		On(cases.Loaded, func(d loadedData) Variant[stateCases] { return cases.Error.New(errorData{Msg: d.Msg}) }),
		On(cases.Loading, func(Unit) Variant[stateCases] { return v }),
		On(cases.Error, func(d errorData) Variant[stateCases] { return cases.Error.New(errorData{Msg: "yet again"}) }),
	)
	require.NoError(t, err)
	require.True(t, state.IsCase(res, "error"))

	d, ok := cases.Error.Data(res)
	require.True(t, ok)
	assert.Equal(t, "some text", d.Msg)
}

func TestMatch_UnresolvedVariant(t *testing.T) {
	t.Parallel()

	v := cases.Loaded.New(loadedData{N: 1})

	_, err := Match(v,
		On(cases.Loading, func(Unit) int { return 0 }),
		On(cases.Error, func(errorData) int { return 0 }),
	)
	require.ErrorIs(t, err, ErrUnresolvedVariant)

	var unresolved *UnresolvedVariantError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, Tag("loaded"), unresolved.Tag)
	assert.Equal(t, []Tag{"loading", "error"}, unresolved.Handled)
	assert.Equal(t, `adt: unresolved variant "loaded" (handled: loading|error)`, err.Error())
}

func TestMatch_ZeroVariant(t *testing.T) {
	t.Parallel()

	var v Variant[stateCases]
	_, err := Match(v, On(cases.Loading, func(Unit) int { return 0 }))
	require.ErrorIs(t, err, ErrUnresolvedVariant)
	assert.ErrorIs(t, state.Validate(v), ErrUnresolvedVariant)
	assert.NoError(t, state.Validate(cases.Loading.New(Unit{})))
}

func TestMatch_DuplicateHandler(t *testing.T) {
	t.Parallel()

	v := cases.Loading.New(Unit{})
	_, err := Match(v,
		On(cases.Loading, func(Unit) int { return 1 }),
		On(cases.Loading, func(Unit) int { return 2 }),
	)
	assert.ErrorIs(t, err, ErrDuplicateHandler)
}

func TestMatch_UnboundConstructor(t *testing.T) {
	t.Parallel()

	var unbound Constructor[stateCases, Unit]
	v := cases.Loading.New(Unit{})

	_, err := Match(v, On(unbound, func(Unit) int { return 1 }))
	assert.ErrorIs(t, err, ErrUnboundConstructor)
}

func TestIsCase_FiltersCases(t *testing.T) {
	t.Parallel()

	v := cases.Loaded.New(loadedData{N: 123, Msg: "some text"})

	assert.False(t, state.IsCase(v, "loading"))
	assert.True(t, state.IsCase(v, "loaded"))
	assert.False(t, state.IsCase(v, "loading", "error"))
	assert.True(t, state.IsCase(v, "error", "loaded"))
	assert.False(t, state.IsCase(v))
}

func TestIsCase_NegationNarrowsToComplement(t *testing.T) {
	t.Parallel()

	v := cases.Loaded.New(loadedData{N: 123, Msg: "some text"})
	excluded := state.Subset("loading", "error")

	require.False(t, excluded.Contains(v))
	rest := excluded.Complement()
	require.True(t, rest.Contains(v))
	assert.Equal(t, []Tag{"loaded"}, rest.Tags())

	d, ok := cases.Loaded.Data(v)
	require.True(t, ok)
	assert.Equal(t, 123, d.N)
}

func TestNewMatcherOn_AfterIsCaseIgnoresMatchedCases(t *testing.T) {
	t.Parallel()

	v := cases.Loaded.New(loadedData{N: 123, Msg: "some text"})
	loading := state.Subset("loading")
	require.False(t, loading.Contains(v))

	m, err := NewMatcherOn(loading.Complement(),
		On(cases.Loaded, func(loadedData) Tag { return "loaded" }),
		On(cases.Error, func(errorData) Tag { return "error" }),
	)
	require.NoError(t, err)
	assert.Equal(t, Tag("loaded"), m.Match(v))
	assert.Equal(t, 2, m.Covers().Len())
}

func TestNewMatcher_RequiresEveryTag(t *testing.T) {
	t.Parallel()

	_, err := NewMatcher(state,
		On(cases.Loading, func(Unit) int { return 0 }),
	)
	require.ErrorIs(t, err, ErrNotExhaustive)
	assert.Contains(t, err.Error(), "missing handlers for error|loaded")

	m, err := NewMatcher(state,
		On(cases.Loading, func(Unit) int { return 0 }),
		On(cases.Error, func(errorData) int { return 1 }),
		On(cases.Loaded, func(d loadedData) int { return d.N }),
	)
	require.NoError(t, err)
	assert.Equal(t, 7, m.Match(cases.Loaded.New(loadedData{N: 7})))
	assert.Equal(t, 1, m.Match(cases.Error.New(errorData{})))
}

func TestNewMatcherOn_RejectsHandlersOutsideSubset(t *testing.T) {
	t.Parallel()

	_, err := NewMatcherOn(state.Subset("loaded"),
		On(cases.Loaded, func(loadedData) int { return 0 }),
		On(cases.Error, func(errorData) int { return 0 }),
	)
	require.ErrorIs(t, err, ErrNotExhaustive)
	assert.Contains(t, err.Error(), "handlers for error are outside {loaded}")
}

func TestMatcher_OutsideCoveredSetPanics(t *testing.T) {
	t.Parallel()

	m, err := NewMatcherOn(state.Subset("loaded"),
		On(cases.Loaded, func(loadedData) int { return 0 }),
	)
	require.NoError(t, err)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrUnreachable)
	}()
	m.Match(cases.Loading.New(Unit{}))
	t.Fatal("expected panic")
}

func TestAllCasesCovered_HelpsWithSwitches(t *testing.T) {
	t.Parallel()

	v := cases.Loaded.New(loadedData{N: 123, Msg: "some text"})

	switch v.Tag() {
	case cases.Error.Tag():
		t.Fatal("state is not 'error'")
	case cases.Loading.Tag():
		t.Fatal("state is not 'loading'")
	case cases.Loaded.Tag():
		assert.Equal(t, 123, cases.Loaded.MustData(v).N)
	default:
		AllCasesCovered(v)
	}
}

func TestAllCasesCovered_Panics(t *testing.T) {
	t.Parallel()

	v := cases.Error.New(errorData{Msg: "x"})
	assert.PanicsWithError(t, `adt: unreachable case "error": error{Msg:x}`, func() {
		AllCasesCovered(v)
	})
	assert.PanicsWithError(t, "adt: unreachable case: 42", func() {
		_ = Unreachable[string](42)
	})
}

func TestConstructor_Data(t *testing.T) {
	t.Parallel()

	v := cases.Error.New(errorData{Msg: "x"})

	_, ok := cases.Loaded.Data(v)
	assert.False(t, ok)
	assert.False(t, cases.Loaded.Is(v))

	d, ok := cases.Error.Data(v)
	assert.True(t, ok)
	assert.Equal(t, "x", d.Msg)

	assert.Panics(t, func() { cases.Loaded.MustData(v) })
}

type resultCases struct {
	Ok  Constructor[resultCases, int]
	Err Constructor[resultCases, error] `adt:"err"`
}

func TestConstructor_NilInterfacePayload(t *testing.T) {
	t.Parallel()

	result := MustCases[resultCases]()
	v := result.Cases().Err.New(nil)

	err, ok := result.Cases().Err.Data(v)
	assert.True(t, ok)
	assert.Nil(t, err)
	assert.Equal(t, "err", v.String())
}

func TestVariant_String(t *testing.T) {
	t.Parallel()

	var zero Variant[stateCases]
	assert.True(t, zero.IsZero())
	assert.Equal(t, "<zero variant>", zero.String())
	assert.Equal(t, "loading", cases.Loading.New(Unit{}).String())
	assert.Equal(t, "loaded{N:123 Msg:m}", cases.Loaded.New(loadedData{N: 123, Msg: "m"}).String())
}

func TestChain_RewritesVariant(t *testing.T) {
	t.Parallel()

	var seen []Tag

	out, err := Start(cases.Loading.New(Unit{})).
		Then(On(cases.Loading, func(Unit) Variant[stateCases] {
			return cases.Loaded.New(loadedData{N: 1, Msg: "first"})
		})).
		Then(On(cases.Error, func(errorData) Variant[stateCases] {
			return cases.Loading.New(Unit{})
		})).
		Ensure(On(cases.Loaded, func(loadedData) Unit {
			seen = append(seen, "loaded")
			return Unit{}
		})).
		Then(On(cases.Loaded, func(d loadedData) Variant[stateCases] {
			return cases.Loaded.New(loadedData{N: d.N + 1, Msg: d.Msg})
		})).
		Result()

	require.NoError(t, err)
	assert.Equal(t, []Tag{"loaded"}, seen)
	assert.Equal(t, loadedData{N: 2, Msg: "first"}, cases.Loaded.MustData(out))
}

func TestChain_StopsOnError(t *testing.T) {
	t.Parallel()

	called := false
	c := Start(cases.Loading.New(Unit{})).
		Then(
			On(cases.Loading, func(Unit) Variant[stateCases] { return cases.Loading.New(Unit{}) }),
			On(cases.Loading, func(Unit) Variant[stateCases] { return cases.Loading.New(Unit{}) }),
		).
		Then(On(cases.Loading, func(Unit) Variant[stateCases] {
			called = true
			return cases.Loading.New(Unit{})
		}))

	_, err := c.Result()
	assert.ErrorIs(t, err, ErrDuplicateHandler)
	assert.False(t, called)

	_, err = Finally(c, On(cases.Loading, func(Unit) string { return "x" }))
	assert.ErrorIs(t, err, ErrDuplicateHandler)
}

func TestFinally_Collapses(t *testing.T) {
	t.Parallel()

	msg, err := Finally(Start(cases.Error.New(errorData{Msg: "bad"})),
		On(cases.Loading, func(Unit) string { return "" }),
		On(cases.Error, func(d errorData) string { return d.Msg }),
		On(cases.Loaded, func(d loadedData) string { return d.Msg }),
	)
	require.NoError(t, err)
	assert.Equal(t, "bad", msg)
}

func TestMatch_PayloadMismatchIsAnError(t *testing.T) {
	t.Parallel()

	// a second constructor for a declared tag with another data shape
	odd := Case[stateCases, string]()("loaded").New("oops")

	var res int
	require.NotPanics(t, func() {
		var err error
		res, err = Match(odd,
			On(cases.Loading, func(Unit) int { return 1 }),
			On(cases.Error, func(errorData) int { return 2 }),
			On(cases.Loaded, func(d loadedData) int { return d.N }),
		)
		require.ErrorIs(t, err, ErrPayloadMismatch)

		var mismatch *PayloadMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, Tag("loaded"), mismatch.Tag)
		assert.Equal(t, `adt: payload does not match tag: "loaded" carries string`, err.Error())
	})
	assert.Zero(t, res)

	assert.PanicsWithError(t, `adt: payload does not match tag: "loaded" carries string`, func() {
		cases.Loaded.MustData(odd)
	})
}

func TestChain_PayloadMismatchStops(t *testing.T) {
	t.Parallel()

	odd := Case[stateCases, string]()("loaded").New("oops")
	toLoading := On(cases.Loaded, func(loadedData) Variant[stateCases] { return cases.Loading.New(Unit{}) })

	_, err := Start(odd).Then(toLoading).Result()
	assert.ErrorIs(t, err, ErrPayloadMismatch)

	_, err = Start(odd).Ensure(On(cases.Loaded, func(loadedData) Unit { return Unit{} })).Result()
	assert.ErrorIs(t, err, ErrPayloadMismatch)
}

func TestMatcher_PayloadMismatchIsUnreachable(t *testing.T) {
	t.Parallel()

	m, err := NewMatcherOn(state.Subset("loaded"),
		On(cases.Loaded, func(loadedData) int { return 0 }),
	)
	require.NoError(t, err)

	odd := Case[stateCases, string]()("loaded").New("oops")
	assert.PanicsWithError(t, `adt: unreachable case "loaded": loadedoops`, func() {
		m.Match(odd)
	})
}

func TestIsCase_EmptyTagNeverMatches(t *testing.T) {
	t.Parallel()

	var zero Variant[stateCases]
	assert.False(t, state.IsCase(zero, ""))
	assert.False(t, state.IsCase(zero, "", "loading"))
	assert.False(t, state.Has(""))
}
