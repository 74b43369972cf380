package toml

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fixture "github.com/ccuetoh/toml/internal/test"
)

func TestParseSimpleTable(t *testing.T) {
	v, err := Parse("[dataSource]\npooled = true\nusername = \"sa\"\nsomething = [1, 2]\n")
	require.NoError(t, err)

	ds, ok := v.Get("dataSource")
	require.True(t, ok)

	pooled, ok := ds.Get("pooled")
	require.True(t, ok)
	assert.True(t, pooled.Bool())

	username, ok := ds.Get("username")
	require.True(t, ok)
	assert.Equal(t, "sa", username.String())

	something, ok := ds.Get("something")
	require.True(t, ok)
	require.Len(t, something.Array(), 2)
	assert.EqualValues(t, 1, something.Array()[0].Num().I32)
	assert.EqualValues(t, 2, something.Array()[1].Num().I32)
}

func TestParseImplicitTableDefinedLater(t *testing.T) {
	v, err := Parse("[a.b]\nx = 1\n[a]\ny = 2\n")
	require.NoError(t, err)

	a, ok := v.Get("a")
	require.True(t, ok)

	b, ok := a.Get("b")
	require.True(t, ok)
	x, ok := b.Get("x")
	require.True(t, ok)
	assert.EqualValues(t, 1, x.Num().I32)

	y, ok := a.Get("y")
	require.True(t, ok)
	assert.EqualValues(t, 2, y.Num().I32)
}

func TestParseTableRedefinedIsAnError(t *testing.T) {
	_, err := Parse("[a]\n[a]\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redefined")
}

func TestParseHexUnderscoreWidthPromotion(t *testing.T) {
	v, err := Parse("k = 0xFF_FF\n")
	require.NoError(t, err)

	k, ok := v.Get("k")
	require.True(t, ok)
	require.Equal(t, NumberInt32, k.Num().Kind)
	assert.EqualValues(t, 65535, k.Num().I32)
}

func TestParseHexArbitraryPrecision(t *testing.T) {
	v, err := Parse("k = 0xFFFFFFFFFFFFFFFF_F\n")
	require.NoError(t, err)

	k, ok := v.Get("k")
	require.True(t, ok)
	require.Equal(t, NumberBigInt, k.Num().Kind)

	want, ok := new(big.Int).SetString("FFFFFFFFFFFFFFFFF", 16)
	require.True(t, ok)
	assert.Equal(t, 0, k.Num().Big.Cmp(want))
}

func TestParseSpecialFloats(t *testing.T) {
	v, err := Parse("k = inf\nj = -inf\nn = nan\n")
	require.NoError(t, err)

	k, _ := v.Get("k")
	assert.Equal(t, FloatPosInf, k.Num().Special)

	j, _ := v.Get("j")
	assert.Equal(t, FloatNegInf, j.Num().Special)

	n, _ := v.Get("n")
	assert.Equal(t, FloatNaN, n.Num().Special)
}

func TestParseArrayOfTables(t *testing.T) {
	v, err := Parse("[[servers]]\nname = \"a\"\n[[servers]]\nname = \"b\"\n")
	require.NoError(t, err)

	servers, ok := v.Get("servers")
	require.True(t, ok)
	require.Len(t, servers.Array(), 2)

	first, _ := servers.Array()[0].Get("name")
	assert.Equal(t, "a", first.String())

	second, _ := servers.Array()[1].Get("name")
	assert.Equal(t, "b", second.String())
}

func TestParseInlineTableTrailingCommaIsAnError(t *testing.T) {
	_, err := Parse("t = { a = 1, }\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing comma")
}

func TestParseSpaceSeparatedDateTimeNormalizedToT(t *testing.T) {
	v, err := Parse("d = 1979-05-27 07:32:00Z\n")
	require.NoError(t, err)

	d, ok := v.Get("d")
	require.True(t, ok)
	assert.Equal(t, "1979-05-27T07:32:00Z", d.String())
}

func TestParseEmptyInlineTableIsAllowed(t *testing.T) {
	v, err := Parse("t = {}\n")
	require.NoError(t, err)

	tbl, ok := v.Get("t")
	require.True(t, ok)
	assert.Empty(t, tbl.Keys())
}

func TestParseEmptyArrayIsAllowed(t *testing.T) {
	v, err := Parse("a = []\n")
	require.NoError(t, err)

	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Empty(t, a.Array())
}

func TestParseArrayTrailingCommaIsAllowed(t *testing.T) {
	v, err := Parse("a = [1, 2, ]\n")
	require.NoError(t, err)

	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Len(t, a.Array(), 2)
}

func TestParseMultilineArrayNewlinesAreInsignificant(t *testing.T) {
	v, err := Parse("a = [\n  1,\n  2,\n]\n")
	require.NoError(t, err)

	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Len(t, a.Array(), 2)
}

func TestParseDottedKeyCreatesIntermediateTables(t *testing.T) {
	v, err := Parse("a.b.c = 1\n")
	require.NoError(t, err)

	a, ok := v.Get("a")
	require.True(t, ok)
	b, ok := a.Get("b")
	require.True(t, ok)
	c, ok := b.Get("c")
	require.True(t, ok)
	assert.EqualValues(t, 1, c.Num().I32)
}

func TestParseHeaderAfterDottedKeyDefinitionIsAnError(t *testing.T) {
	// a.b.c = 1 implicitly defines a and a.b; [a.b] afterwards must be rejected as a
	// redefinition since the dotted assignment already "defined" a.b (a later [a] is rejected
	// the same way).
	_, err := Parse("a.b.c = 1\n[a.b]\n")
	require.Error(t, err)
}

func TestParseDottedKeyThroughArrayOfTablesExtension(t *testing.T) {
	v, err := Parse("[[t.a]]\nx = 1\n[[t.a]]\nx = 2\n[t]\na.y = 3\n")
	require.NoError(t, err)

	tbl, ok := v.Get("t")
	require.True(t, ok)
	arr, ok := tbl.Get("a")
	require.True(t, ok)
	require.Len(t, arr.Array(), 2)

	last := arr.Array()[1]
	y, ok := last.Get("y")
	require.True(t, ok)
	assert.EqualValues(t, 3, y.Num().I32)
}

func TestParseClosedInlineTableRejectsExtension(t *testing.T) {
	_, err := Parse("t = { a = 1 }\n[t.b]\n")
	require.Error(t, err)
}

func TestParseDuplicateKeyIsAnError(t *testing.T) {
	_, err := Parse("k = 1\nk = 2\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestParsePathIntoScalarIsAnError(t *testing.T) {
	_, err := Parse("k = 1\n[k.b]\n")
	require.Error(t, err)
}

func TestParseUnclosedArrayIsAnError(t *testing.T) {
	_, err := Parse("k = [1, 2\n")
	require.Error(t, err)
}

func TestParseScenarioFixtures(t *testing.T) {
	for _, c := range fixture.ScenarioCases {
		t.Run(c.Name, func(t *testing.T) {
			_, err := Parse(c.Input)
			if c.Valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseInvalidFixturesAllFail(t *testing.T) {
	for _, c := range fixture.InvalidCases {
		t.Run(c.Name, func(t *testing.T) {
			_, err := Parse(c.Input)
			assert.Error(t, err)
		})
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := Parse("[a]\n[a]\n")
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Pos.Line)
}
